package models

import "time"

// ApplicationStatus is the closed set of badge application lifecycle states.
type ApplicationStatus string

const (
	StatusNotStarted ApplicationStatus = "not_started"
	StatusInProgress ApplicationStatus = "in_progress"
	StatusSubmitted  ApplicationStatus = "submitted"
	StatusInReview   ApplicationStatus = "in_review"
	StatusEarned     ApplicationStatus = "earned"
	StatusRejected   ApplicationStatus = "rejected"
)

// Valid reports whether the status is one of the known values.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusSubmitted, StatusInReview, StatusEarned, StatusRejected:
		return true
	}
	return false
}

// Active reports whether the status counts toward in-progress badge work.
func (s ApplicationStatus) Active() bool {
	switch s {
	case StatusInProgress, StatusSubmitted, StatusInReview:
		return true
	}
	return false
}

// Terminal reports whether the status concludes a review.
func (s ApplicationStatus) Terminal() bool {
	return s == StatusEarned || s == StatusRejected
}

// Application is the tracked attempt by a user to earn a specific badge.
type Application struct {
	ID          string            `db:"id" json:"id"`
	UserID      string            `db:"user_id" json:"user_id"`
	BadgeID     string            `db:"badge_id" json:"badge_id"`
	Status      ApplicationStatus `db:"status" json:"status"`
	SubmittedAt *time.Time        `db:"submitted_at" json:"submitted_at,omitempty"`
	ReviewedAt  *time.Time        `db:"reviewed_at" json:"reviewed_at,omitempty"`
	ReviewedBy  *string           `db:"reviewed_by" json:"reviewed_by,omitempty"`
	Feedback    *string           `db:"feedback" json:"feedback,omitempty"`
	CreatedAt   time.Time         `db:"created_at" json:"created_at"`
}

// UserApplication joins an application with its badge and accumulated evidence
// for the per-user listing.
type UserApplication struct {
	Application
	Badge    Badge      `json:"badge"`
	Evidence []Evidence `json:"evidence"`
}

// ApplicationDetail is the full view of one application.
type ApplicationDetail struct {
	Application
	Badge    Badge      `json:"badge"`
	User     UserInfo   `json:"user"`
	Evidence []Evidence `json:"evidence"`
}

// ReviewItem is an entry in the reviewer queue.
type ReviewItem struct {
	Application
	Badge Badge    `json:"badge"`
	User  UserInfo `json:"user"`
}
