package dto

// CreateApplicationRequest starts a badge application for a student.
type CreateApplicationRequest struct {
	UserID  string `json:"userId" validate:"required,uuid"`
	BadgeID string `json:"badgeId" validate:"required,uuid"`
}

// UpdateApplicationStatusRequest moves an application to a new status.
// Feedback and ReviewedBy are only meaningful for review transitions.
type UpdateApplicationStatusRequest struct {
	Status     string  `json:"status" validate:"required"`
	ReviewedBy *string `json:"reviewedBy" validate:"omitempty,uuid"`
	Feedback   *string `json:"feedback"`
}
