package models

// UserStats summarises one user's badge activity across the whole catalog.
// Computed fresh on every request.
type UserStats struct {
	EarnedBadges   int `json:"earned_badges"`
	InProgress     int `json:"in_progress"`
	TotalBadges    int `json:"total_badges"`
	CompletionRate int `json:"completion_rate"`
}

// ProfileProgress is one user's standing within a single graduate-profile
// category. Percentages are unclamped and may exceed 100.
type ProfileProgress struct {
	Profile     GraduateProfile `json:"profile"`
	EarnedCount int             `json:"earned_count"`
	TotalCount  int             `json:"total_count"`
	Percentage  int             `json:"percentage"`
}
