package dto

// CreateBadgeRequest is the payload for creating a badge.
type CreateBadgeRequest struct {
	Name                  string `json:"name" validate:"required,min=2,max=120"`
	Description           string `json:"description" validate:"required"`
	GraduateProfile       string `json:"graduateProfile" validate:"required"`
	Criteria              string `json:"criteria" validate:"required"`
	Level                 int    `json:"level" validate:"omitempty,min=1,max=5"`
	RequiredEvidenceCount int    `json:"requiredEvidenceCount" validate:"omitempty,min=1,max=20"`
}

// UpdateBadgeRequest is the payload for a partial badge update.
type UpdateBadgeRequest struct {
	Name                  *string `json:"name" validate:"omitempty,min=2,max=120"`
	Description           *string `json:"description"`
	GraduateProfile       *string `json:"graduateProfile"`
	Criteria              *string `json:"criteria"`
	Level                 *int    `json:"level" validate:"omitempty,min=1,max=5"`
	RequiredEvidenceCount *int    `json:"requiredEvidenceCount" validate:"omitempty,min=1,max=20"`
	IsActive              *bool   `json:"isActive"`
}
