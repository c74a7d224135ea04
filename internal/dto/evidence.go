package dto

// CreateEvidenceRequest carries the non-file fields of an evidence
// submission. File content arrives as a multipart part alongside it.
type CreateEvidenceRequest struct {
	ApplicationID string `json:"applicationId" form:"applicationId" validate:"required,uuid"`
	EvidenceType  string `json:"evidenceType" form:"evidenceType" validate:"required"`
	Title         string `json:"title" form:"title" validate:"required,min=2,max=200"`
	Description   string `json:"description" form:"description"`
	Content       string `json:"content" form:"content"`
	FileURL       string `json:"fileUrl" form:"fileUrl" validate:"omitempty,url"`
}
