package dto

// SlideEvidence is one evidence entry supplied to the deck generator. The type
// tag is free-form here; the client sends display labels, not the persisted
// evidence enum.
type SlideEvidence struct {
	Type        string `json:"type"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Source      string `json:"source,omitempty"`
	FileURL     string `json:"file_url,omitempty"`
}

// GenerateSlidesRequest is the payload for building a presentation deck. It is
// consumed once and never persisted.
type GenerateSlidesRequest struct {
	BadgeID         string            `json:"badgeId" validate:"required"`
	BadgeName       string            `json:"badgeName"`
	GraduateProfile string            `json:"graduateProfile"`
	Evidence        []SlideEvidence   `json:"evidence"`
	Reflections     map[string]string `json:"reflections"`
}

// GenerateSlidesResponse returns artifact metadata and derived-view URLs.
type GenerateSlidesResponse struct {
	Filename    string `json:"filename"`
	SlideCount  int    `json:"slide_count"`
	DownloadURL string `json:"downloadUrl"`
	PDFURL      string `json:"pdfUrl"`
	ViewURL     string `json:"viewUrl"`
	ShareURL    string `json:"shareUrl"`
}

// ShareSlidesResponse is the payload for the share endpoint. Nothing is
// persisted; the URL is constructed per request.
type ShareSlidesResponse struct {
	ShareURL string `json:"shareUrl"`
	Message  string `json:"message"`
}
