package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// EvidenceType is the closed set of evidence submission kinds.
type EvidenceType string

const (
	EvidenceWrittenReflection EvidenceType = "written_reflection"
	EvidenceFileUpload        EvidenceType = "file_upload"
	EvidenceProjectLink       EvidenceType = "project_link"
	EvidenceVideoSubmission   EvidenceType = "video_submission"
)

// Valid reports whether the type is one of the known values.
func (t EvidenceType) Valid() bool {
	switch t {
	case EvidenceWrittenReflection, EvidenceFileUpload, EvidenceProjectLink, EvidenceVideoSubmission:
		return true
	}
	return false
}

// EvidenceMetadata captures upload details stored alongside a file reference.
type EvidenceMetadata struct {
	OriginalName string `json:"original_name"`
	Size         int64  `json:"size"`
	MimeType     string `json:"mime_type"`
}

// Value implements driver.Valuer so metadata persists as jsonb.
func (m EvidenceMetadata) Value() (driver.Value, error) {
	return json.Marshal(m)
}

// Scan implements sql.Scanner for jsonb columns.
func (m *EvidenceMetadata) Scan(src interface{}) error {
	if src == nil {
		return nil
	}
	raw, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("evidence metadata: unsupported scan type %T", src)
	}
	return json.Unmarshal(raw, m)
}

// Evidence is a discrete artifact submitted to support a badge application.
// Records are created by the student and never mutated, only deleted.
type Evidence struct {
	ID            string            `db:"id" json:"id"`
	ApplicationID string            `db:"application_id" json:"application_id"`
	Type          EvidenceType      `db:"type" json:"type"`
	Title         string            `db:"title" json:"title"`
	Description   string            `db:"description" json:"description"`
	Content       *string           `db:"content" json:"content,omitempty"`
	FileURL       *string           `db:"file_url" json:"file_url,omitempty"`
	Metadata      *EvidenceMetadata `db:"metadata" json:"metadata,omitempty"`
	CreatedAt     time.Time         `db:"created_at" json:"created_at"`
}
