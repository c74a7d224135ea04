package models

import "time"

// GraduateProfile is the closed set of competency categories badges are
// organised under.
type GraduateProfile string

const (
	ProfileExcellence    GraduateProfile = "excellence"
	ProfileInnovation    GraduateProfile = "innovation"
	ProfileIntegrity     GraduateProfile = "integrity"
	ProfileInspiration   GraduateProfile = "inspiration"
	ProfileHauora        GraduateProfile = "hauora"
	ProfileRelationships GraduateProfile = "relationships"
)

// GraduateProfiles lists every category in canonical order. Progress reports
// emit one row per entry regardless of user activity.
var GraduateProfiles = []GraduateProfile{
	ProfileExcellence,
	ProfileInnovation,
	ProfileIntegrity,
	ProfileInspiration,
	ProfileHauora,
	ProfileRelationships,
}

// Valid reports whether the profile is one of the known categories.
func (p GraduateProfile) Valid() bool {
	for _, known := range GraduateProfiles {
		if p == known {
			return true
		}
	}
	return false
}

// Badge is an awardable credential with defined criteria and an evidence
// requirement.
type Badge struct {
	ID                    string          `db:"id" json:"id"`
	Name                  string          `db:"name" json:"name"`
	Description           string          `db:"description" json:"description"`
	Criteria              string          `db:"criteria" json:"criteria"`
	GraduateProfile       GraduateProfile `db:"graduate_profile" json:"graduate_profile"`
	Level                 int             `db:"level" json:"level"`
	RequiredEvidenceCount int             `db:"required_evidence_count" json:"required_evidence_count"`
	IsActive              bool            `db:"is_active" json:"is_active"`
	CreatedAt             time.Time       `db:"created_at" json:"created_at"`
}
