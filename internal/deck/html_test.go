package deck

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kahu-edu/badge-portfolio-api/internal/models"
)

func TestRenderHTML(t *testing.T) {
	badge := models.Badge{
		ID:                    "b1",
		Name:                  "Hauora 2 Senior",
		Description:           "Wellbeing leadership",
		Criteria:              "Lead a wellbeing initiative.",
		GraduateProfile:       models.ProfileHauora,
		Level:                 2,
		RequiredEvidenceCount: 3,
	}

	var buf bytes.Buffer
	require.NoError(t, RenderHTML(&buf, badge))

	html := buf.String()
	assert.Contains(t, html, "Hauora 2 Senior")
	assert.Contains(t, html, "Lead a wellbeing initiative.")
	assert.Contains(t, html, "#0E7490")
	assert.Contains(t, html, "Requires 3 pieces of evidence.")
}

func TestRenderHTMLEscapesBadgeFields(t *testing.T) {
	badge := models.Badge{
		Name:            "<script>alert(1)</script>",
		GraduateProfile: models.ProfileExcellence,
	}

	var buf bytes.Buffer
	require.NoError(t, RenderHTML(&buf, badge))
	assert.NotContains(t, buf.String(), "<script>alert(1)</script>")
}
