package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPDFRendererRender(t *testing.T) {
	r := NewPDFRenderer()
	payload, err := r.Render(Document{
		Title:        "Excellence 1 Junior",
		Subtitle:     "Graduate Profile Badge Portfolio",
		PrimaryColor: 0x1E40AF,
		AccentColor:  0x3B82F6,
		Pages: []Page{
			{Heading: "Badge Criteria", Paragraphs: []string{"Show curiosity in learning."}},
			{Heading: "Science fair", Tag: "photos", Paragraphs: []string{"Entered the regional science fair."}},
		},
	})
	require.NoError(t, err)
	assert.True(t, len(payload) > 0)
	assert.Equal(t, "%PDF", string(payload[:4]))
}

func TestPDFRendererRequiresTitle(t *testing.T) {
	r := NewPDFRenderer()
	_, err := r.Render(Document{})
	require.Error(t, err)
}
