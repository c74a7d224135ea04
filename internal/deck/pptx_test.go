package deck

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestDeck(t *testing.T) Deck {
	t.Helper()
	return Build(Input{
		BadgeName:   "Excellence 1 Junior",
		Criteria:    "Show curiosity & persistence <every day>.",
		Profile:     "excellence",
		GeneratedAt: time.Now(),
		Evidence:    []EvidenceItem{{Type: "photos", Title: "Science fair", Description: "Entered the fair."}},
		Reflections: map[string]string{"learning": "I learned a lot."},
	})
}

func TestWritePPTXPackageShape(t *testing.T) {
	d := buildTestDeck(t)
	var buf bytes.Buffer
	require.NoError(t, WritePPTX(&buf, d))

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)

	names := make(map[string]bool, len(zr.File))
	for _, f := range zr.File {
		names[f.Name] = true
	}

	for _, want := range []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"ppt/presentation.xml",
		"ppt/_rels/presentation.xml.rels",
		"ppt/slideMasters/slideMaster1.xml",
		"ppt/slideLayouts/slideLayout1.xml",
		"ppt/theme/theme1.xml",
		"ppt/slides/slide1.xml",
		"ppt/slides/slide5.xml",
		"ppt/slides/_rels/slide1.xml.rels",
	} {
		assert.True(t, names[want], "missing part %s", want)
	}
	assert.False(t, names["ppt/slides/slide6.xml"], "one slide part per built slide")
}

func TestWritePPTXEscapesText(t *testing.T) {
	d := buildTestDeck(t)
	var buf bytes.Buffer
	require.NoError(t, WritePPTX(&buf, d))

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)

	var criteria string
	for _, f := range zr.File {
		if f.Name != "ppt/slides/slide2.xml" {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		raw, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		criteria = string(raw)
	}
	require.NotEmpty(t, criteria)
	assert.Contains(t, criteria, "Show curiosity &amp; persistence &lt;every day&gt;.")
	assert.NotContains(t, criteria, "<every day>")
}

func TestWritePPTXPresentationListsSlides(t *testing.T) {
	d := buildTestDeck(t)
	var buf bytes.Buffer
	require.NoError(t, WritePPTX(&buf, d))

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)

	for _, f := range zr.File {
		if f.Name != "ppt/presentation.xml" {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		raw, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		body := string(raw)
		assert.Equal(t, len(d.Slides), strings.Count(body, "<p:sldId "))
	}
}

func TestWritePPTXThemeCarriesProfileColors(t *testing.T) {
	d := buildTestDeck(t)
	var buf bytes.Buffer
	require.NoError(t, WritePPTX(&buf, d))

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)

	for _, f := range zr.File {
		if f.Name != "ppt/theme/theme1.xml" {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		raw, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		assert.Contains(t, string(raw), `val="1E40AF"`)
		assert.Contains(t, string(raw), `val="3B82F6"`)
	}
}
