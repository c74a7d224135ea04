package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// Document is a neutral page-oriented representation rendered to PDF. The deck
// builder maps its slides onto pages so this package stays free of domain types.
type Document struct {
	Title    string
	Subtitle string
	Pages    []Page

	// Theme colors as 0xRRGGBB values.
	PrimaryColor int
	AccentColor  int
}

// Page is a single rendered page with a heading and body paragraphs.
type Page struct {
	Heading    string
	Tag        string
	Paragraphs []string
}

// PDFRenderer renders documents into a landscape, slide-per-page PDF.
type PDFRenderer struct{}

// NewPDFRenderer constructs a PDF renderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render creates a PDF with a cover page followed by one page per Page entry.
func (r *PDFRenderer) Render(doc Document) ([]byte, error) {
	if doc.Title == "" {
		return nil, fmt.Errorf("pdf requires a document title")
	}
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(15, 20, 15)

	pr, pg, pb := splitRGB(doc.PrimaryColor)
	ar, ag, ab := splitRGB(doc.AccentColor)

	pdf.AddPage()
	pdf.SetFillColor(pr, pg, pb)
	pdf.Rect(0, 0, 297, 210, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Arial", "B", 30)
	pdf.SetY(80)
	pdf.CellFormat(0, 14, doc.Title, "", 1, "C", false, 0, "")
	if doc.Subtitle != "" {
		pdf.SetFont("Arial", "", 16)
		pdf.CellFormat(0, 10, doc.Subtitle, "", 1, "C", false, 0, "")
	}

	for _, page := range doc.Pages {
		pdf.AddPage()
		pdf.SetTextColor(pr, pg, pb)
		pdf.SetFont("Arial", "B", 22)
		pdf.CellFormat(0, 12, page.Heading, "", 1, "L", false, 0, "")
		pdf.SetDrawColor(ar, ag, ab)
		pdf.SetLineWidth(1)
		pdf.Line(15, pdf.GetY()+1, 120, pdf.GetY()+1)
		pdf.Ln(6)
		if page.Tag != "" {
			pdf.SetTextColor(ar, ag, ab)
			pdf.SetFont("Arial", "I", 11)
			pdf.CellFormat(0, 7, page.Tag, "", 1, "L", false, 0, "")
			pdf.Ln(2)
		}
		pdf.SetTextColor(60, 60, 60)
		pdf.SetFont("Arial", "", 12)
		for _, paragraph := range page.Paragraphs {
			pdf.MultiCell(0, 7, paragraph, "", "L", false)
			pdf.Ln(3)
		}
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func splitRGB(c int) (int, int, int) {
	return (c >> 16) & 0xff, (c >> 8) & 0xff, c & 0xff
}
