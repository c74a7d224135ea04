package deck

import "github.com/kahu-edu/badge-portfolio-api/pkg/export"

// ToDocument maps a built deck onto the neutral page model understood by the
// PDF renderer. The cover slide becomes the document cover; the rest become
// pages.
func ToDocument(d Deck) export.Document {
	doc := export.Document{
		Title:        d.Title,
		PrimaryColor: d.Theme.PrimaryRGB(),
		AccentColor:  d.Theme.AccentRGB(),
	}
	for i, slide := range d.Slides {
		if i == 0 {
			doc.Subtitle = slide.Subtitle
			continue
		}
		doc.Pages = append(doc.Pages, export.Page{
			Heading:    slide.Title,
			Tag:        slide.Tag,
			Paragraphs: slide.Body,
		})
	}
	return doc
}
