// Package deck turns a badge, its submitted evidence, and reflection answers
// into an ordered slide sequence, and renders that sequence as PPTX, PDF and
// HTML artifacts.
package deck

import (
	"fmt"
	"sort"
	"time"
)

// DeckSubtitle appears on every title slide.
const DeckSubtitle = "Graduate Profile Badge Portfolio"

const summaryBody = "Congratulations on completing your badge journey! " +
	"This portfolio showcases the evidence and reflections behind your achievement. " +
	"Keep building on what you have learned."

// reflectionTitles resolves the fixed reflection prompt keys to slide titles.
// Unknown keys fall back to a generic numbered label.
var reflectionTitles = map[string]string{
	"learning":    "What I Learned",
	"growth":      "How I Grew",
	"connection":  "Connections to the Graduate Profile",
	"application": "Applying My Learning",
}

// reflectionOrder fixes the emission order for the known prompt keys.
var reflectionOrder = []string{"learning", "growth", "connection", "application"}

// EvidenceItem is one evidence entry rendered onto its own slide.
type EvidenceItem struct {
	Type        string
	Title       string
	Description string
	Source      string
}

// Input carries everything the builder needs. Reflections is keyed by prompt
// identifier; known prompts are emitted in their fixed order, unknown prompts
// after them in key order.
type Input struct {
	BadgeName   string
	Criteria    string
	Profile     string
	GeneratedAt time.Time
	Evidence    []EvidenceItem
	Reflections map[string]string
}

// Slide is a single titled slide.
type Slide struct {
	Title    string
	Subtitle string
	Tag      string
	Body     []string
}

// Deck is a fully built slide sequence plus its theme.
type Deck struct {
	Title  string
	Slides []Slide
	Theme  Theme
}

// Build assembles the slide sequence: title, criteria, one slide per evidence
// item in input order, one slide per reflection, and a closing summary. Empty
// evidence and reflections still produce the three fixed slides.
func Build(in Input) Deck {
	slides := make([]Slide, 0, len(in.Evidence)+len(in.Reflections)+3)

	slides = append(slides, Slide{
		Title:    in.BadgeName,
		Subtitle: DeckSubtitle,
		Body:     []string{fmt.Sprintf("Generated %s", in.GeneratedAt.Format("2 January 2006"))},
	})

	slides = append(slides, Slide{
		Title: "Badge Criteria",
		Body:  []string{in.Criteria},
	})

	for _, item := range in.Evidence {
		tag := item.Type
		if item.Source != "" {
			tag = fmt.Sprintf("%s - %s", item.Type, item.Source)
		}
		slides = append(slides, Slide{
			Title: item.Title,
			Tag:   tag,
			Body:  []string{item.Description},
		})
	}

	unknown := 0
	for _, key := range orderedReflectionKeys(in.Reflections) {
		title, ok := reflectionTitles[key]
		if !ok {
			unknown++
			title = fmt.Sprintf("Reflection %d", unknown)
		}
		slides = append(slides, Slide{
			Title: title,
			Body:  []string{in.Reflections[key]},
		})
	}

	slides = append(slides, Slide{
		Title: "Well Done!",
		Body:  []string{summaryBody},
	})

	return Deck{
		Title:  in.BadgeName,
		Slides: slides,
		Theme:  ThemeFor(in.Profile),
	}
}

func orderedReflectionKeys(reflections map[string]string) []string {
	keys := make([]string, 0, len(reflections))
	for _, known := range reflectionOrder {
		if _, ok := reflections[known]; ok {
			keys = append(keys, known)
		}
	}
	rest := make([]string, 0, len(reflections))
	for key := range reflections {
		if _, known := reflectionTitles[key]; !known {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}
