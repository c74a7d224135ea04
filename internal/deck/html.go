package deck

import (
	"html/template"
	"io"

	"github.com/kahu-edu/badge-portfolio-api/internal/models"
)

// The interactive view is derived from the badge record alone, independent of
// any previously generated deck, so repeated views never depend on artifact
// retention.
var viewTemplate = template.Must(template.New("deck-view").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Badge.Name}} - Badge Portfolio</title>
<style>
  body { margin: 0; font-family: 'Segoe UI', Arial, sans-serif; background: #f1f5f9; }
  .slide { max-width: 960px; margin: 2rem auto; padding: 3rem; background: #fff;
           border-radius: 12px; box-shadow: 0 4px 12px rgba(0,0,0,.08); }
  .slide.cover { background: #{{.Theme.Primary}}; color: #fff; text-align: center; }
  .slide.cover h1 { font-size: 2.6rem; margin-bottom: .5rem; }
  .slide.cover p { color: #e2e8f0; }
  h2 { color: #{{.Theme.Primary}}; border-bottom: 3px solid #{{.Theme.Accent}};
       padding-bottom: .4rem; }
  .meta { color: #{{.Theme.Accent}}; font-style: italic; }
  p { color: #334155; line-height: 1.6; }
</style>
</head>
<body>
<div class="slide cover">
  <h1>{{.Badge.Name}}</h1>
  <p>{{.Subtitle}}</p>
  <p class="meta">{{.Badge.GraduateProfile}} &middot; Level {{.Badge.Level}}</p>
</div>
<div class="slide">
  <h2>Badge Criteria</h2>
  <p>{{.Badge.Criteria}}</p>
</div>
<div class="slide">
  <h2>About this Badge</h2>
  <p>{{.Badge.Description}}</p>
  <p class="meta">Requires {{.Badge.RequiredEvidenceCount}} pieces of evidence.</p>
</div>
</body>
</html>
`))

type viewData struct {
	Badge    models.Badge
	Subtitle string
	Theme    Theme
}

// RenderHTML writes the interactive badge view for the given badge.
func RenderHTML(w io.Writer, badge models.Badge) error {
	return viewTemplate.Execute(w, viewData{
		Badge:    badge,
		Subtitle: DeckSubtitle,
		Theme:    ThemeFor(string(badge.GraduateProfile)),
	})
}
