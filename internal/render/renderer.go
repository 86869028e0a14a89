package render

import (
	"html/template"
	"strings"

	"centrum/internal/apperr"
	"centrum/internal/content"
	"centrum/internal/routes"
)

// Renderer is the application render entry point: it produces the body
// markup for a resolved route. Implementations must be safe for concurrent
// use and must not mutate process-wide state.
type Renderer interface {
	Render(rt routes.Route, rec *content.Record) (string, error)
}

// detailTemplate renders crawler-readable markup for a detail page. The
// client application hydrates over it.
var detailTemplate = template.Must(template.New("detail").Parse(`<article class="ssr-{{.Section}}">
<h1>{{.Title}}</h1>
{{if .Lead}}<p class="lead">{{.Lead}}</p>{{end}}
{{if .Body}}<div class="body">{{.Body}}</div>{{end}}
{{if .Image}}<img src="{{.Image}}" alt="{{.Title}}">{{end}}
</article>`))

// AppRenderer is the default render entry point. Static pages return no
// markup (the client application renders them in full); detail pages get a
// minimal server-rendered article so crawlers see real content.
type AppRenderer struct{}

// NewAppRenderer creates the default renderer
func NewAppRenderer() *AppRenderer {
	return &AppRenderer{}
}

// Render implements Renderer
func (ar *AppRenderer) Render(rt routes.Route, rec *content.Record) (string, error) {
	if rt.Kind != routes.KindDetail || rec == nil {
		return "", nil
	}

	data := struct {
		Section routes.Section
		Title   string
		Lead    string
		Body    template.HTML
		Image   string
	}{
		Section: rt.Section,
		Title:   rec.Title,
		Lead:    rec.ShortDescription,
		// Long descriptions arrive from the backend as trusted HTML.
		Body:  template.HTML(rec.Description),
		Image: rec.FirstImage(),
	}

	var b strings.Builder
	if err := detailTemplate.Execute(&b, data); err != nil {
		return "", apperr.New(apperr.RenderFailure, "rendering detail markup", err)
	}
	return b.String(), nil
}
