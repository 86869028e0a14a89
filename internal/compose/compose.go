// Package compose splices rendered markup, metadata, and initial state into
// the HTML template at fixed markers.
package compose

import (
	"encoding/json"
	"html"
	"os"
	"strings"

	"centrum/internal/apperr"
	"centrum/internal/meta"
)

// The three placeholder markers. Each must occur exactly once in the
// template; a missing marker means that section is simply omitted from the
// composed output.
const (
	MarkerBody  = "<!--app-html-->"
	MarkerMeta  = "<!--head-meta-->"
	MarkerState = "<!--initial-state-->"
)

// StateGlobal is the identifier the initial-data script assigns to
const StateGlobal = "window.__INITIAL_DATA__"

// Template is an immutable HTML template. Composition never mutates it; a
// new string is produced per request.
type Template struct {
	html string
}

// New wraps raw template HTML
func New(html string) *Template {
	return &Template{html: html}
}

// Load reads a template from disk
func Load(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperr.New(apperr.TemplateMissing, "reading template "+path, err)
	}
	return New(string(data)), nil
}

// HTML returns the raw template text
func (t *Template) HTML() string {
	return t.html
}

// MissingMarkers lists markers absent from the template, for startup
// configuration warnings.
func (t *Template) MissingMarkers() []string {
	var missing []string
	for _, m := range []string{MarkerBody, MarkerMeta, MarkerState} {
		if !strings.Contains(t.html, m) {
			missing = append(missing, m)
		}
	}
	return missing
}

// Compose produces the final response body. Body HTML is inserted unescaped
// (it is already-rendered, trusted markup); metadata fields are escaped for
// element and attribute positions; initial data becomes a JSON literal in an
// inline script. Missing markers leave their section out without error.
func Compose(t *Template, bodyHTML string, md meta.Record, initialData map[string]interface{}) string {
	out := t.html
	out = strings.Replace(out, MarkerBody, bodyHTML, 1)
	out = strings.Replace(out, MarkerMeta, metaBlock(md), 1)
	out = strings.Replace(out, MarkerState, stateScript(initialData), 1)
	return out
}

// metaBlock renders the metadata record as head tags, escaping every value.
func metaBlock(md meta.Record) string {
	esc := html.EscapeString
	var b strings.Builder

	b.WriteString("<title>" + esc(md.Title) + "</title>\n")
	tag := func(attr, name, content string) {
		b.WriteString(`<meta ` + attr + `="` + name + `" content="` + esc(content) + `">` + "\n")
	}
	tag("name", "description", md.Description)
	tag("name", "keywords", md.Keywords)
	b.WriteString(`<link rel="canonical" href="` + esc(md.CanonicalURL) + `">` + "\n")
	tag("property", "og:title", md.Title)
	tag("property", "og:description", md.Description)
	tag("property", "og:url", md.CanonicalURL)
	tag("property", "og:image", md.OgImage)
	tag("property", "og:type", md.OgType)
	tag("name", "twitter:card", md.TwitterCard)
	tag("name", "twitter:title", md.Title)
	tag("name", "twitter:description", md.Description)
	tag("name", "twitter:image", md.OgImage)

	return strings.TrimRight(b.String(), "\n")
}

// stateScript serializes the initial data into an inline script element.
// json.Marshal escapes <, > and & to \u escapes, so the literal can never
// contain "</script" and terminate the element early.
func stateScript(initialData map[string]interface{}) string {
	if initialData == nil {
		initialData = map[string]interface{}{}
	}
	data, err := json.Marshal(initialData)
	if err != nil {
		// Initial data comes from our own structs; marshal failure means a
		// programming error. Ship an empty object rather than broken HTML.
		data = []byte("{}")
	}
	return "<script>" + StateGlobal + " = " + string(data) + ";</script>"
}
