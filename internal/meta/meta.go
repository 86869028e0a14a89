// Package meta derives per-route SEO and social metadata.
//
// Synthesis is deterministic over (route, content) and every field has a
// non-empty fallback, so a page never ships blank metadata regardless of
// what happened during the fetch.
package meta

import (
	"fmt"
	"unicode"

	"centrum/internal/config"
	"centrum/internal/content"
	"centrum/internal/routes"
)

// descriptionLimit is the longest description derived from long-form content
const descriptionLimit = 160

// Record is the canonical set of metadata fields for one page. Values are
// unescaped; HTML and attribute escaping happens at composition time.
type Record struct {
	Title        string
	Description  string
	Keywords     string
	CanonicalURL string
	OgImage      string
	OgType       string
	TwitterCard  string
}

// sectionImages are the per-section fallback Open Graph images
var sectionImages = map[routes.Section]string{
	routes.SectionNews:    "/images/og/aktualnosci.jpg",
	routes.SectionService: "/images/og/uslugi.jpg",
	routes.SectionArticle: "/images/og/poradnik.jpg",
}

// Synthesizer turns a classified route and optional content record into a
// metadata record. It holds only read-only site identity and the static
// page table, so a single instance serves all requests.
type Synthesizer struct {
	site  config.SiteConfig
	table Table
}

// NewSynthesizer creates a synthesizer for the given site over a validated table
func NewSynthesizer(site config.SiteConfig, table Table) *Synthesizer {
	return &Synthesizer{site: site, table: table}
}

// Synthesize produces the metadata record for a request. rec may be nil when
// the route needs no content or the fetch failed; the result then falls back
// to section or site defaults.
func (s *Synthesizer) Synthesize(rt routes.Route, rec *content.Record, path string) Record {
	out := Record{
		CanonicalURL: s.site.BaseURL + path,
		OgType:       "website",
		TwitterCard:  "summary_large_image",
	}

	switch rt.Kind {
	case routes.KindStatic:
		pm := s.table[rt.Page]
		out.Title = pm.Title
		out.Description = pm.Description
		out.Keywords = pm.Keywords
		out.OgImage = pm.OgImage

	case routes.KindDetail:
		out.OgType = "article"
		out.OgImage = sectionImages[rt.Section]
		if rec != nil {
			out.Title = fmt.Sprintf("%s – %s – %s", rec.Title, rt.Section.Label(), s.site.Name)
			out.Description = detailDescription(rec, s.defaultDescription())
			out.Keywords = fmt.Sprintf("%s, %s", rec.Title, rt.Section.Label())
			if img := rec.FirstImage(); img != "" {
				out.OgImage = img
			}
		} else {
			out.Title = fmt.Sprintf("%s – %s", rt.Section.Label(), s.site.Name)
			out.Description = s.defaultDescription()
			out.Keywords = rt.Section.Label()
		}
	}

	// Site-wide floors: no field leaves empty.
	if out.Title == "" {
		out.Title = s.site.Name
	}
	if out.Description == "" {
		out.Description = s.defaultDescription()
	}
	if out.Keywords == "" {
		out.Keywords = s.table[routes.PageHome].Keywords
	}
	if out.OgImage == "" {
		out.OgImage = s.table[routes.PageHome].OgImage
	}

	return out
}

// defaultDescription is the site-wide description fallback
func (s *Synthesizer) defaultDescription() string {
	return s.table[routes.PageHome].Description
}

// detailDescription picks the best available description for a detail page:
// the short description, a truncation of the long one, or the site default.
func detailDescription(rec *content.Record, fallback string) string {
	if rec.ShortDescription != "" {
		return rec.ShortDescription
	}
	if rec.Description != "" {
		return truncateAtWhitespace(rec.Description, descriptionLimit)
	}
	return fallback
}

// truncateAtWhitespace shortens s to at most limit characters, cutting at the
// last whitespace boundary so no word and no multi-byte rune is split.
func truncateAtWhitespace(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}

	cut := limit
	for i := limit; i > 0; i-- {
		if unicode.IsSpace(runes[i-1]) {
			cut = i - 1
			break
		}
	}
	if cut == 0 {
		cut = limit
	}

	// Drop trailing whitespace left of the cut.
	for cut > 0 && unicode.IsSpace(runes[cut-1]) {
		cut--
	}
	return string(runes[:cut])
}
