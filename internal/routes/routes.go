// Package routes classifies request paths into rendering strategies.
//
// Classification is a pure function of the path string: either one of the
// fixed top-level pages, a detail page addressed by section and slug, or a
// pass-through handled by static assets or the client application.
package routes

import "strings"

// Kind represents the handling strategy for a classified path
type Kind int

const (
	// KindPassThrough routes are not server-rendered
	KindPassThrough Kind = iota
	// KindStatic routes are one of the fixed top-level pages
	KindStatic
	// KindDetail routes are parameterized by a slug resolved from the backend
	KindDetail
)

// String returns a string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindStatic:
		return "static"
	case KindDetail:
		return "detail"
	default:
		return "passthrough"
	}
}

// PageID identifies one of the fixed static pages
type PageID string

const (
	PageHome     PageID = "home"
	PageAbout    PageID = "about"
	PageDoctors  PageID = "doctors"
	PageServices PageID = "services"
	PageNews     PageID = "news"
	PageArticles PageID = "articles"
	PageContact  PageID = "contact"
)

// Section identifies a detail-page content section
type Section string

const (
	SectionNews    Section = "news"
	SectionService Section = "service"
	SectionArticle Section = "article"
)

// Route is the result of classifying a request path
type Route struct {
	Kind    Kind
	Page    PageID  // set when Kind == KindStatic
	Section Section // set when Kind == KindDetail
	Slug    string  // set when Kind == KindDetail
}

// staticPages maps exact paths to their page ids
var staticPages = map[string]PageID{
	"/":            PageHome,
	"/o-nas":       PageAbout,
	"/lekarze":     PageDoctors,
	"/uslugi":      PageServices,
	"/aktualnosci": PageNews,
	"/poradnik":    PageArticles,
	"/kontakt":     PageContact,
}

// detailSections maps URL prefixes to content sections. Adding a section is a
// one-line change here.
var detailSections = map[string]Section{
	"aktualnosci": SectionNews,
	"uslugi":      SectionService,
	"poradnik":    SectionArticle,
}

// sectionLabels are the human-readable Polish labels used in page titles
var sectionLabels = map[Section]string{
	SectionNews:    "Aktualności",
	SectionService: "Usługi",
	SectionArticle: "Poradnik",
}

// Label returns the human-readable label for a section
func (s Section) Label() string {
	return sectionLabels[s]
}

// Classify maps a request path to its handling strategy. It never errors:
// empty or malformed paths classify as pass-through.
//
// The path must already be percent-decoded, which is how net/http hands it
// over in URL.Path. Decoding here again would corrupt slugs containing a
// literal percent sign.
func Classify(path string) Route {
	if path == "" || path[0] != '/' {
		return Route{Kind: KindPassThrough}
	}

	if page, ok := staticPages[path]; ok {
		return Route{Kind: KindStatic, Page: page}
	}

	// Detail shape: /<prefix>/<slug> with no further separator.
	rest := path[1:]
	i := strings.IndexByte(rest, '/')
	if i <= 0 {
		return Route{Kind: KindPassThrough}
	}
	prefix, segment := rest[:i], rest[i+1:]
	if segment == "" || strings.ContainsRune(segment, '/') {
		return Route{Kind: KindPassThrough}
	}

	section, ok := detailSections[prefix]
	if !ok {
		return Route{Kind: KindPassThrough}
	}

	return Route{Kind: KindDetail, Section: section, Slug: segment}
}

// StaticPageIDs returns every static page id, for table-completeness checks.
func StaticPageIDs() []PageID {
	ids := make([]PageID, 0, len(staticPages))
	for _, id := range staticPages {
		ids = append(ids, id)
	}
	return ids
}
