// Package content resolves the minimal payload describing a dynamic page
// from the external data backend.
package content

// Record is the minimal description of a dynamic entity. Records are owned
// by a single request, treated as immutable once fetched, and never cached
// across requests.
type Record struct {
	Title            string   `json:"title"`
	ShortDescription string   `json:"shortDescription,omitempty"`
	Description      string   `json:"description,omitempty"`
	Images           []string `json:"images,omitempty"`
	// SlugSource is the human-readable title the public slug derives from.
	SlugSource string `json:"slugSource,omitempty"`
}

// FirstImage returns the first image URL, or "" when the record has none.
func (r *Record) FirstImage() string {
	if r == nil || len(r.Images) == 0 {
		return ""
	}
	return r.Images[0]
}
