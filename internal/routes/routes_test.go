package routes

import "testing"

func TestClassifyStaticPages(t *testing.T) {
	tests := []struct {
		path string
		want PageID
	}{
		{"/", PageHome},
		{"/o-nas", PageAbout},
		{"/lekarze", PageDoctors},
		{"/uslugi", PageServices},
		{"/aktualnosci", PageNews},
		{"/poradnik", PageArticles},
		{"/kontakt", PageContact},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got := Classify(tt.path)
			if got.Kind != KindStatic {
				t.Fatalf("Classify(%q).Kind = %v, want static", tt.path, got.Kind)
			}
			if got.Page != tt.want {
				t.Errorf("Classify(%q).Page = %q, want %q", tt.path, got.Page, tt.want)
			}
		})
	}
}

func TestClassifyDetailPages(t *testing.T) {
	tests := []struct {
		path        string
		wantSection Section
		wantSlug    string
	}{
		{"/aktualnosci/nowy-gabinet", SectionNews, "nowy-gabinet"},
		{"/uslugi/konsultacja-chirurgiczna", SectionService, "konsultacja-chirurgiczna"},
		{"/poradnik/jak-przygotowac-sie-do-badania", SectionArticle, "jak-przygotowac-sie-do-badania"},
		// The input is the already-decoded URL.Path; segments pass through
		// verbatim, including characters that were percent-encoded on the wire.
		{"/uslugi/konsultacja chirurgiczna", SectionService, "konsultacja chirurgiczna"},
		{"/uslugi/znizka-50%", SectionService, "znizka-50%"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got := Classify(tt.path)
			if got.Kind != KindDetail {
				t.Fatalf("Classify(%q).Kind = %v, want detail", tt.path, got.Kind)
			}
			if got.Section != tt.wantSection {
				t.Errorf("Section = %q, want %q", got.Section, tt.wantSection)
			}
			if got.Slug != tt.wantSlug {
				t.Errorf("Slug = %q, want %q", got.Slug, tt.wantSlug)
			}
		})
	}
}

func TestClassifyPassThrough(t *testing.T) {
	paths := []string{
		"",
		"no-leading-slash",
		"/nieznana-strona",
		"/uslugi/",
		"/uslugi/a/b",
		"/blog/some-post",
		"/static/js/main.js",
	}

	for _, path := range paths {
		if got := Classify(path); got.Kind != KindPassThrough {
			t.Errorf("Classify(%q).Kind = %v, want passthrough", path, got.Kind)
		}
	}
}

func TestClassifyIsStateless(t *testing.T) {
	// Same input, same answer, regardless of interleaved calls.
	first := Classify("/uslugi/rezonans")
	Classify("/aktualnosci/inny-wpis")
	second := Classify("/uslugi/rezonans")
	if first != second {
		t.Errorf("classification not stable: %+v vs %+v", first, second)
	}
}

func TestSectionLabel(t *testing.T) {
	tests := []struct {
		section Section
		want    string
	}{
		{SectionNews, "Aktualności"},
		{SectionService, "Usługi"},
		{SectionArticle, "Poradnik"},
	}

	for _, tt := range tests {
		if got := tt.section.Label(); got != tt.want {
			t.Errorf("Label(%q) = %q, want %q", tt.section, got, tt.want)
		}
	}
}

func TestStaticPageIDs(t *testing.T) {
	ids := StaticPageIDs()
	if len(ids) != 7 {
		t.Fatalf("StaticPageIDs() returned %d ids, want 7", len(ids))
	}
	seen := map[PageID]bool{}
	for _, id := range ids {
		if seen[id] {
			t.Errorf("duplicate page id %q", id)
		}
		seen[id] = true
	}
}
