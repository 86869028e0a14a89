package render

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"centrum/internal/apperr"
	"centrum/internal/compose"
	"centrum/internal/config"
	"centrum/internal/content"
	"centrum/internal/logging"
	"centrum/internal/meta"
	"centrum/internal/routes"
)

const testTemplate = `<!DOCTYPE html>
<html>
<head><!--head-meta--></head>
<body>
<div id="root"><!--app-html--></div>
<!--initial-state-->
</body>
</html>`

type stubFetcher struct {
	mu    sync.Mutex
	calls int
	fn    func(section routes.Section, slug string) (*content.Record, error)
}

func (f *stubFetcher) Fetch(ctx context.Context, section routes.Section, slug string) (*content.Record, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	return f.fn(section, slug)
}

func testLogger() *logging.Logger {
	return logging.NewLogger(logging.Config{Level: logging.ErrorLevel, Output: io.Discard})
}

func newDispatcher(fetcher Fetcher, publicDir string) *Dispatcher {
	site := config.SiteConfig{BaseURL: "https://centrum.med.pl", Name: "Centrum Medyczne"}
	synth := meta.NewSynthesizer(site, meta.DefaultTable())
	source := compose.NewStaticSource(compose.New(testTemplate))
	return NewDispatcher(fetcher, synth, source, NewAppRenderer(), publicDir, testLogger())
}

func get(t *testing.T, d *Dispatcher, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	d.ServeHTTP(w, req)
	return w
}

func TestStaticPageSkipsFetch(t *testing.T) {
	fetcher := &stubFetcher{fn: func(routes.Section, string) (*content.Record, error) {
		t.Error("static pages must not fetch")
		return nil, nil
	}}
	d := newDispatcher(fetcher, "")

	w := get(t, d, "/kontakt")

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}
	body := w.Body.String()
	if !strings.Contains(body, "<title>Kontakt – Centrum Medyczne</title>") {
		t.Error("static page metadata missing from response")
	}
	if strings.Contains(body, compose.MarkerMeta) {
		t.Error("metadata marker left unsubstituted")
	}
}

func TestDetailPageResolved(t *testing.T) {
	fetcher := &stubFetcher{fn: func(section routes.Section, slug string) (*content.Record, error) {
		if section != routes.SectionService || slug != "konsultacja-chirurgiczna" {
			t.Errorf("Fetch(%q, %q), want service/konsultacja-chirurgiczna", section, slug)
		}
		return &content.Record{
			Title:            "Konsultacja chirurgiczna",
			ShortDescription: "Konsultacja u chirurga.",
			Images:           []string{"/images/chirurgia.jpg"},
		}, nil
	}}
	d := newDispatcher(fetcher, "")

	w := get(t, d, "/uslugi/konsultacja-chirurgiczna")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, `href="https://centrum.med.pl/uslugi/konsultacja-chirurgiczna"`) {
		t.Error("canonical URL should end in the request path")
	}
	if !strings.Contains(body, `content="/images/chirurgia.jpg"`) {
		t.Error("og:image should be the first content image")
	}
	if !strings.Contains(body, "<h1>Konsultacja chirurgiczna</h1>") {
		t.Error("rendered article markup missing")
	}
	if !strings.Contains(body, `"slug":"konsultacja-chirurgiczna"`) {
		t.Error("initial data should carry the slug")
	}
}

func TestDetailSlugWithPercentDecodesOnce(t *testing.T) {
	fetcher := &stubFetcher{fn: func(section routes.Section, slug string) (*content.Record, error) {
		if slug != "znizka-50%" {
			t.Errorf("Fetch slug = %q, want %q", slug, "znizka-50%")
		}
		return &content.Record{Title: "Zniżka 50%"}, nil
	}}
	d := newDispatcher(fetcher, "")

	// The wire form is /uslugi/znizka-50%25; net/http decodes it into
	// URL.Path before the dispatcher sees it.
	w := get(t, d, "/uslugi/znizka-50%25")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if fetcher.calls != 1 {
		t.Fatalf("fetcher called %d times, want 1", fetcher.calls)
	}
	body := w.Body.String()
	if strings.Contains(body, compose.MarkerMeta) {
		t.Error("request must be rendered as a detail page, not passed through")
	}
	if !strings.Contains(body, "<h1>Zniżka 50%</h1>") {
		t.Error("rendered markup missing for percent-bearing slug")
	}
}

func TestDetailPageNotFound(t *testing.T) {
	fetcher := &stubFetcher{fn: func(routes.Section, string) (*content.Record, error) {
		return nil, apperr.New(apperr.ContentNotFound, "no such news", nil)
	}}
	d := newDispatcher(fetcher, "")

	w := get(t, d, "/aktualnosci/unknown-slug")

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "<title>Aktualności – Centrum Medyczne</title>") {
		t.Error("404 page should still carry coherent fallback metadata")
	}
	if strings.Contains(body, "undefined") {
		t.Error("fallback metadata must never render as undefined")
	}
}

func TestDetailPageBackendOutage(t *testing.T) {
	for _, code := range []apperr.ErrorCode{apperr.BackendUnavailable, apperr.Timeout} {
		t.Run(string(code), func(t *testing.T) {
			fetcher := &stubFetcher{fn: func(routes.Section, string) (*content.Record, error) {
				return nil, apperr.New(code, "backend down", nil)
			}}
			d := newDispatcher(fetcher, "")

			w := get(t, d, "/uslugi/rezonans")

			if w.Code != http.StatusOK {
				t.Errorf("status = %d, want 200 so crawlers keep the page", w.Code)
			}
			if !strings.Contains(w.Body.String(), "<title>Usługi – Centrum Medyczne</title>") {
				t.Error("outage response should carry section fallback metadata")
			}
		})
	}
}

func TestPassThroughServesRawTemplate(t *testing.T) {
	fetcher := &stubFetcher{fn: func(routes.Section, string) (*content.Record, error) {
		t.Error("pass-through must not fetch")
		return nil, nil
	}}
	d := newDispatcher(fetcher, "")

	w := get(t, d, "/panel/admin")

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	// No metadata injection: markers stay in place for the client app.
	if !strings.Contains(w.Body.String(), compose.MarkerMeta) {
		t.Error("pass-through should serve the untouched template")
	}
}

func TestPassThroughServesPublicFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "static", "js"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "static", "js", "main.js"), []byte("console.log(1)"), 0644); err != nil {
		t.Fatal(err)
	}

	fetcher := &stubFetcher{fn: func(routes.Section, string) (*content.Record, error) { return nil, nil }}
	d := newDispatcher(fetcher, dir)

	w := get(t, d, "/static/js/main.js")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if w.Body.String() != "console.log(1)" {
		t.Errorf("body = %q, want file contents", w.Body.String())
	}
	if fetcher.calls != 0 {
		t.Error("asset requests must never enter the fetch path")
	}
}

func TestNonGetPassesThrough(t *testing.T) {
	fetcher := &stubFetcher{fn: func(routes.Section, string) (*content.Record, error) {
		t.Error("POST must not fetch")
		return nil, nil
	}}
	d := newDispatcher(fetcher, "")

	req := httptest.NewRequest(http.MethodPost, "/uslugi/konsultacja-chirurgiczna", nil)
	w := httptest.NewRecorder()
	d.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), compose.MarkerBody) {
		t.Error("non-GET should get the untouched template")
	}
}

type failingRenderer struct{}

func (failingRenderer) Render(routes.Route, *content.Record) (string, error) {
	return "", apperr.New(apperr.RenderFailure, "render entry point exploded", errors.New("boom"))
}

func TestRenderFailureIsNotMasked(t *testing.T) {
	site := config.SiteConfig{BaseURL: "https://centrum.med.pl", Name: "Centrum Medyczne"}
	synth := meta.NewSynthesizer(site, meta.DefaultTable())
	source := compose.NewStaticSource(compose.New(testTemplate))
	fetcher := &stubFetcher{fn: func(routes.Section, string) (*content.Record, error) {
		return &content.Record{Title: "X"}, nil
	}}
	d := NewDispatcher(fetcher, synth, source, failingRenderer{}, "", testLogger())

	w := get(t, d, "/uslugi/x")

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500 for render failure", w.Code)
	}
}

func TestConcurrentSlugsStayIsolated(t *testing.T) {
	fetcher := &stubFetcher{fn: func(_ routes.Section, slug string) (*content.Record, error) {
		return &content.Record{Title: "tytul-" + slug}, nil
	}}
	d := newDispatcher(fetcher, "")

	slugs := []string{"pierwszy", "drugi", "trzeci", "czwarty"}
	var wg sync.WaitGroup
	for i := 0; i < 6; i++ {
		for _, slug := range slugs {
			wg.Add(1)
			go func(slug string) {
				defer wg.Done()
				w := get(t, d, "/aktualnosci/"+slug)
				if !strings.Contains(w.Body.String(), "tytul-"+slug) {
					t.Errorf("response for %q carries another slug's content", slug)
				}
			}(slug)
		}
	}
	wg.Wait()
}
