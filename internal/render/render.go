// Package render orchestrates the per-request pipeline: classify the path,
// fetch content when the route needs it, render app markup, synthesize
// metadata, and compose the response body.
package render

import (
	"context"
	"net/http"
	"os"
	"path/filepath"

	"centrum/internal/apperr"
	"centrum/internal/compose"
	"centrum/internal/content"
	"centrum/internal/logging"
	"centrum/internal/meta"
	"centrum/internal/routes"
)

// Fetcher resolves content for a detail page
type Fetcher interface {
	Fetch(ctx context.Context, section routes.Section, slug string) (*content.Record, error)
}

// Dispatcher is the catch-all HTTP handler for page requests. Everything it
// holds is read-only after construction; per-request state lives on the
// stack, so concurrent requests never share mutable data.
type Dispatcher struct {
	fetcher   Fetcher
	synth     *meta.Synthesizer
	source    compose.Source
	renderer  Renderer
	publicDir string
	logger    *logging.Logger
}

// NewDispatcher wires the pipeline. Missing template markers are reported
// once here as configuration warnings; composition itself stays silent about
// them.
func NewDispatcher(fetcher Fetcher, synth *meta.Synthesizer, source compose.Source, renderer Renderer, publicDir string, logger *logging.Logger) *Dispatcher {
	if missing := source.Template().MissingMarkers(); len(missing) > 0 {
		logger.Warn("Template is missing markers; those sections will be omitted", map[string]interface{}{
			"markers": missing,
		})
	}

	return &Dispatcher{
		fetcher:   fetcher,
		synth:     synth,
		source:    source,
		renderer:  renderer,
		publicDir: publicDir,
		logger:    logger,
	}
}

// ServeHTTP implements http.Handler
func (d *Dispatcher) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		d.passThrough(w, r)
		return
	}

	rt := routes.Classify(r.URL.Path)
	if rt.Kind == routes.KindPassThrough {
		d.passThrough(w, r)
		return
	}

	status := http.StatusOK
	var rec *content.Record

	if rt.Kind == routes.KindDetail {
		fetched, err := d.fetcher.Fetch(r.Context(), rt.Section, rt.Slug)
		switch {
		case err == nil:
			rec = fetched
		case apperr.CodeOf(err) == apperr.ContentNotFound:
			// Crawlers still get a coherent page, just with a 404 status.
			status = http.StatusNotFound
			d.logger.Info("Content not found", map[string]interface{}{
				"section": string(rt.Section),
				"slug":    rt.Slug,
			})
		case apperr.IsRecoverable(err):
			// Outage or timeout: stay 200 with fallback metadata so crawlers
			// do not treat a transient failure as a dead page.
			d.logger.Warn("Fetch degraded to fallback metadata", map[string]interface{}{
				"section": string(rt.Section),
				"slug":    rt.Slug,
				"code":    string(apperr.CodeOf(err)),
				"error":   err.Error(),
			})
		default:
			d.fail(w, r, err)
			return
		}
	}

	bodyHTML, err := d.renderer.Render(rt, rec)
	if err != nil {
		d.fail(w, r, err)
		return
	}

	md := d.synth.Synthesize(rt, rec, r.URL.Path)
	out := compose.Compose(d.source.Template(), bodyHTML, md, initialData(rt, rec, r.URL.Path))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(out))
}

// initialData builds the state handed to the client application
func initialData(rt routes.Route, rec *content.Record, path string) map[string]interface{} {
	data := map[string]interface{}{
		"path": path,
		"kind": rt.Kind.String(),
	}
	switch rt.Kind {
	case routes.KindStatic:
		data["page"] = string(rt.Page)
	case routes.KindDetail:
		data["section"] = string(rt.Section)
		data["slug"] = rt.Slug
		if rec != nil {
			data["content"] = rec
		}
	}
	return data
}

// passThrough serves routes outside the rendering pipeline: an existing file
// from the public directory, or the untouched client-app template with no
// metadata injection.
func (d *Dispatcher) passThrough(w http.ResponseWriter, r *http.Request) {
	if d.publicDir != "" && r.Method == http.MethodGet {
		if p, ok := d.publicFile(r.URL.Path); ok {
			http.ServeFile(w, r, p)
			return
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(d.source.Template().HTML()))
}

// publicFile resolves a request path to a regular file under the public
// directory. Rooted Clean keeps traversal sequences from escaping it.
func (d *Dispatcher) publicFile(reqPath string) (string, bool) {
	clean := filepath.Clean("/" + reqPath)
	p := filepath.Join(d.publicDir, clean)
	info, err := os.Stat(p)
	if err != nil || info.IsDir() {
		return "", false
	}
	return p, true
}

// fail surfaces a non-recoverable pipeline failure to the hosting server's
// generic error path.
func (d *Dispatcher) fail(w http.ResponseWriter, r *http.Request, err error) {
	d.logger.Error("Render pipeline failed", map[string]interface{}{
		"path":  r.URL.Path,
		"code":  string(apperr.CodeOf(err)),
		"error": err.Error(),
	})
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}
