package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"centrum/internal/apperr"
	"centrum/internal/config"
	"centrum/internal/logging"
	"centrum/internal/routes"
)

// Client fetches content records from the data API. A fetch is attempted
// exactly once per call: failures degrade to an error outcome, never to a
// silent retry, so request latency stays bounded by the configured timeout.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	group   singleflight.Group
	timeout time.Duration
	logger  *logging.Logger
}

// NewClient creates a data API client from backend configuration
func NewClient(cfg config.BackendConfig, logger *logging.Logger) *Client {
	rps := cfg.RequestsPerSec
	if rps <= 0 {
		rps = 20
	}
	burst := int(rps)
	if burst < 1 {
		burst = 1
	}
	timeout := time.Duration(cfg.FetchTimeoutMs) * time.Millisecond
	if timeout <= 0 {
		timeout = 4 * time.Second
	}

	return &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{},
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		timeout: timeout,
		logger:  logger,
	}
}

// Fetch resolves the record for a (section, slug) pair. Concurrent requests
// for the same pair are coalesced into a single backend call; different
// slugs always fetch independently and receive only their own record.
func (c *Client) Fetch(ctx context.Context, section routes.Section, slug string) (*Record, error) {
	key := string(section) + "/" + slug
	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		ctx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()
		return c.fetch(ctx, section, slug)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Record), nil
}

func (c *Client) fetch(ctx context.Context, section routes.Section, slug string) (*Record, error) {
	switch section {
	case routes.SectionNews:
		return c.fetchBySlug(ctx, "/api/news/slug/", slug)
	case routes.SectionArticle:
		return c.fetchBySlug(ctx, "/api/articles/slug/", slug)
	case routes.SectionService:
		return c.fetchService(ctx, slug)
	default:
		return nil, apperr.New(apperr.InternalError, fmt.Sprintf("unknown section %q", section), nil)
	}
}

// itemPayload is the wire shape shared by news items, articles, and services
type itemPayload struct {
	Title            string   `json:"title"`
	ShortDescription string   `json:"shortDescription"`
	Description      string   `json:"description"`
	Images           []string `json:"images"`
}

func (p *itemPayload) record() *Record {
	return &Record{
		Title:            p.Title,
		ShortDescription: p.ShortDescription,
		Description:      p.Description,
		Images:           p.Images,
		SlugSource:       p.Title,
	}
}

// fetchBySlug hits an endpoint that addresses items by slug directly.
func (c *Client) fetchBySlug(ctx context.Context, endpoint, slug string) (*Record, error) {
	var payload itemPayload
	if err := c.getJSON(ctx, endpoint+url.PathEscape(slug), &payload); err != nil {
		return nil, err
	}
	return payload.record(), nil
}

// fetchService resolves a service by slug. The backend keys services by
// human-readable title and stores no slug, so the full collection is fetched
// and scanned: first by recomputing the public slug over each title, then by
// exact title match for old links that predate slugged URLs.
func (c *Client) fetchService(ctx context.Context, slug string) (*Record, error) {
	var services []itemPayload
	if err := c.getJSON(ctx, "/api/services", &services); err != nil {
		return nil, err
	}

	for i := range services {
		if routes.Slugify(services[i].Title) == slug {
			return services[i].record(), nil
		}
	}
	for i := range services {
		if services[i].Title == slug {
			return services[i].record(), nil
		}
	}

	return nil, apperr.New(apperr.ContentNotFound, fmt.Sprintf("no service matches %q", slug), nil)
}

// getJSON performs a single GET against the data API and decodes the body.
func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return classifyTransportErr(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return apperr.New(apperr.InternalError, "building backend request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("Backend fetch failed", map[string]interface{}{
			"path":  path,
			"error": err.Error(),
		})
		return classifyTransportErr(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return apperr.New(apperr.ContentNotFound, fmt.Sprintf("backend returned 404 for %s", path), nil)
	case resp.StatusCode != http.StatusOK:
		return apperr.New(apperr.BackendUnavailable,
			fmt.Sprintf("unexpected backend status for %s", path), nil).
			WithDetails(map[string]interface{}{"status": resp.StatusCode})
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperr.New(apperr.BackendUnavailable, "decoding backend response", err)
	}
	return nil
}

// classifyTransportErr separates deadline expiry from other network failures
func classifyTransportErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperr.New(apperr.Timeout, "backend fetch exceeded deadline", err)
	}
	return apperr.New(apperr.BackendUnavailable, "backend unreachable", err)
}
