// Package feed fetches the public photo feed and maps it to photo records.
package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"photofeed/internal/domain"
)

const (
	feedPath     = "/services/feeds/photos_public.gne"
	maxBodyBytes = 5 * 1024 * 1024
)

// ErrUnexpectedStatus is wrapped by Search for non-2xx responses
var ErrUnexpectedStatus = errors.New("unexpected status")

// HTTPClient is the interface for performing HTTP requests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Fetcher performs one feed request per search and maps the response.
type Fetcher struct {
	client    HTTPClient
	baseURL   string
	userAgent string
	pairing   Pairing
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) { f.userAgent = ua }
}

// WithPairing selects how feed fields are combined into records.
func WithPairing(p Pairing) Option {
	return func(f *Fetcher) { f.pairing = p }
}

// New creates a Fetcher against baseURL (scheme and host, no path).
func New(client HTTPClient, baseURL string, opts ...Option) *Fetcher {
	f := &Fetcher{
		client:    client,
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: "photofeed/1.0",
		pairing:   PairByItem,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// BuildURL returns the feed query URL for term.
func BuildURL(baseURL, term string) string {
	return strings.TrimRight(baseURL, "/") + feedPath +
		"?tags=" + url.QueryEscape(term) + "&format=rss_200"
}

// Search fetches and maps the feed for term. It blocks on the network and
// must not be called from the UI loop. A document without a root element
// returns nil, nil.
func (f *Fetcher) Search(ctx context.Context, term string) ([]domain.Photo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, BuildURL(f.baseURL, term), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http get: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	return Parse(body, f.pairing)
}
