// Package http provides HTTP-based implementations of scoop interfaces:
// a page fetcher, a news sitemap feed parser, a translation client and a
// news search client.
package http

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/scoop"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// DefaultUserAgent is sent with every request unless overridden.
const DefaultUserAgent = "Mozilla/5.0 (compatible; scoop/1.0; +https://github.com/fwojciec/scoop)"

// maxBodyBytes caps the size of a fetched page.
const maxBodyBytes = 10 << 20

// Ensure Fetcher implements scoop.Fetcher at compile time.
var _ scoop.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML documents using plain HTTP requests. It does not
// execute JavaScript.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the page at url and decodes it to UTF-8 using the
// charset declared by the response headers or the markup.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*scoop.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, scoop.Errorf(scoop.EFETCH, "invalid request for %s: %v", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, scoop.Errorf(scoop.EFETCH, "fetching %s: %v", url, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound, http.StatusGone:
		return nil, scoop.Errorf(scoop.ENOTFOUND, "HTTP %d for %s", resp.StatusCode, url)
	default:
		return nil, scoop.Errorf(scoop.EFETCH, "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, scoop.Errorf(scoop.EFETCH, "reading %s: %v", url, err)
	}

	enc, name, _ := charset.DetermineEncoding(body, resp.Header.Get("Content-Type"))
	decoded, err := enc.NewDecoder().Bytes(body)
	if err != nil {
		return nil, scoop.Errorf(scoop.EFETCH, "decoding %s as %s: %v", url, name, err)
	}

	return &scoop.Document{
		URL:     resp.Request.URL.String(),
		HTML:    string(decoded),
		Charset: strings.ToLower(name),
	}, nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
