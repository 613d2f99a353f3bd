package scoop

import "context"

// Fetcher retrieves documents from URLs.
type Fetcher interface {
	// Fetch retrieves the page at url. Network and HTTP failures are
	// returned with the EFETCH code.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (*Document, error)

	// Close releases any resources held by the fetcher.
	Close() error
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
