package mock

import (
	"context"

	"github.com/fwojciec/scoop"
)

var _ scoop.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of scoop.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*scoop.Document, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*scoop.Document, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ scoop.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of scoop.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return d.WaitFn(ctx, domain)
}
