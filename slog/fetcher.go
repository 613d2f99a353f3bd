// Package slog provides logging decorators for scoop interfaces. Each
// decorator logs one line per call and delegates to the wrapped value.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/scoop"
)

// Ensure LoggingFetcher implements scoop.Fetcher.
var _ scoop.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with logging.
type LoggingFetcher struct {
	next   scoop.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next scoop.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the operation.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (doc *scoop.Document, err error) {
	defer func(begin time.Time) {
		var size int
		var charset string
		if doc != nil {
			size = len(doc.HTML)
			charset = doc.Charset
		}
		f.logger.Info("fetch",
			"url", url,
			"bytes", size,
			"charset", charset,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
