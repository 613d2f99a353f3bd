package crawl

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/fwojciec/scoop"
)

// FetchFunc fetches one page.
type FetchFunc func(ctx context.Context, url string) (*scoop.Document, error)

// LogFunc receives printf-style diagnostics.
type LogFunc func(format string, args ...any)

// DefaultRetryDelays returns the waits before each fetch retry: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// Retryable reports whether a failed fetch may succeed on another
// attempt. Invalid URLs and missing pages fail the same way every time.
func Retryable(err error) bool {
	switch scoop.ErrorCode(err) {
	case scoop.EINVALID, scoop.ENOTFOUND, scoop.ENOCONTENT:
		return false
	}
	return !isContextErr(err)
}

// FetchWithRetryDelays fetches rawURL, waiting delays[i] before retry i.
// Errors that are not Retryable are returned at once. logf, if set,
// receives one line per retry naming the host and the cause.
func FetchWithRetryDelays(ctx context.Context, rawURL string, fetch FetchFunc, logf LogFunc, delays []time.Duration) (*scoop.Document, error) {
	host := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Host != "" {
		host = u.Hostname()
	}

	for attempt := 0; ; attempt++ {
		doc, err := fetch(ctx, rawURL)
		if err == nil {
			return doc, nil
		}
		if attempt == len(delays) || !Retryable(err) {
			return nil, err
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if logf != nil {
			logf("retry %s on %s (%d/%d): %s", TruncateURL(rawURL, 60), host, attempt+1, len(delays), scoop.ErrorMessage(err))
		}

		timer := time.NewTimer(delays[attempt])
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
