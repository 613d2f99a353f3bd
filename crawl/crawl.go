// Package crawl provides batch article extraction. It coordinates URL
// validation, caching, rate limiting, fetching with retries, and
// extraction across a bounded pool of workers.
package crawl

import (
	"context"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/fwojciec/scoop"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the worker count used when Concurrency is unset.
const DefaultConcurrency = 10

// Crawler extracts articles from many URLs concurrently.
type Crawler struct {
	Fetcher     scoop.Fetcher
	Extractor   scoop.ArticleExtractor
	Cache       scoop.ArticleCache
	RateLimiter scoop.DomainLimiter
	Feeds       scoop.FeedParser
	Searcher    scoop.Searcher
	Concurrency int
	RetryDelays []time.Duration

	// Logf, if set, receives one line per fetch retry.
	Logf LogFunc
}

// Result holds the outcome for one input URL. Exactly one of Article and
// Err is set.
type Result struct {
	URL     string
	Article *scoop.Article
	Err     error
}

// ProgressEvent reports progress during a batch extraction.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting batch progress. It is never
// called concurrently.
type ProgressFunc func(event ProgressEvent)

// crawlResult holds the outcome of processing a single URL.
type crawlResult struct {
	position int
	Result
}

// target is one URL to extract, with the listing that named it, if any.
type target struct {
	url     string
	listing *scoop.Listing
}

// ExtractAll extracts an article from each URL and returns one Result per
// input, in input order. Failures are reported per URL; a canceled
// context fails the URLs not yet finished.
func (c *Crawler) ExtractAll(ctx context.Context, urls []string, progress ProgressFunc) []Result {
	targets := make([]target, len(urls))
	for i, u := range urls {
		targets[i] = target{url: u}
	}
	return c.extractTargets(ctx, targets, progress)
}

func (c *Crawler) extractTargets(ctx context.Context, targets []target, progress ProgressFunc) []Result {
	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	total := len(targets)
	resultCh := make(chan crawlResult, total)
	var completed atomic.Int64

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	var g errgroup.Group
	g.SetLimit(concurrency)

	go func() {
		for i, t := range targets {
			g.Go(func() error {
				resultCh <- crawlResult{position: i, Result: c.processURL(ctx, t)}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	results := make([]Result, total)
	for result := range resultCh {
		n := int(completed.Add(1))
		results[result.position] = result.Result
		if progress == nil {
			continue
		}
		event := ProgressEvent{
			Type:      ProgressCompleted,
			Completed: n,
			Total:     total,
			URL:       result.URL,
		}
		if result.Err != nil {
			event.Type = ProgressFailed
			event.Error = result.Err
		}
		progress(event)
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}
	return results
}

// ExtractFeed extracts the first limit entries of the feed at feedURL.
// A limit of zero or less extracts every entry. Entry titles, dates and
// categories fill metadata missing from the pages.
func (c *Crawler) ExtractFeed(ctx context.Context, feedURL string, limit int, progress ProgressFunc) ([]Result, error) {
	if c.Feeds == nil {
		return nil, scoop.Errorf(scoop.EUNAVAILABLE, "feed parser not configured")
	}
	if err := scoop.ValidateURL(feedURL); err != nil {
		return nil, err
	}
	entries, err := c.Feeds.ParseFeed(ctx, feedURL)
	if err != nil {
		return nil, err
	}

	targets := make([]target, 0, len(entries))
	for _, e := range entries {
		targets = append(targets, target{url: e.URL, listing: e.Listing()})
	}
	return c.extractTargets(ctx, firstN(targets, limit), progress), nil
}

// ExtractSearch extracts the top limit results for query.
func (c *Crawler) ExtractSearch(ctx context.Context, query string, limit int, progress ProgressFunc) ([]Result, error) {
	if c.Searcher == nil {
		return nil, scoop.Errorf(scoop.EUNAVAILABLE, "search not configured")
	}
	found, err := c.Searcher.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	return c.extractTargets(ctx, searchTargets(found, limit), progress), nil
}

// ExtractTrending extracts the top limit trending stories.
func (c *Crawler) ExtractTrending(ctx context.Context, limit int, progress ProgressFunc) ([]Result, error) {
	if c.Searcher == nil {
		return nil, scoop.Errorf(scoop.EUNAVAILABLE, "search not configured")
	}
	found, err := c.Searcher.Trending(ctx, limit)
	if err != nil {
		return nil, err
	}
	return c.extractTargets(ctx, searchTargets(found, limit), progress), nil
}

func searchTargets(found []*scoop.SearchResult, limit int) []target {
	targets := make([]target, 0, len(found))
	for _, r := range found {
		targets = append(targets, target{url: r.URL, listing: r.Listing()})
	}
	return firstN(targets, limit)
}

// processURL validates, fetches, and extracts a single URL, going
// through the cache when one is configured.
func (c *Crawler) processURL(ctx context.Context, t target) Result {
	rawURL := t.url
	result := Result{URL: rawURL}

	if err := scoop.ValidateURL(rawURL); err != nil {
		result.Err = err
		return result
	}
	if err := ctx.Err(); err != nil {
		result.Err = err
		return result
	}

	compute := func(ctx context.Context) (*scoop.Article, error) {
		return c.extract(ctx, t)
	}

	var err error
	if c.Cache != nil {
		result.Article, err = c.Cache.Load(ctx, scoop.ArticleID(rawURL), compute)
	} else {
		result.Article, err = compute(ctx)
	}
	if err != nil {
		result.Article = nil
		result.Err = err
	}
	return result
}

func (c *Crawler) extract(ctx context.Context, t target) (*scoop.Article, error) {
	rawURL := t.url
	if c.RateLimiter != nil {
		u, err := url.Parse(rawURL)
		if err != nil {
			return nil, scoop.Errorf(scoop.EINVALID, "invalid URL %q: %v", rawURL, err)
		}
		if err := c.RateLimiter.Wait(ctx, u.Hostname()); err != nil {
			return nil, err
		}
	}

	delays := c.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	doc, err := FetchWithRetryDelays(ctx, rawURL, c.Fetcher.Fetch, c.Logf, delays)
	if err != nil {
		return nil, err
	}
	if doc.URL == "" || t.listing != nil {
		d := *doc
		if d.URL == "" {
			d.URL = rawURL
		}
		d.Listing = t.listing
		doc = &d
	}
	return c.Extractor.ExtractArticle(ctx, doc)
}

func firstN[T any](items []T, n int) []T {
	if n > 0 && len(items) > n {
		return items[:n]
	}
	return items
}
