package mock

import (
	"context"

	"github.com/fwojciec/scoop"
)

var _ scoop.FeedParser = (*FeedParser)(nil)

// FeedParser is a mock implementation of scoop.FeedParser.
type FeedParser struct {
	ParseFeedFn func(ctx context.Context, feedURL string) ([]*scoop.FeedEntry, error)
}

func (p *FeedParser) ParseFeed(ctx context.Context, feedURL string) ([]*scoop.FeedEntry, error) {
	return p.ParseFeedFn(ctx, feedURL)
}

var _ scoop.Searcher = (*Searcher)(nil)

// Searcher is a mock implementation of scoop.Searcher.
type Searcher struct {
	SearchFn   func(ctx context.Context, query string, limit int) ([]*scoop.SearchResult, error)
	TrendingFn func(ctx context.Context, limit int) ([]*scoop.SearchResult, error)
}

func (s *Searcher) Search(ctx context.Context, query string, limit int) ([]*scoop.SearchResult, error) {
	return s.SearchFn(ctx, query, limit)
}

func (s *Searcher) Trending(ctx context.Context, limit int) ([]*scoop.SearchResult, error) {
	return s.TrendingFn(ctx, limit)
}
