package scoop

import (
	"context"
	"time"
)

// Categories assigned to articles found through search.
const (
	CategorySearch   = "search"
	CategoryTrending = "trending"
)

// Listing is what a feed or search service said about an article before
// it was fetched. It fills metadata the page itself does not carry.
type Listing struct {
	Title       string              `json:"title,omitempty"`
	Source      string              `json:"source,omitempty"`
	Category    string              `json:"category,omitempty"`
	PublishedAt Optional[time.Time] `json:"publishedAt"`
}

// FeedEntry is a candidate article discovered from a feed.
type FeedEntry struct {
	Title       string              `json:"title"`
	URL         string              `json:"url"`
	Category    string              `json:"category"`
	PublishedAt Optional[time.Time] `json:"publishedAt"`
}

// Listing returns the entry's metadata.
func (e *FeedEntry) Listing() *Listing {
	return &Listing{Title: e.Title, Category: e.Category, PublishedAt: e.PublishedAt}
}

// FeedParser discovers candidate articles from a feed.
type FeedParser interface {
	// ParseFeed returns entries in feed order.
	ParseFeed(ctx context.Context, feedURL string) ([]*FeedEntry, error)
}

// SearchResult is a ranked article stub returned by a search service.
type SearchResult struct {
	Title       string              `json:"title"`
	URL         string              `json:"url"`
	Source      string              `json:"source"`
	Snippet     string              `json:"snippet"`
	Category    string              `json:"category"`
	PublishedAt Optional[time.Time] `json:"publishedAt"`
}

// Listing returns the result's metadata.
func (r *SearchResult) Listing() *Listing {
	return &Listing{Title: r.Title, Source: r.Source, Category: r.Category, PublishedAt: r.PublishedAt}
}

// Searcher finds news articles.
type Searcher interface {
	// Search returns at most limit results matching query, best first.
	// Results carry CategorySearch.
	Search(ctx context.Context, query string, limit int) ([]*SearchResult, error)

	// Trending returns at most limit currently trending stories. Results
	// carry CategoryTrending.
	Trending(ctx context.Context, limit int) ([]*SearchResult, error)
}
