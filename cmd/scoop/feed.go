package main

import (
	"context"
	"net/url"
	"strings"

	"github.com/fwojciec/scoop"
)

// Ensure FeedRouter implements scoop.FeedParser at compile time.
var _ scoop.FeedParser = (*FeedRouter)(nil)

// FeedRouter sends sitemap URLs and bare site roots to the sitemap
// parser and everything else to the syndication feed parser. A document
// that is not a syndication feed is retried as a sitemap.
type FeedRouter struct {
	Feeds    scoop.FeedParser
	Sitemaps scoop.FeedParser
}

// ParseFeed returns the entries of the feed or sitemap at feedURL.
func (r *FeedRouter) ParseFeed(ctx context.Context, feedURL string) ([]*scoop.FeedEntry, error) {
	if isSitemapURL(feedURL) {
		return r.Sitemaps.ParseFeed(ctx, feedURL)
	}
	entries, err := r.Feeds.ParseFeed(ctx, feedURL)
	if scoop.ErrorCode(err) == scoop.EINVALID {
		return r.Sitemaps.ParseFeed(ctx, feedURL)
	}
	return entries, err
}

// isSitemapURL reports whether raw names a sitemap or a site root.
func isSitemapURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	path := strings.ToLower(u.Path)
	if path == "" || path == "/" {
		return true
	}
	return strings.Contains(path, "sitemap")
}
