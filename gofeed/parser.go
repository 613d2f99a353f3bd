// Package gofeed provides a scoop.FeedParser for RSS, Atom and JSON feeds
// backed by mmcdole/gofeed.
package gofeed

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/fwojciec/scoop"
	"github.com/mmcdole/gofeed"
)

// Ensure Parser implements scoop.FeedParser at compile time.
var _ scoop.FeedParser = (*Parser)(nil)

// Parser fetches and parses syndication feeds.
type Parser struct {
	client    *http.Client
	userAgent string
}

// NewParser creates a Parser using client. If client is nil,
// http.DefaultClient is used.
func NewParser(client *http.Client, userAgent string) *Parser {
	if client == nil {
		client = http.DefaultClient
	}
	return &Parser{client: client, userAgent: userAgent}
}

// ParseFeed returns the feed's items in feed order. Items without a link
// are skipped.
func (p *Parser) ParseFeed(ctx context.Context, feedURL string) ([]*scoop.FeedEntry, error) {
	fp := gofeed.NewParser()
	fp.Client = p.client
	if p.userAgent != "" {
		fp.UserAgent = p.userAgent
	}

	feed, err := fp.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		var httpErr gofeed.HTTPError
		if errors.As(err, &httpErr) {
			return nil, scoop.Errorf(scoop.EFETCH, "feed returned HTTP %d", httpErr.StatusCode)
		}
		if errors.Is(err, gofeed.ErrFeedTypeNotDetected) {
			return nil, scoop.Errorf(scoop.EINVALID, "not a feed: %s", feedURL)
		}
		return nil, scoop.Errorf(scoop.EFETCH, "parsing feed: %v", err)
	}

	entries := []*scoop.FeedEntry{}
	seen := make(map[string]bool)
	for _, item := range feed.Items {
		link := strings.TrimSpace(item.Link)
		if link == "" || seen[link] {
			continue
		}
		seen[link] = true

		entry := &scoop.FeedEntry{
			Title: strings.TrimSpace(item.Title),
			URL:   link,
		}
		for _, c := range item.Categories {
			if c = strings.TrimSpace(c); c != "" {
				entry.Category = c
				break
			}
		}
		switch {
		case item.PublishedParsed != nil:
			entry.PublishedAt = scoop.Some(item.PublishedParsed.UTC())
		case item.UpdatedParsed != nil:
			entry.PublishedAt = scoop.Some(item.UpdatedParsed.UTC())
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
