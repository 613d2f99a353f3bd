package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/scoop"
)

// Ensure LoggingFeedParser implements scoop.FeedParser.
var _ scoop.FeedParser = (*LoggingFeedParser)(nil)

// LoggingFeedParser wraps a FeedParser with logging.
type LoggingFeedParser struct {
	next   scoop.FeedParser
	logger *slog.Logger
}

// NewLoggingFeedParser creates a new LoggingFeedParser.
func NewLoggingFeedParser(next scoop.FeedParser, logger *slog.Logger) *LoggingFeedParser {
	return &LoggingFeedParser{next: next, logger: logger}
}

// ParseFeed delegates to the wrapped parser and logs the operation.
func (p *LoggingFeedParser) ParseFeed(ctx context.Context, feedURL string) (entries []*scoop.FeedEntry, err error) {
	defer func(begin time.Time) {
		p.logger.Info("parse feed",
			"url", feedURL,
			"count", len(entries),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.ParseFeed(ctx, feedURL)
}

// Ensure LoggingSearcher implements scoop.Searcher.
var _ scoop.Searcher = (*LoggingSearcher)(nil)

// LoggingSearcher wraps a Searcher with logging.
type LoggingSearcher struct {
	next   scoop.Searcher
	logger *slog.Logger
}

// NewLoggingSearcher creates a new LoggingSearcher.
func NewLoggingSearcher(next scoop.Searcher, logger *slog.Logger) *LoggingSearcher {
	return &LoggingSearcher{next: next, logger: logger}
}

// Search delegates to the wrapped searcher and logs the operation.
func (s *LoggingSearcher) Search(ctx context.Context, query string, limit int) (results []*scoop.SearchResult, err error) {
	defer func(begin time.Time) {
		s.logger.Info("search",
			"query", query,
			"limit", limit,
			"count", len(results),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Search(ctx, query, limit)
}

// Trending delegates to the wrapped searcher and logs the operation.
func (s *LoggingSearcher) Trending(ctx context.Context, limit int) (results []*scoop.SearchResult, err error) {
	defer func(begin time.Time) {
		s.logger.Info("trending",
			"limit", limit,
			"count", len(results),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Trending(ctx, limit)
}
