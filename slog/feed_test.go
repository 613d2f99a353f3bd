package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/scoop"
	"github.com/fwojciec/scoop/mock"
	scoopslog "github.com/fwojciec/scoop/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingFeedParser_ParseFeed(t *testing.T) {
	t.Parallel()

	t.Run("logs feed with count and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.FeedParser{
			ParseFeedFn: func(context.Context, string) ([]*scoop.FeedEntry, error) {
				return []*scoop.FeedEntry{
					{URL: "https://example.com/a"},
					{URL: "https://example.com/b"},
				}, nil
			},
		}

		p := scoopslog.NewLoggingFeedParser(inner, logger)
		entries, err := p.ParseFeed(context.Background(), "https://example.com/rss")

		require.NoError(t, err)
		assert.Len(t, entries, 2)
		output := buf.String()
		assert.Contains(t, output, "msg=\"parse feed\"")
		assert.Contains(t, output, "url=https://example.com/rss")
		assert.Contains(t, output, "count=2")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.FeedParser{
			ParseFeedFn: func(context.Context, string) ([]*scoop.FeedEntry, error) {
				return nil, errors.New("connection failed")
			},
		}

		p := scoopslog.NewLoggingFeedParser(inner, logger)
		_, err := p.ParseFeed(context.Background(), "https://example.com/rss")

		require.Error(t, err)
		assert.Contains(t, buf.String(), "err=\"connection failed\"")
	})
}

func TestLoggingSearcher_Search(t *testing.T) {
	t.Parallel()

	t.Run("logs query and result count", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Searcher{
			SearchFn: func(context.Context, string, int) ([]*scoop.SearchResult, error) {
				return []*scoop.SearchResult{{URL: "https://example.com/a"}}, nil
			},
		}

		s := scoopslog.NewLoggingSearcher(inner, logger)
		results, err := s.Search(context.Background(), "election", 5)

		require.NoError(t, err)
		assert.Len(t, results, 1)
		output := buf.String()
		assert.Contains(t, output, "msg=search")
		assert.Contains(t, output, "query=election")
		assert.Contains(t, output, "limit=5")
		assert.Contains(t, output, "count=1")
	})
}

func TestLoggingSearcher_Trending(t *testing.T) {
	t.Parallel()

	t.Run("logs limit and result count", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Searcher{
			TrendingFn: func(context.Context, int) ([]*scoop.SearchResult, error) {
				return []*scoop.SearchResult{{URL: "https://example.com/a"}, {URL: "https://example.com/b"}}, nil
			},
		}

		s := scoopslog.NewLoggingSearcher(inner, logger)
		results, err := s.Trending(context.Background(), 3)

		require.NoError(t, err)
		assert.Len(t, results, 2)
		output := buf.String()
		assert.Contains(t, output, "msg=trending")
		assert.Contains(t, output, "limit=3")
		assert.Contains(t, output, "count=2")
	})
}
