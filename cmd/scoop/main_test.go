package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/scoop"
	main "github.com/fwojciec/scoop/cmd/scoop"
	"github.com/fwojciec/scoop/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	p1 = "The committee published its findings on Monday after a long review."
	p2 = "Officials said the new rules will take effect at the start of next year."
)

const page = `<html lang="en"><head>
<title>Committee publishes findings | Daily News</title>
<meta property="og:title" content="Committee publishes findings">
<meta name="author" content="Jane Reporter">
</head><body>
<nav><a href="/1">One</a><a href="/2">Two</a><a href="/3">Three</a></nav>
<article><p>` + p1 + `</p><p>` + p2 + `</p></article>
<footer><a href="/4">Four</a><a href="/5">Five</a></footer>
</body></html>`

func pageFetcher() *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) (*scoop.Document, error) {
			return &scoop.Document{URL: url, HTML: page}, nil
		},
		CloseFn: func() error { return nil },
	}
}

func TestMain_Run_Help(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"--help"}, &stdout, &stderr)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "scoop")
	assert.Contains(t, stdout.String(), "extract")
	assert.Contains(t, stdout.String(), "feed")
}

func TestMain_Run_NoArgs(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{}, &stdout, &stderr)

	require.Error(t, err)
	assert.Contains(t, stdout.String(), "scoop")
}

func TestMain_Run_InvalidConfig(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.Fetcher = pageFetcher()
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"extract", "--target", "english", "https://news.example.com/a"}, &stdout, &stderr)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "target language")
}

func TestFileCmd(t *testing.T) {
	t.Parallel()

	t.Run("extracts a saved page as JSON", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "story.html")
		require.NoError(t, os.WriteFile(path, []byte(page), 0o644))

		m := main.NewMain()
		m.Fetcher = pageFetcher()
		var stdout, stderr bytes.Buffer

		err := m.Run(context.Background(), []string{
			"file", path, "--url", "https://news.example.com/story", "--no-enrich", "-o", "json",
		}, &stdout, &stderr)

		require.NoError(t, err)
		var articles []map[string]any
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &articles))
		require.Len(t, articles, 1)
		assert.Equal(t, p1+"\n\n"+p2, articles[0]["body"])
		assert.Equal(t, "Committee publishes findings", articles[0]["title"])
		assert.Equal(t, scoop.ArticleID("https://news.example.com/story"), articles[0]["id"])
		assert.EqualValues(t, 25, articles[0]["wordCount"])
	})

	t.Run("reports missing files", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.Fetcher = pageFetcher()
		var stdout, stderr bytes.Buffer

		err := m.Run(context.Background(), []string{
			"file", filepath.Join(t.TempDir(), "missing.html"), "--url", "https://news.example.com/story",
		}, &stdout, &stderr)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error:")
	})

	t.Run("reports pages without an article", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "empty.html")
		require.NoError(t, os.WriteFile(path, []byte("<html><body></body></html>"), 0o644))

		m := main.NewMain()
		m.Fetcher = pageFetcher()
		var stdout, stderr bytes.Buffer

		err := m.Run(context.Background(), []string{
			"file", path, "--url", "https://news.example.com/story", "--no-enrich",
		}, &stdout, &stderr)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error:")
		assert.Empty(t, stdout.String())
	})
}

func TestExtractCmd(t *testing.T) {
	t.Parallel()

	t.Run("prints extracted articles as text", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.Fetcher = pageFetcher()
		var stdout, stderr bytes.Buffer

		err := m.Run(context.Background(), []string{
			"extract", "--no-enrich", "https://news.example.com/story",
		}, &stdout, &stderr)

		require.NoError(t, err)
		output := stdout.String()
		assert.Contains(t, output, "Committee publishes findings")
		assert.Contains(t, output, "Jane Reporter")
		assert.Contains(t, output, "25 (1 min read)")
		assert.Contains(t, output, p1)
	})

	t.Run("renders markdown", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.Fetcher = pageFetcher()
		var stdout, stderr bytes.Buffer

		err := m.Run(context.Background(), []string{
			"extract", "--no-enrich", "-o", "markdown", "https://news.example.com/story",
		}, &stdout, &stderr)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "# Committee publishes findings")
		assert.Contains(t, stdout.String(), "[Source](https://news.example.com/story)")
	})

	t.Run("fails when no URL yields an article", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.Fetcher = pageFetcher()
		var stdout, stderr bytes.Buffer

		err := m.Run(context.Background(), []string{
			"extract", "--no-enrich", "ftp://news.example.com/story",
		}, &stdout, &stderr)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "no articles extracted")
		assert.Contains(t, stderr.String(), "skip")
	})
}

func TestFeedCmd(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.Fetcher = pageFetcher()
	m.Feeds = &mock.FeedParser{
		ParseFeedFn: func(_ context.Context, feedURL string) ([]*scoop.FeedEntry, error) {
			return []*scoop.FeedEntry{
				{URL: "https://news.example.com/one"},
				{URL: "https://news.example.com/two"},
				{URL: "https://news.example.com/three"},
			}, nil
		},
	}
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{
		"feed", "--no-enrich", "-n", "2", "-o", "json", "https://news.example.com/rss",
	}, &stdout, &stderr)

	require.NoError(t, err)
	var articles []map[string]any
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &articles))
	require.Len(t, articles, 2)
	assert.Equal(t, "https://news.example.com/one", articles[0]["url"])
	assert.Equal(t, "https://news.example.com/two", articles[1]["url"])
}

func TestSearchCmd(t *testing.T) {
	t.Parallel()

	t.Run("extracts search results", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.Fetcher = pageFetcher()
		m.Searcher = &mock.Searcher{
			SearchFn: func(_ context.Context, query string, limit int) ([]*scoop.SearchResult, error) {
				assert.Equal(t, "committee findings", query)
				return []*scoop.SearchResult{{URL: "https://news.example.com/story"}}, nil
			},
		}
		var stdout, stderr bytes.Buffer

		err := m.Run(context.Background(), []string{
			"search", "--no-enrich", "committee findings",
		}, &stdout, &stderr)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Committee publishes findings")
	})

	t.Run("requires an API key", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.Fetcher = pageFetcher()
		var stdout, stderr bytes.Buffer

		err := m.Run(context.Background(), []string{
			"search", "--serpapi-api-key=", "committee findings",
		}, &stdout, &stderr)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "SERPAPI_API_KEY")
	})
}

func TestTrendingCmd(t *testing.T) {
	t.Parallel()

	t.Run("extracts trending stories with their category", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.Fetcher = pageFetcher()
		m.Searcher = &mock.Searcher{
			TrendingFn: func(_ context.Context, limit int) ([]*scoop.SearchResult, error) {
				assert.Equal(t, 3, limit)
				return []*scoop.SearchResult{{
					URL:      "https://news.example.com/story",
					Source:   "Daily News",
					Category: scoop.CategoryTrending,
				}}, nil
			},
		}
		var stdout, stderr bytes.Buffer

		err := m.Run(context.Background(), []string{
			"-o", "json", "trending", "--no-enrich", "-n", "3",
		}, &stdout, &stderr)

		require.NoError(t, err)
		var articles []map[string]any
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &articles))
		require.Len(t, articles, 1)
		assert.Equal(t, "trending", articles[0]["category"])
		assert.Equal(t, "Daily News", articles[0]["siteName"])
	})

	t.Run("requires an API key", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.Fetcher = pageFetcher()
		var stdout, stderr bytes.Buffer

		err := m.Run(context.Background(), []string{
			"trending", "--serpapi-api-key=",
		}, &stdout, &stderr)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "SERPAPI_API_KEY")
	})
}
