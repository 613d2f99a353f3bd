package gofeed_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/scoop"
	"github.com/fwojciec/scoop/gofeed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rss = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>Daily News</title>
  <link>https://news.example.com/</link>
  <item>
    <title>Council approves budget</title>
    <link>https://news.example.com/budget</link>
    <category>Politics</category>
    <pubDate>Fri, 15 Mar 2024 09:30:00 GMT</pubDate>
  </item>
  <item>
    <title>Storm hits coast</title>
    <link>https://news.example.com/storm</link>
  </item>
  <item>
    <title>Duplicate</title>
    <link>https://news.example.com/budget</link>
  </item>
  <item>
    <title>No link</title>
  </item>
</channel>
</rss>`

const atom = `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Tech Desk</title>
  <entry>
    <title>Chip shortage eases</title>
    <link href="https://tech.example.com/chips"/>
    <updated>2024-03-10T12:00:00Z</updated>
  </entry>
</feed>`

func serve(t *testing.T, contentType, body string, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

func TestParser_ParseFeed(t *testing.T) {
	t.Parallel()

	t.Run("parses rss items in order", func(t *testing.T) {
		t.Parallel()

		srv := serve(t, "application/rss+xml", rss, http.StatusOK)
		defer srv.Close()

		entries, err := gofeed.NewParser(srv.Client(), "").ParseFeed(context.Background(), srv.URL)

		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "Council approves budget", entries[0].Title)
		assert.Equal(t, "https://news.example.com/budget", entries[0].URL)
		assert.Equal(t, "Politics", entries[0].Category)
		published, ok := entries[0].PublishedAt.Get()
		require.True(t, ok)
		assert.Equal(t, time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC), published)
		assert.Equal(t, "https://news.example.com/storm", entries[1].URL)
		assert.False(t, entries[1].PublishedAt.IsSome())
		assert.Empty(t, entries[1].Category)
	})

	t.Run("parses atom entries", func(t *testing.T) {
		t.Parallel()

		srv := serve(t, "application/atom+xml", atom, http.StatusOK)
		defer srv.Close()

		entries, err := gofeed.NewParser(srv.Client(), "").ParseFeed(context.Background(), srv.URL)

		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "https://tech.example.com/chips", entries[0].URL)
		assert.True(t, entries[0].PublishedAt.IsSome())
	})

	t.Run("http failure is a fetch error", func(t *testing.T) {
		t.Parallel()

		srv := serve(t, "text/plain", "gone", http.StatusNotFound)
		defer srv.Close()

		_, err := gofeed.NewParser(srv.Client(), "").ParseFeed(context.Background(), srv.URL)

		assert.Equal(t, scoop.EFETCH, scoop.ErrorCode(err))
	})

	t.Run("non-feed content is invalid", func(t *testing.T) {
		t.Parallel()

		srv := serve(t, "text/plain", "just some text", http.StatusOK)
		defer srv.Close()

		_, err := gofeed.NewParser(srv.Client(), "").ParseFeed(context.Background(), srv.URL)

		assert.Equal(t, scoop.EINVALID, scoop.ErrorCode(err))
	})
}
