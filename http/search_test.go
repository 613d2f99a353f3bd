package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/fwojciec/scoop"
	scoophttp "github.com/fwojciec/scoop/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const newsResults = `{
  "news_results": [
    {
      "title": "Council approves budget",
      "link": "https://news.example.com/budget",
      "source": {"name": "Daily News"},
      "snippet": "The council voted on Tuesday.",
      "date": "03/15/2024, 09:30 AM, +0000 UTC"
    },
    {
      "title": "Stories without links are skipped",
      "source": {"name": "Nowhere"}
    },
    {
      "title": "Storm hits coast",
      "link": "https://weather.example.com/storm",
      "source": {"name": "Weather Desk"},
      "date": "yesterday"
    }
  ]
}`

func TestSearchService_Search(t *testing.T) {
	t.Parallel()

	t.Run("sends google news query and maps results", func(t *testing.T) {
		t.Parallel()

		var query url.Values
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			query = r.URL.Query()
			_, _ = w.Write([]byte(newsResults))
		}))
		defer srv.Close()

		svc := scoophttp.NewSearchService(srv.Client(), "secret", scoophttp.WithEndpoint(srv.URL), scoophttp.WithLocale("gb", "en"))
		results, err := svc.Search(context.Background(), "city budget", 5)

		require.NoError(t, err)
		assert.Equal(t, "google_news", query.Get("engine"))
		assert.Equal(t, "city budget", query.Get("q"))
		assert.Equal(t, "gb", query.Get("gl"))
		assert.Equal(t, "en", query.Get("hl"))
		assert.Equal(t, "5", query.Get("num"))
		assert.Equal(t, "secret", query.Get("api_key"))

		require.Len(t, results, 2)
		assert.Equal(t, "Council approves budget", results[0].Title)
		assert.Equal(t, "https://news.example.com/budget", results[0].URL)
		assert.Equal(t, "Daily News", results[0].Source)
		assert.Equal(t, "The council voted on Tuesday.", results[0].Snippet)
		assert.Equal(t, scoop.CategorySearch, results[0].Category)
		published, ok := results[0].PublishedAt.Get()
		require.True(t, ok)
		assert.Equal(t, time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC), published)

		assert.Equal(t, "https://weather.example.com/storm", results[1].URL)
		assert.False(t, results[1].PublishedAt.IsSome())
	})

	t.Run("caps results at limit", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(newsResults))
		}))
		defer srv.Close()

		svc := scoophttp.NewSearchService(srv.Client(), "secret", scoophttp.WithEndpoint(srv.URL))
		results, err := svc.Search(context.Background(), "budget", 1)

		require.NoError(t, err)
		assert.Len(t, results, 1)
	})

	t.Run("api error is a fetch error", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error": "Invalid API key."}`))
		}))
		defer srv.Close()

		svc := scoophttp.NewSearchService(srv.Client(), "bad", scoophttp.WithEndpoint(srv.URL))
		_, err := svc.Search(context.Background(), "budget", 5)

		assert.Equal(t, scoop.EFETCH, scoop.ErrorCode(err))
		assert.Contains(t, scoop.ErrorMessage(err), "Invalid API key.")
	})

	t.Run("missing api key is unavailable", func(t *testing.T) {
		t.Parallel()

		_, err := scoophttp.NewSearchService(nil, "").Search(context.Background(), "budget", 5)

		assert.Equal(t, scoop.EUNAVAILABLE, scoop.ErrorCode(err))
	})

	t.Run("empty query is invalid", func(t *testing.T) {
		t.Parallel()

		_, err := scoophttp.NewSearchService(nil, "secret").Search(context.Background(), " ", 5)

		assert.Equal(t, scoop.EINVALID, scoop.ErrorCode(err))
	})
}

func TestSearchService_Trending(t *testing.T) {
	t.Parallel()

	t.Run("queries trending news and tags results", func(t *testing.T) {
		t.Parallel()

		var query url.Values
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			query = r.URL.Query()
			_, _ = w.Write([]byte(newsResults))
		}))
		defer srv.Close()

		svc := scoophttp.NewSearchService(srv.Client(), "secret", scoophttp.WithEndpoint(srv.URL))
		results, err := svc.Trending(context.Background(), 0)

		require.NoError(t, err)
		assert.Equal(t, "google_news", query.Get("engine"))
		assert.Equal(t, "trending", query.Get("q"))
		assert.Equal(t, "10", query.Get("num"))
		require.Len(t, results, 2)
		for _, r := range results {
			assert.Equal(t, scoop.CategoryTrending, r.Category)
		}
	})

	t.Run("missing api key is unavailable", func(t *testing.T) {
		t.Parallel()

		_, err := scoophttp.NewSearchService(nil, "").Trending(context.Background(), 5)

		assert.Equal(t, scoop.EUNAVAILABLE, scoop.ErrorCode(err))
	})
}
