package crawl_test

import (
	"errors"
	"testing"

	"github.com/fwojciec/scoop"
	"github.com/fwojciec/scoop/crawl"
	"github.com/stretchr/testify/assert"
)

func TestTruncateURL(t *testing.T) {
	t.Parallel()

	t.Run("returns URL unchanged when shorter than max", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "https://x.com", crawl.TruncateURL("https://x.com", 50))
	})

	t.Run("truncates with ellipsis when longer than max", func(t *testing.T) {
		t.Parallel()
		url := "https://news.example.com/2024/05/city-council-budget"
		result := crawl.TruncateURL(url, 20)
		assert.Equal(t, "...ty-council-budget", result)
		assert.Len(t, result, 20)
	})

	t.Run("returns empty string when maxLen is not positive", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, crawl.TruncateURL("https://example.com", 0))
		assert.Empty(t, crawl.TruncateURL("https://example.com", -1))
	})

	t.Run("returns prefix of URL when maxLen is very small", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "htt", crawl.TruncateURL("https://example.com", 3))
		assert.Equal(t, "h", crawl.TruncateURL("https://example.com", 1))
	})
}

func TestCounts(t *testing.T) {
	t.Parallel()

	results := []crawl.Result{
		{URL: "a", Article: &scoop.Article{}},
		{URL: "b", Err: errors.New("boom")},
		{URL: "c", Article: &scoop.Article{}},
	}

	ok, failed := crawl.Counts(results)

	assert.Equal(t, 2, ok)
	assert.Equal(t, 1, failed)
}
