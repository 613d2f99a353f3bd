package scoop_test

import (
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/scoop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArticleID(t *testing.T) {
	t.Parallel()

	t.Run("stable for the same URL", func(t *testing.T) {
		t.Parallel()

		a := scoop.ArticleID("https://example.com/story")
		b := scoop.ArticleID("https://example.com/story")
		assert.Equal(t, a, b)
		assert.Len(t, a, 36)
	})

	t.Run("ignores fragment and host case", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t,
			scoop.ArticleID("https://example.com/story"),
			scoop.ArticleID("https://EXAMPLE.com/story#top"))
	})

	t.Run("differs across URLs", func(t *testing.T) {
		t.Parallel()

		assert.NotEqual(t,
			scoop.ArticleID("https://example.com/a"),
			scoop.ArticleID("https://example.com/b"))
	})
}

func TestReadingMinutes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, scoop.ReadingMinutes(0))
	assert.Equal(t, 1, scoop.ReadingMinutes(1))
	assert.Equal(t, 1, scoop.ReadingMinutes(200))
	assert.Equal(t, 2, scoop.ReadingMinutes(201))
}

func TestAssemble(t *testing.T) {
	t.Parallel()

	t.Run("computes derived fields", func(t *testing.T) {
		t.Parallel()

		body := strings.Repeat("word ", 450)
		published := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		ext := &scoop.ExtractionResult{
			Body:        body,
			Title:       scoop.Some("Headline"),
			PublishedAt: scoop.Some(published),
			Tags:        []string{"politics"},
		}
		enr := scoop.EnrichmentResult{
			Summary:      scoop.Some(scoop.Summary{Text: "word word", Method: "naive"}),
			NLPProcessed: true,
		}

		a := scoop.Assemble("https://example.com/story", ext, scoop.LanguageSignal{Code: "en", Confidence: 0.9}, enr)

		assert.Equal(t, scoop.ArticleID("https://example.com/story"), a.ID)
		assert.Equal(t, 450, a.WordCount)
		assert.Equal(t, 3, a.ReadingTime)
		assert.Equal(t, "Headline", a.Title.OrElse(""))
		assert.Equal(t, published, a.PublishedAt.OrElse(time.Time{}))
		assert.True(t, a.NLPProcessed)
		assert.NotEmpty(t, a.ContentHash)
	})

	t.Run("tolerates nil extraction and empty enrichment", func(t *testing.T) {
		t.Parallel()

		a := scoop.Assemble("https://example.com/story", nil, scoop.LanguageSignal{}, scoop.EnrichmentResult{})

		require.NotNil(t, a)
		assert.Equal(t, scoop.UnknownLanguage, a.Language.Code)
		assert.Equal(t, scoop.EUNDETECTED, a.Language.Issue)
		assert.False(t, a.Title.IsSome())
		assert.False(t, a.Keywords.IsSome())
		assert.False(t, a.NLPProcessed)
		assert.Zero(t, a.WordCount)
	})

	t.Run("copies slices from inputs", func(t *testing.T) {
		t.Parallel()

		kw := []string{"alpha", "beta"}
		ext := &scoop.ExtractionResult{Body: "text", Links: []string{"https://other.example/"}}
		a := scoop.Assemble("https://example.com/", ext, scoop.LanguageSignal{}, scoop.EnrichmentResult{Keywords: scoop.Some(kw)})

		kw[0] = "changed"
		ext.Links[0] = "changed"

		got, _ := a.Keywords.Get()
		assert.Equal(t, []string{"alpha", "beta"}, got)
		assert.Equal(t, []string{"https://other.example/"}, a.Links)
	})
}

func TestNewExtractionResult(t *testing.T) {
	t.Parallel()

	t.Run("falls back to first body image as lead", func(t *testing.T) {
		t.Parallel()

		r := scoop.NewExtractionResult(
			&scoop.Content{Text: "body", Images: []string{"https://cdn.example/a.jpg", "https://cdn.example/b.jpg"}},
			&scoop.Metadata{},
		)

		assert.Equal(t, "https://cdn.example/a.jpg", r.LeadImage.OrElse(""))
		assert.Equal(t, []string{"https://cdn.example/b.jpg"}, r.Images)
	})

	t.Run("excludes metadata lead image from secondary media", func(t *testing.T) {
		t.Parallel()

		r := scoop.NewExtractionResult(
			&scoop.Content{Text: "body", Images: []string{"https://cdn.example/lead.jpg", "https://cdn.example/b.jpg"}},
			&scoop.Metadata{LeadImage: scoop.Some("https://cdn.example/lead.jpg"), Images: []string{"https://cdn.example/b.jpg", "https://cdn.example/c.jpg"}},
		)

		assert.Equal(t, []string{"https://cdn.example/b.jpg", "https://cdn.example/c.jpg"}, r.Images)
	})
}

func TestExtractionResult_ApplyListing(t *testing.T) {
	t.Parallel()

	published := time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)
	listing := &scoop.Listing{
		Title:       "Council approves budget",
		Source:      "Daily News",
		Category:    scoop.CategoryTrending,
		PublishedAt: scoop.Some(published),
	}

	t.Run("fills absent fields", func(t *testing.T) {
		t.Parallel()

		r := scoop.NewExtractionResult(&scoop.Content{Text: "body"}, nil)
		r.ApplyListing(listing)

		assert.Equal(t, "Council approves budget", r.Title.OrElse(""))
		assert.Equal(t, "Daily News", r.SiteName.OrElse(""))
		assert.Equal(t, "trending", r.Category.OrElse(""))
		assert.Equal(t, published, r.PublishedAt.OrElse(time.Time{}))
	})

	t.Run("keeps page values", func(t *testing.T) {
		t.Parallel()

		onPage := time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC)
		r := scoop.NewExtractionResult(&scoop.Content{Text: "body"}, &scoop.Metadata{
			Title:       scoop.Some("Budget passes"),
			Category:    scoop.Some("politics"),
			SiteName:    scoop.Some("News"),
			PublishedAt: scoop.Some(onPage),
		})
		r.ApplyListing(listing)

		assert.Equal(t, "Budget passes", r.Title.OrElse(""))
		assert.Equal(t, "politics", r.Category.OrElse(""))
		assert.Equal(t, "News", r.SiteName.OrElse(""))
		assert.Equal(t, onPage, r.PublishedAt.OrElse(time.Time{}))
	})

	t.Run("nil listing is a no-op", func(t *testing.T) {
		t.Parallel()

		r := scoop.NewExtractionResult(&scoop.Content{Text: "body"}, nil)
		r.ApplyListing(nil)

		assert.False(t, r.Title.IsSome())
		assert.False(t, r.Category.IsSome())
	})
}
