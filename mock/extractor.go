package mock

import (
	"context"

	"github.com/fwojciec/scoop"
)

var _ scoop.ContentExtractor = (*ContentExtractor)(nil)

// ContentExtractor is a mock implementation of scoop.ContentExtractor.
type ContentExtractor struct {
	ExtractContentFn func(doc *scoop.Document) (*scoop.Content, error)
}

func (e *ContentExtractor) ExtractContent(doc *scoop.Document) (*scoop.Content, error) {
	return e.ExtractContentFn(doc)
}

var _ scoop.MetadataExtractor = (*MetadataExtractor)(nil)

// MetadataExtractor is a mock implementation of scoop.MetadataExtractor.
type MetadataExtractor struct {
	ExtractMetadataFn func(doc *scoop.Document) *scoop.Metadata
}

func (e *MetadataExtractor) ExtractMetadata(doc *scoop.Document) *scoop.Metadata {
	return e.ExtractMetadataFn(doc)
}

var _ scoop.ArticleExtractor = (*ArticleExtractor)(nil)

// ArticleExtractor is a mock implementation of scoop.ArticleExtractor.
type ArticleExtractor struct {
	ExtractArticleFn func(ctx context.Context, doc *scoop.Document) (*scoop.Article, error)
}

func (e *ArticleExtractor) ExtractArticle(ctx context.Context, doc *scoop.Document) (*scoop.Article, error) {
	return e.ExtractArticleFn(ctx, doc)
}

var _ scoop.ArticleCache = (*ArticleCache)(nil)

// ArticleCache is a mock implementation of scoop.ArticleCache.
type ArticleCache struct {
	LoadFn func(ctx context.Context, id string, compute func(ctx context.Context) (*scoop.Article, error)) (*scoop.Article, error)
}

func (c *ArticleCache) Load(ctx context.Context, id string, compute func(ctx context.Context) (*scoop.Article, error)) (*scoop.Article, error) {
	return c.LoadFn(ctx, id, compute)
}
