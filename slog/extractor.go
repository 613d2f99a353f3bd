package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/scoop"
)

var _ scoop.ArticleExtractor = (*LoggingArticleExtractor)(nil)

// LoggingArticleExtractor wraps an ArticleExtractor with logging.
type LoggingArticleExtractor struct {
	next   scoop.ArticleExtractor
	logger *slog.Logger
}

// NewLoggingArticleExtractor creates a new LoggingArticleExtractor.
func NewLoggingArticleExtractor(next scoop.ArticleExtractor, logger *slog.Logger) *LoggingArticleExtractor {
	return &LoggingArticleExtractor{next: next, logger: logger}
}

// ExtractArticle delegates to the wrapped extractor and logs the article
// shape along with any enrichment stage that ran out of fallbacks.
func (e *LoggingArticleExtractor) ExtractArticle(ctx context.Context, doc *scoop.Document) (a *scoop.Article, err error) {
	defer func(begin time.Time) {
		var url string
		if doc != nil {
			url = doc.URL
		}
		attrs := []any{"url", url}
		if a != nil {
			attrs = append(attrs,
				"id", a.ID,
				"method", a.Method,
				"words", a.WordCount,
				"language", a.Language.Code,
				"nlp_processed", a.NLPProcessed,
				"failed_stages", failedStages(a.Stages),
			)
		}
		attrs = append(attrs, "duration", time.Since(begin), "err", err)
		e.logger.Info("extract article", attrs...)
	}(time.Now())
	return e.next.ExtractArticle(ctx, doc)
}

func failedStages(reports []scoop.StageReport) []string {
	var failed []string
	for _, r := range reports {
		if r.State == scoop.StateExhausted {
			failed = append(failed, r.Stage)
		}
	}
	return failed
}
