// Package extract turns fetched documents into articles: content and
// metadata extraction, language detection and translation, enrichment
// and assembly.
package extract

import (
	"context"
	"strings"

	"github.com/fwojciec/scoop"
	"github.com/fwojciec/scoop/language"
)

// Ensure Extractor implements scoop.ArticleExtractor at compile time.
var _ scoop.ArticleExtractor = (*Extractor)(nil)

// Extractor orchestrates the extraction of one article.
type Extractor struct {
	// Content lists body extractors in fallback order.
	Content  []scoop.ContentExtractor
	Metadata scoop.MetadataExtractor
	Language *language.Stage
	Enricher scoop.Enricher
}

// ExtractArticle extracts an article from doc. It fails with ENOCONTENT
// when no body can be found. Cancellation is checked between steps and
// no partial article is returned.
func (e *Extractor) ExtractArticle(ctx context.Context, doc *scoop.Document) (*scoop.Article, error) {
	if doc == nil {
		return nil, scoop.Errorf(scoop.EINVALID, "document required")
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content, err := e.extractContent(doc)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var meta *scoop.Metadata
	if e.Metadata != nil {
		meta = e.Metadata.ExtractMetadata(doc)
	}
	ext := scoop.NewExtractionResult(content, meta)
	ext.ApplyListing(doc.Listing)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sig := scoop.LanguageSignal{Code: scoop.UnknownLanguage}
	if e.Language != nil {
		sig = e.Language.Process(ctx, languageSample(ext))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var enr scoop.EnrichmentResult
	if e.Enricher != nil {
		enr = e.Enricher.Enrich(ctx, enrichmentInput(ext, sig))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return scoop.Assemble(doc.URL, ext, sig, enr), nil
}

// extractContent returns the first body found by the content chain.
func (e *Extractor) extractContent(doc *scoop.Document) (*scoop.Content, error) {
	if len(e.Content) == 0 {
		return nil, scoop.Errorf(scoop.EINTERNAL, "no content extractors configured")
	}
	var reasons []string
	for _, c := range e.Content {
		content, err := c.ExtractContent(doc)
		if err == nil && content != nil && strings.TrimSpace(content.Text) != "" {
			return content, nil
		}
		if err != nil {
			reasons = append(reasons, scoop.ErrorMessage(err))
		}
	}
	return nil, scoop.Errorf(scoop.ENOCONTENT, "no article body found: %s", strings.Join(reasons, "; "))
}

// languageSample is the title followed by the body.
func languageSample(ext *scoop.ExtractionResult) string {
	title, _ := ext.Title.Get()
	if title == "" {
		return ext.Body
	}
	return title + "\n\n" + ext.Body
}

// enrichmentInput uses the translated text when translation happened and
// the original body otherwise.
func enrichmentInput(ext *scoop.ExtractionResult, sig scoop.LanguageSignal) scoop.StageInput {
	if text, ok := sig.TranslatedText.Get(); ok && sig.Translated {
		return scoop.StageInput{Text: text, Language: sig.Target}
	}
	title, _ := ext.Title.Get()
	return scoop.StageInput{Title: title, Text: ext.Body, Language: sig.Code}
}
