package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/scoop"
	"github.com/microcosm-cc/bluemonday"
)

// Ensure Extractor implements scoop.ContentExtractor at compile time.
var _ scoop.ContentExtractor = (*Extractor)(nil)

// Extractor selects the article body by filtering boilerplate and scoring
// the remaining blocks.
type Extractor struct {
	filter *Filter
	scorer *Scorer
	policy *bluemonday.Policy
}

// NewExtractor returns an Extractor. Options configure its Scorer; the
// Scorer's vocabulary is shared with the Filter.
func NewExtractor(opts ...ScorerOption) *Extractor {
	scorer := NewScorer(opts...)
	return &Extractor{
		filter: &Filter{Vocabulary: scorer.Vocabulary},
		scorer: scorer,
		policy: bluemonday.UGCPolicy(),
	}
}

// ExtractContent returns the highest-scoring block of doc.
func (e *Extractor) ExtractContent(doc *scoop.Document) (*scoop.Content, error) {
	if strings.TrimSpace(doc.HTML) == "" {
		return nil, scoop.Errorf(scoop.ENOCONTENT, "empty document")
	}

	parsed, err := goquery.NewDocumentFromReader(strings.NewReader(doc.HTML))
	if err != nil {
		return nil, scoop.Errorf(scoop.EINVALID, "failed to parse HTML: %v", err)
	}

	block, err := e.scorer.Best(e.filter.Apply(parsed))
	if err != nil {
		return nil, err
	}

	sel := goquery.NewDocumentFromNode(block.Node).Selection
	outer, err := goquery.OuterHtml(sel)
	if err != nil {
		return nil, scoop.Errorf(scoop.EINTERNAL, "failed to render content: %v", err)
	}

	base, _ := url.Parse(doc.URL)
	return &scoop.Content{
		Text:       block.Text(),
		Paragraphs: block.Paragraphs,
		HTML:       strings.TrimSpace(e.policy.Sanitize(outer)),
		Score:      block.Score,
		Method:     scoop.ContentScorer,
		Images:     collectImages(sel, base),
		Videos:     collectVideos(sel, base),
		Links:      collectLinks(sel, base),
	}, nil
}
