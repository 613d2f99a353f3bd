package scoop

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
)

// ReadingSpeed is the assumed reading speed in words per minute.
const ReadingSpeed = 200

// Article is the final, assembled representation of a news page.
// It is never mutated after Assemble returns it.
type Article struct {
	ID           string              `json:"id"`
	URL          string              `json:"url"`
	Title        Optional[string]    `json:"title"`
	Body         string              `json:"body"`
	BodyHTML     string              `json:"bodyHtml"`
	ContentHash  string              `json:"contentHash"`
	Method       string              `json:"method"`
	Author       Optional[string]    `json:"author"`
	PublishedAt  Optional[time.Time] `json:"publishedAt"`
	CanonicalURL Optional[string]    `json:"canonicalUrl"`
	LeadImage    Optional[string]    `json:"leadImage"`
	Description  Optional[string]    `json:"description"`
	SiteName     Optional[string]    `json:"siteName"`
	Category     Optional[string]    `json:"category"`
	Tags         []string            `json:"tags"`
	Images       []string            `json:"images"`
	Videos       []string            `json:"videos"`
	Links        []string            `json:"links"`
	Paywalled    bool                `json:"paywalled"`

	Language LanguageSignal `json:"language"`

	Keywords  Optional[[]string]  `json:"keywords"`
	Sentiment Optional[Sentiment] `json:"sentiment"`
	Entities  Optional[Entities]  `json:"entities"`
	Summary   Optional[Summary]   `json:"summary"`
	Stages    []StageReport       `json:"stages"`

	NLPProcessed bool `json:"nlpProcessed"`
	WordCount    int  `json:"wordCount"`

	// ReadingTime is in whole minutes, rounded up.
	ReadingTime int `json:"readingTime"`
}

// ArticleID returns the identifier of the article at rawURL. The same URL
// always yields the same identifier.
func ArticleID(rawURL string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(NormalizeURL(rawURL))).String()
}

// CountWords returns the number of whitespace-separated tokens in text.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// ReadingMinutes returns words / ReadingSpeed rounded up.
func ReadingMinutes(words int) int {
	if words <= 0 {
		return 0
	}
	return (words + ReadingSpeed - 1) / ReadingSpeed
}

// Assemble merges extraction, language, and enrichment outputs into an
// Article. It performs no I/O and never fails: a nil input leaves the
// corresponding fields absent.
func Assemble(rawURL string, ext *ExtractionResult, lang LanguageSignal, enr EnrichmentResult) *Article {
	if ext == nil {
		ext = &ExtractionResult{}
	}
	if lang.Code == "" {
		lang.Code = UnknownLanguage
	}
	if !lang.Detected() && lang.Issue == "" {
		lang.Issue = EUNDETECTED
	}

	words := CountWords(ext.Body)
	a := &Article{
		ID:           ArticleID(rawURL),
		URL:          strings.TrimSpace(rawURL),
		Title:        ext.Title,
		Body:         ext.Body,
		BodyHTML:     ext.BodyHTML,
		ContentHash:  hashContent(ext.Body),
		Method:       ext.Method,
		Author:       ext.Author,
		PublishedAt:  ext.PublishedAt,
		CanonicalURL: ext.CanonicalURL,
		LeadImage:    ext.LeadImage,
		Description:  ext.Description,
		SiteName:     ext.SiteName,
		Category:     ext.Category,
		Tags:         cloneStrings(ext.Tags),
		Images:       cloneStrings(ext.Images),
		Videos:       cloneStrings(ext.Videos),
		Links:        cloneStrings(ext.Links),
		Paywalled:    ext.Paywalled,
		Language:     lang,
		Sentiment:    enr.Sentiment,
		Summary:      enr.Summary,
		NLPProcessed: enr.NLPProcessed,
		WordCount:    words,
		ReadingTime:  ReadingMinutes(words),
	}
	if kw, ok := enr.Keywords.Get(); ok {
		a.Keywords = Some(cloneStrings(kw))
	}
	if ents, ok := enr.Entities.Get(); ok {
		a.Entities = Some(cloneEntities(ents))
	}
	for _, s := range enr.Stages {
		s.Attempts = append([]Attempt(nil), s.Attempts...)
		a.Stages = append(a.Stages, s)
	}
	return a
}

// hashContent returns a hex-encoded xxhash of content.
func hashContent(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}

func cloneEntities(e Entities) Entities {
	out := make(Entities, len(e))
	for i, g := range e {
		out[i] = EntityGroup{Category: g.Category, Names: cloneStrings(g.Names)}
	}
	return out
}

// ArticleExtractor turns a fetched document into an Article.
type ArticleExtractor interface {
	// ExtractArticle returns ENOCONTENT when the document holds no
	// article body. A canceled context returns the context error and
	// no Article.
	ExtractArticle(ctx context.Context, doc *Document) (*Article, error)
}

// ArticleCache memoizes articles by ID.
type ArticleCache interface {
	// Load returns the cached article for id, or calls compute and caches
	// its result. Concurrent callers for the same id share one compute
	// call. Errors are not cached.
	Load(ctx context.Context, id string, compute func(ctx context.Context) (*Article, error)) (*Article, error)
}
