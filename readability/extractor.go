// Package readability provides a scoop.ContentExtractor backed by
// go-readability, used as a last-resort fallback.
package readability

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/scoop"
	"github.com/go-shiori/go-readability"
)

// Method names this extractor in content results.
const Method = "readability"

// minTextLength is the shortest body accepted from readability.
const minTextLength = 100

// Ensure Extractor implements scoop.ContentExtractor at compile time.
var _ scoop.ContentExtractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractContent processes raw HTML and returns the main content.
func (e *Extractor) ExtractContent(doc *scoop.Document) (*scoop.Content, error) {
	if strings.TrimSpace(doc.HTML) == "" {
		return nil, scoop.Errorf(scoop.ENOCONTENT, "empty document")
	}

	pageURL, _ := url.Parse(doc.URL)
	article, err := readability.FromReader(strings.NewReader(doc.HTML), pageURL)
	if err != nil {
		return nil, scoop.Errorf(scoop.ENOCONTENT, "readability: %v", err)
	}

	paragraphs := paragraphsOf(article.Content)
	if len(paragraphs) == 0 {
		paragraphs = splitLines(article.TextContent)
	}
	text := strings.Join(paragraphs, "\n\n")
	if len([]rune(text)) < minTextLength {
		return nil, scoop.Errorf(scoop.ENOCONTENT, "readability found %d characters of text", len([]rune(text)))
	}

	return &scoop.Content{
		Text:       text,
		Paragraphs: paragraphs,
		HTML:       article.Content,
		Method:     Method,
	}, nil
}

// paragraphsOf returns the text of paragraph elements in content.
func paragraphsOf(content string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return nil
	}
	var out []string
	doc.Find("p, li, blockquote, pre, h2, h3, h4").Each(func(_ int, s *goquery.Selection) {
		if s.Find("p, li").Length() > 0 {
			return
		}
		if text := strings.Join(strings.Fields(s.Text()), " "); text != "" {
			out = append(out, text)
		}
	})
	return out
}

func splitLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			out = append(out, line)
		}
	}
	return out
}
