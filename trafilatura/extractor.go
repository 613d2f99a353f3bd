// Package trafilatura provides a scoop.ContentExtractor backed by
// go-trafilatura, used as a fallback when the scorer finds no article body.
package trafilatura

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/fwojciec/scoop"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Method names this extractor in content results.
const Method = "trafilatura"

// minTextLength is the shortest body accepted from trafilatura.
const minTextLength = 100

// Ensure Extractor implements scoop.ContentExtractor at compile time.
var _ scoop.ContentExtractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
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

	opts := trafilatura.Options{
		EnableFallback: true,
	}
	if u, err := url.Parse(doc.URL); err == nil {
		opts.OriginalURL = u
	}

	result, err := trafilatura.Extract(strings.NewReader(doc.HTML), opts)
	if err != nil {
		return nil, scoop.Errorf(scoop.ENOCONTENT, "trafilatura: %v", err)
	}

	paragraphs := splitParagraphs(result.ContentText)
	text := strings.Join(paragraphs, "\n\n")
	if len([]rune(text)) < minTextLength {
		return nil, scoop.Errorf(scoop.ENOCONTENT, "trafilatura found %d characters of text", len([]rune(text)))
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, scoop.Errorf(scoop.EINTERNAL, "failed to render content: %v", err)
		}
	}

	return &scoop.Content{
		Text:       text,
		Paragraphs: paragraphs,
		HTML:       contentHTML,
		Method:     Method,
	}, nil
}

// splitParagraphs returns the non-empty lines of text with whitespace
// collapsed.
func splitParagraphs(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
