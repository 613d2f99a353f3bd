// Package htmltomarkdown renders article bodies and whole articles as
// Markdown using JohannesKaufmann/html-to-markdown.
package htmltomarkdown

import (
	"fmt"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/scoop"
)

// Ensure Converter implements scoop.Converter at compile time.
var _ scoop.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown to convert HTML to Markdown.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms HTML content into Markdown.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", scoop.Errorf(scoop.EINVALID, "empty HTML input")
	}

	result, err := c.conv.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("convert html: %w", err)
	}

	return result, nil
}

// ConvertArticle renders a as a Markdown document: a title heading, a
// byline, the body, and a source link. The body comes from BodyHTML, or
// from the plain-text Body when no markup was kept.
func (c *Converter) ConvertArticle(a *scoop.Article) (string, error) {
	if a == nil {
		return "", scoop.Errorf(scoop.EINVALID, "nil article")
	}

	var b strings.Builder
	if title, ok := a.Title.Get(); ok {
		fmt.Fprintf(&b, "# %s\n\n", title)
	}
	if line := byline(a); line != "" {
		fmt.Fprintf(&b, "*%s*\n\n", line)
	}

	body := a.Body
	if strings.TrimSpace(a.BodyHTML) != "" {
		md, err := c.Convert(a.BodyHTML)
		if err != nil {
			return "", err
		}
		body = md
	}
	b.WriteString(strings.TrimSpace(body))
	b.WriteString("\n")

	if src := a.CanonicalURL.OrElse(a.URL); src != "" {
		fmt.Fprintf(&b, "\n[Source](%s)\n", src)
	}
	return b.String(), nil
}

func byline(a *scoop.Article) string {
	var parts []string
	if author, ok := a.Author.Get(); ok {
		parts = append(parts, "By "+author)
	}
	if site, ok := a.SiteName.Get(); ok {
		parts = append(parts, site)
	}
	if published, ok := a.PublishedAt.Get(); ok {
		parts = append(parts, published.Format("January 2, 2006"))
	}
	return strings.Join(parts, " | ")
}
