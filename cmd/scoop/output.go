package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fwojciec/scoop"
	"github.com/fwojciec/scoop/htmltomarkdown"
)

// Output formats.
const (
	FormatJSON     = "json"
	FormatText     = "text"
	FormatMarkdown = "markdown"
)

// Output renders articles in one of the supported formats.
type Output struct {
	format   string
	markdown *htmltomarkdown.Converter
}

// NewOutput returns an Output for format. Unknown formats render as text.
func NewOutput(format string, markdown *htmltomarkdown.Converter) *Output {
	return &Output{format: format, markdown: markdown}
}

// Write renders articles to w. JSON output is always an array.
func (o *Output) Write(w io.Writer, articles []*scoop.Article) error {
	switch o.format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(articles)
	case FormatMarkdown:
		for i, a := range articles {
			md, err := o.markdown.ConvertArticle(a)
			if err != nil {
				return err
			}
			if i > 0 {
				fmt.Fprint(w, "\n---\n\n")
			}
			fmt.Fprint(w, md)
		}
		return nil
	default:
		for i, a := range articles {
			if i > 0 {
				fmt.Fprintln(w)
			}
			writeText(w, a)
		}
		return nil
	}
}

// writeText prints a header of article fields followed by the body.
func writeText(w io.Writer, a *scoop.Article) {
	field := func(name, value string) {
		if value != "" {
			fmt.Fprintf(w, "%-10s %s\n", name+":", value)
		}
	}

	field("Title", a.Title.OrElse(""))
	field("URL", a.URL)
	field("Author", a.Author.OrElse(""))
	field("Site", a.SiteName.OrElse(""))
	if published, ok := a.PublishedAt.Get(); ok {
		field("Published", published.Format(time.RFC3339))
	}
	field("Language", languageLine(a.Language))
	field("Words", fmt.Sprintf("%d (%d min read)", a.WordCount, a.ReadingTime))
	if kws, ok := a.Keywords.Get(); ok {
		field("Keywords", strings.Join(kws, ", "))
	}
	if s, ok := a.Sentiment.Get(); ok {
		field("Sentiment", fmt.Sprintf("%s (%.2f, %s)", s.Label, s.Compound, s.Method))
	}
	if ents, ok := a.Entities.Get(); ok {
		var groups []string
		for _, g := range ents {
			groups = append(groups, g.Category+": "+strings.Join(g.Names, ", "))
		}
		field("Entities", strings.Join(groups, "; "))
	}
	if s, ok := a.Summary.Get(); ok {
		field("Summary", s.Text)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, a.Body)
}

func languageLine(s scoop.LanguageSignal) string {
	if !s.Detected() {
		return scoop.UnknownLanguage
	}
	line := fmt.Sprintf("%s (%.2f)", s.Code, s.Confidence)
	switch {
	case s.Translated:
		line += ", translated to " + s.Target
	case s.TranslationUnavailable:
		line += ", translation unavailable"
	}
	return line
}
