// Package nlp provides the statistical enrichment strategies: RAKE and
// frequency keyword ranking plus TextRank and lead-sentence summaries.
package nlp

import (
	"strings"
	"unicode"

	"github.com/jdkato/prose/v2"
	"github.com/kljensen/snowball/english"
)

// Words returns the lowercase word tokens of text. Apostrophes inside a
// word are kept.
func Words(text string) []string {
	var words []string
	var b strings.Builder
	runes := []rune(text)
	for i, r := range runes {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToLower(r))
		case (r == '\'' || r == '’') && b.Len() > 0 && i+1 < len(runes) && unicode.IsLetter(runes[i+1]):
			b.WriteRune('\'')
		default:
			if b.Len() > 0 {
				words = append(words, b.String())
				b.Reset()
			}
		}
	}
	if b.Len() > 0 {
		words = append(words, b.String())
	}
	return words
}

// Sentences splits text into sentences with the Punkt segmenter from
// prose. Blank lines always end a sentence, so headings without a full
// stop stay on their own.
func Sentences(text string) []string {
	var out, run []string
	flush := func() {
		if len(run) > 0 {
			out = append(out, segment(strings.Join(run, " "))...)
			run = nil
		}
	}
	for _, para := range strings.Split(text, "\n\n") {
		para = strings.Join(strings.Fields(para), " ")
		switch {
		case para == "":
		case endsSentence(para):
			run = append(run, para)
		default:
			flush()
			out = append(out, segment(para)...)
		}
	}
	flush()
	return out
}

// segment runs sentence segmentation only. Tagging and entity extraction
// are off, so no model is loaded.
func segment(text string) []string {
	doc, err := prose.NewDocument(text,
		prose.WithTokenization(false),
		prose.WithTagging(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return []string{text}
	}
	var out []string
	for _, s := range doc.Sentences() {
		if t := strings.TrimSpace(s.Text); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func endsSentence(p string) bool {
	p = strings.TrimRight(p, `"'”’)]`)
	return strings.HasSuffix(p, ".") || strings.HasSuffix(p, "!") ||
		strings.HasSuffix(p, "?") || strings.HasSuffix(p, "…")
}

// Stem reduces a lowercase word to its Snowball (Porter2) stem. Stop
// words are returned unchanged.
func Stem(w string) string {
	return english.Stem(w, false)
}

// IsStopWord reports whether the lowercase word w carries no topical
// meaning.
func IsStopWord(w string) bool {
	return stopWords[w]
}

// isCandidateWord reports whether w may appear in a keyword.
func isCandidateWord(w string) bool {
	if len([]rune(w)) < 3 || stopWords[w] {
		return false
	}
	for _, r := range w {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
