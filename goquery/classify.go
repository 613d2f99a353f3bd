// Package goquery implements article body and metadata extraction on top
// of goquery: a boilerplate filter, a content block scorer, and a
// structured metadata extractor.
package goquery

import (
	"strings"
	"unicode"
)

// Class is the classification of an element by its attributes.
type Class int

// Element classes.
const (
	ClassNeutral Class = iota
	ClassContent
	ClassBoilerplate
)

func (c Class) String() string {
	switch c {
	case ClassContent:
		return "content"
	case ClassBoilerplate:
		return "boilerplate"
	}
	return "neutral"
}

// MatchKind controls how a vocabulary pattern is compared with a class or
// id token.
type MatchKind int

// Match kinds.
const (
	// MatchToken requires the token to equal the pattern.
	MatchToken MatchKind = iota
	// MatchPrefix requires the token to start with the pattern.
	MatchPrefix
	// MatchSubstring requires the token to contain the pattern.
	MatchSubstring
)

// Term is one entry of a Vocabulary.
type Term struct {
	Pattern string
	Match   MatchKind
	Class   Class
}

func (t Term) matches(token string) bool {
	switch t.Match {
	case MatchPrefix:
		return strings.HasPrefix(token, t.Pattern)
	case MatchSubstring:
		return strings.Contains(token, t.Pattern)
	}
	return token == t.Pattern
}

// Vocabulary classifies elements by their class and id attributes.
// Boilerplate terms take precedence over content terms.
type Vocabulary []Term

// DefaultVocabulary returns the built-in news page vocabulary.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		{"ad", MatchToken, ClassBoilerplate},
		{"ads", MatchToken, ClassBoilerplate},
		{"advert", MatchPrefix, ClassBoilerplate},
		{"adslot", MatchPrefix, ClassBoilerplate},
		{"dfp", MatchPrefix, ClassBoilerplate},
		{"nav", MatchPrefix, ClassBoilerplate},
		{"menu", MatchPrefix, ClassBoilerplate},
		{"breadcrumb", MatchPrefix, ClassBoilerplate},
		{"sidebar", MatchSubstring, ClassBoilerplate},
		{"comment", MatchToken, ClassBoilerplate},
		{"comments", MatchToken, ClassBoilerplate},
		{"commentlist", MatchPrefix, ClassBoilerplate},
		{"disqus", MatchPrefix, ClassBoilerplate},
		{"share", MatchPrefix, ClassBoilerplate},
		{"sharing", MatchPrefix, ClassBoilerplate},
		{"social", MatchPrefix, ClassBoilerplate},
		{"related", MatchPrefix, ClassBoilerplate},
		{"recommend", MatchPrefix, ClassBoilerplate},
		{"trending", MatchPrefix, ClassBoilerplate},
		{"popular", MatchPrefix, ClassBoilerplate},
		{"footer", MatchSubstring, ClassBoilerplate},
		{"newsletter", MatchSubstring, ClassBoilerplate},
		{"subscribe", MatchPrefix, ClassBoilerplate},
		{"signup", MatchPrefix, ClassBoilerplate},
		{"cookie", MatchPrefix, ClassBoilerplate},
		{"consent", MatchPrefix, ClassBoilerplate},
		{"promo", MatchPrefix, ClassBoilerplate},
		{"sponsor", MatchPrefix, ClassBoilerplate},
		{"banner", MatchSubstring, ClassBoilerplate},
		{"popup", MatchPrefix, ClassBoilerplate},
		{"modal", MatchPrefix, ClassBoilerplate},
		{"widget", MatchPrefix, ClassBoilerplate},
		{"masthead", MatchPrefix, ClassBoilerplate},
		{"outbrain", MatchPrefix, ClassBoilerplate},
		{"taboola", MatchPrefix, ClassBoilerplate},
		{"article", MatchPrefix, ClassContent},
		{"content", MatchSubstring, ClassContent},
		{"post", MatchPrefix, ClassContent},
		{"entry", MatchPrefix, ClassContent},
		{"story", MatchPrefix, ClassContent},
		{"body", MatchSubstring, ClassContent},
		{"main", MatchPrefix, ClassContent},
		{"text", MatchPrefix, ClassContent},
		{"prose", MatchToken, ClassContent},
	}
}

// Classify classifies an element from its class and id attribute values.
func (v Vocabulary) Classify(class, id string) Class {
	content, boilerplate := v.signals(class, id)
	switch {
	case boilerplate:
		return ClassBoilerplate
	case content:
		return ClassContent
	}
	return ClassNeutral
}

// signals reports whether any token matches a content term and whether
// any matches a boilerplate term.
func (v Vocabulary) signals(class, id string) (content, boilerplate bool) {
	for _, token := range tokenize(class + " " + id) {
		for _, term := range v {
			if !term.matches(token) {
				continue
			}
			switch term.Class {
			case ClassBoilerplate:
				boilerplate = true
			case ClassContent:
				content = true
			}
		}
	}
	return content, boilerplate
}

// tokenize splits attribute values on any non-alphanumeric rune and
// lowercases the tokens. Camel case is split too.
func tokenize(s string) []string {
	var tokens []string
	var b strings.Builder
	var prev rune
	flush := func() {
		if b.Len() > 0 {
			tokens = append(tokens, b.String())
			b.Reset()
		}
	}
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			if unicode.IsLower(prev) {
				flush()
			}
			b.WriteRune(unicode.ToLower(r))
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		default:
			flush()
		}
		prev = r
	}
	flush()
	return tokens
}
