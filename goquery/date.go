package goquery

import (
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// datePrefix matches labels that commonly precede a date.
var datePrefix = regexp.MustCompile(`(?i)^(published|posted|updated|last updated|date|on)\s*:?\s*`)

// datePatterns find date-like strings in running text, most specific first.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}(?:[T ]\d{2}:\d{2}(?::\d{2})?(?:Z|[+-]\d{2}:?\d{2})?)?\b`),
	regexp.MustCompile(`(?i)\b(?:jan|feb|mar|apr|may|jun|jul|aug|sep|sept|oct|nov|dec)[a-z]*\.? \d{1,2},? \d{4}\b`),
	regexp.MustCompile(`(?i)\b\d{1,2} (?:jan|feb|mar|apr|may|jun|jul|aug|sep|sept|oct|nov|dec)[a-z]*\.? \d{4}\b`),
	regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{4}\b`),
}

// fallbackLayouts cover formats dateparse rejects.
var fallbackLayouts = []string{
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
	"January 2, 2006 3:04 PM",
	"Jan. 2, 2006",
	"2 January 2006 15:04",
	"Monday, January 2, 2006",
	"Monday 2 January 2006",
	"2006/01/02 15:04",
}

// ParseDate parses a date in any common format and returns it in UTC.
// Dates without a zone are read as UTC.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(datePrefix.ReplaceAllString(normalizeSpace(s), ""))
	if s == "" || len(s) > 64 {
		return time.Time{}, false
	}
	if t, err := dateparse.ParseIn(s, time.UTC); err == nil && plausible(t) {
		return t.UTC(), true
	}
	for _, layout := range fallbackLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil && plausible(t) {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// FindDate returns the first parseable date-like string in text.
func FindDate(text string) (time.Time, bool) {
	type hit struct {
		pos int
		s   string
	}
	var best *hit
	for _, re := range datePatterns {
		loc := re.FindStringIndex(text)
		if loc == nil {
			continue
		}
		if best == nil || loc[0] < best.pos {
			best = &hit{pos: loc[0], s: text[loc[0]:loc[1]]}
		}
	}
	if best == nil {
		return time.Time{}, false
	}
	return ParseDate(best.s)
}

func plausible(t time.Time) bool {
	return t.Year() >= 1990 && t.Year() <= 2100
}
