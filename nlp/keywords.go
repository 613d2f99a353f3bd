package nlp

import (
	"context"
	"sort"
	"strings"

	"github.com/fwojciec/scoop"
)

// maxPhraseWords bounds the length of RAKE candidate phrases.
const maxPhraseWords = 3

var (
	_ scoop.Strategy[[]scoop.Keyword] = (*RAKE)(nil)
	_ scoop.Strategy[[]scoop.Keyword] = (*Frequency)(nil)
)

// RAKE ranks keyword phrases by word co-occurrence (Rapid Automatic
// Keyword Extraction). Phrases are runs of non-stop words inside a
// sentence; a word scores degree/frequency and a phrase the sum of its
// words.
type RAKE struct{}

// Name returns "rake".
func (RAKE) Name() string { return scoop.KeywordRAKE }

// Attempt ranks phrases in in.Text.
func (RAKE) Attempt(ctx context.Context, in scoop.StageInput) ([]scoop.Keyword, error) {
	kws := RankPhrases(in.Text)
	if len(kws) == 0 {
		return nil, scoop.Errorf(scoop.ESTAGE, "no keyword candidates")
	}
	return kws, nil
}

// RankPhrases returns RAKE-scored phrases, best first. Equal scores keep
// first-occurrence order.
func RankPhrases(text string) []scoop.Keyword {
	var phrases [][]string
	for _, sentence := range Sentences(text) {
		var cur []string
		flush := func() {
			if len(cur) > 0 && len(cur) <= maxPhraseWords {
				phrases = append(phrases, cur)
			}
			cur = nil
		}
		for _, chunk := range strings.FieldsFunc(sentence, isPhraseBreak) {
			for _, w := range Words(chunk) {
				if isCandidateWord(w) {
					cur = append(cur, w)
				} else {
					flush()
				}
			}
			flush()
		}
	}

	freq := make(map[string]float64)
	degree := make(map[string]float64)
	for _, p := range phrases {
		for _, w := range p {
			freq[w]++
			degree[w] += float64(len(p))
		}
	}

	var out []scoop.Keyword
	seen := make(map[string]int)
	for _, p := range phrases {
		term := strings.Join(p, " ")
		if _, ok := seen[term]; ok {
			continue
		}
		var score float64
		for _, w := range p {
			score += degree[w] / freq[w]
		}
		seen[term] = len(out)
		out = append(out, scoop.Keyword{Term: term, Score: score})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

func isPhraseBreak(r rune) bool {
	return strings.ContainsRune(",;:()[]{}\"“”—–|/", r)
}

// Frequency ranks single words by occurrence count after stop-word
// removal. Inflections of one stem are counted together.
type Frequency struct{}

// Name returns "frequency".
func (Frequency) Name() string { return scoop.KeywordFrequency }

// Attempt ranks words in in.Text.
func (Frequency) Attempt(ctx context.Context, in scoop.StageInput) ([]scoop.Keyword, error) {
	kws := RankWords(in.Text)
	if len(kws) == 0 {
		return nil, scoop.Errorf(scoop.ESTAGE, "no keyword candidates")
	}
	return kws, nil
}

// RankWords returns words ordered by stem frequency, best first. A stem
// is reported by its first surface form. Equal counts keep
// first-occurrence order.
func RankWords(text string) []scoop.Keyword {
	index := make(map[string]int)
	var out []scoop.Keyword
	for _, w := range Words(text) {
		if !isCandidateWord(w) {
			continue
		}
		stem := Stem(w)
		if i, ok := index[stem]; ok {
			out[i].Score++
			continue
		}
		index[stem] = len(out)
		out = append(out, scoop.Keyword{Term: w, Score: 1})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}
