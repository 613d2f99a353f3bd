package prose

import (
	"context"
	"sort"
	"strings"

	"github.com/fwojciec/scoop"
	"github.com/fwojciec/scoop/nlp"
	"github.com/jdkato/prose/v2"
)

// maxPhraseWords caps the length of a noun phrase.
const maxPhraseWords = 4

var _ scoop.Strategy[[]scoop.Keyword] = (*Keywords)(nil)

// Keywords ranks noun phrases found by part-of-speech tagging.
type Keywords struct {
	Model *Model
}

// Name returns "prose".
func (k *Keywords) Name() string { return Name }

// Attempt ranks the noun phrases of in.Text.
func (k *Keywords) Attempt(ctx context.Context, in scoop.StageInput) ([]scoop.Keyword, error) {
	if k.Model == nil {
		return nil, scoop.Errorf(scoop.EUNAVAILABLE, "prose model not configured")
	}
	doc, err := k.Model.document(in.Text)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	keywords := RankNounPhrases(doc.Tokens())
	if len(keywords) == 0 {
		return nil, scoop.Errorf(scoop.ESTAGE, "no noun phrases found")
	}
	return keywords, nil
}

// RankNounPhrases scores runs of adjectives and nouns that end in a noun.
// A phrase scores its frequency times its word count. Ties keep the order
// of first occurrence.
func RankNounPhrases(tokens []prose.Token) []scoop.Keyword {
	scores := map[string]float64{}
	var order []string

	record := func(words []string) {
		for len(words) > 0 && nlp.IsStopWord(words[0]) {
			words = words[1:]
		}
		if len(words) == 0 {
			return
		}
		if len(words) > maxPhraseWords {
			words = words[len(words)-maxPhraseWords:]
		}
		phrase := strings.Join(words, " ")
		if len([]rune(phrase)) < 3 {
			return
		}
		if _, ok := scores[phrase]; !ok {
			order = append(order, phrase)
		}
		scores[phrase] += float64(len(words))
	}

	var run []string
	var nouns int
	// flush records the current run up to its last noun.
	flush := func() {
		if nouns > 0 {
			record(run[:nouns])
		}
		run, nouns = nil, 0
	}

	for _, tok := range tokens {
		word := strings.ToLower(tok.Text)
		switch {
		case strings.HasPrefix(tok.Tag, "NN"):
			run = append(run, word)
			nouns = len(run)
		case strings.HasPrefix(tok.Tag, "JJ"):
			run = append(run, word)
		default:
			flush()
		}
	}
	flush()

	out := make([]scoop.Keyword, 0, len(order))
	for _, phrase := range order {
		out = append(out, scoop.Keyword{Term: phrase, Score: scores[phrase]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}
