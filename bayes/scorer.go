// Package bayes provides a scoop.SentimentScorer backed by the naive Bayes
// model of cdipaolo/sentiment.
package bayes

import (
	"context"
	"math"
	"strings"
	"sync"

	"github.com/cdipaolo/sentiment"
	"github.com/fwojciec/scoop"
)

// Ensure Scorer implements scoop.SentimentScorer at compile time.
var _ scoop.SentimentScorer = (*Scorer)(nil)

// Model is a lazily restored, shared handle to the trained sentiment
// model. The zero value is ready to use.
type Model struct {
	once   sync.Once
	models sentiment.Models
	err    error
}

// Load restores the model on first use.
func (m *Model) Load() (sentiment.Models, error) {
	m.once.Do(func() {
		m.models, m.err = sentiment.Restore()
	})
	return m.models, m.err
}

// windowWords bounds the words scored at once. The model multiplies word
// likelihoods, which underflow on longer spans.
const windowWords = 12

// Scorer measures how confidently the model leans positive or negative.
type Scorer struct {
	model *Model
}

// NewScorer creates a Scorer using model. If model is nil a private
// handle is created.
func NewScorer(model *Model) *Scorer {
	if model == nil {
		model = &Model{}
	}
	return &Scorer{model: model}
}

// Name returns "bayes".
func (s *Scorer) Name() string { return scoop.ScorerBayes }

// Score returns the mean of P(positive) - P(negative) over short windows
// of text. Text the model is unsure about lands near 0.
func (s *Scorer) Score(ctx context.Context, text string) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if strings.TrimSpace(text) == "" {
		return 0, scoop.Errorf(scoop.ESTAGE, "no text to score")
	}

	models, err := s.model.Load()
	if err != nil {
		return 0, scoop.Errorf(scoop.EUNAVAILABLE, "restoring sentiment model: %v", err)
	}
	nb := models[sentiment.English]
	if nb == nil {
		return 0, scoop.Errorf(scoop.EUNAVAILABLE, "no english sentiment model")
	}

	var sum float64
	var n int
	for _, window := range windows(text) {
		class, p := nb.Probability(window)
		if math.IsNaN(p) || math.IsInf(p, 0) {
			continue
		}
		lean := 2*p - 1
		if class == 0 {
			lean = -lean
		}
		sum += lean
		n++
	}
	if n == 0 {
		return 0, scoop.Errorf(scoop.ESTAGE, "no scorable text")
	}
	return sum / float64(n), nil
}

// windows splits text into sentences of at most windowWords words.
func windows(text string) []string {
	var out []string
	for _, sentence := range strings.FieldsFunc(text, sentiment.SplitSentences) {
		words := strings.Fields(sentence)
		for len(words) > 0 {
			k := min(len(words), windowWords)
			out = append(out, strings.Join(words[:k], " "))
			words = words[k:]
		}
	}
	return out
}
