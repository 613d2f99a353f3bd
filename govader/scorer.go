// Package govader provides a scoop.SentimentScorer backed by the VADER
// lexicon port in jonreiter/govader.
package govader

import (
	"context"
	"strings"
	"sync"

	"github.com/fwojciec/scoop"
	"github.com/jonreiter/govader"
)

// Ensure Scorer implements scoop.SentimentScorer at compile time.
var _ scoop.SentimentScorer = (*Scorer)(nil)

// Analyzer is a lazily built, shared handle to the VADER lexicon. The
// zero value is ready to use.
type Analyzer struct {
	once sync.Once
	sia  *govader.SentimentIntensityAnalyzer
}

// Load builds the analyzer on first use.
func (a *Analyzer) Load() *govader.SentimentIntensityAnalyzer {
	a.once.Do(func() {
		a.sia = govader.NewSentimentIntensityAnalyzer()
	})
	return a.sia
}

// Scorer scores polarity with valence rules: negation, intensifiers,
// contrast and punctuation emphasis.
type Scorer struct {
	analyzer *Analyzer
}

// NewScorer creates a Scorer using analyzer. If analyzer is nil a private
// handle is created.
func NewScorer(analyzer *Analyzer) *Scorer {
	if analyzer == nil {
		analyzer = &Analyzer{}
	}
	return &Scorer{analyzer: analyzer}
}

// Name returns "vader".
func (s *Scorer) Name() string { return scoop.ScorerVADER }

// Score returns the VADER compound score in [-1, 1]. Text without any
// rated words scores 0.
func (s *Scorer) Score(ctx context.Context, text string) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if strings.TrimSpace(text) == "" {
		return 0, scoop.Errorf(scoop.ESTAGE, "no text to score")
	}
	return s.analyzer.Load().PolarityScores(text).Compound, nil
}
