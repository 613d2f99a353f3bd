package mock

import (
	"context"

	"github.com/fwojciec/scoop"
)

var _ scoop.Enricher = (*Enricher)(nil)

// Enricher is a mock implementation of scoop.Enricher.
type Enricher struct {
	EnrichFn func(ctx context.Context, in scoop.StageInput) scoop.EnrichmentResult
}

func (e *Enricher) Enrich(ctx context.Context, in scoop.StageInput) scoop.EnrichmentResult {
	return e.EnrichFn(ctx, in)
}

var _ scoop.Strategy[string] = (*Strategy[string])(nil)

// Strategy is a mock implementation of scoop.Strategy.
type Strategy[T any] struct {
	NameFn    func() string
	AttemptFn func(ctx context.Context, in scoop.StageInput) (T, error)
}

func (s *Strategy[T]) Name() string {
	return s.NameFn()
}

func (s *Strategy[T]) Attempt(ctx context.Context, in scoop.StageInput) (T, error) {
	return s.AttemptFn(ctx, in)
}

var _ scoop.SentimentScorer = (*SentimentScorer)(nil)

// SentimentScorer is a mock implementation of scoop.SentimentScorer.
type SentimentScorer struct {
	NameFn  func() string
	ScoreFn func(ctx context.Context, text string) (float64, error)
}

func (s *SentimentScorer) Name() string {
	return s.NameFn()
}

func (s *SentimentScorer) Score(ctx context.Context, text string) (float64, error) {
	return s.ScoreFn(ctx, text)
}
