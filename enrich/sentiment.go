package enrich

import (
	"context"
	"strings"

	"github.com/fwojciec/scoop"
)

// FusedMethod names the fused sentiment strategy.
const FusedMethod = "fused"

var _ scoop.Strategy[scoop.Sentiment] = (*Fused)(nil)

// Fused averages the scores of every scorer that succeeds.
type Fused struct {
	Scorers   []scoop.SentimentScorer
	Threshold float64
}

// Name returns "fused".
func (f *Fused) Name() string { return FusedMethod }

// Attempt scores in.Text with each scorer. It fails only when every
// scorer fails.
func (f *Fused) Attempt(ctx context.Context, in scoop.StageInput) (scoop.Sentiment, error) {
	if len(f.Scorers) == 0 {
		return scoop.Sentiment{}, scoop.Errorf(scoop.EUNAVAILABLE, "no sentiment scorers configured")
	}

	var sum float64
	var used []string
	var failures []string
	for _, s := range f.Scorers {
		score, err := s.Score(ctx, in.Text)
		if err != nil {
			failures = append(failures, s.Name()+": "+scoop.ErrorMessage(err))
			continue
		}
		sum += clamp(score)
		used = append(used, s.Name())
	}
	if len(used) == 0 {
		return scoop.Sentiment{}, scoop.Errorf(scoop.ESTAGE, "all sentiment scorers failed: %s", strings.Join(failures, "; "))
	}

	compound := sum / float64(len(used))
	return scoop.Sentiment{
		Label:    Label(compound, f.Threshold),
		Compound: compound,
		Method:   strings.Join(used, "+"),
	}, nil
}

// Label classifies a compound score.
func Label(compound, threshold float64) string {
	switch {
	case compound > threshold:
		return scoop.SentimentPositive
	case compound < -threshold:
		return scoop.SentimentNegative
	}
	return scoop.SentimentNeutral
}

func clamp(v float64) float64 {
	switch {
	case v > 1:
		return 1
	case v < -1:
		return -1
	}
	return v
}
