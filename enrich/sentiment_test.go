package enrich_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/scoop"
	"github.com/fwojciec/scoop/enrich"
	"github.com/fwojciec/scoop/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scorer(name string, score float64, err error) *mock.SentimentScorer {
	return &mock.SentimentScorer{
		NameFn:  func() string { return name },
		ScoreFn: func(context.Context, string) (float64, error) { return score, err },
	}
}

func TestLabel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, scoop.SentimentPositive, enrich.Label(0.06, 0.05))
	assert.Equal(t, scoop.SentimentNeutral, enrich.Label(0.05, 0.05))
	assert.Equal(t, scoop.SentimentNeutral, enrich.Label(-0.05, 0.05))
	assert.Equal(t, scoop.SentimentNegative, enrich.Label(-0.06, 0.05))
}

func TestFused_Attempt(t *testing.T) {
	t.Parallel()

	t.Run("averages successful scorers", func(t *testing.T) {
		t.Parallel()

		f := &enrich.Fused{
			Scorers:   []scoop.SentimentScorer{scorer("vader", 0.8, nil), scorer("bayes", 0.2, nil)},
			Threshold: 0.05,
		}

		got, err := f.Attempt(context.Background(), scoop.StageInput{Text: "text"})

		require.NoError(t, err)
		assert.InDelta(t, 0.5, got.Compound, 1e-9)
		assert.Equal(t, scoop.SentimentPositive, got.Label)
		assert.Equal(t, "vader+bayes", got.Method)
	})

	t.Run("single success is used directly", func(t *testing.T) {
		t.Parallel()

		f := &enrich.Fused{
			Scorers:   []scoop.SentimentScorer{scorer("vader", -0.4, nil), scorer("bayes", 0, errors.New("model missing"))},
			Threshold: 0.05,
		}

		got, err := f.Attempt(context.Background(), scoop.StageInput{Text: "text"})

		require.NoError(t, err)
		assert.InDelta(t, -0.4, got.Compound, 1e-9)
		assert.Equal(t, scoop.SentimentNegative, got.Label)
		assert.Equal(t, "vader", got.Method)
	})

	t.Run("scores are clamped", func(t *testing.T) {
		t.Parallel()

		f := &enrich.Fused{Scorers: []scoop.SentimentScorer{scorer("wild", 3, nil)}}

		got, err := f.Attempt(context.Background(), scoop.StageInput{Text: "text"})

		require.NoError(t, err)
		assert.InDelta(t, 1.0, got.Compound, 1e-9)
	})

	t.Run("all failures fail the attempt", func(t *testing.T) {
		t.Parallel()

		f := &enrich.Fused{Scorers: []scoop.SentimentScorer{scorer("bayes", 0, errors.New("model missing"))}}

		_, err := f.Attempt(context.Background(), scoop.StageInput{Text: "text"})

		assert.Equal(t, scoop.ESTAGE, scoop.ErrorCode(err))
	})

	t.Run("no scorers is unavailable", func(t *testing.T) {
		t.Parallel()

		_, err := (&enrich.Fused{}).Attempt(context.Background(), scoop.StageInput{Text: "text"})

		assert.Equal(t, scoop.EUNAVAILABLE, scoop.ErrorCode(err))
	})
}
