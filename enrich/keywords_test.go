package enrich_test

import (
	"context"
	"testing"

	"github.com/fwojciec/scoop"
	"github.com/fwojciec/scoop/enrich"
	"github.com/fwojciec/scoop/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keywordStrategy(kws []scoop.Keyword, err error) *mock.Strategy[[]scoop.Keyword] {
	return &mock.Strategy[[]scoop.Keyword]{
		NameFn: func() string { return "fake" },
		AttemptFn: func(context.Context, scoop.StageInput) ([]scoop.Keyword, error) {
			return kws, err
		},
	}
}

func TestMerge(t *testing.T) {
	t.Parallel()

	stat := []scoop.Keyword{{Term: "transit budget", Score: 8}, {Term: "council", Score: 4}}
	model := []scoop.Keyword{{Term: "Council", Score: 2}, {Term: "bus lines", Score: 1}}

	got := enrich.Merge(stat, model)

	require.Len(t, got, 3)
	assert.Equal(t, "council", got[0].Term)
	assert.InDelta(t, 1.5, got[0].Score, 1e-9)
	assert.Equal(t, "transit budget", got[1].Term)
	assert.InDelta(t, 1.0, got[1].Score, 1e-9)
	assert.Equal(t, "bus lines", got[2].Term)
	assert.InDelta(t, 0.5, got[2].Score, 1e-9)
}

func TestTerms(t *testing.T) {
	t.Parallel()

	kws := []scoop.Keyword{
		{Term: "Budget"}, {Term: "budget"}, {Term: "  bus   lines "}, {Term: ""}, {Term: "council"},
	}

	assert.Equal(t, []string{"Budget", "bus lines", "council"}, enrich.Terms(kws, 10))
	assert.Equal(t, []string{"Budget", "bus lines"}, enrich.Terms(kws, 2))
	assert.Equal(t, []string{}, enrich.Terms(nil, 2))
}

func TestHybrid_Attempt(t *testing.T) {
	t.Parallel()

	t.Run("missing model is unavailable", func(t *testing.T) {
		t.Parallel()

		h := &enrich.Hybrid{Statistical: keywordStrategy([]scoop.Keyword{{Term: "a", Score: 1}}, nil)}

		_, err := h.Attempt(context.Background(), scoop.StageInput{Text: "text"})

		assert.Equal(t, scoop.EUNAVAILABLE, scoop.ErrorCode(err))
	})

	t.Run("model failure fails the attempt", func(t *testing.T) {
		t.Parallel()

		h := &enrich.Hybrid{
			Statistical: keywordStrategy([]scoop.Keyword{{Term: "a", Score: 1}}, nil),
			Model:       keywordStrategy(nil, scoop.Errorf(scoop.ESTAGE, "no phrases")),
		}

		_, err := h.Attempt(context.Background(), scoop.StageInput{Text: "text"})

		assert.Equal(t, scoop.ESTAGE, scoop.ErrorCode(err))
	})

	t.Run("merges both rankings", func(t *testing.T) {
		t.Parallel()

		h := &enrich.Hybrid{
			Statistical: keywordStrategy([]scoop.Keyword{{Term: "budget", Score: 4}}, nil),
			Model:       keywordStrategy([]scoop.Keyword{{Term: "budget", Score: 3}, {Term: "council", Score: 3}}, nil),
		}

		got, err := h.Attempt(context.Background(), scoop.StageInput{Text: "text"})

		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "budget", got[0].Term)
		assert.InDelta(t, 2.0, got[0].Score, 1e-9)
	})
}
