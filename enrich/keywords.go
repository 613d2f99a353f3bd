package enrich

import (
	"context"
	"sort"
	"strings"

	"github.com/fwojciec/scoop"
	"golang.org/x/text/cases"
)

var _ scoop.Strategy[[]scoop.Keyword] = (*Hybrid)(nil)

// Hybrid combines a statistical ranking with a model ranking. Each list is
// normalized by its best score and the two are summed per term.
type Hybrid struct {
	Statistical scoop.Strategy[[]scoop.Keyword]
	Model       scoop.Strategy[[]scoop.Keyword]
}

// Name returns "hybrid".
func (h *Hybrid) Name() string { return scoop.KeywordHybrid }

// Attempt requires both rankings to succeed.
func (h *Hybrid) Attempt(ctx context.Context, in scoop.StageInput) ([]scoop.Keyword, error) {
	if h.Statistical == nil || h.Model == nil {
		return nil, scoop.Errorf(scoop.EUNAVAILABLE, "hybrid keywords need a statistical and a model ranking")
	}
	stat, err := h.Statistical.Attempt(ctx, in)
	if err != nil {
		return nil, err
	}
	model, err := h.Model.Attempt(ctx, in)
	if err != nil {
		return nil, err
	}
	return Merge(stat, model), nil
}

// Merge normalizes each list to [0, 1] and sums the scores of equal terms.
// Equal totals keep first-seen order, statistical list first.
func Merge(lists ...[]scoop.Keyword) []scoop.Keyword {
	fold := cases.Fold()
	totals := map[string]float64{}
	terms := map[string]string{}
	var order []string

	for _, list := range lists {
		var best float64
		for _, k := range list {
			if k.Score > best {
				best = k.Score
			}
		}
		if best <= 0 {
			continue
		}
		for _, k := range list {
			term := strings.TrimSpace(k.Term)
			if term == "" {
				continue
			}
			key := fold.String(term)
			if _, ok := totals[key]; !ok {
				order = append(order, key)
				terms[key] = term
			}
			totals[key] += k.Score / best
		}
	}

	out := make([]scoop.Keyword, 0, len(order))
	for _, key := range order {
		out = append(out, scoop.Keyword{Term: terms[key], Score: totals[key]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

// Terms returns the distinct terms of kws in rank order, compared
// case-insensitively, capped at max.
func Terms(kws []scoop.Keyword, max int) []string {
	fold := cases.Fold()
	seen := map[string]bool{}
	out := []string{}
	for _, k := range kws {
		term := strings.Join(strings.Fields(k.Term), " ")
		if term == "" {
			continue
		}
		key := fold.String(term)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, term)
		if max > 0 && len(out) == max {
			break
		}
	}
	return out
}
