package enrich

import (
	"github.com/fwojciec/scoop"
	"github.com/fwojciec/scoop/nlp"
)

// SummaryStrategies returns the fallback order for a summary method. The
// abstractive strategy is included only when heavy methods are enabled
// and one is provided. The naive lead summary always comes last.
func SummaryStrategies(method scoop.SummaryMethod, heavy bool, abstractive scoop.Strategy[string]) []scoop.Strategy[string] {
	extractive := nlp.TextRank{Sentences: nlp.DefaultSummarySentences}
	naive := nlp.Lead{Sentences: nlp.DefaultSummarySentences}

	var out []scoop.Strategy[string]
	switch method {
	case scoop.SummaryNaive:
		return []scoop.Strategy[string]{naive}
	case scoop.SummaryExtractive:
		return []scoop.Strategy[string]{extractive, naive}
	}
	// auto and abstractive share the same order.
	if heavy && abstractive != nil {
		out = append(out, abstractive)
	}
	return append(out, extractive, naive)
}
