package nlp

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/fwojciec/scoop"
)

// Summary defaults.
const (
	DefaultSummarySentences = 3
	minLeadSentenceLength   = 30
	maxLeadRunes            = 1000
	minRankedSentenceLength = 20
	textRankDamping         = 0.85
	textRankIterations      = 50
	textRankTolerance       = 1e-6
)

var (
	_ scoop.Strategy[string] = (*TextRank)(nil)
	_ scoop.Strategy[string] = (*Lead)(nil)
)

// TextRank produces an extractive summary by ranking sentences on a
// stem-overlap similarity graph.
type TextRank struct {
	// Sentences is the number of sentences to select.
	Sentences int
}

// Name returns "extractive".
func (TextRank) Name() string { return string(scoop.SummaryExtractive) }

// Attempt summarizes in.Text.
func (s TextRank) Attempt(ctx context.Context, in scoop.StageInput) (string, error) {
	n := s.Sentences
	if n <= 0 {
		n = DefaultSummarySentences
	}

	var sentences []string
	for _, sent := range Sentences(in.Text) {
		if len(sent) >= minRankedSentenceLength {
			sentences = append(sentences, sent)
		}
	}
	if len(sentences) <= n {
		return "", scoop.Errorf(scoop.ESTAGE, "too few sentences to rank: %d", len(sentences))
	}

	scores := RankSentences(sentences)
	idx := make([]int, len(sentences))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return scores[idx[a]] > scores[idx[b]] })
	top := idx[:n]
	sort.Ints(top)

	picked := make([]string, len(top))
	for i, j := range top {
		picked[i] = sentences[j]
	}
	return strings.Join(picked, " "), nil
}

// RankSentences returns a TextRank score for each sentence.
func RankSentences(sentences []string) []float64 {
	n := len(sentences)
	bags := make([]map[string]bool, n)
	for i, s := range sentences {
		bags[i] = make(map[string]bool)
		for _, w := range Words(s) {
			if !IsStopWord(w) {
				bags[i][Stem(w)] = true
			}
		}
	}

	weights := make([][]float64, n)
	outSum := make([]float64, n)
	for i := range weights {
		weights[i] = make([]float64, n)
		for j := range weights[i] {
			if i == j {
				continue
			}
			weights[i][j] = similarity(bags[i], bags[j])
			outSum[i] += weights[i][j]
		}
	}

	scores := make([]float64, n)
	for i := range scores {
		scores[i] = 1
	}
	for iter := 0; iter < textRankIterations; iter++ {
		next := make([]float64, n)
		var delta float64
		for i := 0; i < n; i++ {
			var sum float64
			for j := 0; j < n; j++ {
				if weights[j][i] > 0 && outSum[j] > 0 {
					sum += weights[j][i] / outSum[j] * scores[j]
				}
			}
			next[i] = (1 - textRankDamping) + textRankDamping*sum
			delta += math.Abs(next[i] - scores[i])
		}
		scores = next
		if delta < textRankTolerance {
			break
		}
	}
	return scores
}

func similarity(a, b map[string]bool) float64 {
	if len(a) < 2 || len(b) < 2 {
		return 0
	}
	var overlap int
	for w := range a {
		if b[w] {
			overlap++
		}
	}
	if overlap == 0 {
		return 0
	}
	return float64(overlap) / (math.Log(float64(len(a))) + math.Log(float64(len(b))))
}

// Lead produces a summary from the leading sentences of the text. It
// succeeds for any text with at least one word.
type Lead struct {
	// Sentences is the number of sentences to keep.
	Sentences int
}

// Name returns "naive".
func (Lead) Name() string { return string(scoop.SummaryNaive) }

// Attempt summarizes in.Text.
func (s Lead) Attempt(ctx context.Context, in scoop.StageInput) (string, error) {
	if summary := LeadSummary(in.Text, s.Sentences); summary != "" {
		return summary, nil
	}
	return "", scoop.Errorf(scoop.ESTAGE, "empty text")
}

// LeadSummary returns the first n sentences longer than 30 characters.
// When no sentence qualifies it returns the start of the text. The result
// is cut at a word boundary to at most 1000 runes.
func LeadSummary(text string, n int) string {
	if n <= 0 {
		n = DefaultSummarySentences
	}
	var picked []string
	for _, s := range Sentences(text) {
		if len(s) > minLeadSentenceLength {
			picked = append(picked, s)
			if len(picked) == n {
				break
			}
		}
	}
	if len(picked) > 0 {
		return truncateWords(strings.Join(picked, " "), maxLeadRunes)
	}
	return truncateWords(strings.Join(strings.Fields(text), " "), maxLeadRunes)
}

func truncateWords(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	cut := string(runes[:max])
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return cut
}
