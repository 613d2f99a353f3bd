package scoop

import "context"

// Enrichment stage names.
const (
	StageKeywords  = "keywords"
	StageSentiment = "sentiment"
	StageEntities  = "entities"
	StageSummary   = "summary"
)

// Sentiment labels.
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// Entity categories with a fixed position in EntityGroups ordering.
const (
	EntityPerson       = "person"
	EntityOrganization = "organization"
	EntityLocation     = "location"
)

// StageInput is the text handed to every enrichment strategy.
type StageInput struct {
	Title    string
	Text     string
	Language string
}

// Strategy is one method of computing an enrichment stage.
// Strategies are tried in order until one succeeds.
type Strategy[T any] interface {
	// Name identifies the method in stage reports.
	Name() string

	// Attempt computes the stage output. Returns EUNAVAILABLE when the
	// method cannot run (missing model or client) and ESTAGE when it
	// ran but failed.
	Attempt(ctx context.Context, in StageInput) (T, error)
}

// Keyword is a ranked candidate keyword.
type Keyword struct {
	Term  string
	Score float64
}

// Sentiment is a fused polarity score in [-1, 1] with its label.
type Sentiment struct {
	Label    string  `json:"label"`
	Compound float64 `json:"compound"`
	Method   string  `json:"method"`
}

// SentimentScorer produces a compound polarity score in [-1, 1].
type SentimentScorer interface {
	Name() string
	Score(ctx context.Context, text string) (float64, error)
}

// EntityGroup holds unique entity names of one category in order of
// first occurrence.
type EntityGroup struct {
	Category string   `json:"category"`
	Names    []string `json:"names"`
}

// Entities is an ordered list of entity groups.
type Entities []EntityGroup

// Names returns the names recorded for category.
func (e Entities) Names(category string) []string {
	for _, g := range e {
		if g.Category == category {
			return g.Names
		}
	}
	return nil
}

// Summary is a short summary of the article body.
type Summary struct {
	Text   string `json:"text"`
	Method string `json:"method"`
}

// StageState is the terminal state of an enrichment stage.
type StageState string

// Stage states. A failed attempt moves the stage to its next fallback;
// when none remain the stage is exhausted.
const (
	StateNotAttempted StageState = "not_attempted"
	StateSucceeded    StageState = "succeeded"
	StateExhausted    StageState = "exhausted"
)

// Attempt records one failed strategy attempt.
type Attempt struct {
	Method string `json:"method"`
	Err    string `json:"err"`
}

// StageReport describes how an enrichment stage was computed.
type StageReport struct {
	Stage    string     `json:"stage"`
	State    StageState `json:"state"`
	Method   string     `json:"method,omitempty"`
	Attempts []Attempt  `json:"attempts,omitempty"`
}

// EnrichmentResult holds the output of every enrichment stage. Each field
// is absent when its stage produced nothing.
type EnrichmentResult struct {
	Keywords  Optional[[]string]  `json:"keywords"`
	Sentiment Optional[Sentiment] `json:"sentiment"`
	Entities  Optional[Entities]  `json:"entities"`
	Summary   Optional[Summary]   `json:"summary"`
	Stages    []StageReport       `json:"stages"`

	// NLPProcessed is true when at least one stage succeeded.
	NLPProcessed bool `json:"nlpProcessed"`
}

// Report returns the report for stage.
func (r EnrichmentResult) Report(stage string) (StageReport, bool) {
	for _, s := range r.Stages {
		if s.Stage == stage {
			return s, true
		}
	}
	return StageReport{}, false
}

// Enricher runs the enrichment stages over a text.
type Enricher interface {
	// Enrich never fails. Stage failures are reported in the result.
	Enrich(ctx context.Context, in StageInput) EnrichmentResult
}
