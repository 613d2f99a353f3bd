package scoop

import (
	"strings"
	"time"
)

// SummaryMethod selects how summaries are produced.
type SummaryMethod string

// Summary methods.
const (
	SummaryAuto        SummaryMethod = "auto"
	SummaryExtractive  SummaryMethod = "extractive"
	SummaryAbstractive SummaryMethod = "abstractive"
	SummaryNaive       SummaryMethod = "naive"
)

// ParseSummaryMethod parses a summary method name. "sumy" is accepted for
// extractive, "transformer" for abstractive, and "simple" for naive.
func ParseSummaryMethod(s string) (SummaryMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return SummaryAuto, nil
	case "extractive", "sumy":
		return SummaryExtractive, nil
	case "abstractive", "transformer", "transformers":
		return SummaryAbstractive, nil
	case "naive", "simple":
		return SummaryNaive, nil
	}
	return "", Errorf(EINVALID, "unknown summary method %q", s)
}

// Content extraction methods.
const (
	ContentScorer = "scorer"
	ContentAuto   = "auto"
)

// Keyword methods.
const (
	KeywordHybrid    = "hybrid"
	KeywordRAKE      = "rake"
	KeywordFrequency = "frequency"
)

// Sentiment scorer names.
const (
	ScorerVADER = "vader"
	ScorerBayes   = "bayes"
)

// Config controls extraction and enrichment.
type Config struct {
	// TargetLanguage is an ISO 639-1 code. Empty disables translation.
	TargetLanguage string

	EnableEnrichment bool
	SummaryMethod    SummaryMethod

	// EnableHeavyMethods allows resource-heavy methods such as
	// abstractive summarization.
	EnableHeavyMethods bool

	MinLanguageConfidence float64
	MaxKeywords           int

	// MinScore is the lowest accumulated score accepted for an article
	// body.
	MinScore float64

	// Decay is the fraction of a child's score accumulated by its parent.
	Decay float64

	// ContentMethod is ContentScorer or ContentAuto.
	ContentMethod string

	SentimentThreshold     float64
	MaxEntitiesPerCategory int

	// StageTimeout bounds each enrichment attempt.
	StageTimeout time.Duration

	TranslateTimeout time.Duration

	// KeywordMethods lists keyword methods in fallback order.
	KeywordMethods []string

	// SentimentScorers lists the scorers fused by the sentiment stage.
	SentimentScorers []string
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		EnableEnrichment:       true,
		SummaryMethod:          SummaryAuto,
		MinLanguageConfidence:  0.5,
		MaxKeywords:            10,
		MinScore:               3.0,
		Decay:                  0.5,
		ContentMethod:          ContentScorer,
		SentimentThreshold:     0.05,
		MaxEntitiesPerCategory: 5,
		StageTimeout:           10 * time.Second,
		TranslateTimeout:       10 * time.Second,
		KeywordMethods:         []string{KeywordHybrid, KeywordRAKE, KeywordFrequency},
		SentimentScorers:       []string{ScorerVADER, ScorerBayes},
	}
}

// Validate returns an error if the configuration contains invalid fields.
func (c *Config) Validate() error {
	if c.TargetLanguage != "" && len(c.TargetLanguage) != 2 {
		return Errorf(EINVALID, "target language must be a two-letter code, got %q", c.TargetLanguage)
	}
	if _, err := ParseSummaryMethod(string(c.SummaryMethod)); err != nil {
		return err
	}
	if c.MinLanguageConfidence < 0 || c.MinLanguageConfidence > 1 {
		return Errorf(EINVALID, "min language confidence must be in [0, 1]")
	}
	if c.MaxKeywords < 1 {
		return Errorf(EINVALID, "max keywords must be positive")
	}
	if c.MinScore < 0 {
		return Errorf(EINVALID, "min score must not be negative")
	}
	if c.Decay < 0 || c.Decay > 1 {
		return Errorf(EINVALID, "decay must be in [0, 1]")
	}
	if c.ContentMethod != ContentScorer && c.ContentMethod != ContentAuto {
		return Errorf(EINVALID, "unknown content method %q", c.ContentMethod)
	}
	if c.SentimentThreshold < 0 || c.SentimentThreshold >= 1 {
		return Errorf(EINVALID, "sentiment threshold must be in [0, 1)")
	}
	if c.MaxEntitiesPerCategory < 1 {
		return Errorf(EINVALID, "max entities per category must be positive")
	}
	if c.StageTimeout <= 0 || c.TranslateTimeout <= 0 {
		return Errorf(EINVALID, "timeouts must be positive")
	}
	for _, m := range c.KeywordMethods {
		switch m {
		case KeywordHybrid, KeywordRAKE, KeywordFrequency:
		default:
			return Errorf(EINVALID, "unknown keyword method %q", m)
		}
	}
	for _, s := range c.SentimentScorers {
		switch s {
		case ScorerVADER, ScorerBayes:
		default:
			return Errorf(EINVALID, "unknown sentiment scorer %q", s)
		}
	}
	return nil
}
