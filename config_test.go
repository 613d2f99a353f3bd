package scoop_test

import (
	"testing"

	"github.com/fwojciec/scoop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	t.Parallel()

	cfg := scoop.DefaultConfig()
	require.NoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(*scoop.Config)
	}{
		{"long target language", func(c *scoop.Config) { c.TargetLanguage = "english" }},
		{"unknown summary method", func(c *scoop.Config) { c.SummaryMethod = "poetry" }},
		{"confidence above one", func(c *scoop.Config) { c.MinLanguageConfidence = 1.5 }},
		{"zero keywords", func(c *scoop.Config) { c.MaxKeywords = 0 }},
		{"negative min score", func(c *scoop.Config) { c.MinScore = -1 }},
		{"decay above one", func(c *scoop.Config) { c.Decay = 2 }},
		{"unknown content method", func(c *scoop.Config) { c.ContentMethod = "magic" }},
		{"zero stage timeout", func(c *scoop.Config) { c.StageTimeout = 0 }},
		{"unknown keyword method", func(c *scoop.Config) { c.KeywordMethods = []string{"lda"} }},
		{"unknown scorer", func(c *scoop.Config) { c.SentimentScorers = []string{"textblob"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := scoop.DefaultConfig()
			tt.modify(&cfg)
			assert.Equal(t, scoop.EINVALID, scoop.ErrorCode(cfg.Validate()))
		})
	}
}

func TestParseSummaryMethod(t *testing.T) {
	t.Parallel()

	tests := map[string]scoop.SummaryMethod{
		"":            scoop.SummaryAuto,
		"sumy":        scoop.SummaryExtractive,
		"transformer": scoop.SummaryAbstractive,
		"simple":      scoop.SummaryNaive,
		"NAIVE":       scoop.SummaryNaive,
	}
	for in, want := range tests {
		got, err := scoop.ParseSummaryMethod(in)
		require.NoError(t, err)
		assert.Equal(t, want, got, in)
	}

	_, err := scoop.ParseSummaryMethod("bogus")
	assert.Equal(t, scoop.EINVALID, scoop.ErrorCode(err))
}
