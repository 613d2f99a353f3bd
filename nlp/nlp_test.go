package nlp_test

import (
	"testing"

	"github.com/fwojciec/scoop/nlp"
	"github.com/stretchr/testify/assert"
)

func TestWords(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		[]string{"it's", "a", "well", "known", "fact", "42"},
		nlp.Words("It's a well-known fact: 42!"))
}

func TestSentences(t *testing.T) {
	t.Parallel()

	t.Run("splits on terminal punctuation", func(t *testing.T) {
		t.Parallel()

		got := nlp.Sentences("The vote passed. Critics objected! Will it last? Nobody knows.")
		assert.Equal(t, []string{"The vote passed.", "Critics objected!", "Will it last?", "Nobody knows."}, got)
	})

	t.Run("keeps abbreviations", func(t *testing.T) {
		t.Parallel()

		got := nlp.Sentences("Dr. Smith met Mr. Jones yesterday. They talked.")
		assert.Equal(t, []string{"Dr. Smith met Mr. Jones yesterday.", "They talked."}, got)
	})

	t.Run("joins punctuated paragraphs before segmenting", func(t *testing.T) {
		t.Parallel()

		got := nlp.Sentences("The vote passed.\n\nCritics   objected.")
		assert.Equal(t, []string{"The vote passed.", "Critics objected."}, got)
	})

	t.Run("blank lines end sentences", func(t *testing.T) {
		t.Parallel()

		got := nlp.Sentences("A heading without a stop\n\nThe body starts here.")
		assert.Equal(t, []string{"A heading without a stop", "The body starts here."}, got)
	})
}

func TestStem(t *testing.T) {
	t.Parallel()

	assert.Equal(t, nlp.Stem("emission"), nlp.Stem("emissions"))
	assert.Equal(t, "the", nlp.Stem("the"))
}

func TestIsStopWord(t *testing.T) {
	t.Parallel()

	assert.True(t, nlp.IsStopWord("the"))
	assert.False(t, nlp.IsStopWord("parliament"))
}
