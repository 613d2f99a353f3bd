package gemini

import (
	"context"
	"strings"

	"github.com/fwojciec/scoop"
	"github.com/fwojciec/scoop/nlp"
	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

// maxWordPasses bounds the proportional cuts applied to a single
// sentence that is over budget on its own.
const maxWordPasses = 4

var _ scoop.TokenCounter = (*TokenCounter)(nil)

// TokenCounter counts article tokens with the Gemini tokenizer on the
// local machine. Counting needs no API key.
type TokenCounter struct {
	tok *tokenizer.LocalTokenizer
}

// NewTokenCounter loads the tokenizer for model. It fails with
// EUNAVAILABLE when the model has no local tokenizer.
func NewTokenCounter(model string) (*TokenCounter, error) {
	tok, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		return nil, scoop.Errorf(scoop.EUNAVAILABLE, "no local tokenizer for %s: %v", model, err)
	}
	return &TokenCounter{tok: tok}, nil
}

// CountTokens returns the tokens text takes up as the user turn of a
// prompt. Blank text counts as zero.
func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if strings.TrimSpace(text) == "" {
		return 0, nil
	}
	result, err := tc.tok.CountTokens([]*genai.Content{genai.NewContentFromText(text, genai.RoleUser)}, nil)
	if err != nil {
		return 0, scoop.Errorf(scoop.ESTAGE, "counting tokens: %v", err)
	}
	return int(result.TotalTokens), nil
}

// FitTokens returns text unchanged when counter puts it within
// maxTokens. Otherwise it keeps the longest run of leading sentences
// that fits, since a news story front-loads its facts. A first sentence
// that is over budget on its own is cut at a word boundary. A nil
// counter returns text unchanged.
func FitTokens(ctx context.Context, counter scoop.TokenCounter, text string, maxTokens int) (string, error) {
	if counter == nil {
		return text, nil
	}
	n, err := count(ctx, counter, text)
	if err != nil {
		return "", err
	}
	if n <= maxTokens {
		return text, nil
	}

	sentences := nlp.Sentences(text)
	if len(sentences) == 0 {
		return fitWords(ctx, counter, text, n, maxTokens)
	}
	lead := func(k int) string { return strings.Join(sentences[:k], " ") }

	// lead(fits) is within budget and lead(over) is not.
	fits, over := 0, len(sentences)
	for over-fits > 1 {
		mid := (fits + over) / 2
		n, err := count(ctx, counter, lead(mid))
		if err != nil {
			return "", err
		}
		if n <= maxTokens {
			fits = mid
		} else {
			over = mid
		}
	}
	if fits > 0 {
		return lead(fits), nil
	}

	first := sentences[0]
	n, err = count(ctx, counter, first)
	if err != nil {
		return "", err
	}
	return fitWords(ctx, counter, first, n, maxTokens)
}

// fitWords cuts text proportionally, with a 10% margin, until it fits.
func fitWords(ctx context.Context, counter scoop.TokenCounter, text string, n, maxTokens int) (string, error) {
	for range maxWordPasses {
		if n <= maxTokens {
			return text, nil
		}
		text = TruncateWords(text, len([]rune(text))*maxTokens*9/(n*10))
		var err error
		if n, err = count(ctx, counter, text); err != nil {
			return "", err
		}
	}
	return text, nil
}

func count(ctx context.Context, counter scoop.TokenCounter, text string) (int, error) {
	n, err := counter.CountTokens(ctx, text)
	if err == nil {
		return n, nil
	}
	if ctx.Err() != nil {
		return 0, ctx.Err()
	}
	if scoop.ErrorCode(err) == scoop.ESTAGE {
		return 0, err
	}
	return 0, scoop.Errorf(scoop.ESTAGE, "counting tokens: %v", err)
}

// TruncateWords cuts text to at most max runes, ending at a word boundary.
func TruncateWords(text string, max int) string {
	r := []rune(text)
	if len(r) <= max {
		return text
	}
	cut := string(r[:max])
	if i := strings.LastIndexAny(cut, " \n\t"); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimSpace(cut)
}
