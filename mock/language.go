package mock

import (
	"context"

	"github.com/fwojciec/scoop"
)

var _ scoop.LanguageDetector = (*LanguageDetector)(nil)

// LanguageDetector is a mock implementation of scoop.LanguageDetector.
type LanguageDetector struct {
	DetectLanguageFn func(text string) (string, float64)
}

func (d *LanguageDetector) DetectLanguage(text string) (string, float64) {
	return d.DetectLanguageFn(text)
}

var _ scoop.Translator = (*Translator)(nil)

// Translator is a mock implementation of scoop.Translator.
type Translator struct {
	TranslateFn func(ctx context.Context, text, from, to string) (string, error)
}

func (t *Translator) Translate(ctx context.Context, text, from, to string) (string, error) {
	return t.TranslateFn(ctx, text, from, to)
}
