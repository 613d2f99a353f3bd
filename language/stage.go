// Package language detects the language of article text and translates it
// to a target language when detection is confident.
package language

import (
	"context"
	"strings"
	"time"

	"github.com/fwojciec/scoop"
)

// Stage runs language detection followed by optional translation.
type Stage struct {
	Detector   scoop.LanguageDetector
	Translator scoop.Translator

	// MinConfidence is the lowest detection confidence accepted.
	MinConfidence float64

	// Target is the translation target. Empty disables translation.
	Target string

	// Timeout bounds the translation call. Zero means no extra bound.
	Timeout time.Duration
}

// NewStage creates a Stage from configuration.
func NewStage(cfg scoop.Config, detector scoop.LanguageDetector, translator scoop.Translator) *Stage {
	return &Stage{
		Detector:      detector,
		Translator:    translator,
		MinConfidence: cfg.MinLanguageConfidence,
		Target:        strings.ToLower(cfg.TargetLanguage),
		Timeout:       cfg.TranslateTimeout,
	}
}

// Process detects the language of text and translates it when a target
// is configured. It never fails: an undetected language yields
// scoop.UnknownLanguage and a failed translation keeps the original text.
func (s *Stage) Process(ctx context.Context, text string) scoop.LanguageSignal {
	sig := scoop.LanguageSignal{Code: scoop.UnknownLanguage, Target: s.Target, Issue: scoop.EUNDETECTED}
	if s.Detector == nil || strings.TrimSpace(text) == "" {
		return sig
	}

	code, confidence := s.Detector.DetectLanguage(text)
	sig.Confidence = confidence
	if code == "" || confidence < s.MinConfidence {
		return sig
	}
	sig.Code = strings.ToLower(code)
	sig.Issue = ""

	if s.Target == "" || s.Target == sig.Code {
		return sig
	}
	if s.Translator == nil {
		sig.TranslationUnavailable = true
		sig.Issue = scoop.ETRANSLATION
		return sig
	}

	tctx := ctx
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		tctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	translated, err := s.Translator.Translate(tctx, text, sig.Code, s.Target)
	if err != nil || strings.TrimSpace(translated) == "" {
		sig.TranslationUnavailable = true
		sig.Issue = scoop.ETRANSLATION
		return sig
	}
	sig.Translated = true
	sig.TranslatedText = scoop.Some(translated)
	return sig
}
