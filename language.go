package scoop

import "context"

// UnknownLanguage is reported when detection confidence is too low.
const UnknownLanguage = "unknown"

// LanguageSignal describes the detected language of an article and the
// outcome of any translation.
type LanguageSignal struct {
	// Code is an ISO 639-1 code, or UnknownLanguage.
	Code       string  `json:"code"`
	Confidence float64 `json:"confidence"`

	// Target is the configured translation target, if any.
	Target string `json:"target,omitempty"`

	Translated     bool             `json:"translated"`
	TranslatedText Optional[string] `json:"translatedText"`

	// TranslationUnavailable is set when translation was required but
	// the translator failed. The original text is kept.
	TranslationUnavailable bool `json:"translationUnavailable"`

	// Issue is the error code of a language step that did not complete:
	// EUNDETECTED or ETRANSLATION. It is empty otherwise.
	Issue string `json:"issue,omitempty"`
}

// Detected reports whether the language was identified.
func (s LanguageSignal) Detected() bool {
	return s.Code != "" && s.Code != UnknownLanguage
}

// LanguageDetector identifies the dominant language of a text.
type LanguageDetector interface {
	// DetectLanguage returns an ISO 639-1 code and a confidence in [0, 1].
	// An empty code means no language could be identified.
	DetectLanguage(text string) (code string, confidence float64)
}

// Translator translates text between languages.
type Translator interface {
	// Translate returns text translated from one language to another.
	// Returns ETRANSLATION if the service cannot produce a translation.
	Translate(ctx context.Context, text, from, to string) (string, error)
}
