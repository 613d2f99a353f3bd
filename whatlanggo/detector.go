// Package whatlanggo provides a scoop.LanguageDetector backed by whatlanggo.
package whatlanggo

import (
	"strings"

	"github.com/RadhiFadlillah/whatlanggo"
	"github.com/fwojciec/scoop"
)

// SampleRunes is the number of leading runes used for detection.
const SampleRunes = 1000

// Ensure Detector implements scoop.LanguageDetector at compile time.
var _ scoop.LanguageDetector = (*Detector)(nil)

// Detector identifies languages with trigram statistics.
type Detector struct{}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// DetectLanguage returns the ISO 639-1 code of the dominant language and
// the detector's confidence. Languages without a two-letter code are
// reported as unidentified.
func (d *Detector) DetectLanguage(text string) (string, float64) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", 0
	}
	if r := []rune(text); len(r) > SampleRunes {
		text = string(r[:SampleRunes])
	}

	info := whatlanggo.Detect(text)
	code := info.Lang.Iso6391()
	if code == "" {
		return "", 0
	}
	return code, info.Confidence
}
