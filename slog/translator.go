package slog

import (
	"context"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/fwojciec/scoop"
)

var _ scoop.Translator = (*LoggingTranslator)(nil)

// LoggingTranslator wraps a Translator with logging.
type LoggingTranslator struct {
	next   scoop.Translator
	logger *slog.Logger
}

// NewLoggingTranslator creates a new LoggingTranslator.
func NewLoggingTranslator(next scoop.Translator, logger *slog.Logger) *LoggingTranslator {
	return &LoggingTranslator{next: next, logger: logger}
}

// Translate delegates to the wrapped translator and logs the operation.
func (t *LoggingTranslator) Translate(ctx context.Context, text, from, to string) (out string, err error) {
	defer func(begin time.Time) {
		t.logger.Info("translate",
			"from", from,
			"to", to,
			"chars", utf8.RuneCountInString(text),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return t.next.Translate(ctx, text, from, to)
}
