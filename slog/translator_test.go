package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fwojciec/scoop"
	"github.com/fwojciec/scoop/mock"
	scoopslog "github.com/fwojciec/scoop/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingTranslator_Translate(t *testing.T) {
	t.Parallel()

	t.Run("logs languages and size", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Translator{
			TranslateFn: func(_ context.Context, text, from, to string) (string, error) {
				return "hello", nil
			},
		}

		tr := scoopslog.NewLoggingTranslator(inner, logger)
		out, err := tr.Translate(context.Background(), "hallå", "sv", "en")

		require.NoError(t, err)
		assert.Equal(t, "hello", out)
		output := buf.String()
		assert.Contains(t, output, "msg=translate")
		assert.Contains(t, output, "from=sv")
		assert.Contains(t, output, "to=en")
		assert.Contains(t, output, "chars=5")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Translator{
			TranslateFn: func(context.Context, string, string, string) (string, error) {
				return "", scoop.Errorf(scoop.ETRANSLATION, "service down")
			},
		}

		tr := scoopslog.NewLoggingTranslator(inner, logger)
		_, err := tr.Translate(context.Background(), "hola", "es", "en")

		require.Error(t, err)
		assert.Contains(t, buf.String(), "service down")
	})
}
