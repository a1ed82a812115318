package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuskit/campusweb/pkg/environment"
	"github.com/campuskit/campusweb/pkg/logger"
)

func TestNew(t *testing.T) {
	t.Run("json by default", func(t *testing.T) {
		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf))
		log.Info("hello", slog.String("k", "v"))

		var rec map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		assert.Equal(t, "hello", rec["msg"])
		assert.Equal(t, "v", rec["k"])
	})

	t.Run("development uses text and debug", func(t *testing.T) {
		var buf bytes.Buffer
		log := logger.New(
			logger.WithEnvironment(environment.Development, "campusweb"),
			logger.WithOutput(&buf),
		)
		log.Debug("visible in dev")

		out := buf.String()
		assert.Contains(t, out, "visible in dev")
		assert.Contains(t, out, "service=campusweb")
		assert.Contains(t, out, "env=development")
	})

	t.Run("production drops debug", func(t *testing.T) {
		var buf bytes.Buffer
		log := logger.New(
			logger.WithEnvironment(environment.Production, "campusweb"),
			logger.WithOutput(&buf),
		)
		log.Debug("invisible")
		assert.Empty(t, buf.String())
	})

	t.Run("invalid format panics", func(t *testing.T) {
		assert.Panics(t, func() {
			logger.New(logger.WithFormat("xml"))
		})
	})
}

func TestContextExtraction(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(
		logger.WithOutput(&buf),
		logger.WithContextExtractors(environment.LoggerExtractor()),
	)

	ctx := environment.WithContext(context.Background(), environment.Staging)
	log.InfoContext(ctx, "with env")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "staging", rec["env"])
}

func TestAttrs(t *testing.T) {
	assert.Equal(t, slog.Attr{}, logger.Error(nil))
	assert.Equal(t, "error", logger.Error(assert.AnError).Key)
	assert.Equal(t, "component", logger.Component("session").Key)
	assert.Equal(t, slog.Attr{}, logger.UserID(nil))
}
