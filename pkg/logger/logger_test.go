package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLogger(t *testing.T) {
	t.Run("Valid level", func(t *testing.T) {
		logger, err := NewLogger("debug")
		assert.NoError(t, err)
		assert.NotNil(t, logger)
	})

	t.Run("Invalid level", func(t *testing.T) {
		_, err := NewLogger("verbose")
		assert.Error(t, err)
	})
}

func TestWith(t *testing.T) {
	//** Arrange
	core, logs := observer.New(zap.InfoLevel)
	logger := NewZapLogger(zap.New(core))

	//** Act
	logger.With("crew", 3).Info("schedule optimized", "status", "optimal")
	logger.Debug("dropped")

	//** Assert
	entries := logs.All()
	assert.Len(t, entries, 1)
	assert.Equal(t, "schedule optimized", entries[0].Message)
	assert.Equal(t, map[string]any{"crew": int64(3), "status": "optimal"}, entries[0].ContextMap())
}
