package logging

import (
	"context"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name  string
		level string
		want  log.Level
	}{
		{"debug", "debug", log.DebugLevel},
		{"info", "info", log.InfoLevel},
		{"warn", "warn", log.WarnLevel},
		{"warning alias", "warning", log.WarnLevel},
		{"error", "error", log.ErrorLevel},
		{"mixed case", "DEBUG", log.DebugLevel},
		{"unknown falls back to info", "banana", log.InfoLevel},
		{"empty falls back to info", "", log.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := New(tt.level)
			require.NotNil(t, logger)
			assert.Equal(t, tt.want, logger.GetLevel())
		})
	}
}

func TestDefault(t *testing.T) {
	logger := Default()
	require.NotNil(t, logger)
	assert.Same(t, logger, Default())
}

func TestSetLevel(t *testing.T) {
	SetLevel("debug")
	assert.Equal(t, log.DebugLevel, Default().GetLevel())

	SetLevel("info")
	assert.Equal(t, log.InfoLevel, Default().GetLevel())
}

func TestFromContext(t *testing.T) {
	t.Run("nil context returns default", func(t *testing.T) {
		//nolint:staticcheck // Explicitly testing nil context handling
		assert.Same(t, Default(), FromContext(nil))
	})

	t.Run("empty context returns default", func(t *testing.T) {
		assert.Same(t, Default(), FromContext(context.Background()))
	})

	t.Run("round trip", func(t *testing.T) {
		logger := New("debug")
		ctx := WithLogger(context.Background(), logger)
		assert.Same(t, logger, FromContext(ctx))
	})
}

func TestWithLogger_NilContext(t *testing.T) {
	logger := New("info")
	//nolint:staticcheck // Explicitly testing nil context handling
	ctx := WithLogger(nil, logger)
	require.NotNil(t, ctx)
	assert.Same(t, logger, FromContext(ctx))
}
