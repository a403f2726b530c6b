package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		json      bool
		debug     bool
		wantDebug bool
	}{
		{name: "console_info", json: false, debug: false, wantDebug: false},
		{name: "json_debug", json: true, debug: true, wantDebug: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.json, tt.debug)
			require.NoError(t, err)
			require.NotNil(t, logger)
			assert.Equal(t, tt.wantDebug, logger.Core().Enabled(zapcore.DebugLevel))
			assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
		})
	}
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))

	logger := zap.NewExample()
	assert.Same(t, logger, OrNop(logger))
}

func TestWithUser(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	WithUser(logger, "ana@example.com").Info("swipe")
	WithUser(logger, "").Info("anonymous")

	entries := observed.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "ana@example.com", entries[0].ContextMap()[FieldUserID])
	assert.NotContains(t, entries[1].ContextMap(), FieldUserID)

	// nil falls back to a no-op logger
	WithUser(nil, "x").Info("ignored")
}
