package logger_test

import (
	"testing"

	"diffly/core/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		cfg  logger.Config
	}{
		{"DebugConsole", logger.Config{Level: "debug", Format: "console"}},
		{"InfoJSON", logger.Config{Level: "info", Format: "json"}},
		{"Defaults", logger.Config{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := logger.New(&tt.cfg)
			require.NoError(t, err)
			assert.NotNil(t, l)
		})
	}
}

func TestDebugLevelEnabled(t *testing.T) {
	l, err := logger.New(&logger.Config{Level: "debug", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, l.Check(zapcore.DebugLevel, "enabled"))
}

func TestConfiguredLevelIsHonored(t *testing.T) {
	l, err := logger.New(&logger.Config{Level: "warn", Format: "json"})
	require.NoError(t, err)
	assert.Nil(t, l.Check(zapcore.InfoLevel, "suppressed"))
	assert.NotNil(t, l.Check(zapcore.WarnLevel, "enabled"))
}
