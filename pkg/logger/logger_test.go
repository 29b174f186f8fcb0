package logger

import (
	"testing"

	"github.com/GlebRadaev/payportal/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestInitLogger(t *testing.T) {
	tests := []struct {
		name          string
		lvl           string
		expectedError bool
		expectedLvl   zapcore.Level
	}{
		{name: "Debug", lvl: "debug", expectedLvl: zapcore.DebugLevel},
		{name: "Info", lvl: "info", expectedLvl: zapcore.InfoLevel},
		{name: "Warn", lvl: "warn", expectedLvl: zapcore.WarnLevel},
		{name: "Error", lvl: "error", expectedLvl: zapcore.ErrorLevel},
		{name: "Unknown level", lvl: "verbose", expectedError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := InitLogger(&config.Config{LogLvl: tt.lvl})
			if tt.expectedError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, zap.L().Core().Enabled(tt.expectedLvl))
			if tt.expectedLvl > zapcore.DebugLevel {
				assert.False(t, zap.L().Core().Enabled(tt.expectedLvl-1))
			}
		})
	}
}
