package logger_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	logpkg "github.com/dominoleague/league-service/internal/logger"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		config      *logpkg.LoggerConfig
		expectError bool
		wantLevel   zerolog.Level
	}{
		{
			name: "production json",
			config: &logpkg.LoggerConfig{
				ServiceName: "league",
				Env:         "prod",
				Level:       "info",
				TimeFormat:  "unix",
				Fields:      map[string]interface{}{"region": "sa"},
			},
			wantLevel: zerolog.InfoLevel,
		},
		{
			name:        "unknown env rejected",
			config:      &logpkg.LoggerConfig{Env: "wrong-env", Level: "debug"},
			expectError: true,
		},
		{
			name:        "unknown level rejected",
			config:      &logpkg.LoggerConfig{Env: "prod", Level: "loud"},
			expectError: true,
		},
		{
			name:        "unknown time format rejected",
			config:      &logpkg.LoggerConfig{Env: "prod", TimeFormat: "iso"},
			expectError: true,
		},
		{
			name:      "staging warn",
			config:    &logpkg.LoggerConfig{Env: "staging", Level: "warn", Stacktrace: true},
			wantLevel: zerolog.WarnLevel,
		},
		{
			name:      "prod defaults to info",
			config:    &logpkg.LoggerConfig{Env: "prod"},
			wantLevel: zerolog.InfoLevel,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := logpkg.New(tc.config)
			if tc.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantLevel, zerolog.GlobalLevel())
		})
	}
}

func TestNew_DevDefaults(t *testing.T) {
	cfg := &logpkg.LoggerConfig{Env: "dev", DebugFile: filepath.Join(t.TempDir(), "logs", "debug.log")}
	_, err := logpkg.New(cfg)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Level)
	assert.Equal(t, "console", cfg.Format)
	assert.True(t, cfg.WithCaller)
	assert.Equal(t, "domino-league-service", cfg.ServiceName)

	_, statErr := os.Stat(cfg.DebugFile)
	assert.NoError(t, statErr, "debug file is created for debug level in dev")
}

func TestNew_DevInfoSkipsDebugFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	_, err := logpkg.New(&logpkg.LoggerConfig{Env: "dev", Level: "info", DebugFile: path})
	require.NoError(t, err)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}
