package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	c, err := Load(t.TempDir(), false)
	require.NoError(t, err)

	assert.True(t, c.Enabled)
	assert.False(t, c.AutoTrigger)
	assert.Equal(t, 50, c.Context.LinesBefore)
	assert.Equal(t, 10, c.Context.LinesAfter)
	assert.Equal(t, 4000, c.Context.MaxChars)
	assert.Equal(t, 100000, c.Context.MaxFileSize)
	assert.Equal(t, 500, c.Completion.DebounceMs)
	assert.Equal(t, 1000, c.Completion.MinTriggerIntervalMs)
	assert.True(t, c.Completion.PreserveIndent)
	assert.Equal(t, 30, c.Provider.TimeoutSeconds)
}

func TestLoadIsIdempotent(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	first, err := Load(t.TempDir(), false)
	require.NoError(t, err)
	second, err := Load("/somewhere/else", true)
	require.NoError(t, err)

	assert.Same(t, first, second)
}

func TestEnvOverride(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	t.Setenv("GHOSTINK_ENABLED", "false")
	t.Setenv("GHOSTINK_AUTOTRIGGER", "true")

	c, err := Load(t.TempDir(), false)
	require.NoError(t, err)

	assert.False(t, c.Enabled)
	assert.True(t, c.AutoTrigger)
}

func TestLogLevelEnvOverride(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	t.Setenv("GHOSTINK_LOG_LEVEL", "warn")

	c, err := Load(t.TempDir(), false)
	require.NoError(t, err)

	assert.Equal(t, "warn", c.Log.Level)
	assert.Equal(t, slog.LevelWarn, c.SlogLevel())
}

func TestSlogLevelSelection(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.LevelInfo, (&Config{}).SlogLevel())
	assert.Equal(t, slog.LevelDebug, (&Config{Log: LogConfig{Level: "debug"}}).SlogLevel())
	assert.Equal(t, slog.LevelWarn, (&Config{Log: LogConfig{Level: "WARN"}}).SlogLevel())
	assert.Equal(t, slog.LevelError, (&Config{Log: LogConfig{Level: "error"}}).SlogLevel())
	// Debug mode wins over a quieter configured level.
	assert.Equal(t, slog.LevelDebug, (&Config{Debug: true, Log: LogConfig{Level: "error"}}).SlogLevel())
}

func TestValidateClampsBadValues(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	cfg = &Config{
		Context:    ContextConfig{LinesBefore: -5, LinesAfter: -1, MaxChars: 0, MaxFileSize: -10},
		Completion: CompletionConfig{DebounceMs: -100, MinTriggerIntervalMs: -1},
		Provider:   ProviderConfig{TimeoutSeconds: 0, MaxTokens: -1},
	}
	require.NoError(t, Validate())

	assert.Equal(t, 0, cfg.Context.LinesBefore)
	assert.Equal(t, 0, cfg.Context.LinesAfter)
	assert.Equal(t, 4000, cfg.Context.MaxChars)
	assert.Equal(t, 100000, cfg.Context.MaxFileSize)
	assert.Equal(t, 0, cfg.Completion.DebounceMs)
	assert.Equal(t, 30, cfg.Provider.TimeoutSeconds)
	assert.Equal(t, 500, cfg.Provider.MaxTokens)
}
