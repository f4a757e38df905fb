package app

import (
	"context"
	"testing"

	"github.com/ghostink-ai/ghostink/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequiresLoadedConfig(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)

	_, err := New(context.Background())
	assert.Error(t, err)
}

func TestNewWiresEverything(t *testing.T) {
	config.Reset()
	t.Cleanup(config.Reset)
	t.Setenv("HOME", t.TempDir())

	_, err := config.Load(t.TempDir(), false)
	require.NoError(t, err)

	a, err := New(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, a.Controller)
	assert.NotNil(t, a.Provider)
	assert.NotNil(t, a.Ask)
	assert.NotNil(t, a.Host)
	assert.NotNil(t, a.Status)

	ctx, cancel := context.WithCancel(context.Background())
	a.Start(ctx)
	cancel()
	a.Shutdown()
}
