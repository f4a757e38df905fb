package provider

import (
	"testing"

	"github.com/ghostink-ai/ghostink/internal/completion"
	"github.com/ghostink-ai/ghostink/internal/config"
	"github.com/stretchr/testify/assert"
)

func testWindow(prefix, suffix string) completion.ContextWindow {
	return completion.ContextWindow{
		Prefix:       prefix,
		Suffix:       suffix,
		CursorOffset: len([]rune(prefix)),
		TotalChars:   len([]rune(prefix)) + len([]rune(suffix)),
	}
}

func TestNewClientDefaults(t *testing.T) {
	t.Parallel()

	c := NewClient()
	assert.Equal(t, defaultModel, c.options.model)
	assert.Equal(t, int64(500), c.options.maxTokens)
}

func TestNewClientOptions(t *testing.T) {
	t.Parallel()

	c := NewClient(
		WithAPIKey("sk-test"),
		WithBaseURL("http://localhost:11434/v1"),
		WithModel("qwen2.5-coder"),
		WithMaxTokens(256),
	)
	assert.Equal(t, "sk-test", c.options.apiKey)
	assert.Equal(t, "http://localhost:11434/v1", c.options.baseURL)
	assert.Equal(t, "qwen2.5-coder", c.options.model)
	assert.Equal(t, int64(256), c.options.maxTokens)
}

func TestFromConfig(t *testing.T) {
	t.Parallel()

	c := FromConfig(config.ProviderConfig{
		APIKey:    "sk-file",
		Model:     "gpt-4o",
		MaxTokens: 300,
	})
	assert.Equal(t, "sk-file", c.options.apiKey)
	assert.Equal(t, "gpt-4o", c.options.model)
	assert.Equal(t, int64(300), c.options.maxTokens)
	// Empty base URL keeps the SDK default endpoint.
	assert.Empty(t, c.options.baseURL)
}
