package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputFormatIsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, TextFormat.IsValid())
	assert.True(t, JSONFormat.IsValid())
	assert.False(t, OutputFormat("yaml").IsValid())
	assert.False(t, OutputFormat("").IsValid())
}

func TestFormatOutputTextPassesCompletionThrough(t *testing.T) {
	t.Parallel()

	completion := "if x > 0:\n    return x"
	got, err := FormatOutput(completion, TextFormat)
	require.NoError(t, err)
	assert.Equal(t, completion, got)
}

func TestFormatOutputJSONWrapsResponse(t *testing.T) {
	t.Parallel()

	got, err := FormatOutput("return a + b", JSONFormat)
	require.NoError(t, err)
	assert.JSONEq(t, `{"response": "return a + b"}`, got)
}

func TestFormatOutputRejectsUnknownFormat(t *testing.T) {
	t.Parallel()

	_, err := FormatOutput("anything", OutputFormat("yaml"))
	assert.Error(t, err)
}
