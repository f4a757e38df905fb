package completion

import (
	"strings"
	"testing"

	"github.com/ghostink-ai/ghostink/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBounds() config.ContextConfig {
	return config.ContextConfig{
		LinesBefore: 50,
		LinesAfter:  10,
		MaxChars:    4000,
		MaxFileSize: 100000,
	}
}

func TestExtractContextEmptyDocument(t *testing.T) {
	t.Parallel()

	win := ExtractContext("", 0, testBounds())
	assert.Empty(t, win.Prefix)
	assert.Empty(t, win.Suffix)
	assert.Equal(t, 0, win.CursorOffset)
	assert.True(t, win.Empty())
	assert.False(t, win.Oversized)
}

func TestExtractContextCursorSplit(t *testing.T) {
	t.Parallel()

	text := "def add(a, b):\n    return a + b\n"
	cursor := len("def add(a, b):\n    return")
	win := ExtractContext(text, cursor, testBounds())

	assert.Equal(t, "def add(a, b):\n    return", win.Prefix)
	assert.Equal(t, " a + b\n", win.Suffix)
	assert.Equal(t, len([]rune(win.Prefix)), win.CursorOffset)
	assert.Equal(t, "    ", win.Indent)
}

func TestExtractContextLineBounds(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	for i := 0; i < 200; i++ {
		sb.WriteString("line\n")
	}
	text := sb.String()
	// Cursor at the start of line 100 (0-based).
	cursor := 100 * len("line\n")

	bounds := testBounds()
	bounds.LinesBefore = 3
	bounds.LinesAfter = 2
	win := ExtractContext(text, cursor, bounds)

	assert.Equal(t, "line\nline\nline\n", win.Prefix)
	assert.Equal(t, "line\nline\nline\n", win.Suffix)
}

func TestExtractContextMaxCharsTruncation(t *testing.T) {
	t.Parallel()

	// One long line on each side so line bounds do not kick in first;
	// the raw window is 6000 chars against a 4000 char budget.
	prefix := strings.Repeat("a", 3000)
	suffix := strings.Repeat("b", 3000)
	win := ExtractContext(prefix+suffix, 3000, testBounds())

	total := len(win.Prefix) + len(win.Suffix)
	assert.LessOrEqual(t, total, 4000)
	require.GreaterOrEqual(t, win.CursorOffset, 0)
	assert.LessOrEqual(t, win.CursorOffset, total)
	// The text nearest the cursor survives truncation.
	assert.True(t, strings.HasSuffix(win.Prefix, "a"))
	assert.True(t, strings.HasPrefix(win.Suffix, "b"))
}

func TestExtractContextOversizedFile(t *testing.T) {
	t.Parallel()

	bounds := testBounds()
	bounds.MaxFileSize = 100
	text := strings.Repeat("x", 101)
	win := ExtractContext(text, 50, bounds)

	assert.True(t, win.Oversized)
	// Oversized is diagnostic only; extraction still happened.
	assert.False(t, win.Empty())
	assert.Equal(t, 101, win.TotalChars)
}

func TestExtractContextCursorClamped(t *testing.T) {
	t.Parallel()

	win := ExtractContext("abc", 99, testBounds())
	assert.Equal(t, "abc", win.Prefix)
	assert.Equal(t, 3, win.CursorOffset)

	win = ExtractContext("abc", -5, testBounds())
	assert.Equal(t, 0, win.CursorOffset)
	assert.Equal(t, "abc", win.Suffix)
}

func TestExtractContextMultibyte(t *testing.T) {
	t.Parallel()

	text := "héllo wörld"
	win := ExtractContext(text, 5, testBounds())
	assert.Equal(t, "héllo", win.Prefix)
	assert.Equal(t, " wörld", win.Suffix)
	assert.Equal(t, 5, win.CursorOffset)
}
