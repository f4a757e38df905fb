package completion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPreviewIndentsContinuationLines(t *testing.T) {
	t.Parallel()

	got := BuildPreview("if x:\nreturn x", "    ", "", true)
	assert.Equal(t, "if x:\n    return x", got)
}

func TestBuildPreviewLeavesBlankLinesAlone(t *testing.T) {
	t.Parallel()

	got := BuildPreview("a\n\nb", "  ", "", true)
	assert.Equal(t, "a\n\n  b", got)
}

func TestBuildPreviewWithoutIndentPreservation(t *testing.T) {
	t.Parallel()

	got := BuildPreview("a\n  b", "    ", "", false)
	assert.Equal(t, "a\n  b", got)
}

func TestBuildPreviewEmpty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, BuildPreview("", "", "", true))
	assert.Empty(t, BuildPreview("   \n\t\n", "", "", true))
}

func TestTrimSuffixOverlap(t *testing.T) {
	t.Parallel()

	// Completing inside print() must not double the closing paren.
	assert.Equal(t, `"hi"`, TrimSuffixOverlap(`"hi")`, ")"))

	// The longest duplicated tail goes, not just one character.
	assert.Equal(t, "value", TrimSuffixOverlap("value).strip()", ").strip()"))

	// No overlap, no change.
	assert.Equal(t, "x + y", TrimSuffixOverlap("x + y", "z"))

	// A whitespace-only suffix never trims.
	assert.Equal(t, "done", TrimSuffixOverlap("done", "  \n"))
}
