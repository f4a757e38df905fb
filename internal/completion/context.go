package completion

import (
	"log/slog"

	"github.com/ghostink-ai/ghostink/internal/config"
)

// ExtractContext derives the bounded context window around the cursor.
// It is a pure function of the document snapshot, cursor offset, and
// bounds; an empty document yields an empty window with cursor offset 0.
//
// The window is always line-bounded around the cursor. Exceeding the
// configured max file size never blocks extraction; it only sets the
// Oversized flag so callers can tell the user a reduced context is in
// use. If the line-bounded window still exceeds MaxChars, the prefix is
// cut from its far (start) edge and the suffix from its far (end) edge
// so the text nearest the cursor survives.
func ExtractContext(text string, cursor int, bounds config.ContextConfig) ContextWindow {
	runes := []rune(text)
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(runes) {
		cursor = len(runes)
	}

	prefix := clipLinesBefore(runes[:cursor], bounds.LinesBefore)
	suffix := clipLinesAfter(runes[cursor:], bounds.LinesAfter)

	// Truncate from the edges furthest from the cursor.
	if bounds.MaxChars > 0 {
		half := bounds.MaxChars / 2
		if len(prefix) > half {
			prefix = prefix[len(prefix)-half:]
			slog.Debug("Context prefix truncated", "chars", len(prefix))
		}
		if len(suffix) > half {
			suffix = suffix[:half]
			slog.Debug("Context suffix truncated", "chars", len(suffix))
		}
	}

	return ContextWindow{
		Prefix:       string(prefix),
		Suffix:       string(suffix),
		CursorOffset: len(prefix),
		Indent:       currentIndent(prefix),
		Oversized:    bounds.MaxFileSize > 0 && len(runes) > bounds.MaxFileSize,
		TotalChars:   len(runes),
	}
}

// clipLinesBefore keeps the cursor's line plus at most n full lines
// preceding it.
func clipLinesBefore(runes []rune, n int) []rune {
	seen := 0
	for i := len(runes) - 1; i >= 0; i-- {
		if runes[i] == '\n' {
			seen++
			if seen > n {
				return runes[i+1:]
			}
		}
	}
	return runes
}

// clipLinesAfter keeps the remainder of the cursor's line plus at most n
// lines following it.
func clipLinesAfter(runes []rune, n int) []rune {
	seen := 0
	for i, r := range runes {
		if r == '\n' {
			seen++
			if seen > n {
				return runes[:i+1]
			}
		}
	}
	return runes
}

// currentIndent returns the leading whitespace of the line the cursor
// sits on, taken from the prefix side of the window.
func currentIndent(prefix []rune) string {
	lineStart := 0
	for i := len(prefix) - 1; i >= 0; i-- {
		if prefix[i] == '\n' {
			lineStart = i + 1
			break
		}
	}
	end := lineStart
	for end < len(prefix) && (prefix[end] == ' ' || prefix[end] == '\t') {
		end++
	}
	return string(prefix[lineStart:end])
}
