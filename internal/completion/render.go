package completion

import "strings"

// BuildPreview prepares raw provider output for rendering as ghost text
// at the cursor: continuation lines of a multi-line suggestion pick up
// the cursor line's indentation, and any tail the document already
// contains right after the cursor is trimmed so accepting never
// duplicates existing code.
func BuildPreview(text, indent, suffix string, preserveIndent bool) string {
	text = strings.TrimRight(text, "\n")
	if strings.TrimSpace(text) == "" {
		return ""
	}
	text = TrimSuffixOverlap(text, suffix)
	if preserveIndent && indent != "" {
		text = indentContinuations(text, indent)
	}
	return text
}

// TrimSuffixOverlap removes the longest tail of the suggestion that
// equals the text immediately following the cursor. Without this,
// completing in the middle of `print()` would leave a doubled `)`.
func TrimSuffixOverlap(suggestion, suffix string) string {
	suffix = strings.TrimRight(suffix, "\n")
	if suggestion == "" || strings.TrimSpace(suffix) == "" {
		return suggestion
	}
	max := len(suffix)
	if len(suggestion) < max {
		max = len(suggestion)
	}
	for l := max; l > 0; l-- {
		if strings.HasSuffix(suggestion, suffix[:l]) {
			return suggestion[:len(suggestion)-l]
		}
	}
	return suggestion
}

// indentContinuations re-indents every line after the first so the block
// lines up under the cursor column. Blank lines are left alone.
func indentContinuations(text, indent string) string {
	lines := strings.Split(text, "\n")
	if len(lines) <= 1 {
		return text
	}
	out := make([]string, 0, len(lines))
	out = append(out, lines[0])
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			out = append(out, line)
			continue
		}
		out = append(out, indent+strings.TrimLeft(line, " \t"))
	}
	return strings.Join(out, "\n")
}
