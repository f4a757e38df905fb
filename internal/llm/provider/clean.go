package provider

import (
	"strings"
)

// prosePrefixes mark lines that narrate instead of completing code.
var prosePrefixes = []string{
	"here", "this is", "the code", "sure", "certainly",
	"output:", "result:", "answer:", "following", "note:",
	"explanation:", "the above",
}

// CleanCompletion strips the formatting chat models wrap around code:
// markdown fences, a narrating first line, a trailing explanation. The
// inner code is returned untouched, including its newlines and
// indentation.
func CleanCompletion(response string) string {
	text := strings.TrimSpace(response)
	if text == "" {
		return ""
	}

	if strings.Contains(text, "```") {
		text = extractFenced(text)
	}

	lines := strings.Split(text, "\n")
	lines = trimLeadingProse(lines)
	lines = trimTrailingProse(lines)
	return strings.Join(lines, "\n")
}

// extractFenced keeps only the content of fenced code blocks. The fence
// lines themselves, including language tags, are dropped.
func extractFenced(text string) string {
	var code []string
	inBlock := false
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inBlock = !inBlock
			continue
		}
		if inBlock {
			code = append(code, line)
		}
	}
	if len(code) == 0 {
		return text
	}
	return strings.Join(code, "\n")
}

// trimLeadingProse drops narration before the code starts. Only the
// head of the response is considered; once a code-looking line appears
// everything after it is kept.
func trimLeadingProse(lines []string) []string {
	for i, line := range lines {
		if !isProse(line) {
			return lines[i:]
		}
	}
	return nil
}

func trimTrailingProse(lines []string) []string {
	for len(lines) > 0 {
		last := strings.TrimSpace(lines[len(lines)-1])
		if last == "" || isProse(lines[len(lines)-1]) {
			lines = lines[:len(lines)-1]
			continue
		}
		break
	}
	return lines
}

func isProse(line string) bool {
	stripped := strings.TrimSpace(line)
	if stripped == "" {
		return true
	}
	lower := strings.ToLower(stripped)
	for _, prefix := range prosePrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}
