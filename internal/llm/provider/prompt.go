package provider

import (
	"fmt"
	"strings"

	"github.com/ghostink-ai/ghostink/internal/completion"
)

const completionSystemPrompt = `You are an expert code completion AI, exactly like GitHub Copilot.

Your mission: suggest the code that belongs at the cursor so the programmer can keep typing.

CRITICAL RULES:
1. Output ONLY the code that should come AFTER the cursor, nothing before it
2. NEVER repeat code that already exists in the context, before or after the cursor
3. If the user typed a partial identifier, complete only the remaining part
4. If a function or class is already defined above, complete the call, not the definition
5. Output exactly one completion, with no explanation and no markdown formatting`

// buildCompletionPrompt renders the context window as a
// fill-in-the-middle request. The cursor is marked with | inside a
// fenced block; the suffix is included so the model avoids duplicating
// text that already follows the cursor.
func buildCompletionPrompt(win completion.ContextWindow) string {
	var sb strings.Builder

	sb.WriteString("Complete this code. Output ONLY the code that should come AFTER the cursor position (marked with |).\n\n")
	sb.WriteString("Code before the cursor:\n```\n")
	sb.WriteString(win.Prefix)
	sb.WriteString("|\n```\n")

	if win.Suffix != "" {
		sb.WriteString("\nCode after the cursor (do NOT repeat any of it):\n```\n")
		sb.WriteString(win.Suffix)
		sb.WriteString("\n```\n")
	}

	currentLine := win.Prefix
	if i := strings.LastIndexByte(currentLine, '\n'); i >= 0 {
		currentLine = currentLine[i+1:]
	}
	fmt.Fprintf(&sb, "\nCurrent line (cursor at end): `%s`\n", strings.TrimSpace(currentLine))
	fmt.Fprintf(&sb, "Current indentation: %d characters\n", len(win.Indent))

	sb.WriteString("\nAnalyze the context and suggest the most likely completion. Keep it minimal and focused.")
	return sb.String()
}
