// Package ask serves one-shot analysis requests: explain a piece of
// code, suggest a fix, or answer a free-form question about it. It
// shares the provider client with inline completion but runs outside
// the suggestion lifecycle.
package ask

import (
	"context"
	"fmt"
	"strings"
)

const systemPrompt = "You are a helpful code analysis assistant."

// Chatter is the one-shot exchange the provider client offers.
type Chatter interface {
	Chat(ctx context.Context, system, user string) (string, error)
}

type Service struct {
	chatter Chatter
}

func NewService(chatter Chatter) *Service {
	return &Service{chatter: chatter}
}

// Explain describes what the given code does, flags likely bugs, and
// suggests improvements.
func (s *Service) Explain(ctx context.Context, code string) (string, error) {
	var sb strings.Builder
	sb.WriteString("Analyze the following code:\n\n```\n")
	sb.WriteString(code)
	sb.WriteString("\n```\n\nProvide:\n")
	sb.WriteString("1. What the code does\n")
	sb.WriteString("2. Potential bugs or problems\n")
	sb.WriteString("3. Code quality and best practice suggestions\n")
	return s.chat(ctx, sb.String())
}

// Fix proposes a corrected version of the given code together with a
// short explanation of what was wrong.
func (s *Service) Fix(ctx context.Context, code string) (string, error) {
	var sb strings.Builder
	sb.WriteString("The following code has a problem. Provide a corrected version ")
	sb.WriteString("and briefly explain what was wrong:\n\n```\n")
	sb.WriteString(code)
	sb.WriteString("\n```")
	return s.chat(ctx, sb.String())
}

// Question answers a free-form question, optionally grounded in a code
// snippet.
func (s *Service) Question(ctx context.Context, question, code string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", fmt.Errorf("empty question")
	}
	var sb strings.Builder
	sb.WriteString(question)
	if strings.TrimSpace(code) != "" {
		sb.WriteString("\n\nCode:\n```\n")
		sb.WriteString(code)
		sb.WriteString("\n```")
	}
	return s.chat(ctx, sb.String())
}

func (s *Service) chat(ctx context.Context, user string) (string, error) {
	answer, err := s.chatter.Chat(ctx, systemPrompt, user)
	if err != nil {
		return "", fmt.Errorf("ask request: %w", err)
	}
	return strings.TrimSpace(answer), nil
}
