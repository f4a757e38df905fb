package provider

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/ghostink-ai/ghostink/internal/completion"
	"github.com/ghostink-ai/ghostink/internal/config"
)

const defaultModel = "gpt-4o-mini"

type openaiOptions struct {
	apiKey       string
	baseURL      string
	model        string
	maxTokens    int64
	extraHeaders map[string]string
}

type Option func(*openaiOptions)

func WithAPIKey(key string) Option {
	return func(o *openaiOptions) { o.apiKey = key }
}

func WithBaseURL(baseURL string) Option {
	return func(o *openaiOptions) { o.baseURL = baseURL }
}

func WithModel(model string) Option {
	return func(o *openaiOptions) { o.model = model }
}

func WithMaxTokens(n int64) Option {
	return func(o *openaiOptions) { o.maxTokens = n }
}

func WithExtraHeaders(headers map[string]string) Option {
	return func(o *openaiOptions) { o.extraHeaders = headers }
}

// Client talks to an OpenAI-compatible chat completion endpoint. It
// implements the completion Provider contract and also serves one-shot
// chat requests for the ask commands.
type Client struct {
	options openaiOptions
	client  openai.Client
}

var _ completion.Provider = (*Client)(nil)

func NewClient(opts ...Option) *Client {
	options := openaiOptions{
		model:     defaultModel,
		maxTokens: 500,
	}
	for _, o := range opts {
		o(&options)
	}

	clientOptions := []option.RequestOption{}
	if options.apiKey != "" {
		clientOptions = append(clientOptions, option.WithAPIKey(options.apiKey))
	}
	if options.baseURL != "" {
		clientOptions = append(clientOptions, option.WithBaseURL(options.baseURL))
	}
	for key, value := range options.extraHeaders {
		clientOptions = append(clientOptions, option.WithHeader(key, value))
	}

	return &Client{
		options: options,
		client:  openai.NewClient(clientOptions...),
	}
}

// FromConfig builds a client from the provider section of the
// configuration file.
func FromConfig(cfg config.ProviderConfig) *Client {
	opts := []Option{
		WithAPIKey(cfg.APIKey),
		WithMaxTokens(int64(cfg.MaxTokens)),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, WithBaseURL(cfg.BaseURL))
	}
	if cfg.Model != "" {
		opts = append(opts, WithModel(cfg.Model))
	}
	return NewClient(opts...)
}

// Complete requests an inline completion for the context window. The
// raw model output is cleaned before it is returned; callers decide
// whether an empty completion is worth showing. Errors are returned as
// is so the caller's deadline and cancellation classification works on
// the original context errors.
func (c *Client) Complete(ctx context.Context, win completion.ContextWindow) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.options.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(completionSystemPrompt),
			openai.UserMessage(buildCompletionPrompt(win)),
		},
		MaxTokens:   openai.Int(c.options.maxTokens),
		Temperature: openai.Float(0.4),
	}

	response, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", c.wrapError(err)
	}
	if len(response.Choices) == 0 {
		return "", errors.New("completion response had no choices")
	}

	raw := response.Choices[0].Message.Content
	cleaned := CleanCompletion(raw)
	slog.Debug("Completion received",
		"model", c.options.model, "rawChars", len(raw), "cleanedChars", len(cleaned))
	return cleaned, nil
}

// Chat sends a single system+user exchange and returns the assistant's
// reply verbatim. Used by the explain and fix commands, where prose is
// the point and no cleanup applies.
func (c *Client) Chat(ctx context.Context, system, user string) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.options.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		MaxTokens:   openai.Int(2000),
		Temperature: openai.Float(0.7),
	}

	response, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", c.wrapError(err)
	}
	if len(response.Choices) == 0 {
		return "", errors.New("chat response had no choices")
	}
	return response.Choices[0].Message.Content, nil
}

// wrapError attaches the HTTP status for API errors while leaving
// context errors untouched for upstream classification.
func (c *Client) wrapError(err error) error {
	var apierr *openai.Error
	if errors.As(err, &apierr) {
		return fmt.Errorf("openai request failed with status %d: %w", apierr.StatusCode, err)
	}
	return err
}
