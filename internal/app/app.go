// Package app assembles the assistant from its parts: configuration,
// the editor host, the provider client, and the suggestion controller.
package app

import (
	"context"
	"errors"
	"sync"

	"log/slog"

	"github.com/ghostink-ai/ghostink/internal/completion"
	"github.com/ghostink-ai/ghostink/internal/config"
	"github.com/ghostink-ai/ghostink/internal/editor"
	"github.com/ghostink-ai/ghostink/internal/llm/ask"
	"github.com/ghostink-ai/ghostink/internal/llm/provider"
	"github.com/ghostink-ai/ghostink/internal/logging"
	"github.com/ghostink-ai/ghostink/internal/speech"
	"github.com/ghostink-ai/ghostink/internal/status"
)

type App struct {
	Config     *config.Config
	Host       *editor.MemoryHost
	Provider   *provider.Client
	Ask        *ask.Service
	Controller *completion.Controller
	Status     status.Service

	runOnce sync.Once
	runWG   sync.WaitGroup
	cancel  context.CancelFunc
}

// New wires the application from loaded configuration. Completion stays
// disabled-but-constructed when no API key is present, so the TUI can
// come up and report the problem instead of crashing.
func New(ctx context.Context) (*App, error) {
	cfg := config.Get()
	if cfg == nil {
		return nil, errors.New("configuration not loaded")
	}

	prov := provider.FromConfig(cfg.Provider)

	host := editor.NewMemoryHost()

	narrator := speech.Noop()
	if cfg.Speech.Enabled {
		narrator = speech.Logged()
	}

	ctrl := completion.NewController(cfg, host, prov,
		completion.WithNarrator(narrator),
	)

	if cfg.Provider.APIKey == "" {
		slog.Warn("No API key configured; completion requests will fail")
		status.Warn("No AI provider API key configured")
	}

	return &App{
		Config:     cfg,
		Host:       host,
		Provider:   prov,
		Ask:        ask.NewService(prov),
		Controller: ctrl,
		Status:     status.GetService(),
	}, nil
}

// Start launches the controller's result pump. Safe to call once; the
// pump stops when ctx is cancelled.
func (a *App) Start(ctx context.Context) {
	a.runOnce.Do(func() {
		ctx, a.cancel = context.WithCancel(ctx)
		a.runWG.Add(1)
		go func() {
			defer logging.RecoverPanic("app-controller", nil)
			defer a.runWG.Done()
			a.Controller.Run(ctx)
		}()
	})
}

// Shutdown stops the result pump and waits for it to drain.
func (a *App) Shutdown() {
	if a.cancel != nil {
		a.cancel()
	}
	a.runWG.Wait()
}
