package cmd

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ghostink-ai/ghostink/internal/app"
	"github.com/ghostink-ai/ghostink/internal/completion"
	"github.com/ghostink-ai/ghostink/internal/config"
	"github.com/ghostink-ai/ghostink/internal/format"
	"github.com/ghostink-ai/ghostink/internal/logging"
	"github.com/ghostink-ai/ghostink/internal/pubsub"
	"github.com/ghostink-ai/ghostink/internal/tui"
	"github.com/ghostink-ai/ghostink/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "ghostink",
	Short: "Inline AI code suggestions for your editor",
	Long: `Ghostink is an inline AI code-suggestion assistant. It watches a text
buffer, asks an OpenAI-compatible model for the code that belongs at the
cursor, and shows the answer as ghost text that one keystroke accepts or
dismisses.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flag("version").Changed {
			fmt.Println(version.Version)
			return nil
		}

		if err := setup(cmd); err != nil {
			return err
		}

		// One-shot mode: complete a file at an offset and exit.
		file, _ := cmd.Flags().GetString("file")
		if file != "" {
			offset, _ := cmd.Flags().GetInt("offset")
			outputFormatStr, _ := cmd.Flags().GetString("output-format")
			return runOneShot(cmd.Context(), file, offset, format.OutputFormat(outputFormatStr))
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		a, err := app.New(ctx)
		if err != nil {
			slog.Error("Failed to create app", "error", err)
			return err
		}
		a.Start(ctx)

		program := tea.NewProgram(
			tui.New(a),
			tea.WithAltScreen(),
		)

		ch, cancelSubs := setupSubscriptions(a, ctx)

		forwardCtx, forwardCancel := context.WithCancel(ctx)
		var forwardWG sync.WaitGroup
		forwardWG.Add(1)
		go func() {
			defer forwardWG.Done()
			defer logging.RecoverPanic("tui-message-forwarder", func() {
				program.Quit()
			})
			for {
				select {
				case <-forwardCtx.Done():
					return
				case msg, ok := <-ch:
					if !ok {
						return
					}
					program.Send(msg)
				}
			}
		}()

		_, err = program.Run()

		cancelSubs()
		a.Shutdown()
		forwardCancel()
		forwardWG.Wait()

		if err != nil {
			return fmt.Errorf("tui error: %w", err)
		}
		return nil
	},
}

// setup installs logging and loads configuration for every command.
// Debug mode mirrors logs to stderr with a pretty handler; otherwise
// they flow only into the in-memory log service.
func setup(cmd *cobra.Command) error {
	debug, _ := cmd.Flags().GetBool("debug")

	// Capture everything until the configured log.level is known.
	lvl := new(slog.LevelVar)
	lvl.Set(slog.LevelDebug)
	var handler slog.Handler = slog.NewTextHandler(logging.NewSlogWriter(), &slog.HandlerOptions{
		Level: lvl,
	})
	if debug {
		handler = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Level:           log.DebugLevel,
		})
	}
	slog.SetDefault(slog.New(handler))

	cwd, _ := cmd.Flags().GetString("cwd")
	if cwd != "" {
		if err := os.Chdir(cwd); err != nil {
			return fmt.Errorf("failed to change directory: %w", err)
		}
	}
	if cwd == "" {
		c, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current working directory: %w", err)
		}
		cwd = c
	}
	cfg, err := config.Load(cwd, debug)
	if err != nil {
		return err
	}
	lvl.Set(cfg.SlogLevel())
	return nil
}

// runOneShot reads the file, extracts the context window around the
// offset, and prints a single completion. Made for scripting and for
// editors that shell out instead of embedding.
func runOneShot(ctx context.Context, file string, offset int, outputFormat format.OutputFormat) error {
	if !outputFormat.IsValid() {
		return fmt.Errorf("invalid output format: %s", outputFormat)
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("read %s: %w", file, err)
	}
	cfg := config.Get()
	if offset < 0 {
		offset = len([]rune(string(data)))
	}

	a, err := app.New(ctx)
	if err != nil {
		return err
	}

	win := completion.ExtractContext(string(data), offset, cfg.Context)
	timeout := time.Duration(cfg.Provider.TimeoutSeconds) * time.Second
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	text, err := a.Provider.Complete(reqCtx, win)
	if err != nil {
		return fmt.Errorf("completion failed: %w", err)
	}

	out, err := format.FormatOutput(text, outputFormat)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

func setupSubscriber[T any](
	ctx context.Context,
	wg *sync.WaitGroup,
	name string,
	subscriber func(context.Context) <-chan pubsub.Event[T],
	outputCh chan<- tea.Msg,
) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer logging.RecoverPanic(fmt.Sprintf("subscription-%s", name), nil)

		subCh := subscriber(ctx)
		for {
			select {
			case event, ok := <-subCh:
				if !ok {
					return
				}
				var msg tea.Msg = event
				select {
				case outputCh <- msg:
				case <-time.After(2 * time.Second):
					slog.Warn("Message dropped due to slow consumer", "name", name)
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()
}

func setupSubscriptions(a *app.App, parentCtx context.Context) (chan tea.Msg, func()) {
	ch := make(chan tea.Msg, 100)

	wg := sync.WaitGroup{}
	ctx, cancel := context.WithCancel(parentCtx)

	setupSubscriber(ctx, &wg, "suggestions", a.Controller.Subscribe, ch)
	setupSubscriber(ctx, &wg, "status", a.Status.Subscribe, ch)
	setupSubscriber(ctx, &wg, "logs", logging.Subscribe, ch)

	cleanupFunc := func() {
		cancel()

		waitCh := make(chan struct{})
		go func() {
			defer logging.RecoverPanic("subscription-cleanup", nil)
			wg.Wait()
			close(waitCh)
		}()

		select {
		case <-waitCh:
			close(ch)
		case <-time.After(5 * time.Second):
			slog.Warn("Timed out waiting for subscription goroutines")
			close(ch)
		}
	}
	return ch, cleanupFunc
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Version")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Debug")
	rootCmd.PersistentFlags().StringP("cwd", "c", "", "Current working directory")
	rootCmd.Flags().StringP("file", "f", "", "Complete the given file once and exit")
	rootCmd.Flags().IntP("offset", "o", -1, "Cursor offset in runes for one-shot mode (default: end of file)")
	rootCmd.Flags().String("output-format", "text", "Output format for one-shot mode (text, json)")
}
