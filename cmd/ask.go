package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ghostink-ai/ghostink/internal/app"
	"github.com/ghostink-ai/ghostink/internal/config"
	"github.com/ghostink-ai/ghostink/internal/format"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask the assistant about a piece of code",
	Long: `Ask sends a one-shot request to the model: a free-form question, an
explanation of a file, or a suggested fix. Code is attached with --file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := setup(cmd); err != nil {
			return err
		}

		code, err := readAskCode(cmd)
		if err != nil {
			return err
		}

		ctx, cancel := askContext(cmd.Context())
		defer cancel()

		a, err := app.New(ctx)
		if err != nil {
			return err
		}

		explain, _ := cmd.Flags().GetBool("explain")
		fix, _ := cmd.Flags().GetBool("fix")

		var answer string
		switch {
		case explain:
			answer, err = a.Ask.Explain(ctx, code)
		case fix:
			answer, err = a.Ask.Fix(ctx, code)
		default:
			answer, err = a.Ask.Question(ctx, strings.Join(args, " "), code)
		}
		if err != nil {
			return err
		}

		outputFormatStr, _ := cmd.Flags().GetString("output-format")
		out, err := format.FormatOutput(answer, format.OutputFormat(outputFormatStr))
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	},
}

func readAskCode(cmd *cobra.Command) (string, error) {
	file, _ := cmd.Flags().GetString("file")
	if file == "" {
		return "", nil
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", file, err)
	}
	return string(data), nil
}

func askContext(parent context.Context) (context.Context, context.CancelFunc) {
	timeout := 60 * time.Second
	if cfg := config.Get(); cfg != nil && cfg.Provider.TimeoutSeconds > 0 {
		// Analysis answers run longer than inline completions.
		timeout = 2 * time.Duration(cfg.Provider.TimeoutSeconds) * time.Second
	}
	return context.WithTimeout(parent, timeout)
}

func init() {
	askCmd.Flags().String("file", "", "File to attach to the question")
	askCmd.Flags().Bool("explain", false, "Explain the attached code")
	askCmd.Flags().Bool("fix", false, "Suggest a fix for the attached code")
	askCmd.Flags().String("output-format", "text", "Output format (text, json)")
	askCmd.MarkFlagsMutuallyExclusive("explain", "fix")
	rootCmd.AddCommand(askCmd)
}
