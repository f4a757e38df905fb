// Package config manages application configuration from config files and
// environment variables.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"
)

// ContextConfig bounds the text window extracted around the cursor for a
// completion request.
type ContextConfig struct {
	LinesBefore int `json:"linesBefore,omitempty"`
	LinesAfter  int `json:"linesAfter,omitempty"`
	MaxChars    int `json:"maxChars,omitempty"`
	MaxFileSize int `json:"maxFileSize,omitempty"`
}

// CompletionConfig controls trigger admission and preview behavior.
type CompletionConfig struct {
	DebounceMs           int  `json:"debounceMs,omitempty"`
	MinTriggerIntervalMs int  `json:"minTriggerIntervalMs,omitempty"`
	PreserveIndent       bool `json:"preserveIndent,omitempty"`
}

// ProviderConfig configures the completion provider endpoint.
type ProviderConfig struct {
	APIKey         string `json:"apiKey,omitempty"`
	BaseURL        string `json:"baseUrl,omitempty"`
	Model          string `json:"model,omitempty"`
	TimeoutSeconds int    `json:"timeoutSeconds,omitempty"`
	MaxTokens      int    `json:"maxTokens,omitempty"`
}

// TUIConfig defines the configuration for the demo terminal host.
type TUIConfig struct {
	Theme string `json:"theme,omitempty"`
}

// SpeechConfig enables spoken announcements of accepted suggestions.
type SpeechConfig struct {
	Enabled bool `json:"enabled,omitempty"`
}

// LogConfig controls log verbosity.
type LogConfig struct {
	Level string `json:"level,omitempty"`
}

// Config is the main configuration structure for the application.
type Config struct {
	WorkingDir  string           `json:"wd,omitempty"`
	Debug       bool             `json:"debug,omitempty"`
	Enabled     bool             `json:"enabled"`
	AutoTrigger bool             `json:"autoTrigger,omitempty"`
	Context     ContextConfig    `json:"context"`
	Completion  CompletionConfig `json:"completion"`
	Provider    ProviderConfig   `json:"provider"`
	TUI         TUIConfig        `json:"tui"`
	Speech      SpeechConfig     `json:"speech"`
	Log         LogConfig        `json:"log"`
}

const (
	appName         = "ghostink"
	defaultLogLevel = "info"
)

// Global configuration instance
var cfg *Config

// Load initializes the configuration from environment variables and
// config files. It is safe to call more than once; later calls return
// the already loaded instance.
func Load(workingDir string, debug bool) (*Config, error) {
	if cfg != nil {
		return cfg, nil
	}

	cfg = &Config{
		WorkingDir: workingDir,
	}

	configureViper()
	setDefaults(debug)

	if err := readConfig(viper.ReadInConfig()); err != nil {
		return cfg, err
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return cfg, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	slog.SetLogLoggerLevel(cfg.SlogLevel())

	if err := Validate(); err != nil {
		return cfg, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Get returns the loaded configuration, or nil if Load has not run.
func Get() *Config {
	return cfg
}

// Reset clears the loaded configuration. Intended for tests.
func Reset() {
	cfg = nil
	viper.Reset()
}

// SlogLevel maps the configured log.level to a slog level. Debug mode
// always wins.
func (c *Config) SlogLevel() slog.Level {
	if c.Debug {
		return slog.LevelDebug
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func configureViper() {
	viper.SetConfigName(fmt.Sprintf(".%s", appName))
	viper.SetConfigType("json")
	viper.AddConfigPath("$HOME")
	viper.AddConfigPath(fmt.Sprintf("$XDG_CONFIG_HOME/%s", appName))
	viper.AddConfigPath(fmt.Sprintf("$HOME/.config/%s", appName))
	viper.SetEnvPrefix(strings.ToUpper(appName))
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

// Defaults mirror the values the assistant shipped with originally; they
// are deliberately conservative about request rate.
func setDefaults(debug bool) {
	viper.SetDefault("enabled", true)
	viper.SetDefault("autoTrigger", false)

	viper.SetDefault("context.linesBefore", 50)
	viper.SetDefault("context.linesAfter", 10)
	viper.SetDefault("context.maxChars", 4000)
	viper.SetDefault("context.maxFileSize", 100000)

	viper.SetDefault("completion.debounceMs", 500)
	viper.SetDefault("completion.minTriggerIntervalMs", 1000)
	viper.SetDefault("completion.preserveIndent", true)

	viper.SetDefault("provider.model", "gpt-4o-mini")
	viper.SetDefault("provider.timeoutSeconds", 30)
	viper.SetDefault("provider.maxTokens", 500)

	viper.SetDefault("tui.theme", appName)
	viper.SetDefault("speech.enabled", false)

	if debug {
		viper.SetDefault("debug", true)
		viper.Set("log.level", "debug")
	} else {
		viper.SetDefault("debug", false)
		viper.SetDefault("log.level", defaultLogLevel)
	}
}

func readConfig(err error) error {
	if err == nil {
		return nil
	}
	// It's okay if the config file doesn't exist
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		return nil
	}
	return fmt.Errorf("failed to read config: %w", err)
}

// Validate clamps out-of-range values back to usable ones instead of
// refusing to start.
func Validate() error {
	if cfg == nil {
		return fmt.Errorf("config not loaded")
	}

	if cfg.Context.LinesBefore < 0 {
		cfg.Context.LinesBefore = 0
	}
	if cfg.Context.LinesAfter < 0 {
		cfg.Context.LinesAfter = 0
	}
	if cfg.Context.MaxChars <= 0 {
		slog.Warn("Invalid context.maxChars, using default", "value", cfg.Context.MaxChars)
		cfg.Context.MaxChars = 4000
	}
	if cfg.Context.MaxFileSize <= 0 {
		cfg.Context.MaxFileSize = 100000
	}
	if cfg.Completion.DebounceMs < 0 {
		cfg.Completion.DebounceMs = 0
	}
	if cfg.Completion.MinTriggerIntervalMs < 0 {
		cfg.Completion.MinTriggerIntervalMs = 0
	}
	if cfg.Provider.TimeoutSeconds <= 0 {
		slog.Warn("Invalid provider.timeoutSeconds, using default", "value", cfg.Provider.TimeoutSeconds)
		cfg.Provider.TimeoutSeconds = 30
	}
	if cfg.Provider.MaxTokens <= 0 {
		cfg.Provider.MaxTokens = 500
	}
	return nil
}
