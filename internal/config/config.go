// Package config provides Viper-based configuration loading for the game.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
	// File is the log destination path. The terminal front end owns stdout,
	// so logs default to a file rather than the play surface.
	File string `mapstructure:"file"`
}

// OllamaConfig holds connection settings for a local Ollama instance.
type OllamaConfig struct {
	// BaseURL is the API root, e.g. "http://localhost:11434/api".
	BaseURL string `mapstructure:"base_url"`
	// Model is the Ollama model name.
	Model string `mapstructure:"model"`
	// Timeout bounds a single generation request.
	Timeout time.Duration `mapstructure:"timeout"`
}

// AnthropicConfig holds Anthropic Messages API settings.
type AnthropicConfig struct {
	// APIKey authenticates requests; usually set via env or .env, not YAML.
	APIKey string `mapstructure:"api_key"`
	// Model is the model name; empty selects the package default.
	Model string `mapstructure:"model"`
}

// NarrativeConfig selects and configures the generative backend.
type NarrativeConfig struct {
	// Provider is the backend kind: "ollama", "anthropic", or "none".
	// "none" runs the game entirely on fallback text.
	Provider  string          `mapstructure:"provider"`
	Ollama    OllamaConfig    `mapstructure:"ollama"`
	Anthropic AnthropicConfig `mapstructure:"anthropic"`
}

// GameConfig holds gameplay settings.
type GameConfig struct {
	// Difficulty is the starting difficulty: "easy", "normal", "nightmare".
	Difficulty string `mapstructure:"difficulty"`
	// ContentDir is the root of species/location YAML catalogs; empty or
	// missing directories fall back to the builtin catalogs.
	ContentDir string `mapstructure:"content_dir"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging   LoggingConfig   `mapstructure:"logging"`
	Narrative NarrativeConfig `mapstructure:"narrative"`
	Game      GameConfig      `mapstructure:"game"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error
// describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateNarrative(c.Narrative); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateGame(c.Game); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateNarrative(n NarrativeConfig) error {
	var errs []string
	switch n.Provider {
	case "ollama":
		if n.Ollama.BaseURL == "" {
			errs = append(errs, "narrative.ollama.base_url must not be empty")
		}
		if n.Ollama.Model == "" {
			errs = append(errs, "narrative.ollama.model must not be empty")
		}
		if n.Ollama.Timeout <= 0 {
			errs = append(errs, "narrative.ollama.timeout must be > 0")
		}
	case "anthropic":
		if n.Anthropic.APIKey == "" {
			errs = append(errs, "narrative.anthropic.api_key must not be empty")
		}
	case "none":
	default:
		errs = append(errs, fmt.Sprintf("narrative.provider must be one of [ollama, anthropic, none], got %q", n.Provider))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateGame(g GameConfig) error {
	validDifficulties := map[string]bool{"easy": true, "normal": true, "nightmare": true}
	if !validDifficulties[g.Difficulty] {
		return fmt.Errorf("game.difficulty must be one of [easy, normal, nightmare], got %q", g.Difficulty)
	}
	return nil
}

// Load reads configuration from the given file path, applies environment
// variable overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with NIGHTFALL_ prefix
	v.SetEnvPrefix("NIGHTFALL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.file", "nightfall.log")

	v.SetDefault("narrative.provider", "ollama")
	v.SetDefault("narrative.ollama.base_url", "http://localhost:11434/api")
	v.SetDefault("narrative.ollama.model", "llama2")
	v.SetDefault("narrative.ollama.timeout", "30s")
	v.SetDefault("narrative.anthropic.model", "")

	v.SetDefault("game.difficulty", "normal")
	v.SetDefault("game.content_dir", "content")
}
