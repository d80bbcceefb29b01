// Package config provides Viper-based hierarchical configuration management.
package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	AI struct {
		Enabled        bool   `mapstructure:"enabled" yaml:"enabled"`
		Model          string `mapstructure:"model" yaml:"model"`
		TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
		PromptFile     string `mapstructure:"prompt_file" yaml:"prompt_file"`
		APIKey         string `mapstructure:"api_key" yaml:"-"` // Never serialize API key
	} `mapstructure:"ai" yaml:"ai"`

	Ledger struct {
		Path string `mapstructure:"path" yaml:"path"`
	} `mapstructure:"ledger" yaml:"ledger"`

	Telegram struct {
		Token          string `mapstructure:"token" yaml:"-"` // Never serialize bot token
		PollTimeoutSec int    `mapstructure:"poll_timeout_seconds" yaml:"poll_timeout_seconds"`
	} `mapstructure:"telegram" yaml:"telegram"`

	Keywords struct {
		File string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"keywords" yaml:"keywords"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading:
// defaults, then an optional config.yaml, then CASHMATE_* environment
// variables, with GEMINI_API_KEY and TELEGRAM_BOT_TOKEN bound unprefixed.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.cashmate")
	v.AddConfigPath(".cashmate")
	v.AddConfigPath(".")

	v.SetEnvPrefix("CASHMATE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Log the error but don't fail - continue with defaults and env vars
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	// Secrets always come from unprefixed environment variables.
	if err := v.BindEnv("ai.api_key", "GEMINI_API_KEY"); err != nil {
		fmt.Printf("Warning: failed to bind GEMINI_API_KEY environment variable: %v\n", err)
	}
	if err := v.BindEnv("telegram.token", "TELEGRAM_BOT_TOKEN"); err != nil {
		fmt.Printf("Warning: failed to bind TELEGRAM_BOT_TOKEN environment variable: %v\n", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("ai.enabled", true)
	v.SetDefault("ai.model", "gemini-2.0-flash")
	v.SetDefault("ai.timeout_seconds", 30)
	v.SetDefault("ai.prompt_file", "config/transaction_prompt.txt")

	v.SetDefault("ledger.path", "cashmate.db")

	v.SetDefault("telegram.poll_timeout_seconds", 10)

	v.SetDefault("keywords.file", "keywords.yaml")
}

func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if config.AI.Enabled && config.AI.Model == "" {
		return fmt.Errorf("ai.model must be set when AI parsing is enabled")
	}

	if config.AI.TimeoutSeconds < 1 || config.AI.TimeoutSeconds > 300 {
		return fmt.Errorf("ai.timeout_seconds must be between 1 and 300, got: %d", config.AI.TimeoutSeconds)
	}

	if config.Ledger.Path == "" {
		return fmt.Errorf("ledger.path must not be empty")
	}

	return nil
}

// ConfigureLoggingFromConfig configures logging based on the Config struct.
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}
