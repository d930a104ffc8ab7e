package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"
)

const (
	envConfigPath        = "TGWIRE_CONFIG"
	envTelegramBotToken  = "TELEGRAM_BOT_TOKEN"
	envTelegramAllowFrom = "TELEGRAM_ALLOW_FROM"
	envLogFormat         = "TGWIRE_LOG_FORMAT"
	envLogLevel          = "TGWIRE_LOG_LEVEL"
	envLogAddSource      = "TGWIRE_LOG_ADD_SOURCE"
)

const (
	DefaultBaseURL               = "https://api.telegram.org"
	DefaultRequestTimeoutSeconds = 60
	DefaultPollTimeoutSeconds    = 25
	DefaultPollLimit             = 100
)

// ErrNotFound reports that no config file exists at any candidate path.
var ErrNotFound = errors.New("config.json not found")

// Config is the root runtime configuration loaded from config.json.
type Config struct {
	Telegram TelegramConfig `json:"telegram"`
	Polling  PollingConfig  `json:"polling"`
	Logging  LoggingConfig  `json:"logging,omitempty"`
}

// LoggingConfig controls structured log output format and verbosity.
type LoggingConfig struct {
	Format    string `json:"format,omitempty"`
	Level     string `json:"level,omitempty"`
	AddSource bool   `json:"add_source,omitempty"`
}

// TelegramConfig configures the Bot API endpoint and credentials.
type TelegramConfig struct {
	Token                 string   `json:"token"`
	BaseURL               string   `json:"base_url,omitempty"`
	RequestTimeoutSeconds int      `json:"request_timeout_seconds,omitempty"`
	AllowFrom             []string `json:"allow_from,omitempty"`
}

// RequestTimeout is the per-call HTTP timeout. It must exceed the long-poll
// timeout or getUpdates calls are cut short.
func (t TelegramConfig) RequestTimeout() time.Duration {
	return time.Duration(t.RequestTimeoutSeconds) * time.Second
}

// PollingConfig configures getUpdates long polling.
type PollingConfig struct {
	TimeoutSeconds int      `json:"timeout_seconds,omitempty"`
	Limit          int      `json:"limit,omitempty"`
	AllowedUpdates []string `json:"allowed_updates,omitempty"`
}

func (p PollingConfig) Timeout() time.Duration {
	return time.Duration(p.TimeoutSeconds) * time.Second
}

// Default returns a config with every default applied and no token.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// LoadConfig resolves config.json, unmarshals it, and applies defaults and
// environment overrides.
func LoadConfig() (*Config, error) {
	configPath, err := findConfigPath()
	if err != nil {
		return nil, err
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(content, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	applyDefaults(&cfg)
	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadOrDefault is LoadConfig, except that a missing config file yields the
// defaults with environment overrides applied.
func LoadOrDefault() (*Config, error) {
	cfg, err := LoadConfig()
	if errors.Is(err, ErrNotFound) {
		cfg = Default()
		if err := applyEnvOverrides(cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	return cfg, err
}

// Validate checks the settings a Bot API call needs.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Telegram.Token) == "" {
		return fmt.Errorf("telegram.token is required (or set %s)", envTelegramBotToken)
	}
	if c.Polling.Limit < 1 || c.Polling.Limit > 100 {
		return fmt.Errorf("polling.limit must be within 1..100, got %d", c.Polling.Limit)
	}
	if c.Polling.TimeoutSeconds < 0 {
		return fmt.Errorf("polling.timeout_seconds must not be negative")
	}
	if c.Telegram.RequestTimeoutSeconds <= c.Polling.TimeoutSeconds {
		return fmt.Errorf("telegram.request_timeout_seconds (%d) must exceed polling.timeout_seconds (%d)",
			c.Telegram.RequestTimeoutSeconds, c.Polling.TimeoutSeconds)
	}

	return nil
}

func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.Telegram.BaseURL) == "" {
		cfg.Telegram.BaseURL = DefaultBaseURL
	}
	cfg.Telegram.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.Telegram.BaseURL), "/")
	if cfg.Telegram.RequestTimeoutSeconds == 0 {
		cfg.Telegram.RequestTimeoutSeconds = DefaultRequestTimeoutSeconds
	}
	if cfg.Polling.TimeoutSeconds == 0 {
		cfg.Polling.TimeoutSeconds = DefaultPollTimeoutSeconds
	}
	if cfg.Polling.Limit == 0 {
		cfg.Polling.Limit = DefaultPollLimit
	}
}

// applyEnvOverrides injects selected env-driven settings on top of file config.
func applyEnvOverrides(cfg *Config) error {
	if cfg == nil {
		return nil
	}

	if token := strings.TrimSpace(os.Getenv(envTelegramBotToken)); token != "" {
		cfg.Telegram.Token = token
	}

	if rawAllowFrom := strings.TrimSpace(os.Getenv(envTelegramAllowFrom)); rawAllowFrom != "" {
		cfg.Telegram.AllowFrom = parseCSV(rawAllowFrom)
	}

	if format := strings.TrimSpace(os.Getenv(envLogFormat)); format != "" {
		cfg.Logging.Format = format
	}

	if level := strings.TrimSpace(os.Getenv(envLogLevel)); level != "" {
		cfg.Logging.Level = level
	}

	if rawAddSource := strings.TrimSpace(os.Getenv(envLogAddSource)); rawAddSource != "" {
		addSource, err := strconv.ParseBool(rawAddSource)
		if err != nil {
			return fmt.Errorf("parse %s: %w", envLogAddSource, err)
		}
		cfg.Logging.AddSource = addSource
	}

	return nil
}

// parseCSV splits comma-separated values and returns a trimmed compact slice.
func parseCSV(input string) []string {
	parts := strings.Split(input, ",")
	clean := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		clean = append(clean, trimmed)
	}

	return slices.Clip(clean)
}

// findConfigPath resolves the active config file location.
//
// Precedence is TGWIRE_CONFIG first, then cwd-local fallback paths.
func findConfigPath() (string, error) {
	if value := strings.TrimSpace(os.Getenv(envConfigPath)); value != "" {
		if info, err := os.Stat(value); err == nil && !info.IsDir() {
			return value, nil
		}
		return "", fmt.Errorf("%s does not point to a file: %s", envConfigPath, value)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get current working directory: %w", err)
	}

	candidates := []string{
		filepath.Join(cwd, "config.json"),
		filepath.Join(cwd, "config", "config.json"),
	}

	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("%w (checked %s and %s)", ErrNotFound, candidates[0], candidates[1])
}
