// Package config provides configuration loading and validation for the server and CLI.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap/zapcore"
)

// Supported provider names
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Config represents the configuration that can be loaded from a JSON file and
// overlaid with environment variables. All fields are optional; missing values
// use Defaults.
type Config struct {
	// Server
	Port          int    `json:"port,omitempty"`           // Listen port
	AllowedOrigin string `json:"allowed_origin,omitempty"` // Access-Control-Allow-Origin value
	MaxBodyBytes  int64  `json:"max_body_bytes,omitempty"` // Request body limit for POST /api/enhance

	// Provider
	Provider      string `json:"provider,omitempty"`        // "gemini" or "openai"
	Model         string `json:"model,omitempty"`           // Overrides the provider's default model
	APIKey        string `json:"api_key,omitempty"`         // Provider API key
	OpenAIBaseURL string `json:"openai_base_url,omitempty"` // OpenAI-compatible endpoint

	// Client
	ServerURL  string `json:"server_url,omitempty"`  // Relay base URL used by the enhance command
	UseBrowser bool   `json:"use_browser,omitempty"` // Use headless browser for SPA job boards

	// Logging
	LogLevel    string `json:"log_level,omitempty"`   // debug, info, warn or error
	Development bool   `json:"development,omitempty"` // Human-readable console logs
}

// Defaults returns the built-in configuration
func Defaults() Config {
	return Config{
		Port:          5000,
		AllowedOrigin: "*",
		MaxBodyBytes:  100 << 10,
		Provider:      ProviderGemini,
		ServerURL:     "http://localhost:5000",
		LogLevel:      "info",
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv reads configuration from environment variables. The API key is not
// read here because its variable depends on the provider; see APIKeyFromEnv.
func FromEnv() (Config, error) {
	cfg := Config{
		AllowedOrigin: os.Getenv("ALLOWED_ORIGIN"),
		Provider:      strings.ToLower(strings.TrimSpace(os.Getenv("LLM_PROVIDER"))),
		Model:         os.Getenv("LLM_MODEL"),
		OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),
		ServerURL:     os.Getenv("RESUME_OPTIMAX_SERVER"),
		LogLevel:      os.Getenv("LOG_LEVEL"),
	}

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("config error: invalid PORT %q: %w", v, err)
		}
		cfg.Port = port
	}
	if v := os.Getenv("MAX_BODY_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("config error: invalid MAX_BODY_BYTES %q: %w", v, err)
		}
		cfg.MaxBodyBytes = n
	}
	if v := os.Getenv("LOG_DEVELOPMENT"); v != "" {
		dev, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("config error: invalid LOG_DEVELOPMENT %q: %w", v, err)
		}
		cfg.Development = dev
	}

	return cfg, nil
}

// APIKeyFromEnv returns the credential for provider: OPENAI_API_KEY for
// "openai", GEMINI_API_KEY otherwise.
func APIKeyFromEnv(provider string) string {
	if provider == ProviderOpenAI {
		return os.Getenv("OPENAI_API_KEY")
	}
	return os.Getenv("GEMINI_API_KEY")
}

// Load builds the effective configuration: the optional JSON file at path,
// then environment variables, then Defaults. A missing API key is not an error.
func Load(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		fileCfg, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = *fileCfg
	}

	envCfg, err := FromEnv()
	if err != nil {
		return nil, err
	}

	// Environment wins over the file
	merged := envCfg.MergeWithDefaults(cfg)
	merged = merged.MergeWithDefaults(Defaults())
	merged.Development = envCfg.Development || cfg.Development
	merged.UseBrowser = cfg.UseBrowser

	if merged.APIKey == "" {
		merged.APIKey = APIKeyFromEnv(merged.Provider)
	}

	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't require an API key; without one every enhancement fails.
func (c *Config) Validate() error {
	switch c.Provider {
	case "", ProviderGemini, ProviderOpenAI:
	default:
		return fmt.Errorf("config error: unsupported provider %q", c.Provider)
	}

	// Validate numeric ranges
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.MaxBodyBytes < 0 {
		return fmt.Errorf("config error: 'max_body_bytes' must be non-negative")
	}

	if c.LogLevel != "" {
		if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
			return fmt.Errorf("config error: invalid 'log_level': %w", err)
		}
	}

	for name, raw := range map[string]string{"openai_base_url": c.OpenAIBaseURL, "server_url": c.ServerURL} {
		if raw == "" {
			continue
		}
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("config error: '%s' must be an absolute URL: %q", name, raw)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.AllowedOrigin == "" {
		result.AllowedOrigin = defaults.AllowedOrigin
	}
	if result.Provider == "" {
		result.Provider = defaults.Provider
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.OpenAIBaseURL == "" {
		result.OpenAIBaseURL = defaults.OpenAIBaseURL
	}
	if result.ServerURL == "" {
		result.ServerURL = defaults.ServerURL
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}

	// Numeric fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.MaxBodyBytes == 0 {
		result.MaxBodyBytes = defaults.MaxBodyBytes
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
