// Package config provides configuration loading and validation for the
// resume builder.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Defaults applied when neither the config file nor the environment
// provides a value.
const (
	DefaultPort       = 8080
	DefaultSessionTTL = 2 * time.Hour
)

// Config holds process-wide settings, read once at startup and read-only
// afterwards. The Gemini API key is the single required value.
type Config struct {
	APIKey       string
	Port         int
	Model        string
	ReadyMarkers []string
	SessionTTL   time.Duration
}

// fileConfig is the optional JSON config file shape. All fields are
// optional; environment variables override them.
type fileConfig struct {
	APIKey       string   `json:"api_key,omitempty"`
	Port         int      `json:"port,omitempty"`
	Model        string   `json:"model,omitempty"`
	ReadyMarkers []string `json:"ready_markers,omitempty"`
	SessionTTL   string   `json:"session_ttl,omitempty"`
}

// Load builds configuration from defaults, then the optional JSON file at
// path, then the environment. A missing API key is a fatal configuration
// error: the completion gateway cannot operate without a credential.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Port:       DefaultPort,
		SessionTTL: DefaultSessionTTL,
	}

	if path != "" {
		if err := applyFile(cfg, path); err != nil {
			return nil, err
		}
	}
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if cfg.APIKey == "" {
		return nil, &ConfigurationError{
			Field:   "api_key",
			Message: "GEMINI_API_KEY is not set; the completion gateway cannot be reached",
		}
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, &ConfigurationError{
			Field:   "port",
			Message: fmt.Sprintf("invalid port %d", cfg.Port),
		}
	}

	return cfg, nil
}

func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &ConfigurationError{Field: "config", Message: fmt.Sprintf("failed to read config file %s: %v", path, err)}
	}

	var fc fileConfig
	if err := json.Unmarshal(data, &fc); err != nil {
		return &ConfigurationError{Field: "config", Message: fmt.Sprintf("failed to parse config JSON: %v", err)}
	}

	if fc.APIKey != "" {
		cfg.APIKey = fc.APIKey
	}
	if fc.Port != 0 {
		cfg.Port = fc.Port
	}
	if fc.Model != "" {
		cfg.Model = fc.Model
	}
	if len(fc.ReadyMarkers) > 0 {
		cfg.ReadyMarkers = fc.ReadyMarkers
	}
	if fc.SessionTTL != "" {
		ttl, err := time.ParseDuration(fc.SessionTTL)
		if err != nil {
			return &ConfigurationError{Field: "session_ttl", Message: fmt.Sprintf("invalid duration %q", fc.SessionTTL)}
		}
		cfg.SessionTTL = ttl
	}

	return nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return &ConfigurationError{Field: "port", Message: fmt.Sprintf("invalid PORT %q", v)}
		}
		cfg.Port = port
	}
	if v := os.Getenv("GEMINI_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("READY_MARKERS"); v != "" {
		cfg.ReadyMarkers = splitMarkers(v)
	}
	if v := os.Getenv("SESSION_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return &ConfigurationError{Field: "session_ttl", Message: fmt.Sprintf("invalid SESSION_TTL %q", v)}
		}
		cfg.SessionTTL = ttl
	}
	return nil
}

// splitMarkers parses a comma-separated marker list, dropping blanks.
func splitMarkers(v string) []string {
	var markers []string
	for _, part := range strings.Split(v, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			markers = append(markers, part)
		}
	}
	return markers
}
