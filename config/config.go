package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Defaults applied when the config file or a field is absent.
const (
	DefaultBaseURL       = "https://api.wayfound.ai"
	DefaultSupervisorURL = "https://app.wayfound.ai/mcp"
	DefaultModel         = "claude-sonnet-4-5"
	DefaultMaxTurns      = 50
	DefaultSearchCap     = 3
)

// Config holds the analyst run configuration.
type Config struct {
	BaseURL       string `yaml:"base_url"`
	SupervisorURL string `yaml:"supervisor_url"`
	AgentID       string `yaml:"agent_id"`
	Model         string `yaml:"model"`
	MaxTurns      int    `yaml:"max_turns"`
	SearchCap     int    `yaml:"search_cap"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		BaseURL:       DefaultBaseURL,
		SupervisorURL: DefaultSupervisorURL,
		Model:         DefaultModel,
		MaxTurns:      DefaultMaxTurns,
		SearchCap:     DefaultSearchCap,
	}
}

// Load reads the config file (if present) over the defaults, then applies
// environment overrides. A missing file is not an error.
func Load() (Config, error) {
	path, err := GetConfigFile()
	if err != nil {
		return Config{}, err
	}
	return LoadFrom(path)
}

// LoadFrom behaves like Load but reads a specific file path.
func LoadFrom(path string) (Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.BaseURL = expandEnvVars(cfg.BaseURL)
	cfg.SupervisorURL = expandEnvVars(cfg.SupervisorURL)
	cfg.AgentID = expandEnvVars(cfg.AgentID)
	applyEnvOverrides(&cfg)

	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.SupervisorURL == "" {
		cfg.SupervisorURL = DefaultSupervisorURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.MaxTurns <= 0 {
		cfg.MaxTurns = DefaultMaxTurns
	}
	if cfg.SearchCap <= 0 {
		cfg.SearchCap = DefaultSearchCap
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv("WAYFOUND_API_URL")); v != "" {
		cfg.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv("WAYFOUND_MCP_URL")); v != "" {
		cfg.SupervisorURL = v
	}
	if v := strings.TrimSpace(os.Getenv("WAYFOUND_AGENT_ID")); v != "" {
		cfg.AgentID = v
	}
	if v := strings.TrimSpace(os.Getenv("ANALYST_MODEL")); v != "" {
		cfg.Model = v
	}
}

// expandEnvVars expands environment variables in the format ${VAR_NAME}.
func expandEnvVars(s string) string {
	if !strings.Contains(s, "${") {
		return s
	}
	return os.Expand(s, func(key string) string {
		return os.Getenv(key)
	})
}
