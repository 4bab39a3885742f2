// Package config loads tickdup configuration from a JSON config file and
// the environment. Environment variables override file values; a .env
// file in the working directory is honored when present.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvAccessToken  = "TICKTICK_ACCESS_TOKEN"
	EnvClientID     = "TICKTICK_CLIENT_ID"
	EnvClientSecret = "TICKTICK_CLIENT_SECRET"
	EnvNameFilter   = "TASK_NAME_FILTER"
	EnvTagFilters   = "TASK_FILTER_TAGS"
	EnvPollInterval = "POLLING_INTERVAL"
)

// DefaultPollInterval is used when no interval is configured.
const DefaultPollInterval = 300 * time.Second

// Config represents the tickdup configuration.
type Config struct {
	AccessToken  string   `json:"access_token,omitempty"`
	ClientID     string   `json:"client_id,omitempty"`
	ClientSecret string   `json:"client_secret,omitempty"`
	NameFilter   string   `json:"name_filter,omitempty"`
	TagFilters   []string `json:"tag_filters,omitempty"`
	// PollIntervalSeconds mirrors the POLLING_INTERVAL variable.
	PollIntervalSeconds int    `json:"polling_interval,omitempty"`
	StateDir            string `json:"state_dir,omitempty"`
}

// PollInterval returns the configured polling interval.
func (c *Config) PollInterval() time.Duration {
	if c.PollIntervalSeconds <= 0 {
		return DefaultPollInterval
	}
	return time.Duration(c.PollIntervalSeconds) * time.Second
}

// Validate checks that the config can drive API calls.
func (c *Config) Validate() error {
	if c.AccessToken == "" {
		return fmt.Errorf("%s is required. Set it in the environment, a .env file, or %s", EnvAccessToken, configPathHint())
	}
	return nil
}

// DefaultDir returns the default config/state directory (~/.tickdup).
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".tickdup"), nil
}

// Load reads config.json from dir (missing file is fine), then applies
// environment overrides. A .env file in the current directory is loaded
// first so plain environment variables still win.
func Load(dir string) (*Config, error) {
	// Ignore a missing .env; only real env handling errors matter.
	_ = godotenv.Load()

	cfg := &Config{}

	path := filepath.Join(dir, "config.json")
	data, err := os.ReadFile(path)
	if err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	applyEnv(cfg)

	if cfg.StateDir == "" {
		cfg.StateDir = dir
	}
	return cfg, nil
}

// Save writes config.json to dir.
func Save(dir string, cfg *Config) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvAccessToken); v != "" {
		cfg.AccessToken = v
	}
	if v := os.Getenv(EnvClientID); v != "" {
		cfg.ClientID = v
	}
	if v := os.Getenv(EnvClientSecret); v != "" {
		cfg.ClientSecret = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvNameFilter)); v != "" {
		cfg.NameFilter = v
	}
	if v := os.Getenv(EnvTagFilters); v != "" {
		cfg.TagFilters = ParseTagFilters(v)
	}
	if v := os.Getenv(EnvPollInterval); v != "" {
		if seconds, err := strconv.Atoi(v); err == nil && seconds > 0 {
			cfg.PollIntervalSeconds = seconds
		}
	}
}

// ParseTagFilters splits a comma-separated tag list, trimming whitespace
// and dropping empty entries.
func ParseTagFilters(s string) []string {
	var tags []string
	for _, tag := range strings.Split(s, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

func configPathHint() string {
	dir, err := DefaultDir()
	if err != nil {
		return "~/.tickdup/config.json"
	}
	return filepath.Join(dir, "config.json")
}
