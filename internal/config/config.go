// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config loads and persists the clippy configuration file.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/studychain01/clippy-ai/internal/llm"
	"github.com/studychain01/clippy-ai/internal/util"
)

// ===== TYPES =====

// Config holds all user-tunable settings. Values are read from
// ~/.clippy/config.toml and may be overridden by environment variables.
type Config struct {
	API     APIConfig     `toml:"api"`
	Chat    ChatConfig    `toml:"chat"`
	Storage StorageConfig `toml:"storage"`
}

// APIConfig configures the chat-completions endpoint.
type APIConfig struct {
	// Key authenticates requests. Leave empty to use CLIPPY_API_KEY.
	Key string `toml:"key"`
	// BaseURL is the API root, e.g. "https://api.openai.com/v1".
	BaseURL string `toml:"base_url"`
	// Model is the model identifier sent with each request.
	Model string `toml:"model"`
	// TimeoutSeconds bounds each request when the caller supplies no
	// deadline of its own.
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// ChatConfig configures conversation behavior.
type ChatConfig struct {
	// Temperature controls sampling randomness (0.0 to 2.0).
	Temperature float64 `toml:"temperature"`
	// MaxTokens caps the response length. Zero means server default.
	MaxTokens int `toml:"max_tokens"`
}

// StorageConfig configures where conversation state lives.
type StorageConfig struct {
	// DataDir holds the state database. Defaults to the config dir.
	DataDir string `toml:"data_dir"`
}

// ===== DEFAULTS =====

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:        llm.DefaultBaseURL,
			Model:          llm.DefaultModel,
			TimeoutSeconds: 60,
		},
		Chat: ChatConfig{
			Temperature: llm.DefaultTemperature,
		},
	}
}

// ConfigDir returns the clippy configuration directory (~/.clippy).
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".clippy"), nil
}

// ConfigPath returns the path of the TOML configuration file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ===== LOADING =====

// Load reads the configuration file, fills defaults for any missing
// fields, and applies environment overrides. A missing file is not an
// error; defaults are used.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	cfg, err := LoadFromPath(path)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnvOverrides()
	return cfg, nil
}

// LoadFromPath reads a configuration file from an explicit path.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.fillDefaults()
	return cfg, nil
}

func (c *Config) fillDefaults() {
	def := Default()
	if c.API.BaseURL == "" {
		c.API.BaseURL = def.API.BaseURL
	}
	if c.API.Model == "" {
		c.API.Model = def.API.Model
	}
	if c.API.TimeoutSeconds <= 0 {
		c.API.TimeoutSeconds = def.API.TimeoutSeconds
	}
	if c.Chat.Temperature == 0 {
		c.Chat.Temperature = def.Chat.Temperature
	}
}

// ApplyEnvOverrides lets environment variables take precedence over the
// file. Useful for keeping credentials out of the config on disk.
func (c *Config) ApplyEnvOverrides() {
	if key := os.Getenv("CLIPPY_API_KEY"); key != "" {
		c.API.Key = key
	}
	if url := os.Getenv("CLIPPY_BASE_URL"); url != "" {
		c.API.BaseURL = url
	}
	if model := os.Getenv("CLIPPY_MODEL"); model != "" {
		c.API.Model = model
	}
}

// ===== VALIDATION =====

// ValidationError describes a rejected configuration value.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Message)
}

// Validate checks the configuration for out-of-range values.
func (c *Config) Validate() error {
	if !strings.HasPrefix(c.API.BaseURL, "http://") && !strings.HasPrefix(c.API.BaseURL, "https://") {
		return &ValidationError{Field: "api.base_url", Message: "must start with http:// or https://"}
	}
	if c.Chat.Temperature < 0 || c.Chat.Temperature > 2 {
		return &ValidationError{Field: "chat.temperature", Message: "must be between 0.0 and 2.0"}
	}
	if c.Chat.MaxTokens < 0 {
		return &ValidationError{Field: "chat.max_tokens", Message: "must not be negative"}
	}
	if c.API.TimeoutSeconds <= 0 {
		return &ValidationError{Field: "api.timeout_seconds", Message: "must be positive"}
	}
	return nil
}

// ===== SAVING =====

// Save writes the configuration to the default path atomically. The
// file is created 0600 since it may hold the API key.
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveToPath(path)
}

// SaveToPath writes the configuration to an explicit path.
func (c *Config) SaveToPath(path string) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return util.AtomicWriteFile(path, buf.Bytes(), 0600)
}

// DataDir returns the resolved data directory, falling back to the
// config directory when unset.
func (c *Config) DataDir() (string, error) {
	if c.Storage.DataDir != "" {
		return c.Storage.DataDir, nil
	}
	return ConfigDir()
}
