// Package config provides configuration loading and structs for docstudio.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug    bool           `yaml:"debug"`
	Server   ServerConfig   `yaml:"server"`
	Gemini   GeminiConfig   `yaml:"gemini"`
	Chunking ChunkingConfig `yaml:"chunking"`
	Search   SearchConfig   `yaml:"search"`
	Export   ExportConfig   `yaml:"export"`
	Watch    WatchConfig    `yaml:"watch"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// GeminiConfig holds remote model endpoint settings. The API key itself is
// never stored in config files; APIKeyEnv names the environment variable.
type GeminiConfig struct {
	APIKeyEnv           string   `yaml:"api_key_env"`
	BaseURL             string   `yaml:"base_url"`
	EmbeddingModel      string   `yaml:"embedding_model"`
	EmbeddingDimensions int      `yaml:"embedding_dimensions"`
	EmbeddingMaxChars   int      `yaml:"embedding_max_chars"`
	EmbeddingCacheSize  int      `yaml:"embedding_cache_size"`
	PreferredModels     []string `yaml:"preferred_models"`
	Temperature         float64  `yaml:"temperature"`
	TopP                float64  `yaml:"top_p"`
	MaxOutputTokens     int      `yaml:"max_output_tokens"`
	Attempts            int      `yaml:"attempts"`
	TimeoutSeconds      int      `yaml:"timeout_seconds"`
}

// ChunkingConfig holds word-window chunking settings.
type ChunkingConfig struct {
	Size     int `yaml:"size"`      // window size in words
	Overlap  int `yaml:"overlap"`   // window overlap in words
	MinChars int `yaml:"min_chars"` // chunks at or below this length are dropped
}

// SearchConfig holds retrieval settings.
type SearchConfig struct {
	TopK       int `yaml:"top_k"`       // passages retrieved per query
	ContextTop int `yaml:"context_top"` // passages placed in the hybrid prompt
}

// ExportConfig holds the watermark identity for exported artifacts.
type ExportConfig struct {
	Tool    string `yaml:"tool"`
	Version string `yaml:"version"`
	Creator string `yaml:"creator"`
}

// WatchConfig holds drop-folder auto-ingest settings.
type WatchConfig struct {
	Directories []string `yaml:"directories"`
	Extensions  []string `yaml:"extensions"`
	Recursive   *bool    `yaml:"recursive"`
}

// RecursiveOrDefault returns whether to watch recursively; defaults to true when unset.
func (w *WatchConfig) RecursiveOrDefault() bool {
	if w.Recursive != nil {
		return *w.Recursive
	}
	return true
}

// APIKey returns the credential from the configured environment variable.
func (g *GeminiConfig) APIKey() string {
	return strings.TrimSpace(os.Getenv(g.APIKeyEnv))
}

// Load reads and parses the config file at path, expands watch paths, and
// applies defaults. Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	for i := range cfg.Watch.Directories {
		cfg.Watch.Directories[i] = expandPath(cfg.Watch.Directories[i], configDir)
	}

	return &cfg, nil
}

// Default returns a config with all defaults applied, for running without a file.
func Default() *Config {
	var cfg Config
	ApplyDefaults(&cfg)
	return &cfg
}

// expandPath converts a path to absolute. Paths starting with "./" are relative
// to configDir; other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
