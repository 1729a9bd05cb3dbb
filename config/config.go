package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the schedule assistant.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Store     StoreConfig     `yaml:"store"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	LLM       LLMConfig       `yaml:"llm"`
	Retrieve  RetrieveConfig  `yaml:"retrieve"`
	Cache     CacheConfig     `yaml:"cache"`
	Index     IndexConfig     `yaml:"index"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Addr      string `yaml:"addr"`
	UploadDir string `yaml:"upload_dir"`
}

// StoreConfig holds chunk store configuration.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// EmbeddingConfig holds embedding configuration.
type EmbeddingConfig struct {
	Provider   string `yaml:"provider"`    // "ollama" or "openai"
	Model      string `yaml:"model"`       // e.g. "all-minilm"
	BaseURL    string `yaml:"base_url"`    // OpenAI-compatible endpoint
	APIKeyEnv  string `yaml:"api_key_env"` // environment variable for API key
	Dimension  int    `yaml:"dimension"`
	TimeoutSec int    `yaml:"timeout_sec"`
}

// LLMConfig holds language model configuration.
type LLMConfig struct {
	BaseURL     string  `yaml:"base_url"`
	Model       string  `yaml:"model"`
	TimeoutSec  int     `yaml:"timeout_sec"`
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
}

// RetrieveConfig holds retrieval configuration. The answer flow and the
// bare search utility carry distinct top-k defaults on purpose.
type RetrieveConfig struct {
	AnswerTopK int `yaml:"answer_top_k"`
	SearchTopK int `yaml:"search_top_k"`
}

// CacheConfig holds answer cache configuration.
type CacheConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Path       string `yaml:"path"`
	TTLMinutes int    `yaml:"ttl_minutes"`
}

// IndexConfig holds bulk indexing configuration.
type IndexConfig struct {
	Includes []string `yaml:"includes"`
	Excludes []string `yaml:"excludes"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:      ":8080",
			UploadDir: "./uploads",
		},
		Store: StoreConfig{
			Path: "schedule.db",
		},
		Embedding: EmbeddingConfig{
			Provider:   "ollama",
			Model:      "all-minilm",
			BaseURL:    "http://localhost:11434/v1",
			APIKeyEnv:  "OPENAI_API_KEY",
			Dimension:  384,
			TimeoutSec: 120,
		},
		LLM: LLMConfig{
			BaseURL:     "http://localhost:11434",
			Model:       "llama3.1",
			TimeoutSec:  120,
			Temperature: 0,
			MaxTokens:   0,
		},
		Retrieve: RetrieveConfig{
			AnswerTopK: 5,
			SearchTopK: 3,
		},
		Cache: CacheConfig{
			Enabled:    true,
			Path:       "answers.db",
			TTLMinutes: 5,
		},
		Index: IndexConfig{
			Includes: []string{"**/*.txt", "**/*.pdf"},
			Excludes: []string{"**/node_modules/**", "**/.git/**", "**/uploads/**"},
		},
		Logging: LoggingConfig{
			Verbose: false,
		},
	}
}

// Load loads configuration from a YAML file, merged over defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for
// schedassist.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "schedassist.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
