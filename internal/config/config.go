// Package config provides YAML-based configuration loading for carpick.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/run-bigpig/carpick/internal/pkg/paths"
)

// Config is the top-level carpick configuration, loaded from config.yaml.
type Config struct {
	OpenAI   OpenAIConfig   `yaml:"openai"`
	Redis    RedisConfig    `yaml:"redis"`
	Database DatabaseConfig `yaml:"database"`
	Server   ServerConfig   `yaml:"server"`
	LogLevel string         `yaml:"log_level"`
}

// OpenAIConfig holds settings for the chat-completion and embedding backends.
type OpenAIConfig struct {
	APIKey         string `yaml:"api_key"`
	BaseURL        string `yaml:"base_url"`
	Model          string `yaml:"model"`
	EmbeddingModel string `yaml:"embedding_model"`
}

// RedisConfig holds connection settings for the session store.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// DatabaseConfig holds the sqlite inventory database location.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// ServerConfig holds the HTTP listen settings.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// Load reads a YAML config file from path and returns a validated Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse unmarshals YAML bytes into a validated Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns a Config with every default applied and no file read.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills in derived and default values.
func (c *Config) applyDefaults() {
	if c.OpenAI.APIKey == "" {
		c.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if c.OpenAI.Model == "" {
		c.OpenAI.Model = "gpt-4o-mini"
	}
	if c.OpenAI.EmbeddingModel == "" {
		c.OpenAI.EmbeddingModel = "text-embedding-3-small"
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = "127.0.0.1:6379"
	}
	if c.Database.Path == "" {
		c.Database.Path = paths.DefaultDBPath()
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8087"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// validate checks that all required fields are present and consistent.
func (c *Config) validate() error {
	var errs []string
	if c.OpenAI.Model == "" {
		errs = append(errs, "openai.model is required")
	}
	if c.Database.Path == "" {
		errs = append(errs, "database.path is required")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("log_level %q is not one of debug/info/warn/error", c.LogLevel))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
