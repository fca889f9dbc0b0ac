package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseDefaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Parse([]byte("{}"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.OpenAI.APIKey != "sk-test" {
		t.Errorf("api key not taken from env: %q", cfg.OpenAI.APIKey)
	}
	if cfg.OpenAI.Model != "gpt-4o-mini" {
		t.Errorf("default model = %q", cfg.OpenAI.Model)
	}
	if cfg.OpenAI.EmbeddingModel != "text-embedding-3-small" {
		t.Errorf("default embedding model = %q", cfg.OpenAI.EmbeddingModel)
	}
	if cfg.Redis.Addr != "127.0.0.1:6379" {
		t.Errorf("default redis addr = %q", cfg.Redis.Addr)
	}
	if cfg.Server.Addr != ":8087" {
		t.Errorf("default server addr = %q", cfg.Server.Addr)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("default log level = %q", cfg.LogLevel)
	}
	if cfg.Database.Path == "" {
		t.Error("database path default missing")
	}
}

func TestParseOverrides(t *testing.T) {
	raw := `
openai:
  api_key: sk-from-file
  model: gpt-4o
redis:
  addr: redis.internal:6380
  db: 2
server:
  addr: ":9090"
log_level: debug
`
	cfg, err := Parse([]byte(raw))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.OpenAI.APIKey != "sk-from-file" {
		t.Errorf("file value lost: %q", cfg.OpenAI.APIKey)
	}
	if cfg.OpenAI.Model != "gpt-4o" {
		t.Errorf("model override lost: %q", cfg.OpenAI.Model)
	}
	if cfg.Redis.Addr != "redis.internal:6380" || cfg.Redis.DB != 2 {
		t.Errorf("redis override lost: %+v", cfg.Redis)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("server override lost: %q", cfg.Server.Addr)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("log level override lost: %q", cfg.LogLevel)
	}
}

func TestParseInvalidYAML(t *testing.T) {
	_, err := Parse([]byte(":::not yaml"))
	if err == nil {
		t.Fatal("expected parse error")
	}
	if !strings.Contains(err.Error(), "config: parse") {
		t.Errorf("error = %v, want config: parse prefix", err)
	}
}

func TestParseInvalidLogLevel(t *testing.T) {
	_, err := Parse([]byte("log_level: verbose"))
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "log_level") {
		t.Errorf("error = %v, want log_level mention", err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  addr: \":7070\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":7070" {
		t.Errorf("server addr = %q", cfg.Server.Addr)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected read error for missing file")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.OpenAI.Model == "" || cfg.Redis.Addr == "" || cfg.Server.Addr == "" {
		t.Fatalf("Default left required fields empty: %+v", cfg)
	}
}
