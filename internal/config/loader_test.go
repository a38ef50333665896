package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "cheatsheet.yaml"), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return dir
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Name != "dynamic-cheatsheet" {
		t.Errorf("expected default name, got %s", cfg.Name)
	}
	if cfg.Store.Driver != "sqlite" {
		t.Errorf("expected sqlite driver, got %s", cfg.Store.Driver)
	}
	if cfg.Server.Host != "0.0.0.0" || cfg.Server.Port != 8000 {
		t.Errorf("expected default bind 0.0.0.0:8000, got %s:%d", cfg.Server.Host, cfg.Server.Port)
	}
	if cfg.Curator.MaxTokens != 4096 {
		t.Errorf("expected default max tokens 4096, got %d", cfg.Curator.MaxTokens)
	}
}

func TestLoad_ParsesFile(t *testing.T) {
	dir := writeConfig(t, `
name: my-service
curator:
  model: test-model
  temperature: 0.3
  max_tokens: 1024
store:
  driver: memory
server:
  host: 127.0.0.1
  port: 9001
`)
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Name != "my-service" {
		t.Errorf("expected my-service, got %s", cfg.Name)
	}
	if cfg.Curator.Model != "test-model" || cfg.Curator.Temperature != 0.3 || cfg.Curator.MaxTokens != 1024 {
		t.Errorf("curator config not applied: %+v", cfg.Curator)
	}
	if cfg.Store.Driver != "memory" {
		t.Errorf("expected memory driver, got %s", cfg.Store.Driver)
	}
	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 9001 {
		t.Errorf("server config not applied: %+v", cfg.Server)
	}
}

func TestLoad_EnvInterpolation(t *testing.T) {
	t.Setenv("TEST_CURATOR_MODEL", "env-model")
	dir := writeConfig(t, `
curator:
  model: ${env.TEST_CURATOR_MODEL}
`)
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Curator.Model != "env-model" {
		t.Errorf("expected env-model, got %s", cfg.Curator.Model)
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	dir := writeConfig(t, "store: [not: valid")
	if _, err := Load(dir); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestEnvDefaults_ServerBinding(t *testing.T) {
	t.Setenv("MCP_HOST", "10.0.0.5")
	t.Setenv("MCP_PORT", "8080")
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Host != "10.0.0.5" || cfg.Server.Port != 8080 {
		t.Errorf("env binding not applied: %s:%d", cfg.Server.Host, cfg.Server.Port)
	}
}

func TestEnvDefaults_MalformedValuesFallBack(t *testing.T) {
	t.Setenv("MCP_PORT", "not-a-number")
	t.Setenv("CURATOR_TEMPERATURE", "warm")
	t.Setenv("CURATOR_MAX_TOKENS", "lots")
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("malformed env values must not fail loading: %v", err)
	}
	if cfg.Server.Port != 8000 {
		t.Errorf("expected fallback port 8000, got %d", cfg.Server.Port)
	}
	if cfg.Curator.Temperature != 0.0 {
		t.Errorf("expected fallback temperature 0.0, got %f", cfg.Curator.Temperature)
	}
	if cfg.Curator.MaxTokens != 4096 {
		t.Errorf("expected fallback max tokens 4096, got %d", cfg.Curator.MaxTokens)
	}
}

func TestTemplatesConfig_Paths(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := cfg.Templates.GeneratorPath(); got != "templates/generator.txt" {
		t.Errorf("unexpected generator path: %s", got)
	}
	if got := cfg.Templates.CuratorPath(); got != "templates/curator.txt" {
		t.Errorf("unexpected curator path: %s", got)
	}
}
