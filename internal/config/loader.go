package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load loads the service configuration from cheatsheet.yaml in dir.
// A missing file is not an error: the service runs entirely on defaults
// and environment variables.
func Load(dir string) (*Config, error) {
	configFile := filepath.Join(dir, "cheatsheet.yaml")

	content, err := os.ReadFile(configFile)
	if err != nil {
		if os.IsNotExist(err) {
			return defaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Interpolate environment variables
	content = []byte(interpolateEnv(string(content)))

	var cfg Config
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

// interpolateEnv replaces ${env.VAR} and ${VAR} with environment values
func interpolateEnv(content string) string {
	// Match ${env.VAR} pattern
	envPattern := regexp.MustCompile(`\$\{env\.([^}]+)\}`)
	content = envPattern.ReplaceAllStringFunc(content, func(match string) string {
		varName := envPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match // keep original if not found
	})

	// Match ${VAR} pattern
	varPattern := regexp.MustCompile(`\$\{([^}]+)\}`)
	content = varPattern.ReplaceAllStringFunc(content, func(match string) string {
		varName := varPattern.FindStringSubmatch(match)[1]
		if strings.Contains(varName, ".") {
			return match
		}
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match
	})

	return content
}

func defaultConfig() *Config {
	cfg := &Config{
		Name:    "dynamic-cheatsheet",
		Version: "1.0",
	}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Provider.Name == "" {
		cfg.Provider.Name = "anthropic"
	}
	if cfg.Provider.APIKey == "" {
		cfg.Provider.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if cfg.Curator.Model == "" {
		cfg.Curator.Model = envString("CURATOR_MODEL", "claude-sonnet-4-20250514")
	}
	if cfg.Curator.Temperature == 0 {
		cfg.Curator.Temperature = envFloat("CURATOR_TEMPERATURE", 0.0)
	}
	if cfg.Curator.MaxTokens == 0 {
		cfg.Curator.MaxTokens = envInt("CURATOR_MAX_TOKENS", 4096)
	}
	if cfg.Store.Driver == "" {
		cfg.Store.Driver = "sqlite"
	}
	if cfg.Store.Path == "" {
		cfg.Store.Path = ".cheatsheet/store.db"
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = envString("MCP_HOST", "0.0.0.0")
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = envInt("MCP_PORT", 8000)
	}
	if cfg.Templates.Dir == "" {
		cfg.Templates.Dir = "templates"
	}
	if cfg.Templates.Generator == "" {
		cfg.Templates.Generator = "generator.txt"
	}
	if cfg.Templates.Curator == "" {
		cfg.Templates.Curator = "curator.txt"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
}

// envString returns the environment value or the fallback when unset or empty.
func envString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

// envInt returns the parsed environment value. Unset, empty, or malformed
// values fall back silently so a bad deployment env never blocks startup.
func envInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return n
}

// envFloat behaves like envInt for float values.
func envFloat(key string, fallback float64) float64 {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return fallback
	}
	return f
}
