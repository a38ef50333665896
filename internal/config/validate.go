package config

import (
	"fmt"
	"strings"

	"github.com/OneChainTech/dynamic-cheatsheet/internal/errors"
)

var validStoreDrivers = map[string]bool{
	"sqlite": true,
	"file":   true,
	"memory": true,
}

var validHookTypes = map[string]bool{
	"shell":   true,
	"webhook": true,
	"log":     true,
}

// Validate checks a loaded configuration for values that would fail at
// runtime. It collects all problems rather than stopping at the first.
func Validate(cfg *Config) error {
	var problems []string

	if cfg.Provider.Name != "anthropic" {
		problems = append(problems, fmt.Sprintf("unsupported provider %q (only anthropic is supported)", cfg.Provider.Name))
	}
	if cfg.Curator.Temperature < 0 || cfg.Curator.Temperature > 1 {
		problems = append(problems, fmt.Sprintf("curator temperature %.2f out of range [0, 1]", cfg.Curator.Temperature))
	}
	if cfg.Curator.MaxTokens <= 0 {
		problems = append(problems, fmt.Sprintf("curator max_tokens must be positive, got %d", cfg.Curator.MaxTokens))
	}
	if !validStoreDrivers[cfg.Store.Driver] {
		problems = append(problems, fmt.Sprintf("unsupported store driver %q (sqlite, file, memory)", cfg.Store.Driver))
	}
	if cfg.Store.Driver != "memory" && cfg.Store.Path == "" {
		problems = append(problems, fmt.Sprintf("store driver %q requires a path", cfg.Store.Driver))
	}
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		problems = append(problems, fmt.Sprintf("server port %d out of range", cfg.Server.Port))
	}

	for _, h := range cfg.Hooks.Hooks {
		if h.Name == "" {
			problems = append(problems, "hook with empty name")
			continue
		}
		if !validHookTypes[h.Type] {
			problems = append(problems, fmt.Sprintf("hook %s: unsupported type %q (shell, webhook, log)", h.Name, h.Type))
		}
		if h.Type == "shell" && h.Command == "" {
			problems = append(problems, fmt.Sprintf("hook %s: shell hook requires a command", h.Name))
		}
		if h.Type == "webhook" && h.URL == "" {
			problems = append(problems, fmt.Sprintf("hook %s: webhook hook requires a url", h.Name))
		}
	}

	if len(problems) > 0 {
		return errors.New(errors.CodeConfigInvalid, strings.Join(problems, "; ")).
			WithSuggestion("fix cheatsheet.yaml or the corresponding environment variables")
	}
	return nil
}
