package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/OneChainTech/dynamic-cheatsheet/internal/config"
	"github.com/OneChainTech/dynamic-cheatsheet/internal/provider"
	"github.com/OneChainTech/dynamic-cheatsheet/internal/telemetry"
)

// MockProvider implements provider.Provider for testing.
type MockProvider struct {
	mu         sync.Mutex
	Responses  []*provider.Response // queued responses, consumed in order
	Calls      []*provider.CompletionRequest
	ShouldFail bool
	FailErr    error
	Delay      time.Duration
	idx        int
}

func (m *MockProvider) Name() string { return "mock" }

func (m *MockProvider) Complete(ctx context.Context, req *provider.CompletionRequest) (*provider.Response, error) {
	if m.Delay > 0 {
		select {
		case <-time.After(m.Delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	if m.ShouldFail {
		if m.FailErr != nil {
			return nil, m.FailErr
		}
		return nil, fmt.Errorf("mock provider error")
	}

	if m.idx >= len(m.Responses) {
		return &provider.Response{
			Content:    "default mock response",
			StopReason: "end_turn",
		}, nil
	}

	resp := m.Responses[m.idx]
	m.idx++
	return resp, nil
}

// CallCount returns the number of Complete calls made (thread-safe).
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// LastPrompt returns the content of the last user message sent, or "".
func (m *MockProvider) LastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Calls) == 0 {
		return ""
	}
	msgs := m.Calls[len(m.Calls)-1].Messages
	if len(msgs) == 0 {
		return ""
	}
	return msgs[len(msgs)-1].Content
}

// CuratorResponse builds a provider response wrapping content in the
// cheatsheet delimiters the extractor looks for.
func CuratorResponse(cheatsheet string) *provider.Response {
	return &provider.Response{
		Content:    fmt.Sprintf("Curation notes.\n<cheatsheet>\n%s\n</cheatsheet>", cheatsheet),
		StopReason: "end_turn",
	}
}

// TestLogger returns a logger suitable for tests (verbose, no file output).
func TestLogger() *telemetry.Logger {
	return telemetry.NewLogger(true)
}

// TestConfig returns a minimal config for testing.
func TestConfig() *config.Config {
	return &config.Config{
		Name:    "test-service",
		Version: "1.0",
		Provider: config.ProviderConfig{
			Name: "anthropic",
		},
		Curator: config.CuratorConfig{
			Model:       "mock-model",
			Temperature: 0.0,
			MaxTokens:   4096,
		},
		Store: config.StoreConfig{
			Driver: "memory",
		},
		Server: config.ServerConfig{
			Host: "127.0.0.1",
			Port: 8000,
		},
		Templates: config.TemplatesConfig{
			Dir:       "templates",
			Generator: "generator.txt",
			Curator:   "curator.txt",
		},
		Logging: config.LoggingConfig{
			Level:  "debug",
			Format: "text",
		},
	}
}
