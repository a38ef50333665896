// Package cheatsheet provides a public API for embedding the curation
// pipeline without the MCP or HTTP transports.
//
// Example usage:
//
//	import "github.com/OneChainTech/dynamic-cheatsheet/pkg/cheatsheet"
//
//	client, err := cheatsheet.New(".")
//	defer client.Close()
//
//	sc, err := client.PrepareSolveContext(ctx, "session-1")
//	// ... run the solver with sc.GeneratorPrompt and sc.Cheatsheet ...
//	_, err = client.UpdateCheatsheet(ctx, "session-1", question, modelOutput)
package cheatsheet

import (
	"context"
	"fmt"

	"github.com/OneChainTech/dynamic-cheatsheet/internal/config"
	"github.com/OneChainTech/dynamic-cheatsheet/internal/curator"
	"github.com/OneChainTech/dynamic-cheatsheet/internal/event"
	"github.com/OneChainTech/dynamic-cheatsheet/internal/orchestrator"
	"github.com/OneChainTech/dynamic-cheatsheet/internal/provider"
	"github.com/OneChainTech/dynamic-cheatsheet/internal/provider/anthropic"
	"github.com/OneChainTech/dynamic-cheatsheet/internal/store"
	"github.com/OneChainTech/dynamic-cheatsheet/internal/telemetry"
	"github.com/OneChainTech/dynamic-cheatsheet/internal/template"
)

// SolveContext is the payload handed to a downstream solver.
type SolveContext = orchestrator.SolveContext

// UpdateResult acknowledges a completed curation cycle.
type UpdateResult = orchestrator.UpdateResult

// Client is a wired curation pipeline bound to one configuration.
type Client struct {
	orch  *orchestrator.Orchestrator
	store store.Store
}

// New loads cheatsheet.yaml from dir and wires the pipeline.
func New(dir string) (*Client, error) {
	cfg, err := config.Load(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return NewWithConfig(cfg)
}

// NewWithConfig wires the pipeline from an already-loaded configuration.
func NewWithConfig(cfg *config.Config) (*Client, error) {
	logger := telemetry.NewLogger(false)

	st, err := store.New(cfg.Store.Driver, cfg.Store.Path)
	if err != nil {
		return nil, err
	}

	var prov provider.Provider = anthropic.NewClient(cfg.Provider.APIKey, cfg.Curator.Model)
	prov = provider.NewRetryProvider(prov, provider.DefaultRetryConfig())

	orch := orchestrator.New(orchestrator.Options{
		Store:         st,
		Templates:     template.NewCache(),
		Invoker:       curator.NewInvoker(prov, cfg.Curator.Model, cfg.Curator.Temperature, cfg.Curator.MaxTokens, logger),
		GeneratorPath: cfg.Templates.GeneratorPath(),
		CuratorPath:   cfg.Templates.CuratorPath(),
		Bus:           event.NewBus(logger),
		Metrics:       telemetry.NewMetrics(),
		Logger:        logger,
	})

	return &Client{orch: orch, store: st}, nil
}

// PrepareSolveContext returns the session's cheatsheet and generator prompt.
func (c *Client) PrepareSolveContext(ctx context.Context, sessionID string) (*SolveContext, error) {
	return c.orch.PrepareSolveContext(ctx, sessionID)
}

// UpdateCheatsheet runs one curation cycle for the session.
func (c *Client) UpdateCheatsheet(ctx context.Context, sessionID, question, modelOutput string) (*UpdateResult, error) {
	return c.orch.UpdateCheatsheet(ctx, sessionID, question, modelOutput)
}

// Close releases the underlying store.
func (c *Client) Close() error {
	return c.store.Close()
}
