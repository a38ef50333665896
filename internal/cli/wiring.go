package cli

import (
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

// app holds the wired service graph shared by the serve and mcp-server commands.
type app struct {
	cfg          *config.Config
	store        store.Store
	orchestrator *orchestrator.Orchestrator
	metrics      *telemetry.Metrics
	exporter     telemetry.MetricsExporter
	logger       *telemetry.Logger
}

// buildApp loads configuration and wires the full pipeline.
func buildApp() (*app, error) {
	cfg, err := config.Load(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	logger := telemetry.NewLogger(verbose)
	if cfg.Logging.File != "" {
		if err := logger.WithFile(cfg.Logging.File); err != nil {
			return nil, err
		}
	}

	st, err := store.New(cfg.Store.Driver, cfg.Store.Path)
	if err != nil {
		return nil, err
	}

	var prov provider.Provider = anthropic.NewClient(cfg.Provider.APIKey, cfg.Curator.Model)
	prov = provider.NewRetryProvider(prov, provider.DefaultRetryConfig())

	bus := event.NewBus(logger)
	bus.SetEnabled(cfg.Hooks.Enabled)
	registerHooks(bus, cfg.Hooks.Hooks, logger)

	metrics := telemetry.NewMetrics()
	var exporter telemetry.MetricsExporter
	if cfg.Metrics.ExportPath != "" {
		exporter, err = telemetry.NewJSONFileExporter(cfg.Metrics.ExportPath)
		if err != nil {
			return nil, err
		}
		metrics.SetExporter(exporter)
	}

	orch := orchestrator.New(orchestrator.Options{
		Store:         st,
		Templates:     template.NewCache(),
		Invoker:       curator.NewInvoker(prov, cfg.Curator.Model, cfg.Curator.Temperature, cfg.Curator.MaxTokens, logger),
		GeneratorPath: cfg.Templates.GeneratorPath(),
		CuratorPath:   cfg.Templates.CuratorPath(),
		Bus:           bus,
		Metrics:       metrics,
		Logger:        logger,
	})

	return &app{
		cfg:          cfg,
		store:        st,
		orchestrator: orch,
		metrics:      metrics,
		exporter:     exporter,
		logger:       logger,
	}, nil
}

// registerHooks builds event hooks from configuration.
func registerHooks(bus *event.Bus, hooks []config.HookConfig, logger *telemetry.Logger) {
	for _, hc := range hooks {
		events := make([]event.EventType, 0, len(hc.Events))
		for _, e := range hc.Events {
			events = append(events, event.EventType(e))
		}

		switch hc.Type {
		case "shell":
			bus.Register(event.NewShellHook(hc.Name, hc.Command, events, hc.Blocking))
		case "webhook":
			bus.Register(event.NewWebhookHook(hc.Name, hc.URL, events, hc.Blocking))
		case "log":
			bus.Register(event.NewLogHook(hc.Name, events, logger, hc.Level))
		}
	}
}

// close flushes metrics and releases the app's resources.
func (a *app) close() {
	if a.exporter != nil {
		a.metrics.Flush("shutdown", nil)
		_ = a.exporter.Close()
	}
	_ = a.store.Close()
	_ = a.logger.Close()
}
