// Package orchestrator composes the store, templates, and curator into the two
// public operations of the service: preparing solve context for a session and
// updating its cheatsheet after a solve attempt.
package orchestrator

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/OneChainTech/dynamic-cheatsheet/internal/curator"
	"github.com/OneChainTech/dynamic-cheatsheet/internal/errors"
	"github.com/OneChainTech/dynamic-cheatsheet/internal/event"
	"github.com/OneChainTech/dynamic-cheatsheet/internal/provider"
	"github.com/OneChainTech/dynamic-cheatsheet/internal/store"
	"github.com/OneChainTech/dynamic-cheatsheet/internal/telemetry"
	"github.com/OneChainTech/dynamic-cheatsheet/internal/template"
)

// Orchestrator wires the pipeline behind the two public operations.
type Orchestrator struct {
	store     store.Store
	templates *template.Cache
	invoker   *curator.Invoker

	generatorPath string
	curatorPath   string

	bus     *event.Bus
	metrics *telemetry.Metrics
	logger  *telemetry.Logger
}

// Options carries the collaborators and template locations.
type Options struct {
	Store         store.Store
	Templates     *template.Cache
	Invoker       *curator.Invoker
	GeneratorPath string
	CuratorPath   string
	Bus           *event.Bus
	Metrics       *telemetry.Metrics
	Logger        *telemetry.Logger
}

// New creates an orchestrator. Bus may be nil (events disabled).
func New(opts Options) *Orchestrator {
	logger := opts.Logger
	if logger == nil {
		logger = telemetry.NewLogger(false)
	}
	metrics := opts.Metrics
	if metrics == nil {
		metrics = telemetry.NewMetrics()
	}
	return &Orchestrator{
		store:         opts.Store,
		templates:     opts.Templates,
		invoker:       opts.Invoker,
		generatorPath: opts.GeneratorPath,
		curatorPath:   opts.CuratorPath,
		bus:           opts.Bus,
		metrics:       metrics,
		logger:        logger,
	}
}

// SolveContext is the payload handed to a downstream solver.
type SolveContext struct {
	SessionID       string `json:"session_id"`
	Cheatsheet      string `json:"cheatsheet"`
	GeneratorPrompt string `json:"generator_prompt"`
}

// UpdateResult acknowledges a completed curation cycle. The new content is
// intentionally not echoed back; callers re-fetch via PrepareSolveContext.
type UpdateResult struct {
	Status    string `json:"status"`
	SessionID string `json:"session_id"`
}

// PrepareSolveContext returns the session's current cheatsheet together with
// the generator template, verbatim. It performs no mutation.
func (o *Orchestrator) PrepareSolveContext(ctx context.Context, sessionID string) (*SolveContext, error) {
	if sessionID == "" {
		return nil, errors.New(errors.CodeInvalidSession, "session_id is empty")
	}

	cheatsheet, err := o.store.Get(sessionID)
	if err != nil {
		return nil, err
	}

	generator, err := o.templates.Load(o.generatorPath)
	if err != nil {
		return nil, err
	}

	o.metrics.IncSolvePrepared()
	o.bus.Emit(event.NewEvent(event.SolvePrepared, map[string]interface{}{
		"session_id": sessionID,
	}))

	return &SolveContext{
		SessionID:       sessionID,
		Cheatsheet:      cheatsheet,
		GeneratorPrompt: generator,
	}, nil
}

// UpdateCheatsheet runs one curation cycle for a session: it renders the
// curation prompt from the previous cheatsheet, the question, and the observed
// model output, calls the curation model, extracts the candidate, and persists
// it. A failed curation call leaves the store exactly as it was; callers may
// retry the whole operation. Concurrent updates on the same session are
// last-write-wins.
func (o *Orchestrator) UpdateCheatsheet(ctx context.Context, sessionID, question, modelOutput string) (*UpdateResult, error) {
	if sessionID == "" {
		return nil, errors.New(errors.CodeInvalidSession, "session_id is empty")
	}

	curationID := uuid.New().String()
	ctx = telemetry.ContextWithTrace(ctx, telemetry.NewTraceContext(curationID).
		WithSession(sessionID).
		WithOperation("update_cheatsheet"))
	log := o.logger.WithTrace(ctx)

	previous, err := o.store.Get(sessionID)
	if err != nil {
		return nil, err
	}

	tmpl, err := o.templates.Load(o.curatorPath)
	if err != nil {
		return nil, err
	}
	prompt := template.Render(tmpl, map[string]string{
		template.PreviousCheatsheet: previous,
		template.Question:           question,
		template.ModelAnswer:        modelOutput,
	})

	o.metrics.IncCurationsStarted()
	o.bus.Emit(event.NewEvent(event.CurationStarted, map[string]interface{}{
		"session_id":  sessionID,
		"curation_id": curationID,
	}))

	start := time.Now()
	raw, err := o.invoker.Generate(ctx, []provider.Message{provider.UserMessage(prompt)})
	if err != nil {
		// Abort with the store untouched.
		o.metrics.IncCurationsFailed()
		o.bus.Emit(event.NewEvent(event.CurationFailed, map[string]interface{}{
			"session_id":  sessionID,
			"curation_id": curationID,
			"error":       err.Error(),
		}))
		log.Error("curation failed", "error", err)
		return nil, err
	}
	o.metrics.IncCurationsCompleted()
	o.metrics.RecordCurationLatency(time.Since(start))
	o.bus.Emit(event.NewEvent(event.CurationCompleted, map[string]interface{}{
		"session_id":  sessionID,
		"curation_id": curationID,
		"duration_ms": time.Since(start).Milliseconds(),
	}))

	candidate := curator.Extract(raw, previous)
	if candidate == previous {
		o.metrics.IncExtractionMisses()
		log.Debug("no cheatsheet block in curator output, keeping previous content")
	}

	normalized := store.Normalize(candidate)
	if err := o.store.Set(sessionID, normalized, previous); err != nil {
		return nil, err
	}

	if normalized == previous {
		o.metrics.IncStoreWritesSkipped()
		o.bus.Emit(event.NewEvent(event.CheatsheetUnchanged, map[string]interface{}{
			"session_id":  sessionID,
			"curation_id": curationID,
		}))
	} else {
		o.metrics.IncStoreWrites()
		o.bus.Emit(event.NewEvent(event.CheatsheetUpdated, map[string]interface{}{
			"session_id":  sessionID,
			"curation_id": curationID,
			"bytes":       len(normalized),
		}))
		log.Info("cheatsheet updated", "bytes", len(normalized))
	}

	return &UpdateResult{Status: "ok", SessionID: sessionID}, nil
}
