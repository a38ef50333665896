package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/OneChainTech/dynamic-cheatsheet/internal/curator"
	"github.com/OneChainTech/dynamic-cheatsheet/internal/event"
	"github.com/OneChainTech/dynamic-cheatsheet/internal/orchestrator"
	"github.com/OneChainTech/dynamic-cheatsheet/internal/provider"
	"github.com/OneChainTech/dynamic-cheatsheet/internal/store"
	"github.com/OneChainTech/dynamic-cheatsheet/internal/telemetry"
	"github.com/OneChainTech/dynamic-cheatsheet/internal/template"
)

// GeneratorTemplate is the default generator prompt written by the harness.
const GeneratorTemplate = "Solve the problem. Known techniques:\n[[PREVIOUS_CHEATSHEET]]\n"

// CuratorTemplate is the default curation prompt written by the harness.
const CuratorTemplate = "Previous: [[PREVIOUS_CHEATSHEET]]\nQuestion: [[QUESTION]]\nAnswer: [[MODEL_ANSWER]]\nRespond with <cheatsheet> tags.\n"

// TestHarness wires a full orchestrator over a memory store, temp-dir
// templates, a mock provider, and an event-capturing bus.
type TestHarness struct {
	T            *testing.T
	Store        store.Store
	Orchestrator *orchestrator.Orchestrator
	EventBus     *event.Bus
	Metrics      *telemetry.Metrics
	Logger       *telemetry.Logger
	Provider     *MockProvider
	Events       []event.Event // captured events
}

// NewTestHarness creates a harness with default templates in a temp dir.
func NewTestHarness(t *testing.T) *TestHarness {
	t.Helper()

	dir := t.TempDir()
	generatorPath := filepath.Join(dir, "generator.txt")
	curatorPath := filepath.Join(dir, "curator.txt")
	if err := os.WriteFile(generatorPath, []byte(GeneratorTemplate), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(curatorPath, []byte(CuratorTemplate), 0644); err != nil {
		t.Fatal(err)
	}

	logger := TestLogger()
	bus := event.NewBus(logger)
	metrics := telemetry.NewMetrics()
	mock := &MockProvider{}
	st := store.NewMemoryStore()

	h := &TestHarness{
		T:        t,
		Store:    st,
		EventBus: bus,
		Metrics:  metrics,
		Logger:   logger,
		Provider: mock,
		Events:   make([]event.Event, 0),
	}
	bus.Register(&eventCapture{harness: h})

	h.Orchestrator = orchestrator.New(orchestrator.Options{
		Store:         st,
		Templates:     template.NewCache(),
		Invoker:       curator.NewInvoker(mock, "mock-model", 0.0, 4096, logger),
		GeneratorPath: generatorPath,
		CuratorPath:   curatorPath,
		Bus:           bus,
		Metrics:       metrics,
		Logger:        logger,
	})

	return h
}

// SetResponses queues mock provider responses.
func (h *TestHarness) SetResponses(responses ...*provider.Response) {
	h.Provider.Responses = responses
}

// AssertEventEmitted checks that an event with the given type was emitted.
func (h *TestHarness) AssertEventEmitted(eventType event.EventType) {
	h.T.Helper()
	for _, e := range h.Events {
		if e.Type == eventType {
			return
		}
	}
	h.T.Errorf("expected event %q to be emitted", eventType)
}

// AssertNoEvent checks that an event type was NOT emitted.
func (h *TestHarness) AssertNoEvent(eventType event.EventType) {
	h.T.Helper()
	for _, e := range h.Events {
		if e.Type == eventType {
			h.T.Errorf("expected event %q NOT to be emitted, but it was", eventType)
			return
		}
	}
}

// EventCount returns the number of events with the given type.
func (h *TestHarness) EventCount(eventType event.EventType) int {
	count := 0
	for _, e := range h.Events {
		if e.Type == eventType {
			count++
		}
	}
	return count
}

// eventCapture is a blocking hook that records events synchronously.
type eventCapture struct {
	harness *TestHarness
}

func (c *eventCapture) Name() string                 { return "test-capture" }
func (c *eventCapture) Matches(event.EventType) bool { return true } // match all
func (c *eventCapture) IsBlocking() bool             { return true } // sync for tests

func (c *eventCapture) Handle(ev event.Event) error {
	c.harness.Events = append(c.harness.Events, ev)
	return nil
}
