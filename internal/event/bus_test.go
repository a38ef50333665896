package event

import (
	"fmt"
	"sync"
	"testing"
)

// recordingHook captures handled events.
type recordingHook struct {
	baseHook
	mu      sync.Mutex
	handled []Event
	fail    bool
}

func (h *recordingHook) Handle(ev Event) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handled = append(h.handled, ev)
	if h.fail {
		return fmt.Errorf("hook failure")
	}
	return nil
}

func (h *recordingHook) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.handled)
}

func TestBus_EmitToMatchingHook(t *testing.T) {
	bus := NewBus(nil)
	hook := &recordingHook{baseHook: baseHook{
		name:     "updates-only",
		events:   []EventType{CheatsheetUpdated},
		blocking: true,
	}}
	bus.Register(hook)

	if err := bus.Emit(NewEvent(CheatsheetUpdated, map[string]interface{}{"session": "s1"})); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := bus.Emit(NewEvent(CurationFailed, nil)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if hook.count() != 1 {
		t.Fatalf("expected 1 handled event, got %d", hook.count())
	}
}

func TestBus_MatchAllWhenNoFilter(t *testing.T) {
	bus := NewBus(nil)
	hook := &recordingHook{baseHook: baseHook{name: "all", blocking: true}}
	bus.Register(hook)

	bus.Emit(NewEvent(SolvePrepared, nil))
	bus.Emit(NewEvent(CurationStarted, nil))
	bus.Emit(NewEvent(CheatsheetUnchanged, nil))

	if hook.count() != 3 {
		t.Fatalf("expected 3 handled events, got %d", hook.count())
	}
}

func TestBus_BlockingHookErrorPropagates(t *testing.T) {
	bus := NewBus(nil)
	hook := &recordingHook{
		baseHook: baseHook{name: "failing", blocking: true},
		fail:     true,
	}
	bus.Register(hook)

	if err := bus.Emit(NewEvent(CurationCompleted, nil)); err == nil {
		t.Fatal("expected blocking hook error to propagate")
	}
}

func TestBus_Disabled(t *testing.T) {
	bus := NewBus(nil)
	hook := &recordingHook{baseHook: baseHook{name: "all", blocking: true}}
	bus.Register(hook)
	bus.SetEnabled(false)

	bus.Emit(NewEvent(CheatsheetUpdated, nil))
	if hook.count() != 0 {
		t.Fatal("expected no events when bus disabled")
	}
}

func TestBus_NilBusIsSafe(t *testing.T) {
	var bus *Bus
	bus.Register(&recordingHook{})
	bus.SetEnabled(true)
	if err := bus.Emit(NewEvent(CheatsheetUpdated, nil)); err != nil {
		t.Fatalf("nil bus should no-op, got %v", err)
	}
}
