package telemetry

import (
	"context"
	"testing"
)

func TestTraceContext_RoundTrip(t *testing.T) {
	tc := NewTraceContext("req-1").WithSession("s1").WithOperation("update_cheatsheet")
	ctx := ContextWithTrace(context.Background(), tc)

	got := TraceFromContext(ctx)
	if got == nil {
		t.Fatal("expected trace context")
	}
	if got.RequestID != "req-1" || got.SessionID != "s1" || got.Operation != "update_cheatsheet" {
		t.Errorf("unexpected trace: %+v", got)
	}
}

func TestTraceContext_MissingIsNil(t *testing.T) {
	if tc := TraceFromContext(context.Background()); tc != nil {
		t.Fatalf("expected nil, got %+v", tc)
	}
}

func TestTraceContext_ChildSpan(t *testing.T) {
	parent := NewTraceContext("req-1")
	child := parent.ChildSpan()

	if child.TraceID != parent.TraceID {
		t.Error("child must inherit trace ID")
	}
	if child.ParentID != parent.SpanID {
		t.Error("child parent must be the parent's span")
	}
	if child.SpanID == parent.SpanID {
		t.Error("child must get a fresh span ID")
	}
}

func TestTraceContext_WithCopies(t *testing.T) {
	tc := NewTraceContext("req-1")
	withSession := tc.WithSession("s1")

	if tc.SessionID != "" {
		t.Error("WithSession must not mutate the receiver")
	}
	if withSession.SessionID != "s1" {
		t.Error("WithSession must set the session on the copy")
	}
}

func TestTraceContext_Fields(t *testing.T) {
	tc := NewTraceContext("req-1").WithSession("s1")
	fields := tc.Fields()

	if fields["request_id"] != "req-1" {
		t.Errorf("unexpected request_id: %v", fields["request_id"])
	}
	if fields["session"] != "s1" {
		t.Errorf("unexpected session: %v", fields["session"])
	}
	if _, ok := fields["operation"]; ok {
		t.Error("unset operation must be omitted")
	}
}

func TestLogger_WithTraceNoContext(t *testing.T) {
	logger := NewLogger(false)
	if got := logger.WithTrace(context.Background()); got != logger {
		t.Error("expected same logger when no trace present")
	}
}
