package telemetry

import (
	"context"
	"crypto/rand"
	"encoding/hex"
)

type traceKey struct{}

// TraceContext carries correlation IDs through the curation pipeline.
type TraceContext struct {
	RequestID string `json:"request_id"`
	TraceID   string `json:"trace_id"`
	SpanID    string `json:"span_id"`
	ParentID  string `json:"parent_id,omitempty"`
	SessionID string `json:"session_id,omitempty"`
	Operation string `json:"operation,omitempty"`
}

// NewTraceContext creates a root trace context with a fresh TraceID and SpanID.
func NewTraceContext(requestID string) *TraceContext {
	return &TraceContext{
		RequestID: requestID,
		TraceID:   randomID(),
		SpanID:    randomID(),
	}
}

// ChildSpan creates a child trace context inheriting the TraceID and RequestID.
func (tc *TraceContext) ChildSpan() *TraceContext {
	return &TraceContext{
		RequestID: tc.RequestID,
		TraceID:   tc.TraceID,
		SpanID:    randomID(),
		ParentID:  tc.SpanID,
	}
}

// WithSession returns a copy with the SessionID set.
func (tc *TraceContext) WithSession(id string) *TraceContext {
	child := *tc
	child.SessionID = id
	return &child
}

// WithOperation returns a copy with the Operation set.
func (tc *TraceContext) WithOperation(name string) *TraceContext {
	child := *tc
	child.Operation = name
	return &child
}

// Fields returns key-value pairs suitable for structured logging.
func (tc *TraceContext) Fields() map[string]interface{} {
	fields := map[string]interface{}{
		"request_id": tc.RequestID,
		"trace_id":   tc.TraceID,
		"span_id":    tc.SpanID,
	}
	if tc.ParentID != "" {
		fields["parent_id"] = tc.ParentID
	}
	if tc.SessionID != "" {
		fields["session"] = tc.SessionID
	}
	if tc.Operation != "" {
		fields["operation"] = tc.Operation
	}
	return fields
}

// ContextWithTrace stores a TraceContext in the context.
func ContextWithTrace(ctx context.Context, tc *TraceContext) context.Context {
	return context.WithValue(ctx, traceKey{}, tc)
}

// TraceFromContext extracts a TraceContext from the context, or nil.
func TraceFromContext(ctx context.Context) *TraceContext {
	tc, _ := ctx.Value(traceKey{}).(*TraceContext)
	return tc
}

// WithTrace returns a logger enriched with trace fields from the context.
func (l *Logger) WithTrace(ctx context.Context) *Logger {
	tc := TraceFromContext(ctx)
	if tc == nil {
		return l
	}
	return l.WithFields(tc.Fields())
}

func randomID() string {
	b := make([]byte, 8)
	rand.Read(b)
	return hex.EncodeToString(b)
}
