package provider

import (
	"context"
	"fmt"
	"testing"
	"time"
)

// flakyProvider fails a configured number of times before succeeding.
type flakyProvider struct {
	failures int
	errFunc  func() error
	calls    int
}

func (f *flakyProvider) Name() string { return "flaky" }

func (f *flakyProvider) Complete(_ context.Context, _ *CompletionRequest) (*Response, error) {
	f.calls++
	if f.calls <= f.failures {
		return nil, f.errFunc()
	}
	return &Response{Content: "ok", StopReason: "end_turn"}, nil
}

func fastRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:     3,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     5 * time.Millisecond,
		JitterFraction: 0,
	}
}

func TestRetryProvider_SucceedsFirstTry(t *testing.T) {
	inner := &flakyProvider{failures: 0}
	r := NewRetryProvider(inner, fastRetryConfig())

	resp, err := r.Complete(context.Background(), &CompletionRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Content != "ok" {
		t.Fatalf("unexpected content: %s", resp.Content)
	}
	if inner.calls != 1 {
		t.Fatalf("expected 1 call, got %d", inner.calls)
	}
}

func TestRetryProvider_RetriesTransientError(t *testing.T) {
	inner := &flakyProvider{
		failures: 2,
		errFunc:  func() error { return fmt.Errorf("request failed: connection reset") },
	}
	r := NewRetryProvider(inner, fastRetryConfig())

	resp, err := r.Complete(context.Background(), &CompletionRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Content != "ok" {
		t.Fatalf("unexpected content: %s", resp.Content)
	}
	if inner.calls != 3 {
		t.Fatalf("expected 3 calls, got %d", inner.calls)
	}
}

func TestRetryProvider_ExhaustsRetries(t *testing.T) {
	inner := &flakyProvider{
		failures: 10,
		errFunc:  func() error { return fmt.Errorf("API error (status 529): overloaded") },
	}
	r := NewRetryProvider(inner, fastRetryConfig())

	_, err := r.Complete(context.Background(), &CompletionRequest{})
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if inner.calls != 4 { // initial + 3 retries
		t.Fatalf("expected 4 calls, got %d", inner.calls)
	}
}

func TestRetryProvider_NonRetryableError(t *testing.T) {
	inner := &flakyProvider{
		failures: 10,
		errFunc:  func() error { return fmt.Errorf("API error (status 401): unauthorized") },
	}
	r := NewRetryProvider(inner, fastRetryConfig())

	_, err := r.Complete(context.Background(), &CompletionRequest{})
	if err == nil {
		t.Fatal("expected error")
	}
	if inner.calls != 1 {
		t.Fatalf("expected 1 call (no retry), got %d", inner.calls)
	}
}

func TestRetryProvider_ContextCancelled(t *testing.T) {
	inner := &flakyProvider{
		failures: 10,
		errFunc:  func() error { return fmt.Errorf("request failed: timeout") },
	}
	cfg := fastRetryConfig()
	cfg.InitialBackoff = time.Second // long enough that cancellation wins

	r := NewRetryProvider(inner, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := r.Complete(ctx, &CompletionRequest{})
	if err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRetryProvider_IsRetryable(t *testing.T) {
	r := NewRetryProvider(&flakyProvider{}, DefaultRetryConfig())

	cases := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{context.Canceled, false},
		{context.DeadlineExceeded, false},
		{fmt.Errorf("request failed: dial tcp: refused"), true},
		{fmt.Errorf("API error (status 429): rate limited"), true},
		{fmt.Errorf("API error (status 500): internal"), true},
		{fmt.Errorf("API error (status 503): unavailable"), true},
		{fmt.Errorf("API error (status 400): bad request"), false},
		{fmt.Errorf("API error (status 404): not found"), false},
		{fmt.Errorf("something else entirely"), false},
	}

	for _, c := range cases {
		if got := r.isRetryable(c.err); got != c.want {
			t.Errorf("isRetryable(%v) = %v, want %v", c.err, got, c.want)
		}
	}
}

func TestRetryProvider_BackoffBounded(t *testing.T) {
	cfg := RetryConfig{
		MaxRetries:     5,
		InitialBackoff: time.Second,
		MaxBackoff:     4 * time.Second,
		JitterFraction: 0,
	}
	r := NewRetryProvider(&flakyProvider{}, cfg)

	for attempt := 0; attempt < 10; attempt++ {
		d := r.backoff(attempt)
		if d < 0 || d > cfg.MaxBackoff {
			t.Fatalf("backoff(%d) = %v out of bounds", attempt, d)
		}
	}
}
