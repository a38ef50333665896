package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestServiceError_Error(t *testing.T) {
	err := New(CodeInvalidSession, "session_id is empty")
	expected := "[INVALID_SESSION] session_id is empty"
	if err.Error() != expected {
		t.Errorf("expected %q, got %q", expected, err.Error())
	}
}

func TestServiceError_Wrap(t *testing.T) {
	inner := fmt.Errorf("connection refused")
	err := Wrap(CodeCurationFailed, "curator call failed", inner)

	if err.Error() != "[CURATION_FAILED] curator call failed: connection refused" {
		t.Errorf("unexpected error string: %s", err.Error())
	}

	// Unwrap should return inner
	if !errors.Is(err, inner) {
		t.Error("errors.Is should find inner error")
	}
}

func TestServiceError_WithSuggestion(t *testing.T) {
	err := New(CodeAPIKeyMissing, "ANTHROPIC_API_KEY not set").
		WithSuggestion("Set the ANTHROPIC_API_KEY environment variable or add api_key to cheatsheet.yaml")

	if err.Suggestion != "Set the ANTHROPIC_API_KEY environment variable or add api_key to cheatsheet.yaml" {
		t.Errorf("unexpected suggestion: %s", err.Suggestion)
	}
}

func TestServiceError_ErrorsAs(t *testing.T) {
	err := Wrap(CodeTemplateNotFound, "curator template missing", fmt.Errorf("no such file"))

	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatal("errors.As should work")
	}
	if svcErr.Code != CodeTemplateNotFound {
		t.Errorf("expected code %q, got %q", CodeTemplateNotFound, svcErr.Code)
	}
}

func TestAsCode(t *testing.T) {
	err := New(CodeStoreError, "upsert failed")
	if AsCode(err) != CodeStoreError {
		t.Errorf("expected code %q, got %q", CodeStoreError, AsCode(err))
	}

	// Non-ServiceError
	plain := fmt.Errorf("plain error")
	if AsCode(plain) != "" {
		t.Error("expected empty code for non-ServiceError")
	}
}

func TestSuggestion(t *testing.T) {
	err := New(CodeConfigInvalid, "bad store driver").WithSuggestion("use sqlite, file, or memory")
	if Suggestion(err) != "use sqlite, file, or memory" {
		t.Errorf("expected suggestion, got %q", Suggestion(err))
	}

	// Non-ServiceError
	if Suggestion(fmt.Errorf("plain")) != "" {
		t.Error("expected empty suggestion for non-ServiceError")
	}
}

func TestServiceError_WrappedAs(t *testing.T) {
	inner := New(CodeCurationFailed, "provider error")
	wrapped := fmt.Errorf("update failed: %w", inner)

	var svcErr *ServiceError
	if !errors.As(wrapped, &svcErr) {
		t.Fatal("errors.As should unwrap through fmt.Errorf")
	}
	if svcErr.Code != CodeCurationFailed {
		t.Errorf("expected code %q, got %q", CodeCurationFailed, svcErr.Code)
	}
}
