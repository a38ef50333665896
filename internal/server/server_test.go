package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/OneChainTech/dynamic-cheatsheet/internal/mcp"
	"github.com/OneChainTech/dynamic-cheatsheet/internal/testutil"
)

func newTestServer(t *testing.T) (*testutil.TestHarness, http.Handler) {
	t.Helper()
	h := testutil.NewTestHarness(t)
	srv := New(testutil.TestConfig(), mcp.NewToolHandler(h.Orchestrator), h.Metrics, h.Logger)
	return h, corsMiddleware(srv.requestIDMiddleware(srv.setupRoutes()))
}

func TestHealthEndpoint(t *testing.T) {
	_, handler := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("malformed body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("unexpected health payload: %v", body)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("expected a generated request ID header")
	}
}

func TestMetricsEndpoint(t *testing.T) {
	h, handler := newTestServer(t)
	h.Metrics.IncSolvePrepared()

	req := httptest.NewRequest(http.MethodGet, "/api/metrics", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body map[string]interface{}
	json.Unmarshal(rec.Body.Bytes(), &body)
	if body["solve_prepared"] != float64(1) {
		t.Errorf("expected solve_prepared 1, got %v", body["solve_prepared"])
	}
}

func TestMCPEndpoint_ToolCall(t *testing.T) {
	h, handler := newTestServer(t)
	h.SetResponses(testutil.CuratorResponse("http insight"))

	body := `{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"update_cheatsheet","arguments":{"session_id":"s1","question":"Q","model_output":"A"}}}`
	req := httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp rpcResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("malformed response: %v", err)
	}
	if resp.Error != nil {
		t.Fatalf("unexpected rpc error: %+v", resp.Error)
	}

	got, _ := h.Store.Get("s1")
	if got != "http insight" {
		t.Errorf("expected curated content persisted, got %q", got)
	}
}

func TestMCPEndpoint_ParseError(t *testing.T) {
	_, handler := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader("{broken"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("transport errors stay JSON-RPC, got HTTP %d", rec.Code)
	}
	var resp rpcResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Error == nil || resp.Error.Code != -32700 {
		t.Fatalf("expected parse error, got %+v", resp)
	}
}

func TestMCPEndpoint_UnknownMethod(t *testing.T) {
	_, handler := newTestServer(t)

	body := `{"jsonrpc":"2.0","id":1,"method":"resources/list"}`
	req := httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var resp rpcResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Error == nil || resp.Error.Code != -32603 {
		t.Fatalf("expected method error, got %+v", resp)
	}
}

func TestCORSPreflight(t *testing.T) {
	_, handler := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/mcp", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for preflight, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "http://localhost:3000" {
		t.Error("expected origin echoed in CORS header")
	}
}

func TestRequestIDPropagation(t *testing.T) {
	_, handler := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("X-Request-ID", "client-supplied-id")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Header().Get("X-Request-ID") != "client-supplied-id" {
		t.Error("expected client request ID to be preserved")
	}
}
