package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/OneChainTech/dynamic-cheatsheet/internal/orchestrator"
)

// ToolDef describes an MCP tool for tools/list.
type ToolDef struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

// AllTools returns the full set of cheatsheet tool definitions.
func AllTools() []ToolDef {
	return []ToolDef{
		{
			Name:        "prepare_solve_context",
			Description: "Fetch the session's current cheatsheet and the generator prompt template before a solve attempt",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"session_id": map[string]any{"type": "string", "description": "Session identifier"},
				},
				"required": []string{"session_id"},
			},
		},
		{
			Name:        "update_cheatsheet",
			Description: "Curate a new cheatsheet for the session from the question and the observed model output",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"session_id":   map[string]any{"type": "string", "description": "Session identifier"},
					"question":     map[string]any{"type": "string", "description": "The question that was solved"},
					"model_output": map[string]any{"type": "string", "description": "The solver model's full output"},
				},
				"required": []string{"session_id", "question", "model_output"},
			},
		},
	}
}

// ToolHandler dispatches tool calls to the orchestrator.
type ToolHandler struct {
	orch *orchestrator.Orchestrator
}

// NewToolHandler creates a handler bound to an orchestrator.
func NewToolHandler(orch *orchestrator.Orchestrator) *ToolHandler {
	return &ToolHandler{orch: orch}
}

// Call dispatches a tool call by name with the given arguments.
func (h *ToolHandler) Call(ctx context.Context, name string, args json.RawMessage) (any, error) {
	switch name {
	case "prepare_solve_context":
		return h.prepareSolveContext(ctx, args)
	case "update_cheatsheet":
		return h.updateCheatsheet(ctx, args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

func (h *ToolHandler) prepareSolveContext(ctx context.Context, args json.RawMessage) (any, error) {
	var params struct {
		SessionID string `json:"session_id"`
	}
	if err := json.Unmarshal(args, &params); err != nil {
		return nil, fmt.Errorf("parse args: %w", err)
	}

	return h.orch.PrepareSolveContext(ctx, params.SessionID)
}

func (h *ToolHandler) updateCheatsheet(ctx context.Context, args json.RawMessage) (any, error) {
	var params struct {
		SessionID   string `json:"session_id"`
		Question    string `json:"question"`
		ModelOutput string `json:"model_output"`
	}
	if err := json.Unmarshal(args, &params); err != nil {
		return nil, fmt.Errorf("parse args: %w", err)
	}

	return h.orch.UpdateCheatsheet(ctx, params.SessionID, params.Question, params.ModelOutput)
}
