package curator

import (
	"context"
	"time"

	"github.com/OneChainTech/dynamic-cheatsheet/internal/errors"
	"github.com/OneChainTech/dynamic-cheatsheet/internal/provider"
	"github.com/OneChainTech/dynamic-cheatsheet/internal/telemetry"
)

// Invoker sends rendered curation prompts to the external curation model.
// It is a thin boundary: any provider failure surfaces as CURATION_FAILED and
// the caller must not have touched the store yet.
type Invoker struct {
	provider    provider.Provider
	model       string
	temperature float64
	maxTokens   int
	logger      *telemetry.Logger
}

// NewInvoker creates an invoker bound to a provider and curation parameters.
func NewInvoker(p provider.Provider, model string, temperature float64, maxTokens int, logger *telemetry.Logger) *Invoker {
	return &Invoker{
		provider:    p,
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
		logger:      logger,
	}
}

// Generate sends the conversation history to the curation model and returns
// its raw text output. Code execution is never enabled for curation: the
// request carries no tools, only text messages.
func (i *Invoker) Generate(ctx context.Context, history []provider.Message) (string, error) {
	start := time.Now()

	resp, err := i.provider.Complete(ctx, &provider.CompletionRequest{
		Model:       i.model,
		Messages:    history,
		MaxTokens:   i.maxTokens,
		Temperature: i.temperature,
	})
	if err != nil {
		return "", errors.Wrap(errors.CodeCurationFailed, "curator call failed", err)
	}

	i.logger.WithTrace(ctx).Debug("curator call completed",
		"provider", i.provider.Name(),
		"duration_ms", time.Since(start).Milliseconds(),
		"input_tokens", resp.Usage.InputTokens,
		"output_tokens", resp.Usage.OutputTokens,
	)

	return resp.Content, nil
}
