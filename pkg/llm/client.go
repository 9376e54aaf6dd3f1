// Package llm is the model gateway: it sends chat completion requests to one
// of two provider backends and normalizes their responses into a common
// result type (plain text or requested tool invocations).
package llm

import (
	"context"
	"strings"
	"time"

	"taller-go/internal/config"
)

// Message is one role/content entry in the conversation sent to a provider.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
	// ToolCallID links a "tool" message to the invocation it answers.
	ToolCallID string `json:"toolCallId,omitempty"`
	// ToolCalls records the invocations an assistant turn requested.
	ToolCalls []ToolCall `json:"toolCalls,omitempty"`
}

// ToolDef describes a callable tool passed to the provider.
type ToolDef struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Parameters  map[string]interface{} `json:"parameters"`
}

// ToolCall is a model-proposed tool invocation. Arguments is raw JSON.
type ToolCall struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// Request is a provider-independent completion request.
type Request struct {
	Model       string
	Messages    []Message
	Tools       []ToolDef
	Temperature float64
	MaxTokens   int
}

// Usage reports token consumption for one provider call.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
}

// Result is the normalized provider response: either Content or ToolCalls
// is populated, never both.
type Result struct {
	Content   string
	ToolCalls []ToolCall
	Usage     Usage
}

// Client is the completion interface both provider backends implement.
type Client interface {
	Complete(ctx context.Context, req *Request) (*Result, error)
}

// Gateway routes requests to the provider backend that serves the requested
// model and enforces the per-round timeout policy: a longer deadline when
// tool definitions are attached (the provider must reason over the whole
// catalog), a shorter one for pure text formatting.
type Gateway struct {
	openai      Client
	gemini      Client
	geminiSet   map[string]bool
	toolTimeout time.Duration
	textTimeout time.Duration
}

// NewGateway builds the gateway from config. A provider with no API key is
// left nil and selecting it surfaces ErrMissingAPIKey.
func NewGateway(cfg config.LLMConfig) *Gateway {
	g := &Gateway{
		geminiSet:   make(map[string]bool),
		toolTimeout: time.Duration(cfg.ToolTimeout) * time.Second,
		textTimeout: time.Duration(cfg.TextTimeout) * time.Second,
	}
	if g.toolTimeout <= 0 {
		g.toolTimeout = 90 * time.Second
	}
	if g.textTimeout <= 0 {
		g.textTimeout = 30 * time.Second
	}
	if cfg.OpenAI.APIKey != "" {
		g.openai = newOpenAIClient(cfg.OpenAI, cfg.Generation)
	}
	if cfg.Gemini.APIKey != "" {
		g.gemini = newGeminiClient(cfg.Gemini, cfg.Generation)
	}
	for _, m := range cfg.Gemini.Models {
		g.geminiSet[m] = true
	}
	return g
}

// Complete selects the backend for req.Model, applies the round timeout and
// forwards the call.
func (g *Gateway) Complete(ctx context.Context, req *Request) (*Result, error) {
	backend, provider := g.openai, "openai"
	if g.isGeminiModel(req.Model) {
		backend, provider = g.gemini, "gemini"
	}
	if backend == nil {
		return nil, &ConfigError{Provider: provider, Err: ErrMissingAPIKey}
	}

	timeout := g.textTimeout
	if len(req.Tools) > 0 {
		timeout = g.toolTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	res, err := backend.Complete(ctx, req)
	if err != nil {
		if isDeadline(ctx, err) {
			return nil, &TimeoutError{Provider: provider, Err: err}
		}
		return nil, err
	}
	return res, nil
}

func (g *Gateway) isGeminiModel(model string) bool {
	return g.geminiSet[model] || strings.HasPrefix(model, "gemini")
}

func isDeadline(ctx context.Context, err error) bool {
	return ctx.Err() == context.DeadlineExceeded
}
