package assistant

import (
	"context"
	"fmt"
	"strings"

	"taller-go/pkg/llm"
	"taller-go/pkg/log"
)

// systemInstruction is the fixed block prepended to every conversation:
// output formatting rules plus hard rules about tool names.
const systemInstruction = `You are the assistant of a workshop management system. ` +
	`Answer in the user's language. When a tool returns HTML, pass it through unchanged. ` +
	`Format lists and records as compact HTML tables. ` +
	`Never invent tool names: only call tools that appear in the provided tool list, ` +
	`with their exact names. If no tool fits, answer in plain text.`

// Reply is the finalized assistant answer for one user message.
type Reply struct {
	Content string
	Usage   llm.Usage
	// Invocations are the tool calls of round 1, kept for message metadata.
	Invocations []llm.ToolCall
	// Direct is true when the direct-intent matcher short-circuited the
	// model path entirely.
	Direct bool
}

// Orchestrator turns one user message into one non-empty assistant reply.
// At most two gateway calls happen per message: round 1 proposes text or
// tool invocations, round 2 formats tool outcomes. A single final formatted
// outcome skips round 2 entirely.
type Orchestrator struct {
	gateway  llm.Client
	registry *Registry
	rules    string
	fallback string
	window   int
}

// NewOrchestrator wires the orchestrator. fallback replaces empty assistant
// content; window caps how many prior messages are sent per turn (<= 0
// disables windowing).
func NewOrchestrator(gateway llm.Client, registry *Registry, fallback string, window int) *Orchestrator {
	if strings.TrimSpace(fallback) == "" {
		fallback = "I could not produce an answer. Try rephrasing, or give me an order number, barcode or SKU."
	}
	return &Orchestrator{
		gateway:  gateway,
		registry: registry,
		fallback: fallback,
		window:   window,
	}
}

// WithRules appends deployment-specific rules to the system instruction.
func (o *Orchestrator) WithRules(rules string) *Orchestrator {
	o.rules = strings.TrimSpace(rules)
	return o
}

// Respond runs the full orchestration loop for one user message.
func (o *Orchestrator) Respond(ctx context.Context, companyID uint, model string, history []llm.Message, userText string) (*Reply, error) {
	ctx = WithTenant(ctx, companyID)

	// 1. Direct-intent interception: exact product lookups skip the model.
	if content, ok := MatchDirectIntent(ctx, o.registry, userText); ok {
		log.Infof("direct intent resolved without model round trip")
		return &Reply{Content: content, Direct: true}, nil
	}

	// 2. Context assembly + round 1 with the tool catalog attached.
	messages := o.buildMessages(history, userText)
	round1, err := o.gateway.Complete(ctx, &llm.Request{
		Model:    model,
		Messages: messages,
		Tools:    Catalog(),
	})
	if err != nil {
		return nil, fmt.Errorf("model round 1 failed: %w", err)
	}

	if len(round1.ToolCalls) == 0 {
		return &Reply{Content: o.ensureNonEmpty(round1.Content), Usage: round1.Usage}, nil
	}

	// 3. Tool dispatch with per-invocation isolation.
	outcomes := o.registry.Dispatch(ctx, round1.ToolCalls)

	// 4. Finalization: short-circuit or round 2.
	reply, err := o.finalize(ctx, model, messages, round1.ToolCalls, outcomes)
	if err != nil {
		return nil, err
	}
	reply.Usage.PromptTokens += round1.Usage.PromptTokens
	reply.Usage.CompletionTokens += round1.Usage.CompletionTokens
	reply.Invocations = round1.ToolCalls
	return reply, nil
}

// buildMessages assembles the ordered context: the fixed system instruction
// followed by the (windowed) prior history and the new user turn.
func (o *Orchestrator) buildMessages(history []llm.Message, userText string) []llm.Message {
	if o.window > 0 && len(history) > o.window {
		history = history[len(history)-o.window:]
	}
	instruction := systemInstruction
	if o.rules != "" {
		instruction += "\n" + o.rules
	}
	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: "system", Content: instruction})
	messages = append(messages, history...)
	messages = append(messages, llm.Message{Role: "user", Content: userText})
	return messages
}

func (o *Orchestrator) ensureNonEmpty(content string) string {
	if strings.TrimSpace(content) == "" {
		return o.fallback
	}
	return content
}
