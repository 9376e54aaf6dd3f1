package assistant

import (
	"context"
	"encoding/json"
	"fmt"

	"taller-go/pkg/llm"
)

// finalize decides whether the dispatch outcomes can be returned verbatim or
// must go through a second model round for natural-language formatting.
func (o *Orchestrator) finalize(ctx context.Context, model string, round1Messages []llm.Message, invocations []llm.ToolCall, outcomes []Outcome) (*Reply, error) {
	// Single-tool short-circuit: a lone successful outcome whose handler
	// declared its content final-formatted is returned unchanged. A second
	// model pass would only risk paraphrasing well-structured output.
	if len(invocations) == 1 && len(outcomes) == 1 {
		out := outcomes[0]
		if out.Success && out.Final {
			return &Reply{Content: o.ensureNonEmpty(out.Content)}, nil
		}
	}

	// Otherwise feed the outcomes back: the round-1 context, an assistant
	// turn recording the requested invocations, one tool message per
	// outcome, and a corrective system message when a suggestion exists so
	// the model can retry with the exact name within the same turn.
	messages := make([]llm.Message, len(round1Messages), len(round1Messages)+len(outcomes)+2)
	copy(messages, round1Messages)
	messages = append(messages, llm.Message{Role: "assistant", ToolCalls: invocations})

	for _, out := range outcomes {
		encoded, err := json.Marshal(out)
		if err != nil {
			encoded = []byte(`{"success":false,"error":"unencodable tool outcome"}`)
		}
		messages = append(messages, llm.Message{
			Role:       "tool",
			Content:    string(encoded),
			ToolCallID: out.InvocationID,
		})
	}

	if suggestion := firstSuggestion(outcomes); suggestion != "" {
		messages = append(messages, llm.Message{
			Role:    "system",
			Content: "One of the requested tools does not exist. Retry using exactly the tool name '" + suggestion + "'.",
		})
	}

	// Tools stay attached so a corrective invocation is possible.
	round2, err := o.gateway.Complete(ctx, &llm.Request{
		Model:    model,
		Messages: messages,
		Tools:    Catalog(),
	})
	if err != nil {
		return nil, fmt.Errorf("model round 2 failed: %w", err)
	}

	content := round2.Content
	if len(round2.ToolCalls) > 0 {
		// The model self-corrected with a new invocation; execute it and
		// return its content directly rather than starting a third round.
		corrected := o.registry.Dispatch(ctx, round2.ToolCalls)
		content = ""
		for _, out := range corrected {
			if out.Success {
				content += out.Content
			} else {
				content += out.Error
			}
		}
	}

	return &Reply{Content: o.ensureNonEmpty(content), Usage: round2.Usage}, nil
}

func firstSuggestion(outcomes []Outcome) string {
	for _, out := range outcomes {
		if out.SuggestedTool != "" {
			return out.SuggestedTool
		}
	}
	return ""
}
