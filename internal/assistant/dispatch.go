package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"taller-go/pkg/llm"
	"taller-go/pkg/log"
)

// Registry maps tool names to handlers. It is built once at startup from the
// same list the catalog is generated from, so names and handlers cannot
// drift apart.
type Registry struct {
	handlers map[string]Handler
}

// NewRegistry wires the tool handlers and validates them against the
// catalog: every declared tool must have exactly one handler and vice versa.
func NewRegistry(deps Deps) (*Registry, error) {
	r := &Registry{handlers: buildHandlers(deps)}

	declared := make(map[string]bool, len(catalog))
	for _, def := range catalog {
		declared[def.Name] = true
		if _, ok := r.handlers[def.Name]; !ok {
			return nil, fmt.Errorf("tool %q is declared in the catalog but has no handler", def.Name)
		}
	}
	for name := range r.handlers {
		if !declared[name] {
			return nil, fmt.Errorf("handler %q is registered but missing from the catalog", name)
		}
	}
	return r, nil
}

// Invoke runs one handler by exact name. Used by the direct-intent matcher.
func (r *Registry) Invoke(ctx context.Context, name string, args map[string]interface{}) (Outcome, error) {
	h, ok := r.handlers[name]
	if !ok {
		return Outcome{}, fmt.Errorf("unknown tool %q", name)
	}
	return h(ctx, args)
}

// maxParallelInvocations bounds concurrent tool execution within one batch.
const maxParallelInvocations = 5

// Dispatch executes every invocation of one model turn. Outcomes are
// returned in invocation order so ids pair up, and each invocation succeeds
// or fails on its own: one tool's failure never aborts its siblings.
func (r *Registry) Dispatch(ctx context.Context, invocations []llm.ToolCall) []Outcome {
	outcomes := make([]Outcome, len(invocations))

	var wg sync.WaitGroup
	sem := make(chan struct{}, maxParallelInvocations)
	for i, inv := range invocations {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, inv llm.ToolCall) {
			defer wg.Done()
			defer func() { <-sem }()
			outcomes[i] = r.execute(ctx, inv)
		}(i, inv)
	}
	wg.Wait()
	return outcomes
}

func (r *Registry) execute(ctx context.Context, inv llm.ToolCall) Outcome {
	args := decodeArguments(inv.Arguments)

	h, ok := r.handlers[inv.Name]
	if !ok {
		message, suggested := ResolveUnknownTool(inv.Name)
		log.Warnf("model requested unknown tool %q, suggesting %q", inv.Name, suggested)
		return Outcome{
			InvocationID:  inv.ID,
			ToolName:      inv.Name,
			Success:       false,
			Error:         message,
			SuggestedTool: suggested,
		}
	}

	out, err := h(ctx, args)
	if err != nil {
		log.Errorf("tool %s failed: %v", inv.Name, err)
		return Outcome{
			InvocationID: inv.ID,
			ToolName:     inv.Name,
			Success:      false,
			Error:        err.Error(),
		}
	}
	out.InvocationID = inv.ID
	out.ToolName = inv.Name
	out.Success = true
	return out
}

// decodeArguments tolerates malformed JSON: the handler then sees an empty
// argument set instead of the whole invocation hard-failing.
func decodeArguments(raw string) map[string]interface{} {
	args := map[string]interface{}{}
	if raw == "" {
		return args
	}
	if err := json.Unmarshal([]byte(raw), &args); err != nil {
		log.Warnf("ignoring malformed tool arguments: %v", err)
		return map[string]interface{}{}
	}
	return args
}
