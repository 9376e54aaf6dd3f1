// Package assistant implements the tool-augmented conversation orchestrator
// behind the chat feature: direct-intent interception, context assembly,
// model round trips, tool dispatch and response finalization.
package assistant

import "context"

// Outcome is the result of executing one tool invocation. It references the
// invocation id it answers and is never reused across turns.
type Outcome struct {
	InvocationID  string `json:"invocationId"`
	ToolName      string `json:"toolName"`
	Success       bool   `json:"success"`
	Content       string `json:"content,omitempty"`
	Error         string `json:"error,omitempty"`
	SuggestedTool string `json:"suggestedTool,omitempty"`
	// Final marks content that is already user-ready formatted markup and
	// must not be paraphrased by a second model round.
	Final bool `json:"-"`
}

// Handler executes one tool with the decoded argument payload.
type Handler func(ctx context.Context, args map[string]interface{}) (Outcome, error)

type tenantKey struct{}

// WithTenant stores the requesting company id for tool handlers.
func WithTenant(ctx context.Context, companyID uint) context.Context {
	return context.WithValue(ctx, tenantKey{}, companyID)
}

// TenantFrom returns the company id stored by WithTenant, or 0.
func TenantFrom(ctx context.Context) uint {
	if v, ok := ctx.Value(tenantKey{}).(uint); ok {
		return v
	}
	return 0
}
