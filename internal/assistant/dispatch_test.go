package assistant

import (
	"context"
	"testing"

	"taller-go/internal/model"
	"taller-go/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistryCoversWholeCatalog(t *testing.T) {
	reg := newTestRegistry(t, testDeps())
	for _, def := range Catalog() {
		_, ok := reg.handlers[def.Name]
		assert.True(t, ok, "catalog tool %q has no handler", def.Name)
	}
	assert.Len(t, reg.handlers, len(Catalog()))
}

func TestDispatchPreservesInvocationOrder(t *testing.T) {
	deps := testDeps()
	deps.Orders = &stubOrders{
		statusByNumber: func(ctx context.Context, companyID uint, number string) (string, error) {
			return model.OrderStatusReady, nil
		},
	}
	reg := newTestRegistry(t, deps)

	invocations := []llm.ToolCall{
		{ID: "a", Name: ToolOrderStatus, Arguments: `{"number":"001-001-001"}`},
		{ID: "b", Name: ToolOrderStatus, Arguments: `{"number":"001-001-002"}`},
		{ID: "c", Name: ToolOrderStatus, Arguments: `{"number":"001-001-003"}`},
	}
	outcomes := reg.Dispatch(context.Background(), invocations)

	require.Len(t, outcomes, 3)
	for i, out := range outcomes {
		assert.Equal(t, invocations[i].ID, out.InvocationID)
		assert.True(t, out.Success)
		assert.Contains(t, out.Content, invocations[i].Arguments[11:22])
	}
}

func TestDispatchIsolatesFailures(t *testing.T) {
	deps := testDeps()
	deps.Orders = &stubOrders{
		statusByNumber: func(ctx context.Context, companyID uint, number string) (string, error) {
			return model.OrderStatusOpen, nil
		},
	}
	reg := newTestRegistry(t, deps)

	outcomes := reg.Dispatch(context.Background(), []llm.ToolCall{
		{ID: "ok", Name: ToolOrderStatus, Arguments: `{"number":"001-001-001"}`},
		{ID: "bad", Name: ToolProductByBarcode, Arguments: `{}`}, // missing barcode
	})

	require.Len(t, outcomes, 2)
	assert.True(t, outcomes[0].Success)
	assert.False(t, outcomes[1].Success)
	assert.NotEmpty(t, outcomes[1].Error)
}

func TestDispatchUnknownToolProducesSuggestion(t *testing.T) {
	reg := newTestRegistry(t, testDeps())

	outcomes := reg.Dispatch(context.Background(), []llm.ToolCall{
		{ID: "x1", Name: "get_workshop_order_detail", Arguments: `{"number":"001-001-001"}`},
	})

	require.Len(t, outcomes, 1)
	out := outcomes[0]
	assert.False(t, out.Success)
	assert.Equal(t, "x1", out.InvocationID)
	assert.Equal(t, "get_workshop_order_detail", out.ToolName)
	assert.Equal(t, ToolOrderByNumber, out.SuggestedTool)
	assert.Contains(t, out.Error, "does not exist")
}

func TestDispatchToleratesMalformedArguments(t *testing.T) {
	deps := testDeps()
	deps.Orders = &stubOrders{
		statusByNumber: func(ctx context.Context, companyID uint, number string) (string, error) {
			t.Fatalf("handler must not reach the repository without a number")
			return "", nil
		},
	}
	reg := newTestRegistry(t, deps)

	outcomes := reg.Dispatch(context.Background(), []llm.ToolCall{
		{ID: "m", Name: ToolOrderStatus, Arguments: `{"number": not json`},
	})

	require.Len(t, outcomes, 1)
	// malformed arguments decode to an empty set, the handler then reports
	// the missing parameter instead of the whole dispatch failing
	assert.False(t, outcomes[0].Success)
	assert.Contains(t, outcomes[0].Error, "required")
}

func TestInvokeUnknownToolErrors(t *testing.T) {
	reg := newTestRegistry(t, testDeps())
	_, err := reg.Invoke(context.Background(), "no_such_tool", nil)
	assert.Error(t, err)
}
