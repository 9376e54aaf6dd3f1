package assistant

import (
	"context"
	"testing"

	"taller-go/internal/model"
	"taller-go/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedGateway returns canned results in order and records every request.
type scriptedGateway struct {
	results  []*llm.Result
	requests []*llm.Request
}

func (g *scriptedGateway) Complete(ctx context.Context, req *llm.Request) (*llm.Result, error) {
	g.requests = append(g.requests, req)
	if len(g.results) == 0 {
		return &llm.Result{Content: "out of script"}, nil
	}
	res := g.results[0]
	g.results = g.results[1:]
	return res, nil
}

func TestRespondDirectIntentSkipsGateway(t *testing.T) {
	deps := testDeps()
	deps.Products = &stubProducts{
		findByBarcode: func(ctx context.Context, companyID uint, barcode string) (*model.Product, error) {
			return &model.Product{SKU: "FIL-01", Barcode: barcode, Name: "Oil filter"}, nil
		},
	}
	gateway := &scriptedGateway{}
	o := NewOrchestrator(gateway, newTestRegistry(t, deps), "", 0)

	reply, err := o.Respond(context.Background(), 1, "gpt-4o-mini", nil, "producto 00001146")
	require.NoError(t, err)
	assert.True(t, reply.Direct)
	assert.Contains(t, reply.Content, "Oil filter")
	assert.Empty(t, gateway.requests, "direct intent must not call the model")
}

func TestRespondPlainTextAnswer(t *testing.T) {
	gateway := &scriptedGateway{results: []*llm.Result{
		{Content: "Buenas tardes, ¿en qué puedo ayudarte?", Usage: llm.Usage{PromptTokens: 10, CompletionTokens: 5}},
	}}
	o := NewOrchestrator(gateway, newTestRegistry(t, testDeps()), "", 40)

	reply, err := o.Respond(context.Background(), 1, "gpt-4o-mini", nil, "hola")
	require.NoError(t, err)
	assert.Equal(t, "Buenas tardes, ¿en qué puedo ayudarte?", reply.Content)
	assert.Equal(t, 10, reply.Usage.PromptTokens)
	require.Len(t, gateway.requests, 1)
	assert.NotEmpty(t, gateway.requests[0].Tools, "round 1 must attach the tool catalog")
}

func TestRespondEmptyContentFallsBack(t *testing.T) {
	gateway := &scriptedGateway{results: []*llm.Result{{Content: "   \n\t  "}}}
	o := NewOrchestrator(gateway, newTestRegistry(t, testDeps()), "No tengo una respuesta.", 40)

	reply, err := o.Respond(context.Background(), 1, "gpt-4o-mini", nil, "???")
	require.NoError(t, err)
	assert.Equal(t, "No tengo una respuesta.", reply.Content)
}

func TestRespondSingleFinalOutcomeShortCircuits(t *testing.T) {
	deps := testDeps()
	deps.Orders = &stubOrders{
		findByNumber: func(ctx context.Context, companyID uint, number string) (*model.WorkshopOrder, error) {
			return &model.WorkshopOrder{
				Number:   number,
				Status:   model.OrderStatusReady,
				Customer: model.Customer{Name: "García"},
			}, nil
		},
	}
	gateway := &scriptedGateway{results: []*llm.Result{
		{ToolCalls: []llm.ToolCall{{ID: "c1", Name: ToolOrderByNumber, Arguments: `{"number":"001-001-001"}`}}},
	}}
	o := NewOrchestrator(gateway, newTestRegistry(t, deps), "", 40)

	reply, err := o.Respond(context.Background(), 1, "gpt-4o-mini", nil, "detalle de la orden 001-001-001")
	require.NoError(t, err)
	assert.Contains(t, reply.Content, "<table")
	assert.Contains(t, reply.Content, "García")
	assert.Len(t, gateway.requests, 1, "a single final outcome must skip round 2")
	require.Len(t, reply.Invocations, 1)
	assert.Equal(t, ToolOrderByNumber, reply.Invocations[0].Name)
}

func TestRespondNonFinalOutcomeGoesThroughRoundTwo(t *testing.T) {
	deps := testDeps()
	deps.Orders = &stubOrders{
		statusByNumber: func(ctx context.Context, companyID uint, number string) (string, error) {
			return model.OrderStatusInProgress, nil
		},
	}
	gateway := &scriptedGateway{results: []*llm.Result{
		{
			ToolCalls: []llm.ToolCall{{ID: "c1", Name: ToolOrderStatus, Arguments: `{"number":"001-001-001"}`}},
			Usage:     llm.Usage{PromptTokens: 20, CompletionTokens: 4},
		},
		{Content: "La orden 001-001-001 está en curso.", Usage: llm.Usage{PromptTokens: 30, CompletionTokens: 12}},
	}}
	o := NewOrchestrator(gateway, newTestRegistry(t, deps), "", 40)

	reply, err := o.Respond(context.Background(), 1, "gpt-4o-mini", nil, "¿cómo va la orden 001-001-001?")
	require.NoError(t, err)
	assert.Equal(t, "La orden 001-001-001 está en curso.", reply.Content)
	require.Len(t, gateway.requests, 2)

	// the round-2 context must contain the assistant tool-call turn and one
	// tool message answering it
	round2 := gateway.requests[1].Messages
	var sawAssistant, sawTool bool
	for _, m := range round2 {
		if m.Role == "assistant" && len(m.ToolCalls) == 1 {
			sawAssistant = true
		}
		if m.Role == "tool" && m.ToolCallID == "c1" {
			sawTool = true
		}
	}
	assert.True(t, sawAssistant)
	assert.True(t, sawTool)

	// usage accumulates across both rounds
	assert.Equal(t, 50, reply.Usage.PromptTokens)
	assert.Equal(t, 16, reply.Usage.CompletionTokens)
}

func TestRespondUnknownToolAddsCorrectiveMessage(t *testing.T) {
	gateway := &scriptedGateway{results: []*llm.Result{
		{ToolCalls: []llm.ToolCall{{ID: "c1", Name: "get_workshop_order_detail", Arguments: `{"number":"001-001-001"}`}}},
		{Content: "No encontré esa orden."},
	}}
	o := NewOrchestrator(gateway, newTestRegistry(t, testDeps()), "", 40)

	_, err := o.Respond(context.Background(), 1, "gpt-4o-mini", nil, "detalle de la orden")
	require.NoError(t, err)
	require.Len(t, gateway.requests, 2)

	var corrective string
	for _, m := range gateway.requests[1].Messages {
		if m.Role == "system" && m.ToolCallID == "" && m.Content != "" {
			corrective = m.Content
		}
	}
	assert.Contains(t, corrective, ToolOrderByNumber)
}

func TestRespondRoundTwoToolCallsRunLocally(t *testing.T) {
	deps := testDeps()
	deps.Orders = &stubOrders{
		findByNumber: func(ctx context.Context, companyID uint, number string) (*model.WorkshopOrder, error) {
			return &model.WorkshopOrder{Number: number, Status: model.OrderStatusOpen, Customer: model.Customer{Name: "Pérez"}}, nil
		},
	}
	gateway := &scriptedGateway{results: []*llm.Result{
		{ToolCalls: []llm.ToolCall{{ID: "c1", Name: "get_workshop_order_detail", Arguments: `{"number":"001-001-001"}`}}},
		{ToolCalls: []llm.ToolCall{{ID: "c2", Name: ToolOrderByNumber, Arguments: `{"number":"001-001-001"}`}}},
	}}
	o := NewOrchestrator(gateway, newTestRegistry(t, deps), "", 40)

	reply, err := o.Respond(context.Background(), 1, "gpt-4o-mini", nil, "detalle de la orden 001-001-001")
	require.NoError(t, err)
	// the corrective invocation executes locally: still only two model calls
	assert.Len(t, gateway.requests, 2)
	assert.Contains(t, reply.Content, "Pérez")
}

func TestRespondWindowsHistory(t *testing.T) {
	gateway := &scriptedGateway{results: []*llm.Result{{Content: "ok"}}}
	o := NewOrchestrator(gateway, newTestRegistry(t, testDeps()), "", 4)

	history := make([]llm.Message, 10)
	for i := range history {
		history[i] = llm.Message{Role: "user", Content: "old"}
	}
	_, err := o.Respond(context.Background(), 1, "gpt-4o-mini", history, "nuevo mensaje")
	require.NoError(t, err)

	// system + 4 windowed + current user turn
	require.Len(t, gateway.requests, 1)
	assert.Len(t, gateway.requests[0].Messages, 6)
	assert.Equal(t, "system", gateway.requests[0].Messages[0].Role)
	assert.Equal(t, "nuevo mensaje", gateway.requests[0].Messages[5].Content)
}
