package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOpenAIResponseText(t *testing.T) {
	body := []byte(`{
		"choices": [{"message": {"role": "assistant", "content": "Hola"}, "finish_reason": "stop"}],
		"usage": {"prompt_tokens": 12, "completion_tokens": 3}
	}`)

	res, err := parseOpenAIResponse(body)
	require.NoError(t, err)
	assert.Equal(t, "Hola", res.Content)
	assert.Empty(t, res.ToolCalls)
	assert.Equal(t, 12, res.Usage.PromptTokens)
	assert.Equal(t, 3, res.Usage.CompletionTokens)
}

func TestParseOpenAIResponseToolCalls(t *testing.T) {
	body := []byte(`{
		"choices": [{"message": {
			"role": "assistant",
			"content": "",
			"tool_calls": [
				{"id": "call_1", "type": "function", "function": {"name": "get_product_by_barcode", "arguments": "{\"barcode\":\"00001146\"}"}},
				{"id": "call_2", "type": "function", "function": {"name": "get_workshop_order_status", "arguments": "{\"number\":\"001-001-001\"}"}}
			]
		}, "finish_reason": "tool_calls"}]
	}`)

	res, err := parseOpenAIResponse(body)
	require.NoError(t, err)
	assert.Empty(t, res.Content)
	require.Len(t, res.ToolCalls, 2)
	assert.Equal(t, "call_1", res.ToolCalls[0].ID)
	assert.Equal(t, "get_product_by_barcode", res.ToolCalls[0].Name)
	assert.JSONEq(t, `{"barcode":"00001146"}`, res.ToolCalls[0].Arguments)
	assert.Equal(t, "get_workshop_order_status", res.ToolCalls[1].Name)
}

func TestParseOpenAIResponseNoChoices(t *testing.T) {
	_, err := parseOpenAIResponse([]byte(`{"choices": []}`))
	assert.Error(t, err)
}

func TestEnsureObjectSchema(t *testing.T) {
	// nil becomes an empty object schema
	schema := ensureObjectSchema(nil)
	assert.Equal(t, "object", schema["type"])
	assert.NotNil(t, schema["properties"])

	// an existing type is preserved untouched
	in := map[string]interface{}{"type": "object", "properties": map[string]interface{}{"sku": map[string]interface{}{"type": "string"}}}
	assert.Equal(t, in, ensureObjectSchema(in))

	// a schema without type gets one without mutating the input
	bare := map[string]interface{}{"properties": map[string]interface{}{}}
	out := ensureObjectSchema(bare)
	assert.Equal(t, "object", out["type"])
	_, mutated := bare["type"]
	assert.False(t, mutated)
}
