package llm

import (
	"context"
	"errors"
	"testing"

	"taller-go/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGatewayRoutesByModel(t *testing.T) {
	g := NewGateway(config.LLMConfig{
		Gemini: config.LLMProviderConfig{Models: []string{"gemini-2.0-flash", "custom-tuned"}},
	})

	assert.True(t, g.isGeminiModel("gemini-2.0-flash"))
	assert.True(t, g.isGeminiModel("custom-tuned"))
	assert.True(t, g.isGeminiModel("gemini-unlisted"), "gemini prefix routes even when unlisted")
	assert.False(t, g.isGeminiModel("gpt-4o-mini"))
	assert.False(t, g.isGeminiModel("deepseek-chat"))
}

func TestGatewayMissingAPIKeyIsConfigError(t *testing.T) {
	g := NewGateway(config.LLMConfig{})

	_, err := g.Complete(context.Background(), &Request{Model: "gpt-4o-mini"})
	require.Error(t, err)

	var ce *ConfigError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "openai", ce.Provider)
	assert.ErrorIs(t, err, ErrMissingAPIKey)

	_, err = g.Complete(context.Background(), &Request{Model: "gemini-2.0-flash"})
	var ce2 *ConfigError
	require.ErrorAs(t, err, &ce2)
	assert.Equal(t, "gemini", ce2.Provider)
}

func TestGatewayDefaultTimeouts(t *testing.T) {
	g := NewGateway(config.LLMConfig{})
	assert.Greater(t, g.toolTimeout, g.textTimeout,
		"tool rounds reason over the whole catalog and get the longer deadline")
}

func TestIsTimeout(t *testing.T) {
	te := &TimeoutError{Provider: "openai", Err: context.DeadlineExceeded}
	assert.True(t, IsTimeout(te))
	assert.True(t, IsTimeout(errors.Join(errors.New("wrapper"), te)))
	assert.False(t, IsTimeout(errors.New("plain failure")))
	assert.False(t, IsTimeout(&ProviderError{Provider: "openai", Status: 500}))
}
