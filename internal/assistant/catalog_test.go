package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogIsWellFormed(t *testing.T) {
	defs := Catalog()
	require.NotEmpty(t, defs)

	seen := make(map[string]bool, len(defs))
	for _, def := range defs {
		assert.False(t, seen[def.Name], "duplicate tool name %q", def.Name)
		seen[def.Name] = true

		assert.NotEmpty(t, def.Name)
		assert.NotEmpty(t, def.Description, "tool %q needs a description", def.Name)
		if def.Parameters != nil {
			assert.Equal(t, "object", def.Parameters["type"], "tool %q schema must be an object", def.Name)
		}
	}
}

func TestCatalogDisambiguatesOrderLookups(t *testing.T) {
	byName := make(map[string]string)
	for _, def := range Catalog() {
		byName[def.Name] = def.Description
	}

	// the full-detail and status-only lookups must steer the model away
	// from each other explicitly
	require.Contains(t, byName, ToolOrderByNumber)
	require.Contains(t, byName, ToolOrderStatus)
	assert.Contains(t, byName[ToolOrderByNumber], "Do NOT use")
	assert.Contains(t, byName[ToolOrderStatus], "Do NOT use")
}
