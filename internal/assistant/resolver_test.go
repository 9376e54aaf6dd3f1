package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveUnknownTool(t *testing.T) {
	tests := []struct {
		attempted     string
		wantSuggested string
	}{
		{"get_workshop_order_detail", ToolOrderByNumber},
		{"get_order_info", ToolOrderByNumber},
		{"fetch_workshop_order_data", ToolOrderByNumber},
		{"check_order_status", ToolOrderStatus},
		{"list_orders", ""},
		{"get_weather", ""},
	}
	for _, tc := range tests {
		message, suggested := ResolveUnknownTool(tc.attempted)
		assert.Equal(t, tc.wantSuggested, suggested, "attempted %q", tc.attempted)
		assert.Contains(t, message, tc.attempted, "message must name the attempted tool")
		assert.Contains(t, message, "does not exist")
		if tc.wantSuggested != "" {
			assert.Contains(t, message, tc.wantSuggested)
		}
	}
}

func TestResolveUnknownToolGenericOrderListsAlternatives(t *testing.T) {
	message, suggested := ResolveUnknownTool("delete_workshop_order")
	assert.Empty(t, suggested)
	for _, name := range []string{ToolOrderByNumber, ToolOrderStatus, ToolRecentOrders, ToolOrdersByCustomer, ToolOrdersByStatus} {
		assert.Contains(t, message, name)
	}
}
