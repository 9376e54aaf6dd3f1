package assistant

import "strings"

// ResolveUnknownTool classifies a tool name the model invented and returns a
// human-readable explanation plus, when the intent is recognizable, the name
// of the tool it most likely meant. The explanation is fed back to the model
// so it can self-correct within the same turn.
func ResolveUnknownTool(attempted string) (message, suggested string) {
	name := strings.ToLower(attempted)

	orderish := strings.Contains(name, "workshop") || strings.Contains(name, "order")
	switch {
	case orderish && (strings.Contains(name, "detail") || strings.Contains(name, "info") || strings.Contains(name, "data")):
		return "The tool '" + attempted + "' does not exist. For full workshop order details use '" + ToolOrderByNumber + "'.",
			ToolOrderByNumber
	case orderish && strings.Contains(name, "status"):
		return "The tool '" + attempted + "' does not exist. For the status of a workshop order use '" + ToolOrderStatus + "'.",
			ToolOrderStatus
	case orderish:
		return "The tool '" + attempted + "' does not exist. Order-related tools are: " +
			ToolOrderByNumber + ", " + ToolOrderStatus + ", " + ToolRecentOrders + ", " +
			ToolOrdersByCustomer + ", " + ToolOrdersByStatus + ".", ""
	default:
		return "The tool '" + attempted + "' does not exist.", ""
	}
}
