package assistant

import "taller-go/pkg/llm"

// Tool names referenced from more than one place.
const (
	ToolProductByBarcode = "get_product_by_barcode"
	ToolProductBySKU     = "get_product_by_sku"
	ToolProductsByName   = "search_products_by_name"
	ToolOrderByNumber    = "get_workshop_order_by_number"
	ToolOrderStatus      = "get_workshop_order_status"
	ToolRecentOrders     = "list_recent_workshop_orders"
	ToolOrdersByCustomer = "get_workshop_orders_by_customer"
	ToolOrdersByStatus   = "get_workshop_orders_by_status"
)

// Catalog returns the static tool definitions offered to the model. Pure and
// deterministic; validated against the handler registry at startup.
//
// Description precision matters: the model picks tools from these texts
// alone, so near-duplicate tools carry explicit negative guidance.
func Catalog() []llm.ToolDef {
	return catalog
}

var catalog = []llm.ToolDef{
	{
		Name:        ToolProductByBarcode,
		Description: "Look up a single product by its exact numeric barcode (8 or more digits). Returns full product details as an HTML table. Do NOT use for SKU codes or product names.",
		Parameters: objectSchema(map[string]interface{}{
			"barcode": stringProp("The product barcode, digits only."),
		}, "barcode"),
	},
	{
		Name:        ToolProductBySKU,
		Description: "Look up a single product by its exact SKU code (alphanumeric, may contain hyphens or dots, e.g. ABC-123.1). Returns full product details as an HTML table. Do NOT use for barcodes or free-text names.",
		Parameters: objectSchema(map[string]interface{}{
			"sku": stringProp("The product SKU code."),
		}, "sku"),
	},
	{
		Name:        ToolProductsByName,
		Description: "Search products by free-text name or description words. Use only when the user has no barcode or SKU. Returns a list of matching products as an HTML table.",
		Parameters: objectSchema(map[string]interface{}{
			"names": arrayProp("Words or phrases describing the product.", "string"),
		}, "names"),
	},
	{
		Name:        "get_product_stock",
		Description: "Return the current stock level for one product identified by barcode or SKU. Use get_product_by_barcode or get_product_by_sku instead when the user wants full details, not just stock.",
		Parameters: objectSchema(map[string]interface{}{
			"barcode": stringProp("The product barcode, if known."),
			"sku":     stringProp("The product SKU, if known."),
		}),
	},
	{
		Name:        "get_low_stock_products",
		Description: "List products whose stock is at or below their minimum. Takes no identifying arguments.",
		Parameters:  objectSchema(nil),
	},
	{
		Name:        "update_product_price",
		Description: "Change the selling price of one product identified by SKU. Only use when the user explicitly asks to change a price.",
		Parameters: objectSchema(map[string]interface{}{
			"sku":   stringProp("The product SKU."),
			"price": numberProp("The new selling price."),
		}, "sku", "price"),
	},
	{
		Name:        "get_customer_by_name",
		Description: "Find customers whose name contains the given text. Returns matching customers with contact data as an HTML table.",
		Parameters: objectSchema(map[string]interface{}{
			"name": stringProp("Full or partial customer name."),
		}, "name"),
	},
	{
		Name:        "get_customer_by_tax_id",
		Description: "Find exactly one customer by their tax identification number (RUC/NIT/CUIT). Do NOT use for names.",
		Parameters: objectSchema(map[string]interface{}{
			"tax_id": stringProp("The customer tax id."),
		}, "tax_id"),
	},
	{
		Name:        "get_customer_vehicles",
		Description: "List the vehicles registered for a customer, found by customer name.",
		Parameters: objectSchema(map[string]interface{}{
			"name": stringProp("Full or partial customer name."),
		}, "name"),
	},
	{
		Name:        "create_customer",
		Description: "Register a new customer. Only use when the user explicitly asks to create one.",
		Parameters: objectSchema(map[string]interface{}{
			"name":   stringProp("Customer name."),
			"tax_id": stringProp("Customer tax id, optional."),
			"email":  stringProp("Customer email, optional."),
			"phone":  stringProp("Customer phone, optional."),
		}, "name"),
	},
	{
		Name:        ToolOrderByNumber,
		Description: "Return the FULL details of one workshop order by its number (form 001-001-001): customer, vehicle, items, totals and comments, as an HTML table. Do NOT use when the user only asks whether the order is ready — use get_workshop_order_status for that.",
		Parameters: objectSchema(map[string]interface{}{
			"number": stringProp("The workshop order number, e.g. 001-001-001."),
		}, "number"),
	},
	{
		Name:        ToolOrderStatus,
		Description: "Return ONLY the current status of one workshop order by its number (open, in progress, ready, delivered, cancelled). Do NOT use when the user wants items, totals or any other details — use get_workshop_order_by_number for that.",
		Parameters: objectSchema(map[string]interface{}{
			"number": stringProp("The workshop order number, e.g. 001-001-001."),
		}, "number"),
	},
	{
		Name:        ToolRecentOrders,
		Description: "List the most recently created workshop orders. Use when the user asks what came in lately without naming an order or customer.",
		Parameters: objectSchema(map[string]interface{}{
			"limit": integerProp("How many orders to return, default 10."),
		}),
	},
	{
		Name:        ToolOrdersByCustomer,
		Description: "List the workshop orders of one customer, found by customer name.",
		Parameters: objectSchema(map[string]interface{}{
			"name": stringProp("Full or partial customer name."),
		}, "name"),
	},
	{
		Name:        ToolOrdersByStatus,
		Description: "List workshop orders currently in a given status.",
		Parameters: objectSchema(map[string]interface{}{
			"status": enumProp("The order status.", "OPEN", "IN_PROGRESS", "READY", "DELIVERED", "CANCELLED"),
		}, "status"),
	},
	{
		Name:        "create_workshop_order",
		Description: "Open a new workshop order for a customer found by name. Only use when the user explicitly asks to create an order.",
		Parameters: objectSchema(map[string]interface{}{
			"customer_name": stringProp("Full or partial customer name."),
			"description":   stringProp("What the workshop should do."),
		}, "customer_name", "description"),
	},
	{
		Name:        "add_order_comment",
		Description: "Append a workshop note to an existing order identified by number.",
		Parameters: objectSchema(map[string]interface{}{
			"number":  stringProp("The workshop order number."),
			"comment": stringProp("The note to append."),
		}, "number", "comment"),
	},
	{
		Name:        "get_invoice_by_number",
		Description: "Return one invoice by its number, with billed lines and totals, as an HTML table.",
		Parameters: objectSchema(map[string]interface{}{
			"number": stringProp("The invoice number."),
		}, "number"),
	},
	{
		Name:        "list_invoices_by_customer",
		Description: "List the invoices issued to one customer, found by customer name.",
		Parameters: objectSchema(map[string]interface{}{
			"name": stringProp("Full or partial customer name."),
		}, "name"),
	},
	{
		Name:        "get_sales_summary",
		Description: "Total invoiced amount and invoice count between two dates. Defaults to the current month when no dates are given.",
		Parameters: objectSchema(map[string]interface{}{
			"from": stringProp("Start date, YYYY-MM-DD, optional."),
			"to":   stringProp("End date, YYYY-MM-DD, optional."),
		}),
	},
	{
		Name:        "get_monthly_sales",
		Description: "Invoiced totals broken down by month for one year, as an HTML table.",
		Parameters: objectSchema(map[string]interface{}{
			"year": integerProp("The year, e.g. 2026. Defaults to the current year."),
		}),
	},
	{
		Name:        "get_top_selling_products",
		Description: "The best-selling products by invoiced quantity, as an HTML table.",
		Parameters: objectSchema(map[string]interface{}{
			"limit": integerProp("How many products to return, default 10."),
		}),
	},
	{
		Name:        "get_income_expense_summary",
		Description: "Income versus expenses between two dates. Defaults to the current month when no dates are given.",
		Parameters: objectSchema(map[string]interface{}{
			"from": stringProp("Start date, YYYY-MM-DD, optional."),
			"to":   stringProp("End date, YYYY-MM-DD, optional."),
		}),
	},
	{
		Name:        "get_accounts_receivable",
		Description: "Unpaid invoices grouped by customer, oldest first.",
		Parameters:  objectSchema(nil),
	},
	{
		Name:        "get_company_info",
		Description: "The name, tax id and contact data of the company the user belongs to. Takes no arguments.",
		Parameters:  objectSchema(nil),
	},
}

// --- schema helpers: the catalog stays declarative data ---

func objectSchema(props map[string]interface{}, required ...string) map[string]interface{} {
	if props == nil {
		props = map[string]interface{}{}
	}
	schema := map[string]interface{}{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func stringProp(desc string) map[string]interface{} {
	return map[string]interface{}{"type": "string", "description": desc}
}

func numberProp(desc string) map[string]interface{} {
	return map[string]interface{}{"type": "number", "description": desc}
}

func integerProp(desc string) map[string]interface{} {
	return map[string]interface{}{"type": "integer", "description": desc}
}

func arrayProp(desc, itemType string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "array",
		"description": desc,
		"items":       map[string]interface{}{"type": itemType},
	}
}

func enumProp(desc string, values ...string) map[string]interface{} {
	return map[string]interface{}{"type": "string", "description": desc, "enum": values}
}
