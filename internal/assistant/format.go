package assistant

import (
	"fmt"
	"html"
	"strconv"
	"strings"
	"time"

	"taller-go/internal/model"
	"taller-go/internal/repository"
)

// The lookup tools return finished HTML so single-tool answers can be
// returned to the user without a second model pass.

func renderProductTable(p *model.Product) string {
	var b strings.Builder
	b.WriteString(`<table class="tool-result"><tbody>`)
	row(&b, "SKU", p.SKU)
	row(&b, "Barcode", p.Barcode)
	row(&b, "Name", p.Name)
	row(&b, "Brand", p.Brand)
	row(&b, "Price", money(p.Price))
	row(&b, "Stock", fmt.Sprintf("%d", p.Stock))
	b.WriteString(`</tbody></table>`)
	return b.String()
}

func renderProductList(products []model.Product) string {
	var b strings.Builder
	b.WriteString(`<table class="tool-result"><thead><tr><th>SKU</th><th>Name</th><th>Price</th><th>Stock</th></tr></thead><tbody>`)
	for _, p := range products {
		fmt.Fprintf(&b, "<tr><td>%s</td><td>%s</td><td>%s</td><td>%d</td></tr>",
			html.EscapeString(p.SKU), html.EscapeString(p.Name), money(p.Price), p.Stock)
	}
	b.WriteString(`</tbody></table>`)
	return b.String()
}

func renderOrderTable(o *model.WorkshopOrder) string {
	var b strings.Builder
	b.WriteString(`<table class="tool-result"><tbody>`)
	row(&b, "Order", o.Number)
	row(&b, "Status", o.Status)
	row(&b, "Customer", o.Customer.Name)
	if o.Vehicle.Plate != "" {
		row(&b, "Vehicle", fmt.Sprintf("%s %s (%s)", o.Vehicle.Brand, o.Vehicle.Model, o.Vehicle.Plate))
	}
	row(&b, "Description", o.Description)
	row(&b, "Total", money(o.Total))
	row(&b, "Created", o.CreatedAt.Format("2006-01-02"))
	b.WriteString(`</tbody></table>`)

	if len(o.Items) > 0 {
		b.WriteString(`<table class="tool-result"><thead><tr><th>Concept</th><th>Qty</th><th>Unit</th></tr></thead><tbody>`)
		for _, it := range o.Items {
			fmt.Fprintf(&b, "<tr><td>%s</td><td>%.2f</td><td>%s</td></tr>",
				html.EscapeString(it.Concept), it.Quantity, money(it.UnitPrice))
		}
		b.WriteString(`</tbody></table>`)
	}
	if len(o.Comments) > 0 {
		b.WriteString("<ul>")
		for _, c := range o.Comments {
			fmt.Fprintf(&b, "<li>%s — %s</li>", c.CreatedAt.Format("2006-01-02"), html.EscapeString(c.Body))
		}
		b.WriteString("</ul>")
	}
	return b.String()
}

func renderOrderList(orders []model.WorkshopOrder) string {
	var b strings.Builder
	b.WriteString(`<table class="tool-result"><thead><tr><th>Order</th><th>Status</th><th>Customer</th><th>Total</th><th>Created</th></tr></thead><tbody>`)
	for _, o := range orders {
		fmt.Fprintf(&b, "<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>",
			html.EscapeString(o.Number), o.Status, html.EscapeString(o.Customer.Name),
			money(o.Total), o.CreatedAt.Format("2006-01-02"))
	}
	b.WriteString(`</tbody></table>`)
	return b.String()
}

func renderCustomerList(customers []model.Customer) string {
	var b strings.Builder
	b.WriteString(`<table class="tool-result"><thead><tr><th>Name</th><th>Tax ID</th><th>Phone</th><th>Email</th></tr></thead><tbody>`)
	for _, c := range customers {
		fmt.Fprintf(&b, "<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>",
			html.EscapeString(c.Name), html.EscapeString(c.TaxID),
			html.EscapeString(c.Phone), html.EscapeString(c.Email))
	}
	b.WriteString(`</tbody></table>`)
	return b.String()
}

func renderVehicleList(vehicles []model.Vehicle) string {
	var b strings.Builder
	b.WriteString(`<table class="tool-result"><thead><tr><th>Plate</th><th>Brand</th><th>Model</th><th>Year</th></tr></thead><tbody>`)
	for _, v := range vehicles {
		fmt.Fprintf(&b, "<tr><td>%s</td><td>%s</td><td>%s</td><td>%d</td></tr>",
			html.EscapeString(v.Plate), html.EscapeString(v.Brand), html.EscapeString(v.Model), v.Year)
	}
	b.WriteString(`</tbody></table>`)
	return b.String()
}

func renderInvoiceTable(inv *model.Invoice) string {
	var b strings.Builder
	b.WriteString(`<table class="tool-result"><tbody>`)
	row(&b, "Invoice", inv.Number)
	row(&b, "Customer", inv.Customer.Name)
	row(&b, "Status", inv.Status)
	row(&b, "Subtotal", money(inv.Subtotal))
	row(&b, "Tax", money(inv.Tax))
	row(&b, "Total", money(inv.Total))
	row(&b, "Issued", inv.IssuedAt.Format("2006-01-02"))
	b.WriteString(`</tbody></table>`)

	if len(inv.Items) > 0 {
		b.WriteString(`<table class="tool-result"><thead><tr><th>Concept</th><th>Qty</th><th>Unit</th></tr></thead><tbody>`)
		for _, it := range inv.Items {
			fmt.Fprintf(&b, "<tr><td>%s</td><td>%.2f</td><td>%s</td></tr>",
				html.EscapeString(it.Concept), it.Quantity, money(it.UnitPrice))
		}
		b.WriteString(`</tbody></table>`)
	}
	return b.String()
}

func renderInvoiceList(invoices []model.Invoice) string {
	var b strings.Builder
	b.WriteString(`<table class="tool-result"><thead><tr><th>Invoice</th><th>Status</th><th>Total</th><th>Issued</th></tr></thead><tbody>`)
	for _, inv := range invoices {
		fmt.Fprintf(&b, "<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>",
			html.EscapeString(inv.Number), inv.Status, money(inv.Total), inv.IssuedAt.Format("2006-01-02"))
	}
	b.WriteString(`</tbody></table>`)
	return b.String()
}

func monthlyTable(year int, months []repository.MonthlyTotal) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<table class="tool-result"><thead><tr><th>Month %d</th><th>Total</th></tr></thead><tbody>`, year)
	for _, m := range months {
		fmt.Fprintf(&b, "<tr><td>%s</td><td>%s</td></tr>", time.Month(m.Month).String(), money(m.Total))
	}
	b.WriteString(`</tbody></table>`)
	return b.String()
}

func topProductsTable(rows []repository.ProductSales) string {
	var b strings.Builder
	b.WriteString(`<table class="tool-result"><thead><tr><th>SKU</th><th>Product</th><th>Units</th><th>Total</th></tr></thead><tbody>`)
	for _, r := range rows {
		fmt.Fprintf(&b, "<tr><td>%s</td><td>%s</td><td>%d</td><td>%s</td></tr>",
			html.EscapeString(r.SKU), html.EscapeString(r.Name), r.Quantity, money(r.Total))
	}
	b.WriteString(`</tbody></table>`)
	return b.String()
}

func receivableTable(rows []repository.ReceivableRow) string {
	var b strings.Builder
	b.WriteString(`<table class="tool-result"><thead><tr><th>Invoice</th><th>Customer</th><th>Issued</th><th>Total</th></tr></thead><tbody>`)
	for _, r := range rows {
		fmt.Fprintf(&b, "<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>",
			html.EscapeString(r.Number), html.EscapeString(r.CustomerName), r.IssuedAt.Format("2006-01-02"), money(r.Total))
	}
	b.WriteString(`</tbody></table>`)
	return b.String()
}

func row(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "<tr><th>%s</th><td>%s</td></tr>", label, html.EscapeString(value))
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// --- argument decoding helpers ---

func stringArg(args map[string]interface{}, key string) string {
	if v, ok := args[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

// floatArg also accepts numeric strings: models occasionally quote numbers
// in tool arguments.
func floatArg(args map[string]interface{}, key string) float64 {
	switch v := args[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return f
		}
	}
	return 0
}

func intArg(args map[string]interface{}, key string, def int) int {
	if v, ok := args[key].(float64); ok && v > 0 {
		return int(v)
	}
	return def
}

func stringListArg(args map[string]interface{}, key string) []string {
	var out []string
	switch v := args[key].(type) {
	case []interface{}:
		for _, item := range v {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
	case string:
		if strings.TrimSpace(v) != "" {
			out = append(out, strings.TrimSpace(v))
		}
	}
	return out
}

// dateRangeArg parses optional from/to args, defaulting to the current month.
func dateRangeArg(args map[string]interface{}) (time.Time, time.Time) {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	to := now
	if s := stringArg(args, "from"); s != "" {
		if t, err := time.Parse("2006-01-02", s); err == nil {
			from = t
		}
	}
	if s := stringArg(args, "to"); s != "" {
		if t, err := time.Parse("2006-01-02", s); err == nil {
			to = t.Add(24*time.Hour - time.Second)
		}
	}
	return from, to
}
