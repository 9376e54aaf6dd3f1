package assistant

import (
	"context"
	"errors"
	"fmt"
	"time"

	"taller-go/internal/model"

	"gorm.io/gorm"
)

// buildHandlers binds every catalog entry to its business-data adapter.
// Handlers that produce finished HTML set Final so a lone successful
// invocation can be returned without a second model round.
func buildHandlers(deps Deps) map[string]Handler {
	return map[string]Handler{
		ToolProductByBarcode: func(ctx context.Context, args map[string]interface{}) (Outcome, error) {
			barcode := stringArg(args, "barcode")
			if barcode == "" {
				return Outcome{}, errors.New("barcode is required")
			}
			p, err := deps.Products.FindByBarcode(ctx, TenantFrom(ctx), barcode)
			if err != nil {
				return Outcome{}, notFoundOr(err, "no product with barcode "+barcode)
			}
			return Outcome{Content: renderProductTable(p), Final: true}, nil
		},

		ToolProductBySKU: func(ctx context.Context, args map[string]interface{}) (Outcome, error) {
			sku := stringArg(args, "sku")
			if sku == "" {
				return Outcome{}, errors.New("sku is required")
			}
			p, err := deps.Products.FindBySKU(ctx, TenantFrom(ctx), sku)
			if err != nil {
				return Outcome{}, notFoundOr(err, "no product with SKU "+sku)
			}
			return Outcome{Content: renderProductTable(p), Final: true}, nil
		},

		ToolProductsByName: func(ctx context.Context, args map[string]interface{}) (Outcome, error) {
			terms := stringListArg(args, "names")
			if len(terms) == 0 {
				return Outcome{}, errors.New("names is required")
			}
			products, err := deps.Products.SearchByName(ctx, TenantFrom(ctx), terms, 10)
			if err != nil {
				return Outcome{}, err
			}
			if len(products) == 0 {
				return Outcome{Content: "No products match that description."}, nil
			}
			return Outcome{Content: renderProductList(products), Final: true}, nil
		},

		"get_product_stock": func(ctx context.Context, args map[string]interface{}) (Outcome, error) {
			companyID := TenantFrom(ctx)
			var p *model.Product
			var err error
			switch {
			case stringArg(args, "barcode") != "":
				p, err = deps.Products.FindByBarcode(ctx, companyID, stringArg(args, "barcode"))
			case stringArg(args, "sku") != "":
				p, err = deps.Products.FindBySKU(ctx, companyID, stringArg(args, "sku"))
			default:
				return Outcome{}, errors.New("either barcode or sku is required")
			}
			if err != nil {
				return Outcome{}, notFoundOr(err, "product not found")
			}
			return Outcome{Content: fmt.Sprintf("Stock of %s (%s): %d units", p.Name, p.SKU, p.Stock)}, nil
		},

		"get_low_stock_products": func(ctx context.Context, args map[string]interface{}) (Outcome, error) {
			products, err := deps.Products.LowStock(ctx, TenantFrom(ctx))
			if err != nil {
				return Outcome{}, err
			}
			if len(products) == 0 {
				return Outcome{Content: "No products are below their minimum stock."}, nil
			}
			return Outcome{Content: renderProductList(products), Final: true}, nil
		},

		"update_product_price": func(ctx context.Context, args map[string]interface{}) (Outcome, error) {
			sku := stringArg(args, "sku")
			price := floatArg(args, "price")
			if sku == "" || price <= 0 {
				return Outcome{}, errors.New("sku and a positive price are required")
			}
			p, err := deps.Products.UpdatePrice(ctx, TenantFrom(ctx), sku, price)
			if err != nil {
				return Outcome{}, notFoundOr(err, "no product with SKU "+sku)
			}
			return Outcome{Content: fmt.Sprintf("Price of %s (%s) updated to %s", p.Name, p.SKU, money(p.Price))}, nil
		},

		"get_customer_by_name": func(ctx context.Context, args map[string]interface{}) (Outcome, error) {
			name := stringArg(args, "name")
			if name == "" {
				return Outcome{}, errors.New("name is required")
			}
			customers, err := deps.Customers.SearchByName(ctx, TenantFrom(ctx), name)
			if err != nil {
				return Outcome{}, err
			}
			if len(customers) == 0 {
				return Outcome{Content: "No customers match '" + name + "'."}, nil
			}
			return Outcome{Content: renderCustomerList(customers), Final: true}, nil
		},

		"get_customer_by_tax_id": func(ctx context.Context, args map[string]interface{}) (Outcome, error) {
			taxID := stringArg(args, "tax_id")
			if taxID == "" {
				return Outcome{}, errors.New("tax_id is required")
			}
			c, err := deps.Customers.FindByTaxID(ctx, TenantFrom(ctx), taxID)
			if err != nil {
				return Outcome{}, notFoundOr(err, "no customer with tax id "+taxID)
			}
			return Outcome{Content: renderCustomerList([]model.Customer{*c}), Final: true}, nil
		},

		"get_customer_vehicles": func(ctx context.Context, args map[string]interface{}) (Outcome, error) {
			name := stringArg(args, "name")
			if name == "" {
				return Outcome{}, errors.New("name is required")
			}
			vehicles, err := deps.Customers.VehiclesByCustomerName(ctx, TenantFrom(ctx), name)
			if err != nil {
				return Outcome{}, err
			}
			if len(vehicles) == 0 {
				return Outcome{Content: "No vehicles registered for '" + name + "'."}, nil
			}
			return Outcome{Content: renderVehicleList(vehicles), Final: true}, nil
		},

		"create_customer": func(ctx context.Context, args map[string]interface{}) (Outcome, error) {
			name := stringArg(args, "name")
			if name == "" {
				return Outcome{}, errors.New("name is required")
			}
			customer := &model.Customer{
				CompanyID: TenantFrom(ctx),
				Name:      name,
				TaxID:     stringArg(args, "tax_id"),
				Email:     stringArg(args, "email"),
				Phone:     stringArg(args, "phone"),
			}
			if err := deps.Customers.Create(ctx, customer); err != nil {
				return Outcome{}, err
			}
			return Outcome{Content: fmt.Sprintf("Customer '%s' created with id %d.", customer.Name, customer.ID)}, nil
		},

		ToolOrderByNumber: func(ctx context.Context, args map[string]interface{}) (Outcome, error) {
			number := stringArg(args, "number")
			if number == "" {
				return Outcome{}, errors.New("number is required")
			}
			order, err := deps.Orders.FindByNumber(ctx, TenantFrom(ctx), number)
			if err != nil {
				return Outcome{}, notFoundOr(err, "no workshop order "+number)
			}
			return Outcome{Content: renderOrderTable(order), Final: true}, nil
		},

		ToolOrderStatus: func(ctx context.Context, args map[string]interface{}) (Outcome, error) {
			number := stringArg(args, "number")
			if number == "" {
				return Outcome{}, errors.New("number is required")
			}
			status, err := deps.Orders.StatusByNumber(ctx, TenantFrom(ctx), number)
			if err != nil {
				return Outcome{}, notFoundOr(err, "no workshop order "+number)
			}
			return Outcome{Content: fmt.Sprintf("Order %s is %s.", number, status)}, nil
		},

		ToolRecentOrders: func(ctx context.Context, args map[string]interface{}) (Outcome, error) {
			orders, err := deps.Orders.Recent(ctx, TenantFrom(ctx), intArg(args, "limit", 10))
			if err != nil {
				return Outcome{}, err
			}
			if len(orders) == 0 {
				return Outcome{Content: "There are no workshop orders yet."}, nil
			}
			return Outcome{Content: renderOrderList(orders), Final: true}, nil
		},

		ToolOrdersByCustomer: func(ctx context.Context, args map[string]interface{}) (Outcome, error) {
			name := stringArg(args, "name")
			if name == "" {
				return Outcome{}, errors.New("name is required")
			}
			orders, err := deps.Orders.ByCustomerName(ctx, TenantFrom(ctx), name)
			if err != nil {
				return Outcome{}, err
			}
			if len(orders) == 0 {
				return Outcome{Content: "No workshop orders for '" + name + "'."}, nil
			}
			return Outcome{Content: renderOrderList(orders), Final: true}, nil
		},

		ToolOrdersByStatus: func(ctx context.Context, args map[string]interface{}) (Outcome, error) {
			status := stringArg(args, "status")
			if status == "" {
				return Outcome{}, errors.New("status is required")
			}
			orders, err := deps.Orders.ByStatus(ctx, TenantFrom(ctx), status)
			if err != nil {
				return Outcome{}, err
			}
			if len(orders) == 0 {
				return Outcome{Content: "No workshop orders in status " + status + "."}, nil
			}
			return Outcome{Content: renderOrderList(orders), Final: true}, nil
		},

		"create_workshop_order": func(ctx context.Context, args map[string]interface{}) (Outcome, error) {
			customerName := stringArg(args, "customer_name")
			description := stringArg(args, "description")
			if customerName == "" || description == "" {
				return Outcome{}, errors.New("customer_name and description are required")
			}
			order, err := deps.Orders.Create(ctx, TenantFrom(ctx), customerName, description)
			if err != nil {
				return Outcome{}, err
			}
			return Outcome{Content: fmt.Sprintf("Workshop order %s created for %s.", order.Number, order.Customer.Name)}, nil
		},

		"add_order_comment": func(ctx context.Context, args map[string]interface{}) (Outcome, error) {
			number := stringArg(args, "number")
			comment := stringArg(args, "comment")
			if number == "" || comment == "" {
				return Outcome{}, errors.New("number and comment are required")
			}
			if err := deps.Orders.AddComment(ctx, TenantFrom(ctx), number, comment); err != nil {
				return Outcome{}, notFoundOr(err, "no workshop order "+number)
			}
			return Outcome{Content: "Comment added to order " + number + "."}, nil
		},

		"get_invoice_by_number": func(ctx context.Context, args map[string]interface{}) (Outcome, error) {
			number := stringArg(args, "number")
			if number == "" {
				return Outcome{}, errors.New("number is required")
			}
			inv, err := deps.Invoices.FindByNumber(ctx, TenantFrom(ctx), number)
			if err != nil {
				return Outcome{}, notFoundOr(err, "no invoice "+number)
			}
			return Outcome{Content: renderInvoiceTable(inv), Final: true}, nil
		},

		"list_invoices_by_customer": func(ctx context.Context, args map[string]interface{}) (Outcome, error) {
			name := stringArg(args, "name")
			if name == "" {
				return Outcome{}, errors.New("name is required")
			}
			invoices, err := deps.Invoices.ByCustomerName(ctx, TenantFrom(ctx), name)
			if err != nil {
				return Outcome{}, err
			}
			if len(invoices) == 0 {
				return Outcome{Content: "No invoices for '" + name + "'."}, nil
			}
			return Outcome{Content: renderInvoiceList(invoices), Final: true}, nil
		},

		"get_sales_summary": func(ctx context.Context, args map[string]interface{}) (Outcome, error) {
			from, to := dateRangeArg(args)
			summary, err := deps.Stats.SalesSummary(ctx, TenantFrom(ctx), from, to)
			if err != nil {
				return Outcome{}, err
			}
			return Outcome{Content: fmt.Sprintf("Between %s and %s: %d invoices for a total of %s.",
				from.Format("2006-01-02"), to.Format("2006-01-02"), summary.Count, money(summary.Total))}, nil
		},

		"get_monthly_sales": func(ctx context.Context, args map[string]interface{}) (Outcome, error) {
			year := intArg(args, "year", time.Now().Year())
			months, err := deps.Stats.MonthlySales(ctx, TenantFrom(ctx), year)
			if err != nil {
				return Outcome{}, err
			}
			return Outcome{Content: monthlyTable(year, months), Final: true}, nil
		},

		"get_top_selling_products": func(ctx context.Context, args map[string]interface{}) (Outcome, error) {
			top, err := deps.Stats.TopProducts(ctx, TenantFrom(ctx), intArg(args, "limit", 10))
			if err != nil {
				return Outcome{}, err
			}
			if len(top) == 0 {
				return Outcome{Content: "No invoiced products yet."}, nil
			}
			return Outcome{Content: topProductsTable(top), Final: true}, nil
		},

		"get_income_expense_summary": func(ctx context.Context, args map[string]interface{}) (Outcome, error) {
			from, to := dateRangeArg(args)
			sum, err := deps.Stats.IncomeExpense(ctx, TenantFrom(ctx), from, to)
			if err != nil {
				return Outcome{}, err
			}
			return Outcome{Content: fmt.Sprintf("Between %s and %s: income %s, expenses %s, balance %s.",
				from.Format("2006-01-02"), to.Format("2006-01-02"),
				money(sum.Income), money(sum.Expense), money(sum.Income-sum.Expense))}, nil
		},

		"get_accounts_receivable": func(ctx context.Context, args map[string]interface{}) (Outcome, error) {
			rows, err := deps.Stats.Receivable(ctx, TenantFrom(ctx))
			if err != nil {
				return Outcome{}, err
			}
			if len(rows) == 0 {
				return Outcome{Content: "There are no unpaid invoices."}, nil
			}
			return Outcome{Content: receivableTable(rows), Final: true}, nil
		},

		"get_company_info": func(ctx context.Context, args map[string]interface{}) (Outcome, error) {
			c, err := deps.Companies.FindByID(ctx, TenantFrom(ctx))
			if err != nil {
				return Outcome{}, err
			}
			return Outcome{Content: fmt.Sprintf("%s — tax id %s, %s, tel %s", c.Name, c.TaxID, c.Address, c.Phone)}, nil
		},
	}
}

// notFoundOr turns gorm's record-not-found into a tool-level message and
// passes any other failure through.
func notFoundOr(err error, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errors.New(message)
	}
	return err
}
