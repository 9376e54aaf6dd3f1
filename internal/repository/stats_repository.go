package repository

import (
	"context"
	"time"

	"taller-go/internal/model"

	"gorm.io/gorm"
)

// SalesSummary aggregates invoicing over a period.
type SalesSummary struct {
	Count int64   `json:"count"`
	Total float64 `json:"total"`
}

// MonthlyTotal is one month of invoiced totals.
type MonthlyTotal struct {
	Month int     `json:"month"`
	Total float64 `json:"total"`
}

// ProductSales aggregates invoiced quantity and revenue per product.
type ProductSales struct {
	SKU      string  `json:"sku"`
	Name     string  `json:"name"`
	Quantity int64   `json:"quantity"`
	Total    float64 `json:"total"`
}

// IncomeExpense pairs invoiced income with recorded expenses.
type IncomeExpense struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

// ReceivableRow is one unpaid invoice in the receivable report.
type ReceivableRow struct {
	Number       string    `json:"number"`
	CustomerName string    `json:"customerName"`
	Total        float64   `json:"total"`
	IssuedAt     time.Time `json:"issuedAt"`
}

// StatsRepository runs the aggregate finance queries.
type StatsRepository interface {
	SalesSummary(ctx context.Context, companyID uint, from, to time.Time) (SalesSummary, error)
	MonthlySales(ctx context.Context, companyID uint, year int) ([]MonthlyTotal, error)
	TopProducts(ctx context.Context, companyID uint, limit int) ([]ProductSales, error)
	IncomeExpense(ctx context.Context, companyID uint, from, to time.Time) (IncomeExpense, error)
	Receivable(ctx context.Context, companyID uint) ([]ReceivableRow, error)
}

type statsRepository struct {
	db *gorm.DB
}

// NewStatsRepository creates a StatsRepository backed by GORM.
func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{db: db}
}

// countedStatuses are the invoice statuses that count as realised income.
var countedStatuses = []string{model.InvoiceStatusIssued, model.InvoiceStatusPaid, model.InvoiceStatusOverdue}

func (r *statsRepository) SalesSummary(ctx context.Context, companyID uint, from, to time.Time) (SalesSummary, error) {
	var out SalesSummary
	err := r.db.WithContext(ctx).Model(&model.Invoice{}).
		Select("COUNT(*) AS count, COALESCE(SUM(total), 0) AS total").
		Where("company_id = ? AND status IN ? AND issued_at BETWEEN ? AND ?", companyID, countedStatuses, from, to).
		Scan(&out).Error
	return out, err
}

func (r *statsRepository) MonthlySales(ctx context.Context, companyID uint, year int) ([]MonthlyTotal, error) {
	var rows []MonthlyTotal
	err := r.db.WithContext(ctx).Model(&model.Invoice{}).
		Select("MONTH(issued_at) AS month, COALESCE(SUM(total), 0) AS total").
		Where("company_id = ? AND status IN ? AND YEAR(issued_at) = ?", companyID, countedStatuses, year).
		Group("MONTH(issued_at)").
		Order("month").
		Scan(&rows).Error
	return rows, err
}

func (r *statsRepository) TopProducts(ctx context.Context, companyID uint, limit int) ([]ProductSales, error) {
	if limit <= 0 {
		limit = 10
	}
	var rows []ProductSales
	err := r.db.WithContext(ctx).Model(&model.OrderItem{}).
		Select("products.sku AS sku, products.name AS name, CAST(SUM(order_items.quantity) AS SIGNED) AS quantity, SUM(order_items.quantity * order_items.unit_price) AS total").
		Joins("JOIN products ON products.id = order_items.product_id").
		Joins("JOIN workshop_orders ON workshop_orders.id = order_items.order_id").
		Where("workshop_orders.company_id = ?", companyID).
		Group("products.id").
		Order("total DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *statsRepository) IncomeExpense(ctx context.Context, companyID uint, from, to time.Time) (IncomeExpense, error) {
	var out IncomeExpense
	err := r.db.WithContext(ctx).Model(&model.Invoice{}).
		Select("COALESCE(SUM(total), 0)").
		Where("company_id = ? AND status IN ? AND issued_at BETWEEN ? AND ?", companyID, countedStatuses, from, to).
		Scan(&out.Income).Error
	if err != nil {
		return out, err
	}
	err = r.db.WithContext(ctx).Model(&model.Expense{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("company_id = ? AND spent_at BETWEEN ? AND ?", companyID, from, to).
		Scan(&out.Expense).Error
	return out, err
}

func (r *statsRepository) Receivable(ctx context.Context, companyID uint) ([]ReceivableRow, error) {
	var rows []ReceivableRow
	err := r.db.WithContext(ctx).Model(&model.Invoice{}).
		Select("invoices.number AS number, customers.name AS customer_name, invoices.total AS total, invoices.issued_at AS issued_at").
		Joins("JOIN customers ON customers.id = invoices.customer_id").
		Where("invoices.company_id = ? AND invoices.status IN ?", companyID, []string{model.InvoiceStatusIssued, model.InvoiceStatusOverdue}).
		Order("invoices.issued_at").
		Scan(&rows).Error
	return rows, err
}
