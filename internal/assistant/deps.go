package assistant

import (
	"context"
	"time"

	"taller-go/internal/model"
	"taller-go/internal/repository"
)

// Deps are the business-data collaborators the tool handlers call into.
// The concrete implementations live in the repository and service layers;
// the orchestrator only sees these narrow views.
type Deps struct {
	Products  ProductDirectory
	Customers CustomerDirectory
	Orders    OrderDesk
	Invoices  InvoiceBook
	Stats     StatsReader
	Companies CompanyDirectory
}

// ProductDirectory answers product lookups for the product tools.
type ProductDirectory interface {
	FindByBarcode(ctx context.Context, companyID uint, barcode string) (*model.Product, error)
	FindBySKU(ctx context.Context, companyID uint, sku string) (*model.Product, error)
	SearchByName(ctx context.Context, companyID uint, terms []string, limit int) ([]model.Product, error)
	LowStock(ctx context.Context, companyID uint) ([]model.Product, error)
	UpdatePrice(ctx context.Context, companyID uint, sku string, price float64) (*model.Product, error)
}

// CustomerDirectory answers customer lookups and creation.
type CustomerDirectory interface {
	SearchByName(ctx context.Context, companyID uint, name string) ([]model.Customer, error)
	FindByTaxID(ctx context.Context, companyID uint, taxID string) (*model.Customer, error)
	VehiclesByCustomerName(ctx context.Context, companyID uint, name string) ([]model.Vehicle, error)
	Create(ctx context.Context, customer *model.Customer) error
}

// OrderDesk answers workshop order queries and mutations.
type OrderDesk interface {
	FindByNumber(ctx context.Context, companyID uint, number string) (*model.WorkshopOrder, error)
	StatusByNumber(ctx context.Context, companyID uint, number string) (string, error)
	Recent(ctx context.Context, companyID uint, limit int) ([]model.WorkshopOrder, error)
	ByCustomerName(ctx context.Context, companyID uint, name string) ([]model.WorkshopOrder, error)
	ByStatus(ctx context.Context, companyID uint, status string) ([]model.WorkshopOrder, error)
	Create(ctx context.Context, companyID uint, customerName, description string) (*model.WorkshopOrder, error)
	AddComment(ctx context.Context, companyID uint, number, comment string) error
}

// InvoiceBook answers invoice queries.
type InvoiceBook interface {
	FindByNumber(ctx context.Context, companyID uint, number string) (*model.Invoice, error)
	ByCustomerName(ctx context.Context, companyID uint, name string) ([]model.Invoice, error)
}

// StatsReader answers the finance/statistics tools.
type StatsReader interface {
	SalesSummary(ctx context.Context, companyID uint, from, to time.Time) (repository.SalesSummary, error)
	MonthlySales(ctx context.Context, companyID uint, year int) ([]repository.MonthlyTotal, error)
	TopProducts(ctx context.Context, companyID uint, limit int) ([]repository.ProductSales, error)
	IncomeExpense(ctx context.Context, companyID uint, from, to time.Time) (repository.IncomeExpense, error)
	Receivable(ctx context.Context, companyID uint) ([]repository.ReceivableRow, error)
}

// CompanyDirectory resolves the tenant record.
type CompanyDirectory interface {
	FindByID(ctx context.Context, companyID uint) (*model.Company, error)
}
