package assistant

import (
	"context"
	"testing"
	"time"

	"taller-go/internal/model"
	"taller-go/internal/repository"

	"gorm.io/gorm"
)

// Function-field stubs: a test sets only the methods it exercises, everything
// else reports record-not-found.

type stubProducts struct {
	findByBarcode func(ctx context.Context, companyID uint, barcode string) (*model.Product, error)
	findBySKU     func(ctx context.Context, companyID uint, sku string) (*model.Product, error)
	searchByName  func(ctx context.Context, companyID uint, terms []string, limit int) ([]model.Product, error)
	lowStock      func(ctx context.Context, companyID uint) ([]model.Product, error)
	updatePrice   func(ctx context.Context, companyID uint, sku string, price float64) (*model.Product, error)
}

func (s *stubProducts) FindByBarcode(ctx context.Context, companyID uint, barcode string) (*model.Product, error) {
	if s.findByBarcode != nil {
		return s.findByBarcode(ctx, companyID, barcode)
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubProducts) FindBySKU(ctx context.Context, companyID uint, sku string) (*model.Product, error) {
	if s.findBySKU != nil {
		return s.findBySKU(ctx, companyID, sku)
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubProducts) SearchByName(ctx context.Context, companyID uint, terms []string, limit int) ([]model.Product, error) {
	if s.searchByName != nil {
		return s.searchByName(ctx, companyID, terms, limit)
	}
	return nil, nil
}

func (s *stubProducts) LowStock(ctx context.Context, companyID uint) ([]model.Product, error) {
	if s.lowStock != nil {
		return s.lowStock(ctx, companyID)
	}
	return nil, nil
}

func (s *stubProducts) UpdatePrice(ctx context.Context, companyID uint, sku string, price float64) (*model.Product, error) {
	if s.updatePrice != nil {
		return s.updatePrice(ctx, companyID, sku, price)
	}
	return nil, gorm.ErrRecordNotFound
}

type stubCustomers struct {
	searchByName func(ctx context.Context, companyID uint, name string) ([]model.Customer, error)
}

func (s *stubCustomers) SearchByName(ctx context.Context, companyID uint, name string) ([]model.Customer, error) {
	if s.searchByName != nil {
		return s.searchByName(ctx, companyID, name)
	}
	return nil, nil
}

func (s *stubCustomers) FindByTaxID(ctx context.Context, companyID uint, taxID string) (*model.Customer, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubCustomers) VehiclesByCustomerName(ctx context.Context, companyID uint, name string) ([]model.Vehicle, error) {
	return nil, nil
}

func (s *stubCustomers) Create(ctx context.Context, customer *model.Customer) error {
	customer.ID = 1
	return nil
}

type stubOrders struct {
	findByNumber   func(ctx context.Context, companyID uint, number string) (*model.WorkshopOrder, error)
	statusByNumber func(ctx context.Context, companyID uint, number string) (string, error)
}

func (s *stubOrders) FindByNumber(ctx context.Context, companyID uint, number string) (*model.WorkshopOrder, error) {
	if s.findByNumber != nil {
		return s.findByNumber(ctx, companyID, number)
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubOrders) StatusByNumber(ctx context.Context, companyID uint, number string) (string, error) {
	if s.statusByNumber != nil {
		return s.statusByNumber(ctx, companyID, number)
	}
	return "", gorm.ErrRecordNotFound
}

func (s *stubOrders) Recent(ctx context.Context, companyID uint, limit int) ([]model.WorkshopOrder, error) {
	return nil, nil
}

func (s *stubOrders) ByCustomerName(ctx context.Context, companyID uint, name string) ([]model.WorkshopOrder, error) {
	return nil, nil
}

func (s *stubOrders) ByStatus(ctx context.Context, companyID uint, status string) ([]model.WorkshopOrder, error) {
	return nil, nil
}

func (s *stubOrders) Create(ctx context.Context, companyID uint, customerName, description string) (*model.WorkshopOrder, error) {
	return &model.WorkshopOrder{
		Number:   "001-001-001",
		Customer: model.Customer{Name: customerName},
	}, nil
}

func (s *stubOrders) AddComment(ctx context.Context, companyID uint, number, comment string) error {
	return nil
}

type stubInvoices struct{}

func (s *stubInvoices) FindByNumber(ctx context.Context, companyID uint, number string) (*model.Invoice, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubInvoices) ByCustomerName(ctx context.Context, companyID uint, name string) ([]model.Invoice, error) {
	return nil, nil
}

type stubStats struct{}

func (s *stubStats) SalesSummary(ctx context.Context, companyID uint, from, to time.Time) (repository.SalesSummary, error) {
	return repository.SalesSummary{Count: 2, Total: 150}, nil
}

func (s *stubStats) MonthlySales(ctx context.Context, companyID uint, year int) ([]repository.MonthlyTotal, error) {
	return []repository.MonthlyTotal{{Month: 1, Total: 100}}, nil
}

func (s *stubStats) TopProducts(ctx context.Context, companyID uint, limit int) ([]repository.ProductSales, error) {
	return nil, nil
}

func (s *stubStats) IncomeExpense(ctx context.Context, companyID uint, from, to time.Time) (repository.IncomeExpense, error) {
	return repository.IncomeExpense{Income: 200, Expense: 50}, nil
}

func (s *stubStats) Receivable(ctx context.Context, companyID uint) ([]repository.ReceivableRow, error) {
	return nil, nil
}

type stubCompanies struct{}

func (s *stubCompanies) FindByID(ctx context.Context, companyID uint) (*model.Company, error) {
	return &model.Company{ID: companyID, Name: "Taller Central"}, nil
}

func testDeps() Deps {
	return Deps{
		Products:  &stubProducts{},
		Customers: &stubCustomers{},
		Orders:    &stubOrders{},
		Invoices:  &stubInvoices{},
		Stats:     &stubStats{},
		Companies: &stubCompanies{},
	}
}

func newTestRegistry(t *testing.T, deps Deps) *Registry {
	t.Helper()
	reg, err := NewRegistry(deps)
	if err != nil {
		t.Fatalf("building registry: %v", err)
	}
	return reg
}
