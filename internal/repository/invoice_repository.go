package repository

import (
	"context"
	"fmt"

	"taller-go/internal/model"

	"gorm.io/gorm"
)

// InvoiceRepository persists invoices and expenses.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *model.Invoice) error
	Update(ctx context.Context, invoice *model.Invoice) error
	FindByNumber(ctx context.Context, companyID uint, number string) (*model.Invoice, error)
	ByCustomerName(ctx context.Context, companyID uint, name string) ([]model.Invoice, error)
	NextNumber(ctx context.Context, companyID uint) (string, error)
	List(ctx context.Context, companyID uint, offset, limit int) ([]model.Invoice, int64, error)
	CreateExpense(ctx context.Context, expense *model.Expense) error
}

type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates an InvoiceRepository backed by GORM.
func NewInvoiceRepository(db *gorm.DB) InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *model.Invoice) error {
	return r.db.WithContext(ctx).Create(invoice).Error
}

func (r *invoiceRepository) Update(ctx context.Context, invoice *model.Invoice) error {
	return r.db.WithContext(ctx).Save(invoice).Error
}

func (r *invoiceRepository) FindByNumber(ctx context.Context, companyID uint, number string) (*model.Invoice, error) {
	var invoice model.Invoice
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Items").
		Where("company_id = ? AND number = ?", companyID, number).
		First(&invoice).Error
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) ByCustomerName(ctx context.Context, companyID uint, name string) ([]model.Invoice, error) {
	var invoices []model.Invoice
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Joins("JOIN customers ON customers.id = invoices.customer_id").
		Where("invoices.company_id = ? AND customers.name LIKE ?", companyID, "%"+name+"%").
		Order("invoices.issued_at DESC").
		Find(&invoices).Error
	return invoices, err
}

// NextNumber follows the same fiscal series shape as order numbers.
func (r *invoiceRepository) NextNumber(ctx context.Context, companyID uint) (string, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Invoice{}).
		Where("company_id = ?", companyID).
		Count(&count).Error
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("001-001-%07d", count+1), nil
}

func (r *invoiceRepository) List(ctx context.Context, companyID uint, offset, limit int) ([]model.Invoice, int64, error) {
	var invoices []model.Invoice
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Invoice{}).Where("company_id = ?", companyID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Preload("Customer").Offset(offset).Limit(limit).Order("issued_at DESC").Find(&invoices).Error
	if err != nil {
		return nil, 0, err
	}
	return invoices, total, nil
}

func (r *invoiceRepository) CreateExpense(ctx context.Context, expense *model.Expense) error {
	return r.db.WithContext(ctx).Create(expense).Error
}
