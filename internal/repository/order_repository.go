package repository

import (
	"context"
	"fmt"

	"taller-go/internal/model"

	"gorm.io/gorm"
)

// OrderRepository persists workshop orders.
type OrderRepository interface {
	Create(ctx context.Context, order *model.WorkshopOrder) error
	Update(ctx context.Context, order *model.WorkshopOrder) error
	FindByNumber(ctx context.Context, companyID uint, number string) (*model.WorkshopOrder, error)
	StatusByNumber(ctx context.Context, companyID uint, number string) (string, error)
	Recent(ctx context.Context, companyID uint, limit int) ([]model.WorkshopOrder, error)
	ByCustomerName(ctx context.Context, companyID uint, name string) ([]model.WorkshopOrder, error)
	ByStatus(ctx context.Context, companyID uint, status string) ([]model.WorkshopOrder, error)
	AddComment(ctx context.Context, comment *model.OrderComment) error
	AddItem(ctx context.Context, item *model.OrderItem) error
	NextNumber(ctx context.Context, companyID uint) (string, error)
	List(ctx context.Context, companyID uint, offset, limit int) ([]model.WorkshopOrder, int64, error)
}

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates an OrderRepository backed by GORM.
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *model.WorkshopOrder) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *orderRepository) Update(ctx context.Context, order *model.WorkshopOrder) error {
	return r.db.WithContext(ctx).Save(order).Error
}

func (r *orderRepository) FindByNumber(ctx context.Context, companyID uint, number string) (*model.WorkshopOrder, error) {
	var order model.WorkshopOrder
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Vehicle").
		Preload("Items").
		Preload("Comments").
		Where("company_id = ? AND number = ?", companyID, number).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) StatusByNumber(ctx context.Context, companyID uint, number string) (string, error) {
	var status string
	err := r.db.WithContext(ctx).Model(&model.WorkshopOrder{}).
		Select("status").
		Where("company_id = ? AND number = ?", companyID, number).
		First(&status).Error
	return status, err
}

func (r *orderRepository) Recent(ctx context.Context, companyID uint, limit int) ([]model.WorkshopOrder, error) {
	if limit <= 0 {
		limit = 10
	}
	var orders []model.WorkshopOrder
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Where("company_id = ?", companyID).
		Order("created_at DESC").
		Limit(limit).
		Find(&orders).Error
	return orders, err
}

func (r *orderRepository) ByCustomerName(ctx context.Context, companyID uint, name string) ([]model.WorkshopOrder, error) {
	var orders []model.WorkshopOrder
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Joins("JOIN customers ON customers.id = workshop_orders.customer_id").
		Where("workshop_orders.company_id = ? AND customers.name LIKE ?", companyID, "%"+name+"%").
		Order("workshop_orders.created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepository) ByStatus(ctx context.Context, companyID uint, status string) ([]model.WorkshopOrder, error) {
	var orders []model.WorkshopOrder
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Where("company_id = ? AND status = ?", companyID, status).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepository) AddComment(ctx context.Context, comment *model.OrderComment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *orderRepository) AddItem(ctx context.Context, item *model.OrderItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// NextNumber produces the next order number in the 001-001-NNN series for
// the company. The first two segments identify branch and point of sale;
// a single-branch deployment keeps them fixed.
func (r *orderRepository) NextNumber(ctx context.Context, companyID uint) (string, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.WorkshopOrder{}).
		Where("company_id = ?", companyID).
		Count(&count).Error
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("001-001-%03d", count+1), nil
}

func (r *orderRepository) List(ctx context.Context, companyID uint, offset, limit int) ([]model.WorkshopOrder, int64, error) {
	var orders []model.WorkshopOrder
	var total int64

	q := r.db.WithContext(ctx).Model(&model.WorkshopOrder{}).Where("company_id = ?", companyID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Preload("Customer").Offset(offset).Limit(limit).Order("created_at DESC").Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}
