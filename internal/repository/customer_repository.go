package repository

import (
	"context"

	"taller-go/internal/model"

	"gorm.io/gorm"
)

// CustomerRepository persists customers and their vehicles.
type CustomerRepository interface {
	Create(ctx context.Context, customer *model.Customer) error
	Update(ctx context.Context, customer *model.Customer) error
	FindByID(ctx context.Context, companyID, id uint) (*model.Customer, error)
	FindByTaxID(ctx context.Context, companyID uint, taxID string) (*model.Customer, error)
	SearchByName(ctx context.Context, companyID uint, name string) ([]model.Customer, error)
	VehiclesByCustomerName(ctx context.Context, companyID uint, name string) ([]model.Vehicle, error)
	AddVehicle(ctx context.Context, vehicle *model.Vehicle) error
	List(ctx context.Context, companyID uint, offset, limit int) ([]model.Customer, int64, error)
}

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a CustomerRepository backed by GORM.
func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, customer *model.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

func (r *customerRepository) Update(ctx context.Context, customer *model.Customer) error {
	return r.db.WithContext(ctx).Save(customer).Error
}

func (r *customerRepository) FindByID(ctx context.Context, companyID, id uint) (*model.Customer, error) {
	var customer model.Customer
	err := r.db.WithContext(ctx).
		Preload("Vehicles").
		Where("company_id = ? AND id = ?", companyID, id).
		First(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) FindByTaxID(ctx context.Context, companyID uint, taxID string) (*model.Customer, error) {
	var customer model.Customer
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND tax_id = ?", companyID, taxID).
		First(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) SearchByName(ctx context.Context, companyID uint, name string) ([]model.Customer, error) {
	var customers []model.Customer
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND name LIKE ?", companyID, "%"+name+"%").
		Limit(20).
		Find(&customers).Error
	return customers, err
}

func (r *customerRepository) VehiclesByCustomerName(ctx context.Context, companyID uint, name string) ([]model.Vehicle, error) {
	var vehicles []model.Vehicle
	err := r.db.WithContext(ctx).Model(&model.Vehicle{}).
		Joins("JOIN customers ON customers.id = vehicles.customer_id").
		Where("customers.company_id = ? AND customers.name LIKE ?", companyID, "%"+name+"%").
		Find(&vehicles).Error
	return vehicles, err
}

func (r *customerRepository) AddVehicle(ctx context.Context, vehicle *model.Vehicle) error {
	return r.db.WithContext(ctx).Create(vehicle).Error
}

func (r *customerRepository) List(ctx context.Context, companyID uint, offset, limit int) ([]model.Customer, int64, error) {
	var customers []model.Customer
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Customer{}).Where("company_id = ?", companyID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Offset(offset).Limit(limit).Order("name").Find(&customers).Error
	if err != nil {
		return nil, 0, err
	}
	return customers, total, nil
}
