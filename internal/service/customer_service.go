package service

import (
	"context"

	"taller-go/internal/model"
	"taller-go/internal/repository"
)

// CustomerService manages customers and their vehicles.
type CustomerService interface {
	Create(ctx context.Context, customer *model.Customer) error
	Update(ctx context.Context, customer *model.Customer) error
	Get(ctx context.Context, companyID, id uint) (*model.Customer, error)
	List(ctx context.Context, companyID uint, offset, limit int) ([]model.Customer, int64, error)
	SearchByName(ctx context.Context, companyID uint, name string) ([]model.Customer, error)
	FindByTaxID(ctx context.Context, companyID uint, taxID string) (*model.Customer, error)
	VehiclesByCustomerName(ctx context.Context, companyID uint, name string) ([]model.Vehicle, error)
	AddVehicle(ctx context.Context, companyID uint, vehicle *model.Vehicle) error
}

type customerService struct {
	customers repository.CustomerRepository
}

// NewCustomerService creates a CustomerService.
func NewCustomerService(customers repository.CustomerRepository) CustomerService {
	return &customerService{customers: customers}
}

func (s *customerService) Create(ctx context.Context, customer *model.Customer) error {
	return s.customers.Create(ctx, customer)
}

func (s *customerService) Update(ctx context.Context, customer *model.Customer) error {
	return s.customers.Update(ctx, customer)
}

func (s *customerService) Get(ctx context.Context, companyID, id uint) (*model.Customer, error) {
	return s.customers.FindByID(ctx, companyID, id)
}

func (s *customerService) List(ctx context.Context, companyID uint, offset, limit int) ([]model.Customer, int64, error) {
	return s.customers.List(ctx, companyID, offset, limit)
}

func (s *customerService) SearchByName(ctx context.Context, companyID uint, name string) ([]model.Customer, error) {
	return s.customers.SearchByName(ctx, companyID, name)
}

func (s *customerService) FindByTaxID(ctx context.Context, companyID uint, taxID string) (*model.Customer, error) {
	return s.customers.FindByTaxID(ctx, companyID, taxID)
}

func (s *customerService) VehiclesByCustomerName(ctx context.Context, companyID uint, name string) ([]model.Vehicle, error) {
	return s.customers.VehiclesByCustomerName(ctx, companyID, name)
}

// AddVehicle verifies the customer belongs to the company before attaching.
func (s *customerService) AddVehicle(ctx context.Context, companyID uint, vehicle *model.Vehicle) error {
	if _, err := s.customers.FindByID(ctx, companyID, vehicle.CustomerID); err != nil {
		return err
	}
	return s.customers.AddVehicle(ctx, vehicle)
}
