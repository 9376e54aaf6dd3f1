package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"taller-go/internal/model"
	"taller-go/internal/repository"
)

// ErrCustomerNotFound is returned when an order references an unknown customer.
var ErrCustomerNotFound = errors.New("customer not found")

// OrderService manages workshop orders.
type OrderService interface {
	Create(ctx context.Context, companyID uint, customerName, description string) (*model.WorkshopOrder, error)
	CreateForCustomer(ctx context.Context, order *model.WorkshopOrder) error
	FindByNumber(ctx context.Context, companyID uint, number string) (*model.WorkshopOrder, error)
	StatusByNumber(ctx context.Context, companyID uint, number string) (string, error)
	UpdateStatus(ctx context.Context, companyID uint, number, status string) (*model.WorkshopOrder, error)
	Recent(ctx context.Context, companyID uint, limit int) ([]model.WorkshopOrder, error)
	ByCustomerName(ctx context.Context, companyID uint, name string) ([]model.WorkshopOrder, error)
	ByStatus(ctx context.Context, companyID uint, status string) ([]model.WorkshopOrder, error)
	AddComment(ctx context.Context, companyID uint, number, comment string) error
	AddItem(ctx context.Context, companyID uint, number string, item *model.OrderItem) error
	List(ctx context.Context, companyID uint, offset, limit int) ([]model.WorkshopOrder, int64, error)
}

type orderService struct {
	orders    repository.OrderRepository
	customers repository.CustomerRepository
}

// NewOrderService creates an OrderService.
func NewOrderService(orders repository.OrderRepository, customers repository.CustomerRepository) OrderService {
	return &orderService{orders: orders, customers: customers}
}

// Create opens an order for an existing customer resolved by name.
func (s *orderService) Create(ctx context.Context, companyID uint, customerName, description string) (*model.WorkshopOrder, error) {
	matches, err := s.customers.SearchByName(ctx, companyID, customerName)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrCustomerNotFound, customerName)
	}
	customer := matches[0]

	number, err := s.orders.NextNumber(ctx, companyID)
	if err != nil {
		return nil, err
	}
	order := &model.WorkshopOrder{
		CompanyID:   companyID,
		Number:      number,
		CustomerID:  customer.ID,
		Status:      model.OrderStatusOpen,
		Description: description,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}
	order.Customer = customer
	return order, nil
}

// CreateForCustomer opens an order with explicit customer and vehicle ids,
// assigning the next number in the series.
func (s *orderService) CreateForCustomer(ctx context.Context, order *model.WorkshopOrder) error {
	if _, err := s.customers.FindByID(ctx, order.CompanyID, order.CustomerID); err != nil {
		return err
	}
	number, err := s.orders.NextNumber(ctx, order.CompanyID)
	if err != nil {
		return err
	}
	order.Number = number
	if order.Status == "" {
		order.Status = model.OrderStatusOpen
	}
	return s.orders.Create(ctx, order)
}

func (s *orderService) FindByNumber(ctx context.Context, companyID uint, number string) (*model.WorkshopOrder, error) {
	return s.orders.FindByNumber(ctx, companyID, number)
}

func (s *orderService) StatusByNumber(ctx context.Context, companyID uint, number string) (string, error) {
	return s.orders.StatusByNumber(ctx, companyID, number)
}

func (s *orderService) UpdateStatus(ctx context.Context, companyID uint, number, status string) (*model.WorkshopOrder, error) {
	order, err := s.orders.FindByNumber(ctx, companyID, number)
	if err != nil {
		return nil, err
	}
	order.Status = status
	if status == model.OrderStatusDelivered {
		now := time.Now()
		order.DeliveredAt = &now
	}
	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *orderService) Recent(ctx context.Context, companyID uint, limit int) ([]model.WorkshopOrder, error) {
	return s.orders.Recent(ctx, companyID, limit)
}

func (s *orderService) ByCustomerName(ctx context.Context, companyID uint, name string) ([]model.WorkshopOrder, error) {
	return s.orders.ByCustomerName(ctx, companyID, name)
}

func (s *orderService) ByStatus(ctx context.Context, companyID uint, status string) ([]model.WorkshopOrder, error) {
	return s.orders.ByStatus(ctx, companyID, status)
}

func (s *orderService) AddComment(ctx context.Context, companyID uint, number, comment string) error {
	order, err := s.orders.FindByNumber(ctx, companyID, number)
	if err != nil {
		return err
	}
	return s.orders.AddComment(ctx, &model.OrderComment{
		OrderID: order.ID,
		Body:    comment,
	})
}

// AddItem appends a line and keeps the order total in sync.
func (s *orderService) AddItem(ctx context.Context, companyID uint, number string, item *model.OrderItem) error {
	order, err := s.orders.FindByNumber(ctx, companyID, number)
	if err != nil {
		return err
	}
	item.OrderID = order.ID
	if err := s.orders.AddItem(ctx, item); err != nil {
		return err
	}
	order.Total += item.Quantity * item.UnitPrice
	return s.orders.Update(ctx, order)
}

func (s *orderService) List(ctx context.Context, companyID uint, offset, limit int) ([]model.WorkshopOrder, int64, error) {
	return s.orders.List(ctx, companyID, offset, limit)
}
