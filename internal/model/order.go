package model

import "time"

// Workshop order status values.
const (
	OrderStatusOpen       = "OPEN"
	OrderStatusInProgress = "IN_PROGRESS"
	OrderStatusReady      = "READY"
	OrderStatusDelivered  = "DELIVERED"
	OrderStatusCancelled  = "CANCELLED"
)

// WorkshopOrder is a repair/service order. Number has the form 001-001-001.
type WorkshopOrder struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	CompanyID   uint       `gorm:"uniqueIndex:idx_orders_company_number;not null" json:"companyId"`
	Number      string     `gorm:"type:varchar(32);uniqueIndex:idx_orders_company_number;not null" json:"number"`
	CustomerID  uint       `gorm:"index;not null" json:"customerId"`
	VehicleID   uint       `gorm:"index" json:"vehicleId"`
	Status      string     `gorm:"type:varchar(16);index;not null;default:'OPEN'" json:"status"`
	Description string     `gorm:"type:text" json:"description"`
	Total       float64    `gorm:"type:decimal(12,2)" json:"total"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
	DeliveredAt *time.Time `gorm:"default:null" json:"deliveredAt"`

	Customer Customer       `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Vehicle  Vehicle        `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
	Items    []OrderItem    `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	Comments []OrderComment `gorm:"foreignKey:OrderID" json:"comments,omitempty"`
}

func (WorkshopOrder) TableName() string {
	return "workshop_orders"
}

// OrderItem is one labor or part line on a workshop order.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	OrderID   uint    `gorm:"index;not null" json:"orderId"`
	ProductID uint    `gorm:"index" json:"productId"`
	Concept   string  `gorm:"type:varchar(255);not null" json:"concept"`
	Quantity  float64 `gorm:"type:decimal(10,2);not null;default:1" json:"quantity"`
	UnitPrice float64 `gorm:"type:decimal(12,2);not null" json:"unitPrice"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

// OrderComment is a timestamped workshop note on an order.
type OrderComment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   uint      `gorm:"index;not null" json:"orderId"`
	UserID    uint      `gorm:"index" json:"userId"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (OrderComment) TableName() string {
	return "order_comments"
}
