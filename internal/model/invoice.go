package model

import "time"

// Invoice statuses.
const (
	InvoiceStatusIssued  = "ISSUED"
	InvoiceStatusPaid    = "PAID"
	InvoiceStatusVoid    = "VOID"
	InvoiceStatusOverdue = "OVERDUE"
)

// Invoice bills a customer, optionally for a workshop order.
type Invoice struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	CompanyID  uint       `gorm:"uniqueIndex:idx_invoices_company_number;not null" json:"companyId"`
	Number     string     `gorm:"type:varchar(32);uniqueIndex:idx_invoices_company_number;not null" json:"number"`
	CustomerID uint       `gorm:"index;not null" json:"customerId"`
	OrderID    uint       `gorm:"index" json:"orderId"`
	Status     string     `gorm:"type:varchar(16);index;not null;default:'ISSUED'" json:"status"`
	Subtotal   float64    `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	Tax        float64    `gorm:"type:decimal(12,2);not null" json:"tax"`
	Total      float64    `gorm:"type:decimal(12,2);not null" json:"total"`
	ObjectKey  string     `gorm:"type:varchar(255)" json:"-"` // MinIO object for the rendered document
	IssuedAt   time.Time  `gorm:"autoCreateTime" json:"issuedAt"`
	PaidAt     *time.Time `gorm:"default:null" json:"paidAt"`

	Customer Customer      `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items    []InvoiceItem `gorm:"foreignKey:InvoiceID" json:"items,omitempty"`
}

func (Invoice) TableName() string {
	return "invoices"
}

// InvoiceItem is one billed line.
type InvoiceItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	InvoiceID uint    `gorm:"index;not null" json:"invoiceId"`
	Concept   string  `gorm:"type:varchar(255);not null" json:"concept"`
	Quantity  float64 `gorm:"type:decimal(10,2);not null;default:1" json:"quantity"`
	UnitPrice float64 `gorm:"type:decimal(12,2);not null" json:"unitPrice"`
}

func (InvoiceItem) TableName() string {
	return "invoice_items"
}

// Expense is an outgoing payment, used by the finance summary tools.
type Expense struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CompanyID uint      `gorm:"index;not null" json:"companyId"`
	Concept   string    `gorm:"type:varchar(255);not null" json:"concept"`
	Amount    float64   `gorm:"type:decimal(12,2);not null" json:"amount"`
	SpentAt   time.Time `gorm:"index" json:"spentAt"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (Expense) TableName() string {
	return "expenses"
}
