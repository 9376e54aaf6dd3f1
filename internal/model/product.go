package model

import "time"

// Product is a sellable part or service from the catalog.
type Product struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CompanyID uint      `gorm:"index;not null" json:"companyId"`
	SKU       string    `gorm:"type:varchar(64);uniqueIndex" json:"sku"`
	Barcode   string    `gorm:"type:varchar(32);index" json:"barcode"`
	Name      string    `gorm:"type:varchar(255);index;not null" json:"name"`
	Brand     string    `gorm:"type:varchar(64)" json:"brand"`
	Price     float64   `gorm:"type:decimal(12,2);not null" json:"price"`
	Cost      float64   `gorm:"type:decimal(12,2)" json:"cost"`
	Stock     int       `gorm:"not null;default:0" json:"stock"`
	MinStock  int       `gorm:"not null;default:0" json:"minStock"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Product) TableName() string {
	return "products"
}

// EsProduct is the document shape indexed for free-text product search.
type EsProduct struct {
	ProductID uint    `json:"product_id"`
	CompanyID uint    `json:"company_id"`
	SKU       string  `json:"sku"`
	Barcode   string  `json:"barcode"`
	Name      string  `json:"name"`
	Brand     string  `json:"brand"`
	Price     float64 `json:"price"`
	Stock     int     `json:"stock"`
}
