package model

import "time"

// Customer is a workshop client; vehicles and orders hang off it.
type Customer struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CompanyID uint      `gorm:"index;not null" json:"companyId"`
	Name      string    `gorm:"type:varchar(128);index;not null" json:"name"`
	TaxID     string    `gorm:"type:varchar(32);index" json:"taxId"`
	Email     string    `gorm:"type:varchar(128)" json:"email"`
	Phone     string    `gorm:"type:varchar(32)" json:"phone"`
	Address   string    `gorm:"type:varchar(255)" json:"address"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	Vehicles []Vehicle `gorm:"foreignKey:CustomerID" json:"vehicles,omitempty"`
}

func (Customer) TableName() string {
	return "customers"
}

// Vehicle belongs to a customer and is referenced by workshop orders.
type Vehicle struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CustomerID uint      `gorm:"index;not null" json:"customerId"`
	Plate      string    `gorm:"type:varchar(16);index" json:"plate"`
	Brand      string    `gorm:"type:varchar(64)" json:"brand"`
	Model      string    `gorm:"type:varchar(64)" json:"model"`
	Year       int       `json:"year"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (Vehicle) TableName() string {
	return "vehicles"
}
