package database

import (
	"time"

	"taller-go/internal/model"
	"taller-go/pkg/log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var DB *gorm.DB

// InitMySQL opens the MySQL connection and migrates the schema.
func InitMySQL(dsn string) {
	var err error
	DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect database", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		log.Fatal("failed to get sql.DB", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := DB.AutoMigrate(
		&model.User{},
		&model.Company{},
		&model.Customer{},
		&model.Vehicle{},
		&model.Product{},
		&model.WorkshopOrder{},
		&model.OrderItem{},
		&model.OrderComment{},
		&model.Invoice{},
		&model.InvoiceItem{},
		&model.Expense{},
		&model.Conversation{},
		&model.Message{},
	); err != nil {
		log.Fatal("failed to migrate schema", err)
	}

	log.Info("MySQL database connected successfully")
}
