package database

import (
	"fmt"
	"log"

	"github.com/spf13/viper"
	"github.com/yasserh/sultan-pos/internal/config"
	"github.com/yasserh/sultan-pos/internal/domain/entity"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// Catalog entities
		&entity.Product{},
		&entity.Customer{},

		// Sale entities
		&entity.Invoice{},
		&entity.CartLine{},
		&entity.ChequeDetail{},

		// System entities
		&entity.Cashier{},
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData seeds the walk-in sentinel customer and, when
// configured, a default cashier and a demo catalog.
func SeedDefaultData(db *gorm.DB) error {
	log.Println("Seeding default data...")

	// Every installation needs exactly one walk-in sentinel. Anonymous
	// sales default to it and it is ineligible for credit.
	var cash entity.Customer
	if err := db.Where("walk_in = ?", true).First(&cash).Error; err != nil {
		cash = entity.Customer{Name: "Cash Customer", WalkIn: true}
		if err := db.Create(&cash).Error; err != nil {
			return fmt.Errorf("failed to seed cash customer: %w", err)
		}
		log.Println("Walk-in cash customer created")
	}

	// Default cashier account from environment, for first boot
	username := viper.GetString("CASHIER_USERNAME")
	password := viper.GetString("CASHIER_PASSWORD")
	name := viper.GetString("CASHIER_NAME")

	if username != "" && password != "" {
		var existing entity.Cashier
		if err := db.Where("username = ?", username).First(&existing).Error; err != nil {
			if name == "" {
				name = "Cashier"
			}
			cashier := entity.Cashier{Name: name, Username: username}
			if err := cashier.SetPassword(password); err != nil {
				log.Printf("Warning: failed to hash cashier password: %v", err)
			} else if err := db.Create(&cashier).Error; err != nil {
				log.Printf("Warning: failed to create default cashier: %v", err)
			} else {
				log.Printf("Default cashier created: %s", username)
			}
		} else {
			log.Printf("Default cashier already exists: %s", username)
		}
	}

	if viper.GetBool("SEED_DEMO_CATALOG") {
		if err := seedDemoCatalog(db); err != nil {
			log.Printf("Warning: failed to seed demo catalog: %v", err)
		}
	}

	log.Println("Default data seeding completed")
	return nil
}

func seedDemoCatalog(db *gorm.DB) error {
	var count int64
	if err := db.Model(&entity.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	products := []entity.Product{
		{Name: "Cola 330ml", Category: "Beverages", Barcode: "6291001001", SellingPrice: entity.Cents(1.50), CostPrice: entity.Cents(1.00), Stock: 120, Unit: "pcs"},
		{Name: "Basmati Rice 5kg", Category: "Grains", Barcode: "6291001002", SellingPrice: entity.Cents(12.00), CostPrice: entity.Cents(9.50), Stock: 40, Unit: "bag"},
		{Name: "Sunflower Oil 1L", Category: "Cooking", Barcode: "6291001003", SellingPrice: entity.Cents(4.25), CostPrice: entity.Cents(3.40), Stock: 60, Unit: "bottle"},
		{Name: "White Bread", Category: "Bakery", Barcode: "6291001004", SellingPrice: entity.Cents(0.90), CostPrice: entity.Cents(0.60), Stock: 35, Unit: "loaf"},
		{Name: "Milk 1L", Category: "Dairy", Barcode: "6291001005", SellingPrice: entity.Cents(1.20), CostPrice: entity.Cents(0.95), Stock: 80, Unit: "carton"},
	}

	for i := range products {
		if err := db.Create(&products[i]).Error; err != nil {
			return err
		}
	}
	log.Printf("Demo catalog seeded: %d products", len(products))
	return nil
}
