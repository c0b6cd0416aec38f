package database

import (
	"fmt"
	"log"

	"github.com/sergiuconi/casier-api/internal/config"
	"github.com/sergiuconi/casier-api/internal/domain/entity"
	"github.com/sergiuconi/casier-api/internal/domain/enum"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
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

	// A register keeps few connections; the pool is sized for the store
	// backend serving every casa, not for a public API.
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(25)

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

		// Register entities
		&entity.Operator{},
		&entity.Receipt{},
		&entity.CartSnapshot{},

		// System entities
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData seeds the walk-in customer, the admin operator and a
// small demo catalog.
func SeedDefaultData(db *gorm.DB) error {
	log.Println("Seeding default data...")

	// The walk-in customer every cart starts with.
	var anonymous entity.Customer
	if err := db.Where("anonymous = ?", true).First(&anonymous).Error; err != nil {
		name := "Persoana fizica"
		anonymous = entity.Customer{
			Type:      enum.CustomerIndividual,
			LastName:  &name,
			Anonymous: true,
		}
		if err := db.Create(&anonymous).Error; err != nil {
			log.Printf("Warning: failed to seed walk-in customer: %v", err)
		}
	}

	// Admin operator, when configured via environment variables.
	adminUsername := viper.GetString("ADMIN_USERNAME")
	adminPassword := viper.GetString("ADMIN_PASSWORD")
	if adminUsername != "" && adminPassword != "" {
		var existing entity.Operator
		if err := db.Where("username = ?", adminUsername).First(&existing).Error; err != nil {
			hashed, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
			if err != nil {
				log.Printf("Warning: failed to hash admin password: %v", err)
			} else {
				admin := entity.Operator{
					FirstName: "Admin",
					LastName:  "Admin",
					Username:  adminUsername,
					Password:  string(hashed),
					Role:      "manager",
					Active:    true,
				}
				if err := db.Create(&admin).Error; err != nil {
					log.Printf("Warning: failed to create admin operator: %v", err)
				} else {
					log.Printf("Admin operator created: %s", adminUsername)
				}
			}
		}
	}

	// Demo catalog for fresh installs, including SGR-bearing products.
	if viper.GetBool("SEED_DEMO_CATALOG") {
		seedDemoCatalog(db)
	}

	log.Println("Default data seeding completed")
	return nil
}

func seedDemoCatalog(db *gorm.DB) {
	demo := []struct {
		upc   string
		name  string
		price float64
		vat   float64
		sgr   enum.SGRCategory
	}{
		{"5941234567890", "Apa plata 0.5L", 3.5, 9, enum.SGRPet},
		{"5941234567891", "Apa minerala 0.5L", 4, 9, enum.SGRPet},
		{"5941234567892", "Bere blonda 0.33L", 5.5, 19, enum.SGRGlass},
		{"5941234567893", "Suc portocale doza", 6, 19, enum.SGRCan},
		{"5941234567894", "Paine alba", 4.2, 9, enum.SGRNone},
		{"5941234567895", "Lapte 1L", 8.9, 9, enum.SGRNone},
	}

	for _, d := range demo {
		var existing entity.Product
		if err := db.Where("upc = ?", d.upc).First(&existing).Error; err == nil {
			continue
		}
		product := entity.Product{
			UPC:     d.upc,
			Name:    d.name,
			VATRate: d.vat,
			SGR:     d.sgr,
		}
		product.SetPriceFromDecimal(d.price)
		if err := db.Create(&product).Error; err != nil {
			log.Printf("Warning: failed to seed product %s: %v", d.upc, err)
		}
	}
}
