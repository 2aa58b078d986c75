package database

import (
	"fmt"
	"log"

	"github.com/robomation/roboquote-api/internal/config"
	"github.com/robomation/roboquote-api/internal/domain/entity"
	"github.com/robomation/roboquote-api/pkg/utils"
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
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// Team and user entities
		&entity.Team{},
		&entity.User{},
		&entity.Customer{},

		// Catalog entities
		&entity.Component{},
		&entity.Assembly{},
		&entity.AssemblyComponent{},

		// Quotation entities
		&entity.QuotationProject{},
		&entity.QuotationParameters{},
		&entity.QuotationSystem{},
		&entity.QuotationItem{},

		// Settings and audit entities
		&entity.ExchangeRateSettings{},
		&entity.TeamSettings{},
		&entity.BulkOperationMarker{},
		&entity.ActivityLog{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData seeds the exchange rate row and, when configured, a
// bootstrap team with its admin user
func SeedDefaultData(db *gorm.DB, cfg *config.PricingConfig) error {
	log.Println("Seeding default data...")

	// Exchange rate row: the rates service falls back to these when reading
	// before any admin update
	var rates entity.ExchangeRateSettings
	if err := db.First(&rates, "id = ?", 1).Error; err != nil {
		rates = entity.ExchangeRateSettings{
			ID:           1,
			USDToILSRate: cfg.DefaultUSDToILS,
			EURToILSRate: cfg.DefaultEURToILS,
		}
		if err := db.Create(&rates).Error; err != nil {
			log.Printf("Warning: failed to seed exchange rates: %v", err)
		}
	}

	// Bootstrap team and admin user if configured via environment variables
	adminEmail := viper.GetString("ADMIN_EMAIL")
	adminPassword := viper.GetString("ADMIN_PASSWORD")
	teamName := viper.GetString("ADMIN_TEAM_NAME")

	if adminEmail != "" && adminPassword != "" {
		var existingAdmin entity.User
		if err := db.Where("email = ?", adminEmail).First(&existingAdmin).Error; err == nil {
			log.Printf("Admin user already exists: %s", adminEmail)
			log.Println("Default data seeding completed")
			return nil
		}

		if teamName == "" {
			teamName = "Default Team"
		}

		team := entity.Team{Name: teamName, Slug: utils.Slugify(teamName)}
		if err := db.Where("slug = ?", team.Slug).First(&team).Error; err != nil {
			if err := db.Create(&team).Error; err != nil {
				log.Printf("Warning: failed to create bootstrap team: %v", err)
				return nil
			}
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("Warning: failed to hash admin password: %v", err)
			return nil
		}

		adminUser := entity.User{
			TeamID:    team.ID,
			FirstName: "Admin",
			Email:     adminEmail,
			Password:  string(hashedPassword),
			Role:      entity.RoleAdmin,
		}
		if err := db.Create(&adminUser).Error; err != nil {
			log.Printf("Warning: failed to create admin user: %v", err)
		} else {
			log.Printf("Admin user created: %s", adminEmail)
		}
	}

	log.Println("Default data seeding completed")
	return nil
}
