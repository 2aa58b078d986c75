package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/robomation/roboquote-api/internal/application/service"
	"github.com/robomation/roboquote-api/internal/config"
	"github.com/robomation/roboquote-api/internal/infrastructure/database"
	"github.com/robomation/roboquote-api/internal/infrastructure/repository"
	"github.com/robomation/roboquote-api/internal/presentation/http/handler"
	"github.com/robomation/roboquote-api/internal/presentation/http/routes"
	"github.com/robomation/roboquote-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db, &cfg.Pricing); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	teamRepo := repository.NewTeamRepository(db)
	userRepo := repository.NewUserRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	componentRepo := repository.NewComponentRepository(db)
	assemblyRepo := repository.NewAssemblyRepository(db)
	quotationRepo := repository.NewQuotationRepository(db)
	systemRepo := repository.NewQuotationSystemRepository(db)
	itemRepo := repository.NewQuotationItemRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	bulkRepo := repository.NewBulkOperationRepository(db)
	activityRepo := repository.NewActivityLogRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, teamRepo, jwtManager)
	ratesService := service.NewRatesService(settingsRepo)
	bulkService := service.NewBulkOperationService(bulkRepo, cfg.Pricing.BulkMarkerTTL)
	activityService := service.NewActivityService(activityRepo, bulkRepo)
	componentService := service.NewComponentService(componentRepo, ratesService, bulkService, activityService)
	assemblyService := service.NewAssemblyService(assemblyRepo, componentRepo, activityService)
	customerService := service.NewCustomerService(customerRepo, activityService)
	settingsService := service.NewSettingsService(settingsRepo)
	quotationService := service.NewQuotationService(
		quotationRepo,
		systemRepo,
		itemRepo,
		componentRepo,
		customerRepo,
		settingsRepo,
		ratesService,
		activityService,
	)
	exportService := service.NewExportService(quotationRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Quotation: handler.NewQuotationHandler(quotationService, exportService),
		Component: handler.NewComponentHandler(componentService),
		Assembly:  handler.NewAssemblyHandler(assemblyService),
		Customer:  handler.NewCustomerHandler(customerService),
		Settings:  handler.NewSettingsHandler(ratesService, settingsService, bulkService, activityService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager: jwtManager,
		Cfg:        cfg,
		TeamRepo:   teamRepo,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
