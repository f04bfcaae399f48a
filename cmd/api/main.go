package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/yasserh/sultan-pos/internal/application/service"
	"github.com/yasserh/sultan-pos/internal/config"
	"github.com/yasserh/sultan-pos/internal/domain/entity"
	"github.com/yasserh/sultan-pos/internal/infrastructure/database"
	"github.com/yasserh/sultan-pos/internal/infrastructure/repository"
	"github.com/yasserh/sultan-pos/internal/presentation/http/handler"
	"github.com/yasserh/sultan-pos/internal/presentation/http/routes"
	"github.com/yasserh/sultan-pos/pkg/printer"
	"github.com/yasserh/sultan-pos/pkg/utils"
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
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	productRepo := repository.NewProductRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	cashierRepo := repository.NewCashierRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize thermal printer
	thermalPrinter, err := printer.Open(printer.Config{
		Mode:       cfg.Printer.Mode,
		DevicePath: cfg.Printer.DevicePath,
		Address:    cfg.Printer.Address,
	})
	if err != nil {
		log.Printf("Warning: Failed to initialize printer: %v", err)
		thermalPrinter = printer.Discard
	}

	// Initialize services
	authService := service.NewAuthService(cashierRepo, jwtManager)
	catalogService := service.NewCatalogService(productRepo, customerRepo)
	checkoutService := service.NewCheckoutService(customerRepo, saleRepo, cfg.POS.TaxRate, cfg.POS.InvoicePrefix)
	saleService := service.NewSaleService(saleRepo)
	receiptService := service.NewReceiptService(saleRepo, thermalPrinter, entity.ReceiptHeader{
		StoreName: cfg.Store.Name,
		Address:   cfg.Store.Address,
		Phone:     cfg.Store.Phone,
		TaxID:     cfg.Store.TaxID,
	}, cfg.POS.Currency, cfg.Printer.Width)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		Catalog: handler.NewCatalogHandler(catalogService),
		POS:     handler.NewPOSHandler(checkoutService, catalogService, receiptService),
		Sale:    handler.NewSaleHandler(saleService),
		Printer: handler.NewPrinterHandler(receiptService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
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
		os.Exit(1)
	}
}
