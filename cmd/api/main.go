package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/sergiuconi/casier-api/internal/application/service"
	"github.com/sergiuconi/casier-api/internal/config"
	"github.com/sergiuconi/casier-api/internal/infrastructure/cache"
	"github.com/sergiuconi/casier-api/internal/infrastructure/database"
	"github.com/sergiuconi/casier-api/internal/infrastructure/repository"
	"github.com/sergiuconi/casier-api/internal/infrastructure/settlement"
	"github.com/sergiuconi/casier-api/internal/presentation/http/handler"
	"github.com/sergiuconi/casier-api/internal/presentation/http/routes"
	"github.com/sergiuconi/casier-api/pkg/metrics"
	"github.com/sergiuconi/casier-api/pkg/printer"
	"github.com/sergiuconi/casier-api/pkg/utils"
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
	operatorRepo := repository.NewOperatorRepository(db)
	receiptRepo := repository.NewReceiptRepository(db)
	snapshotStore := repository.NewSnapshotRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Redis scan-code cache. The register works without it, every scan
	// just hits Postgres.
	var productCache service.ProductCache
	if rdb, err := cache.NewRedisClient(&cfg.Redis); err != nil {
		log.Printf("Warning: Redis unavailable, scan cache disabled: %v", err)
	} else {
		productCache = cache.NewProductCache(rdb, cfg.Redis.ProductTTL)
	}

	// Initialize services
	authService := service.NewAuthService(operatorRepo, jwtManager)
	productService := service.NewProductService(productRepo, productCache)
	customerService := service.NewCustomerService(customerRepo)
	receiptService := service.NewReceiptService(receiptRepo)

	// Initialize thermal printer
	thermalPrinter, err := printer.NewPrinterFromConfig(
		cfg.Printer.Type,
		cfg.Printer.USBPath,
		cfg.Printer.Address,
	)
	if err != nil {
		log.Printf("Warning: Failed to initialize printer: %v", err)
		thermalPrinter = printer.NewNullPrinter()
	}
	printerService := service.NewPrinterService(thermalPrinter, service.BonHeader{
		StoreName: cfg.Store.Name,
		Address:   cfg.Store.Address,
		CodFiscal: cfg.Store.CodFiscal,
	}, cfg.Printer.Type)

	// Settlement gateway for card and modern payments. Without one,
	// those tenders complete locally like cash.
	var settlementClient service.SettlementClient
	var sgrReporter service.SGRReporter
	if cfg.Settlement.BaseURL != "" {
		client := settlement.NewClient(cfg.Settlement.BaseURL)
		settlementClient = client
		sgrReporter = client
	}

	defaultCustomer := customerService.DefaultCustomer(context.Background())
	cartService := service.NewCartService(service.CartServiceConfig{
		Products:        productService,
		Customers:       customerService,
		Snapshots:       snapshotStore,
		Receipts:        receiptRepo,
		Settlement:      settlementClient,
		SGR:             sgrReporter,
		DefaultCustomer: &defaultCustomer,
		PollInterval:    cfg.Settlement.PollInterval,
		PollTimeout:     cfg.Settlement.PollTimeout,
	})

	registerMetrics := metrics.NewRegisterMetrics()

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Cart:     handler.NewCartHandler(cartService, printerService, registerMetrics, cfg.Store.Casa),
		Product:  handler.NewProductHandler(productService),
		Customer: handler.NewCustomerHandler(customerService),
		Receipt:  handler.NewReceiptHandler(receiptService),
		Printer:  handler.NewPrinterHandler(printerService, receiptService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		Metrics:         registerMetrics,
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
