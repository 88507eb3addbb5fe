package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"orderlist/internal/application/service"
	"orderlist/internal/config"
	"orderlist/internal/infrastructure/database"
	"orderlist/internal/infrastructure/repository"
	"orderlist/internal/infrastructure/spreadsheet"
	"orderlist/internal/presentation/http/handler"
	"orderlist/internal/presentation/http/routes"
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

	// Initialize file storage for inventory uploads and order artifacts
	store, err := spreadsheet.NewStore(cfg.Storage.InventoryDir, cfg.Storage.OrderDir)
	if err != nil {
		log.Fatalf("Failed to initialize file storage: %v", err)
	}

	// Initialize repositories
	catalogRepo := repository.NewCatalogRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	// Initialize services
	catalogService := service.NewCatalogService(catalogRepo, store)
	orderService := service.NewOrderService(orderRepo, store)

	// Initialize handlers
	handlers := &routes.Handlers{
		Catalog: handler.NewCatalogHandler(catalogService, cfg.Storage.UploadMaxSize),
		Order:   handler.NewOrderHandler(orderService),
	}

	// Setup routes
	router := routes.Setup(handlers, cfg)

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
