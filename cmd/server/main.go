package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dreamshops/catalog/app/catalog"
	"github.com/dreamshops/catalog/app/categories"
	"github.com/dreamshops/catalog/app/config"
	"github.com/dreamshops/catalog/app/database"
	"github.com/dreamshops/catalog/app/server"
	"github.com/dreamshops/catalog/models"
	"github.com/gin-gonic/gin"
)

func main() {
	logger := config.NewLogger("info")

	cfg, err := config.Load(logger)
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}
	logger = config.NewLogger(cfg.LogLevel)
	logger.Info("Starting Catalog Service...")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logger.Errorf("Error closing database connection: %v", err)
		} else {
			logger.Info("Database connection closed.")
		}
	}()

	// --- Dependency Injection ---
	categoriesRepo := models.NewCategoriesRepository(db)
	productsRepo := models.NewProductsRepository(db)
	transactor := models.NewTransactor(db)
	logger.Info("Repositories initialized.")

	categoryService := categories.NewCategoryService(categoriesRepo, logger)
	productService := catalog.NewProductService(productsRepo, categoriesRepo, transactor, logger)
	logger.Info("Services initialized.")

	gin.SetMode(gin.ReleaseMode)
	router := server.NewRouter(logger,
		categories.NewCategoryHandler(categoryService, logger),
		catalog.NewCatalogHandler(productService, logger),
	)
	logger.Info("Routes registered.")

	if err := server.Run(ctx, cfg.HTTPAddr, router, cfg.ShutdownTimeout, logger); err != nil {
		logger.Errorf("Server exited with error: %v", err)
		stop()
		os.Exit(1)
	}
	logger.Info("Catalog Service shut down gracefully.")
}
