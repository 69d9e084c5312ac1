package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"showroom/internal/auth"
	"showroom/internal/cache"
	"showroom/internal/config"
	"showroom/internal/handler"
	"showroom/internal/middleware"
	"showroom/internal/presets"
	"showroom/internal/repository/postgres"
	serviceCatalog "showroom/internal/service/catalog"
	s3store "showroom/internal/storage/s3"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// JWT verifier for Supabase authentication
	jwtVerifier, err := auth.NewJWTVerifier(cfg.SupabaseJWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer jwtVerifier.Close()

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.SupabaseDBURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected")

	tables := postgres.NewTableNames(cfg.TablePrefix)
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	folderRepo := postgres.NewFolderRepository(repoConfig)
	productRepo := postgres.NewProductRepository(repoConfig)
	configRepo := postgres.NewConfigurationRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	// Blob storage for GLB assets
	blobStore, err := s3store.NewStore(ctx, cfg.AssetBucket, cfg.AssetURLPrefix, logger)
	if err != nil {
		log.Fatalf("Failed to create blob store: %v", err)
	}

	// Scene preset registry (embedded)
	presetRegistry, err := presets.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to load scene presets: %v", err)
	}

	// Query cache and mutation dispatcher
	queries := cache.NewQueryCache()
	dispatcher := cache.NewDispatcher(queries, &cache.LogNotifier{Logger: logger}, logger)

	// Services
	productService := serviceCatalog.NewProductService(productRepo, configRepo, folderRepo, blobStore, dispatcher, queries, logger)
	folderService := serviceCatalog.NewFolderService(folderRepo, productService, txManager, dispatcher, queries, logger)
	configService := serviceCatalog.NewConfigurationService(configRepo, productRepo, dispatcher, queries, logger)
	treeService := serviceCatalog.NewTreeService(folderRepo, productRepo, queries, logger)
	bulkService := serviceCatalog.NewBulkService(folderService, productService, configService, folderRepo, cfg.ViewerBaseURL, logger)

	// Handlers
	folderHandler := handler.NewFolderHandler(folderService, logger)
	productHandler := handler.NewProductHandler(productService, logger)
	configHandler := handler.NewConfigurationHandler(configService, logger)
	viewHandler := handler.NewViewHandler(treeService, folderService, productService, folderRepo, logger)
	bulkHandler := handler.NewBulkHandler(bulkService, logger)
	shareHandler := handler.NewShareHandler(configService, logger)
	uploadHandler := handler.NewUploadHandler(blobStore, logger)
	presetHandler := handler.NewPresetHandler(presetRegistry, logger)

	logger.Info("services initialized")

	// HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", handler.Health)

	// Public routes (no session)
	mux.HandleFunc("GET /api/presets", presetHandler.ListPresets)
	mux.HandleFunc("GET /api/presets/{id}", presetHandler.GetPreset)
	mux.HandleFunc("GET /api/shared/{token}", shareHandler.ResolveToken)

	// Folder view
	mux.HandleFunc("GET /api/view", viewHandler.GetView)
	mux.HandleFunc("POST /api/view/drag", viewHandler.Drag)

	// Folder routes
	mux.HandleFunc("POST /api/folders", folderHandler.CreateFolder)
	mux.HandleFunc("GET /api/folders/{id}", folderHandler.GetFolder)
	mux.HandleFunc("PATCH /api/folders/{id}", folderHandler.UpdateFolder)
	mux.HandleFunc("DELETE /api/folders/{id}", folderHandler.DeleteFolder)
	mux.HandleFunc("GET /api/folders/{id}/breadcrumb", viewHandler.GetBreadcrumb)

	// Product routes
	mux.HandleFunc("POST /api/products", productHandler.CreateProduct)
	mux.HandleFunc("POST /api/products/upload", uploadHandler.Upload)
	mux.HandleFunc("GET /api/products", productHandler.ListProducts)
	mux.HandleFunc("GET /api/products/{id}", productHandler.GetProduct)
	mux.HandleFunc("PATCH /api/products/{id}", productHandler.UpdateProduct)
	mux.HandleFunc("DELETE /api/products/{id}", productHandler.DeleteProduct)

	// Configuration routes
	mux.HandleFunc("POST /api/configurations", configHandler.CreateConfiguration)
	mux.HandleFunc("GET /api/configurations", configHandler.ListConfigurations)
	mux.HandleFunc("GET /api/configurations/{id}", configHandler.GetConfiguration)
	mux.HandleFunc("PATCH /api/configurations/{id}", configHandler.UpdateConfiguration)
	mux.HandleFunc("DELETE /api/configurations/{id}", configHandler.DeleteConfiguration)
	mux.HandleFunc("POST /api/configurations/{id}/duplicate", configHandler.DuplicateConfiguration)
	mux.HandleFunc("PUT /api/configurations/{id}/visibility", configHandler.SetVisibility)

	// Bulk routes
	mux.HandleFunc("POST /api/bulk/move", bulkHandler.BulkMove)
	mux.HandleFunc("POST /api/bulk/delete", bulkHandler.BulkDelete)
	mux.HandleFunc("POST /api/bulk/share", bulkHandler.BulkShare)

	// Build middleware chain
	// Order: CORS → Recovery → Auth → Routes
	var root http.Handler = mux
	root = middleware.AuthMiddleware(jwtVerifier)(root)
	root = middleware.Recovery(logger)(root)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	root = corsHandler.Handler(root)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
