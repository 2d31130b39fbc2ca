// Package main is the entry point for the FoodFinder API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"foodfinder/internal/core/tx"
	"foodfinder/internal/domain/catalog"
	"foodfinder/internal/domain/profile"
	"foodfinder/internal/domain/search"
	v1 "foodfinder/internal/infrastructure/http/v1"
	"foodfinder/internal/infrastructure/http/v1/handlers"
	"foodfinder/internal/infrastructure/storage/memory"
	"foodfinder/internal/infrastructure/storage/postgres"
	"foodfinder/internal/infrastructure/storage/postgres/catalog_repo"
	"foodfinder/internal/infrastructure/storage/postgres/profile_repo"
	"foodfinder/pkg/logger"
)

const version = "1.0.0"

func main() {
	// Local development convenience; missing file is fine.
	_ = godotenv.Load()

	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting foodfinder server")

	var (
		catalogStore catalog.Store
		adminRepo    catalog.AdminRepository
		userRepo     profile.Repository
		txManager    tx.Manager
		auditor      catalog.Auditor
		auditReader  catalog.AuditReader
		pinger       handlers.Pinger
	)

	dsn := getEnv("DATABASE_URL", "")
	if dsn != "" {
		pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dsn))
		if err != nil {
			log.Fatalw("failed to connect to database", "error", err)
		}
		defer pool.Close()
		log.Info("database connection established")

		txm := postgres.NewTxManager(pool)
		repo := catalog_repo.NewRepository(txm)

		auditSvc, err := postgres.NewAuditService(txm)
		if err != nil {
			log.Fatalw("failed to initialize audit service", "error", err)
		}

		catalogStore = repo
		adminRepo = repo
		userRepo = profile_repo.NewRepository(txm)
		txManager = txm
		auditor = auditSvc
		auditReader = auditSvc
		pinger = pool
	} else {
		// Demo mode: everything in memory, no persistence.
		log.Warn("DATABASE_URL not set, running with the in-memory catalog")
		store := memory.NewCatalogStore()
		catalogStore = store
		adminRepo = store
		userRepo = memory.NewUserRepository()
		txManager = memory.NewTxManager()
		auditLog := memory.NewAuditLog()
		auditor = auditLog
		auditReader = auditLog
	}

	jwtSecret := getEnv("JWT_SECRET", "your-secret-key-change-in-production")
	jwtService := profile.NewJWTService(profile.DefaultJWTConfig(jwtSecret))
	profileService := profile.NewService(userRepo, txManager, jwtService, profile.DefaultServiceConfig())

	adminService := catalog.NewAdminService(adminRepo, txManager, auditor)

	registry, err := search.NewRegistry(catalogStore, getEnvInt("SESSION_CACHE_SIZE", search.DefaultRegistrySize))
	if err != nil {
		log.Fatalw("failed to initialize session registry", "error", err)
	}

	router := v1.NewRouter(v1.RouterConfig{
		Logger:          log,
		JWTValidator:    jwtService,
		ProfileService:  profileService,
		SessionRegistry: registry,
		AdminService:    adminService,
		AuditReader:     auditReader,
		Pinger:          pinger,
		Version:         version,
	})

	port := getEnv("APP_PORT", "8080")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}
