// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"foodfinder/internal/domain/catalog"
	"foodfinder/internal/domain/profile"
	"foodfinder/internal/domain/search"
	"foodfinder/internal/infrastructure/http/v1/handlers"
	"foodfinder/internal/infrastructure/http/v1/middleware"
	"foodfinder/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	Logger *logger.Logger

	// JWTValidator validates access tokens.
	JWTValidator middleware.JWTValidator

	// ProfileService serves accounts and preferences.
	ProfileService *profile.Service

	// SessionRegistry holds live narrowing sessions.
	SessionRegistry *search.Registry

	// AdminService mutates the catalog.
	AdminService *catalog.AdminService

	// AuditReader serves the audit trail of catalog entities; nil
	// disables the history endpoint.
	AuditReader catalog.AuditReader

	// Pinger checks backend readiness; nil disables the check.
	Pinger handlers.Pinger

	// Version is reported by the info endpoint.
	Version string
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	healthHandler := handlers.NewHealthHandler(cfg.Pinger, cfg.Version)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	api := router.Group("/api/v1")

	authHandler := handlers.NewAuthHandler(cfg.ProfileService)
	auth := api.Group("/auth")
	{
		auth.POST("/signup", authHandler.SignUp)
		auth.POST("/login", authHandler.Login)

		authed := auth.Group("")
		authed.Use(middleware.Auth(cfg.JWTValidator))
		authed.GET("/me", authHandler.Me)
		authed.GET("/preferences", authHandler.GetPreferences)
		authed.PUT("/preferences", authHandler.SavePreferences)
	}

	// Narrowing sessions work anonymously; a token unlocks saved
	// preferences.
	searchHandler := handlers.NewSearchHandler(cfg.SessionRegistry, cfg.ProfileService)
	sessions := api.Group("/search/sessions")
	sessions.Use(middleware.OptionalAuth(cfg.JWTValidator))
	{
		sessions.POST("", searchHandler.CreateSession)
		sessions.GET("/:sid", searchHandler.State)
		sessions.DELETE("/:sid", searchHandler.DeleteSession)
		sessions.POST("/:sid/filter", searchHandler.SetFilter)
		sessions.POST("/:sid/toggle", searchHandler.Toggle)
		sessions.POST("/:sid/page", searchHandler.Page)
		sessions.POST("/:sid/confirm", searchHandler.Confirm)
		sessions.POST("/:sid/back", searchHandler.Back)
		sessions.POST("/:sid/jump", searchHandler.Jump)
		sessions.POST("/:sid/restart", searchHandler.Restart)
		sessions.GET("/:sid/results", searchHandler.Results)
	}

	adminHandler := handlers.NewAdminHandler(cfg.AdminService, cfg.AuditReader)
	admin := api.Group("/admin")
	admin.Use(middleware.Auth(cfg.JWTValidator))
	admin.Use(middleware.RequireAdmin())
	{
		admin.POST("/restaurants", adminHandler.CreateRestaurant)
		admin.GET("/restaurants", adminHandler.ListRestaurants)
		admin.GET("/restaurants/:id", adminHandler.GetRestaurant)
		admin.DELETE("/restaurants/:id", adminHandler.DeleteRestaurant)
		admin.POST("/restaurants/:id/menus", adminHandler.CreateMenu)
		admin.GET("/restaurants/:id/menus", adminHandler.ListMenus)
		admin.DELETE("/menus/:id", adminHandler.DeleteMenu)
		admin.POST("/menus/:id/items", adminHandler.CreateItem)
		admin.GET("/menus/:id/items", adminHandler.ListItems)
		admin.DELETE("/items/:id", adminHandler.DeleteItem)
		admin.GET("/audit/:entity/:id", adminHandler.EntityHistory)
	}

	return router
}
