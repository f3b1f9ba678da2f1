package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"b2bees-backend/internal/infrastructure/storage"
	"b2bees-backend/internal/shared/middleware"
	"b2bees-backend/internal/shared/response"
	"b2bees-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()
	router.MaxMultipartMemory = int64(c.Config.Upload.MaxSizeMB+1) << 20

	currencyConfig := middleware.DefaultCurrencyMiddlewareConfig()
	currencyConfig.CountryHeaders = c.Config.Currency.CountryHeaders
	currencyConfig.CookieSecure = c.Config.Currency.CookieSecure

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(c.Config.CORS.AllowedOrigins),
		middleware.ClientIPMiddleware(),
		middleware.CurrencyMiddleware(currencyConfig),
	)

	// File upload fallback local
	router.Static(storage.PublicPrefix, c.LocalStorage.Dir())

	api := router.Group("/api")
	{
		api.GET("/health", healthCheckHandler(c))

		setupBeeRoutes(api, c)
		setupSubscriberRoutes(api, c)
		setupAnalyticsRoutes(api, c)
		setupChatRoutes(api, c)
		setupAdminRoutes(api, c)
	}

	return router
}

// ========================================
// BEE ROUTES
// ========================================
func setupBeeRoutes(api *gin.RouterGroup, c *container.Container) {
	bees := api.Group("/bees")
	{
		bees.GET("", c.BeeHandler.ListBees)
		bees.GET("/slug/:slug", c.BeeHandler.GetBeeBySlug)
	}

	protected := api.Group("/bees", middleware.AdminAuth(c.JWTManager))
	{
		protected.POST("", c.BeeHandler.CreateBee)
		protected.PUT("", c.BeeHandler.UpdateBee)
		protected.DELETE("/slug/:slug", c.BeeHandler.DeleteBeeBySlug)
		protected.DELETE("/:id", c.BeeHandler.DeleteBeeByID)
	}
}

// ========================================
// SUBSCRIBER ROUTES
// ========================================
func setupSubscriberRoutes(api *gin.RouterGroup, c *container.Container) {
	api.POST("/subscribe", c.SubscriberHandler.Subscribe)
	api.POST("/unsubscribe", c.SubscriberHandler.Unsubscribe)

	subscribers := api.Group("/subscribers", middleware.AdminAuth(c.JWTManager))
	{
		subscribers.GET("", c.SubscriberHandler.ListSubscribers)
		subscribers.GET("/export", c.SubscriberHandler.ExportSubscribers)
	}
}

// ========================================
// ANALYTICS ROUTES
// ========================================
func setupAnalyticsRoutes(api *gin.RouterGroup, c *container.Container) {
	api.POST("/analytics", c.AnalyticsHandler.Track)
	api.GET("/analytics", c.AnalyticsHandler.Summary)
}

// ========================================
// CHAT ROUTES
// ========================================
func setupChatRoutes(api *gin.RouterGroup, c *container.Container) {
	api.POST("/chat", c.ChatHandler.Chat)
}

// ========================================
// ADMIN ROUTES
// ========================================
func setupAdminRoutes(api *gin.RouterGroup, c *container.Container) {
	api.POST("/admin/login", c.AuthHandler.Login)
	api.POST("/upload", middleware.AdminAuth(c.JWTManager), c.UploadHandler.Upload)

	admin := api.Group("/admin", middleware.AdminAuth(c.JWTManager))
	{
		admin.GET("/bees", c.BeeHandler.ListAllBees)
		admin.GET("/bees/suggest-slug", c.BeeHandler.SuggestSlug)
		admin.GET("/bees/:id", c.BeeHandler.GetBeeByID)
		admin.GET("/bees/:id/form", c.BeeHandler.GetBeeForm)
		admin.POST("/bees/form", c.BeeHandler.CreateBeeFromForm)
		admin.PUT("/bees/:id/form", c.BeeHandler.UpdateBeeFromForm)

		admin.GET("/db-stats", databaseStatsHandler(c))
	}
}

// ========================================
// HEALTH CHECK HANDLER
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		// Check database
		dbStatus := "ok"
		if appCtx.DB == nil || appCtx.DB.Pool == nil {
			dbStatus = "disconnected"
			health["status"] = "degraded"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.DB.HealthCheck(ctx); err != nil {
				dbStatus = fmt.Sprintf("error: %v", err)
				health["status"] = "degraded"
			}
		}

		// Check redis
		redisStatus := "ok"
		if appCtx.RedisCache == nil {
			redisStatus = "memory"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.Cache.Ping(ctx); err != nil {
				redisStatus = fmt.Sprintf("error: %v", err)
			}
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}

// ========================================
// DATABASE STATS HANDLER
// ========================================
func databaseStatsHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := appCtx.DB.Stats()
		if err != nil {
			response.ErrorResponse(c, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "Database not connected")
			return
		}
		response.Success(c, http.StatusOK, stats)
	}
}
