package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/ewaste-kiosk-backend/internal/api/handler"
	"github.com/ewaste-kiosk-backend/internal/api/middleware"
	"github.com/ewaste-kiosk-backend/internal/auth"
	"github.com/ewaste-kiosk-backend/internal/metrics"
	"github.com/gin-gonic/gin"
)

// setupRouter configures API routes and middleware for the application
func setupRouter(
	logger *slog.Logger,
	r *gin.Engine,
	tokens *auth.TokenManager,
	authHandler *handler.AuthHandler,
	scanHandler *handler.ScanHandler,
	qrHandler *handler.QRHandler,
	rewardHandler *handler.RewardHandler,
	kioskHandler *handler.KioskHandler,
	adminHandler *handler.AdminHandler,
) {
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CorrelationID())
	r.Use(middleware.Metrics())

	// API v1 endpoints
	v1 := r.Group("/api/v1")
	{
		// Public endpoints
		authRoutes := v1.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
		}
		v1.GET("/kiosks", kioskHandler.List)
		v1.GET("/qr/:id/status", qrHandler.Status)

		// Authenticated endpoints
		authed := v1.Group("")
		authed.Use(middleware.Authenticate(tokens))
		{
			authed.GET("/auth/profile", authHandler.Profile)
			authed.POST("/scan", scanHandler.Scan)
			authed.POST("/qr/scan", scanHandler.ScanToken)
			authed.GET("/history", scanHandler.History)
			authed.GET("/stats", scanHandler.Stats)
			authed.GET("/rewards", rewardHandler.List)
			authed.POST("/redeem/:rewardId", rewardHandler.Redeem)
		}

		// Admin endpoints
		admin := v1.Group("")
		admin.Use(middleware.Authenticate(tokens), middleware.RequireAdmin())
		{
			admin.POST("/qr/generate", qrHandler.Generate)

			adminGroup := admin.Group("/admin")
			{
				adminGroup.GET("/stats", adminHandler.Stats)
				adminGroup.GET("/users", adminHandler.Users)
				adminGroup.GET("/ewaste", adminHandler.Ewaste)
				adminGroup.GET("/ewaste-summary", adminHandler.EwasteSummary)

				kiosks := adminGroup.Group("/kiosks")
				{
					kiosks.POST("", kioskHandler.Create)
					kiosks.GET("/:id", kioskHandler.GetByID)
					kiosks.PUT("/:id", kioskHandler.Update)
					kiosks.DELETE("/:id", kioskHandler.Delete)
				}
			}
		}
	}

	// Health check endpoint for monitoring
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC()})
	})

	// Prometheus scrape endpoint
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
}
