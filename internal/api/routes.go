package api

import (
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/breakshot/backend/internal/api/handlers"
	"github.com/breakshot/backend/internal/config"
	"github.com/breakshot/backend/internal/middleware"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, db *sqlx.DB, rdb *redis.Client, cfg *config.Config) {
	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.WebSocketCORSCheck(cfg))

	// API v1 group
	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", handlers.HealthCheck)

		v1.GET("/leaderboard", handlers.GetLeaderboard)

		// Session endpoints
		session := v1.Group("/session")
		{
			session.POST("", handlers.CreateSession(cfg))
			session.GET("/:token", handlers.GetSessionState)
			session.GET("/:token/ws", handlers.HandleSessionWebSocket(cfg))
		}

		// Admin endpoints
		adminGroup := v1.Group("/admin")
		adminGroup.Use(handlers.AdminAuth(db))
		{
			adminGroup.GET("/sessions", handlers.AdminListSessions(db))
			adminGroup.DELETE("/leaderboard", handlers.AdminResetLeaderboard(db))
		}
	}
}
