package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yungbote/shopbot-backend/internal/handlers"
	"github.com/yungbote/shopbot-backend/internal/middleware"
	"github.com/yungbote/shopbot-backend/internal/platform/logger"
)

type RouterConfig struct {
	WebhookHandler *handlers.WebhookHandler
	OAuthHandler   *handlers.OAuthHandler
	Log            *logger.Logger
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.RequestLog(cfg.Log))

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "X-Requested-With"},
		AllowCredentials: false,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	// Bot platform entry point
	router.POST("/webhook", cfg.WebhookHandler.Handle)

	// OAuth leg
	router.GET("/oauth", cfg.OAuthHandler.Callback)
	router.GET("/auth_url", cfg.OAuthHandler.AuthURL)

	return router
}
