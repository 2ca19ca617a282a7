package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/rogerjs93/health-entry-engine/internal/adapters/handler/http/middleware"
	"github.com/rogerjs93/health-entry-engine/internal/core/domain"
	"github.com/rogerjs93/health-entry-engine/internal/core/services"
)

type RouterDependencies struct {
	FormHandler   *FormHandler
	UploadHandler *UploadHandler
	Notices       *services.NoticeService
	Gateway       domain.HealthDataGateway
	Redis         *redis.Client
	Logger        *zap.Logger
	RateLimit     int
	RateWindow    time.Duration
	StartTime     time.Time
}

func NewRouter(deps RouterDependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	if deps.Redis != nil {
		router.Use(middleware.RateLimiter(deps.Redis, deps.Logger, deps.RateLimit, deps.RateWindow))
	}

	router.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		upstreamStatus := "connected"
		statusCode := http.StatusOK
		if err := deps.Gateway.Ping(ctx); err != nil {
			upstreamStatus = "unreachable"
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, gin.H{
			"status":   "ok",
			"upstream": upstreamStatus,
			"uptime":   time.Since(deps.StartTime).String(),
		})
	})

	apiV1 := router.Group("/api/v1")

	deps.FormHandler.RegisterRoutes(apiV1)
	deps.UploadHandler.RegisterRoutes(apiV1)

	apiV1.GET("/notices", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"notices":   deps.Notices.Active(),
			"timestamp": time.Now().UTC(),
		})
	})

	return router
}
