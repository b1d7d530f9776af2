package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/guttosm/lru-webserver/internal/metrics"
	"github.com/guttosm/lru-webserver/internal/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterConfig holds router configuration options.
type RouterConfig struct {
	CORSOrigins    []string
	RequestTimeout time.Duration
	// RateLimiter is optional; the caller owns it and stops it on shutdown.
	RateLimiter *middleware.RateLimiter
	// LogSink receives one access-log entry per request when non-nil.
	LogSink middleware.LogSink
	// Logs registers GET /logs when non-nil.
	Logs *LogsHandler
}

// DefaultRouterConfig returns the default router configuration.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		RequestTimeout: 30 * time.Second,
	}
}

// NewRouter creates the gin engine. Registered routes are matched first;
// every other path reaches the file handler.
func NewRouter(handler *Handler, healthHandler *HealthHandler, cfg RouterConfig) *gin.Engine {
	router := gin.New()

	configureGlobalMiddleware(router, &cfg)
	registerInfrastructureRoutes(router, healthHandler)

	root := &router.RouterGroup
	handler.RegisterRoutes(root)
	if cfg.Logs != nil {
		cfg.Logs.RegisterRoutes(root)
	}
	router.NoRoute(handler.Dispatch)

	return router
}

// configureGlobalMiddleware sets up middleware applied to all routes.
func configureGlobalMiddleware(router *gin.Engine, cfg *RouterConfig) {
	allowedOrigins := cfg.CORSOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodHead, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept-Encoding", "Accept-Language", "Cache-Control", "X-Requested-With", middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader, CacheHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		metrics.PrometheusMiddleware(),
		middleware.Compression(),
		middleware.RequestLogger(cfg.LogSink),
		middleware.ErrorHandler(),
		middleware.Timeout(cfg.RequestTimeout),
	)

	if cfg.RateLimiter != nil {
		router.Use(cfg.RateLimiter.RateLimit())
	}
}

// registerInfrastructureRoutes registers health and metrics routes.
func registerInfrastructureRoutes(router *gin.Engine, healthHandler *HealthHandler) {
	if healthHandler != nil {
		healthHandler.RegisterRoutes(&router.RouterGroup)
	}
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
