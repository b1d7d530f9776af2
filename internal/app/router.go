package app

import (
	"github.com/guttosm/lru-webserver/config"
	"github.com/guttosm/lru-webserver/internal/http"
	"github.com/guttosm/lru-webserver/internal/middleware"
)

// RouterComponents holds router-related components.
type RouterComponents struct {
	Handler       *http.Handler
	HealthHandler *http.HealthHandler
	Config        http.RouterConfig
	RateLimiter   *middleware.RateLimiter
}

// InitializeRouter builds the handlers and router configuration. db may be nil.
func InitializeRouter(services *ServiceComponents, db *DatabaseComponents, cfg config.Config) *RouterComponents {
	routerCfg := http.RouterConfig{
		CORSOrigins:    cfg.Server.CORSOrigins,
		RequestTimeout: cfg.Server.RequestTimeout,
	}
	handlerOpts := []http.HandlerOption{http.WithMaxUploadBytes(cfg.Files.MaxUploadBytes)}
	healthHandler := http.NewHealthHandler()

	if db != nil {
		// Assigned only when non-nil so the interface never holds a nil pointer.
		if db.AsyncLogger != nil {
			routerCfg.LogSink = db.AsyncLogger
			handlerOpts = append(handlerOpts, http.WithAuditSink(db.AsyncLogger))
		}
		routerCfg.Logs = http.NewLogsHandler(db.LoggingService)
		healthHandler.RegisterChecker("mongodb", http.HealthCheckFunc(db.DB.HealthCheck))
		healthHandler.RegisterCircuitBreaker("mongodb_logs", db.LogsCircuitBreaker)
	}

	var limiter *middleware.RateLimiter
	if cfg.Server.RateLimit > 0 {
		limiter = middleware.NewRateLimiter(cfg.Server.RateLimit, cfg.Server.RateWindow)
		routerCfg.RateLimiter = limiter
	}

	return &RouterComponents{
		Handler:       http.NewHandler(services.Files, handlerOpts...),
		HealthHandler: healthHandler,
		Config:        routerCfg,
		RateLimiter:   limiter,
	}
}
