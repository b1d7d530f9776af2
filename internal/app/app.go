// Package app wires configuration, the cache, storage and the HTTP layer
// into a runnable web server.
package app

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/lru-webserver/config"
	"github.com/guttosm/lru-webserver/internal/http"
)

// App is a fully wired web server. Close releases everything it owns.
type App struct {
	Router   *gin.Engine
	services *ServiceComponents
	db       *DatabaseComponents
	router   *RouterComponents
}

// InitializeApp creates and wires all application dependencies.
func InitializeApp(cfg config.Config) (*App, error) {
	InitializeLogger(cfg.Log)

	services, err := InitializeServices(cfg.Cache, cfg.Files)
	if err != nil {
		return nil, err
	}
	db := InitializeDatabase(cfg.Database)
	routerComponents := InitializeRouter(services, db, cfg)

	return &App{
		Router:   http.NewRouter(routerComponents.Handler, routerComponents.HealthHandler, routerComponents.Config),
		services: services,
		db:       db,
		router:   routerComponents,
	}, nil
}

// Close stops the rate limiter, flushes the access log, disconnects from
// MongoDB and destroys the cache. Call it after the server has stopped.
func (a *App) Close(ctx context.Context) error {
	if a.router.RateLimiter != nil {
		a.router.RateLimiter.Stop()
	}
	err := a.db.Close(ctx)
	a.services.Cache.Destroy()
	return err
}
