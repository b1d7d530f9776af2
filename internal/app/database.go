package app

import (
	"context"
	"time"

	"github.com/guttosm/lru-webserver/config"
	"github.com/guttosm/lru-webserver/internal/circuitbreaker"
	"github.com/guttosm/lru-webserver/internal/middleware"
	"github.com/guttosm/lru-webserver/internal/repository"
	"github.com/guttosm/lru-webserver/internal/service"
	"github.com/rs/zerolog/log"
)

const setupTimeout = 5 * time.Second

// DatabaseComponents holds the optional MongoDB access-log stack.
type DatabaseComponents struct {
	DB                 *repository.MongoDB
	LoggingService     service.LoggingService
	LogsCircuitBreaker *circuitbreaker.CircuitBreaker
	AsyncLogger        *middleware.AsyncLogger
}

// InitializeDatabase connects to MongoDB and builds the access-log stack.
// It returns nil when the database is disabled or unreachable; the web
// server runs without a persistent access log in that case.
func InitializeDatabase(cfg config.DatabaseConfig) *DatabaseComponents {
	if !cfg.Enabled {
		return nil
	}

	db, err := repository.NewMongoDB(cfg.URI, cfg.DatabaseName)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to MongoDB - continuing without access log")
		return nil
	}
	log.Info().Str("database", cfg.DatabaseName).Msg("Connected to MongoDB")

	ctx, cancel := context.WithTimeout(context.Background(), setupTimeout)
	defer cancel()
	if err := db.SetLogsTTL(ctx, cfg.LogsTTL); err != nil {
		log.Warn().Err(err).Msg("Failed to set logs TTL index")
	}

	logsCB := circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: cfg.CircuitBreakerFailureThreshold,
		SuccessThreshold: cfg.CircuitBreakerSuccessThreshold,
		Timeout:          cfg.CircuitBreakerTimeout,
		Name:             "mongodb-logs",
	})

	logsRepo := repository.NewLogsRepositoryWithCircuitBreaker(repository.NewLogsRepository(db), logsCB)
	loggingService := service.NewLoggingService(logsRepo)

	return &DatabaseComponents{
		DB:                 db,
		LoggingService:     loggingService,
		LogsCircuitBreaker: logsCB,
		AsyncLogger:        middleware.NewAsyncLogger(loggingService, middleware.DefaultAsyncLoggerConfig()),
	}
}

// Close flushes queued access-log entries and disconnects.
func (d *DatabaseComponents) Close(ctx context.Context) error {
	if d == nil {
		return nil
	}
	if d.AsyncLogger != nil {
		d.AsyncLogger.Stop()
		stats := d.AsyncLogger.Stats()
		log.Info().
			Int64("written", stats.Written).
			Int64("dropped", stats.Dropped).
			Int64("failed", stats.Failed).
			Msg("Access log flushed")
	}
	return d.DB.Close(ctx)
}
