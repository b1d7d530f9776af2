package app

import (
	"github.com/guttosm/lru-webserver/config"
	"github.com/guttosm/lru-webserver/internal/logger"
)

// InitializeLogger configures the global zerolog logger.
func InitializeLogger(cfg config.LogConfig) {
	logger.Init(cfg.Level, cfg.Pretty)
}
