package app

import (
	"fmt"
	"os"

	"github.com/guttosm/lru-webserver/config"
	"github.com/guttosm/lru-webserver/internal/cache"
	"github.com/guttosm/lru-webserver/internal/logger"
	"github.com/guttosm/lru-webserver/internal/metrics"
	"github.com/guttosm/lru-webserver/internal/repository"
	"github.com/guttosm/lru-webserver/internal/service"
)

// ServiceComponents holds the cache and the file service built on it.
type ServiceComponents struct {
	Cache *cache.LRU
	Files service.FileService
}

// InitializeServices builds the LRU cache and the disk-backed file service.
func InitializeServices(cacheCfg config.CacheConfig, filesCfg config.FilesConfig) (*ServiceComponents, error) {
	log := logger.Component("cache")

	policy, ok := cache.ParseDuplicatePolicy(cacheCfg.DuplicatePolicy)
	if !ok {
		log.Warn().
			Str("value", cacheCfg.DuplicatePolicy).
			Stringer("using", policy).
			Msg("unrecognised duplicate policy")
	}

	lru, err := cache.New(cacheCfg.Capacity, cacheCfg.IndexHint,
		cache.WithDuplicatePolicy(policy),
		cache.WithMaxEntryBytes(cacheCfg.MaxEntryBytes),
		cache.WithReleaseHook(func(key string, reason cache.ReleaseReason) {
			metrics.RecordCacheOperation("release", reason.String())
			log.Debug().Str("key", key).Stringer("reason", reason).Msg("cache entry released")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("create cache: %w", err)
	}

	root, err := repository.NewDiskStore(filesCfg.Root)
	if err != nil {
		lru.Destroy()
		return nil, fmt.Errorf("document root: %w", err)
	}
	system, err := repository.NewDiskStore(filesCfg.System)
	if err != nil {
		lru.Destroy()
		return nil, fmt.Errorf("system files: %w", err)
	}
	warnIfMissing(root.Root(), "document root")
	warnIfMissing(system.Root(), "system files directory")

	log.Info().
		Int("capacity", cacheCfg.Capacity).
		Stringer("duplicate_policy", policy).
		Int("max_entry_bytes", cacheCfg.MaxEntryBytes).
		Str("root", root.Root()).
		Msg("cache ready")

	return &ServiceComponents{
		Cache: lru,
		Files: service.NewFileService(root, system, lru),
	}, nil
}

func warnIfMissing(dir, what string) {
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		log := logger.Logger()
		log.Warn().Str("dir", dir).Msgf("%s does not exist, requests will get 404", what)
	}
}
