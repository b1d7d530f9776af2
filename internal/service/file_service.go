package service

import (
	"context"
	"errors"
	"math/rand/v2"

	"github.com/guttosm/lru-webserver/internal/cache"
	"github.com/guttosm/lru-webserver/internal/domain/model"
	"github.com/guttosm/lru-webserver/internal/repository"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

var (
	// ErrNotFound is returned when no file exists for the request path.
	ErrNotFound = repository.ErrFileNotFound
	// ErrInvalidPath is returned for request paths outside the document root.
	ErrInvalidPath = repository.ErrInvalidPath
	// ErrEmptyBody is returned by Save for an empty request body.
	ErrEmptyBody = errors.New("empty body")
)

const (
	notFoundPage = "/404.html"
	// DiceSides is the upper bound returned by Roll.
	DiceSides = 20
)

// builtinNotFound is served when the system files have no 404 page.
var builtinNotFound = &model.File{
	Path:        notFoundPage,
	ContentType: "text/plain",
	Data:        []byte("404 Page Not Found\n"),
}

// FileCache is the part of *cache.LRU the file service uses.
type FileCache interface {
	Get(key string) (cache.Entry, bool)
	Peek(key string) (cache.Entry, bool)
	Put(key, contentType string, payload []byte) error
	Metrics() cache.Metrics
}

// FileService serves files from the document root through the LRU cache.
type FileService interface {
	// Get returns the file for a request path, from cache when possible.
	Get(ctx context.Context, requestPath string) (*model.FileResult, error)
	// NotFoundPage returns the body served with 404 responses.
	NotFoundPage(ctx context.Context) *model.File
	// Save stores body for requestPath and refreshes a cached copy.
	Save(ctx context.Context, requestPath string, body []byte) error
	// CacheStats returns the cache counters.
	CacheStats() cache.Metrics
	// Roll returns a random number in [1, DiceSides].
	Roll() int
}

// FileServiceImpl implements FileService.
type FileServiceImpl struct {
	files  repository.FileStore
	system repository.FileStore
	cache  FileCache
	loads  singleflight.Group
	roll   func(n int) int
}

// NewFileService wires the document root, the system-files store and the cache.
func NewFileService(files, system repository.FileStore, c FileCache) *FileServiceImpl {
	return &FileServiceImpl{
		files:  files,
		system: system,
		cache:  c,
		roll:   rand.IntN,
	}
}

// Get implements cache-aside: a hit is served from memory, a miss is read
// from disk, cached and served. Concurrent misses for the same file share
// a single disk read.
func (s *FileServiceImpl) Get(ctx context.Context, requestPath string) (*model.FileResult, error) {
	key, err := s.files.Resolve(requestPath)
	if err != nil {
		return nil, err
	}

	if entry, ok := s.cache.Get(key); ok {
		return &model.FileResult{
			File:        model.File{Path: entry.Key, ContentType: entry.ContentType, Data: entry.Payload},
			CacheStatus: model.CacheHit,
		}, nil
	}

	v, err, _ := s.loads.Do(key, func() (interface{}, error) {
		return s.load(context.WithoutCancel(ctx), key, requestPath)
	})
	if err != nil {
		return nil, err
	}
	return v.(*model.FileResult), nil
}

func (s *FileServiceImpl) load(ctx context.Context, key, requestPath string) (*model.FileResult, error) {
	file, err := s.files.Load(ctx, requestPath)
	if err != nil {
		return nil, err
	}
	file.ContentType = ContentTypeFor(file.Path, file.Data)

	result := &model.FileResult{File: *file, CacheStatus: model.CacheMiss}
	switch err := s.cache.Put(key, file.ContentType, file.Data); {
	case err == nil, errors.Is(err, cache.ErrDuplicateKey):
	case errors.Is(err, cache.ErrAllocationFailure):
		result.CacheStatus = model.CacheBypass
		log.Debug().Str("path", key).Int("bytes", len(file.Data)).Msg("file too large to cache")
	default:
		result.CacheStatus = model.CacheBypass
		log.Warn().Err(err).Str("path", key).Msg("cache put failed")
	}
	return result, nil
}

// NotFoundPage loads 404.html from the system files, falling back to a
// built-in page.
func (s *FileServiceImpl) NotFoundPage(ctx context.Context) *model.File {
	file, err := s.system.Load(ctx, notFoundPage)
	if err != nil {
		if !errors.Is(err, repository.ErrFileNotFound) {
			log.Warn().Err(err).Msg("404 page unavailable, using built-in page")
		}
		return builtinNotFound
	}
	file.ContentType = ContentTypeFor(file.Path, file.Data)
	return file
}

// Save writes body and, if the written file is cached, replaces the cached
// bytes so later reads do not serve stale content.
func (s *FileServiceImpl) Save(ctx context.Context, requestPath string, body []byte) error {
	if len(body) == 0 {
		return ErrEmptyBody
	}

	written, err := s.files.Save(ctx, requestPath, body)
	if err != nil {
		return err
	}

	if _, cached := s.cache.Peek(written); cached {
		if err := s.cache.Put(written, ContentTypeFor(written, body), body); err != nil {
			log.Warn().Err(err).Str("path", written).Msg("cached copy not refreshed")
		}
	}
	return nil
}

// CacheStats returns the cache counters.
func (s *FileServiceImpl) CacheStats() cache.Metrics {
	return s.cache.Metrics()
}

// Roll returns a random number in [1, DiceSides].
func (s *FileServiceImpl) Roll() int {
	return s.roll(DiceSides) + 1
}
