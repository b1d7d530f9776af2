package repository

import (
	"context"

	"github.com/guttosm/lru-webserver/internal/domain/model"
)

// FileStore reads and writes files under a document root.
type FileStore interface {
	// Resolve maps a request path to the on-disk path Load would read.
	Resolve(requestPath string) (string, error)
	// Load reads the file behind a request path.
	Load(ctx context.Context, requestPath string) (*model.File, error)
	// Save writes data for a POST to requestPath and returns the path written.
	Save(ctx context.Context, requestPath string, data []byte) (string, error)
}

// LogsRepositoryInterface defines the access-log storage operations.
type LogsRepositoryInterface interface {
	Create(ctx context.Context, entry *model.LogEntry) error
	CreateMany(ctx context.Context, entries []*model.LogEntry) error
	Query(ctx context.Context, opts model.LogQueryOptions) ([]model.LogEntry, error)
	Count(ctx context.Context, opts model.LogQueryOptions) (int64, error)
}
