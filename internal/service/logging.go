package service

import (
	"context"

	"github.com/guttosm/lru-webserver/internal/domain/model"
	"github.com/guttosm/lru-webserver/internal/repository"
)

const (
	// DefaultLogQueryLimit applies when a query does not set a limit.
	DefaultLogQueryLimit = 50
	// MaxLogQueryLimit caps a single page of access logs.
	MaxLogQueryLimit = 500
)

// LoggingService defines the access-log operations used by middleware and handlers.
type LoggingService interface {
	// CreateLog stores a single log entry.
	CreateLog(ctx context.Context, entry *model.LogEntry) error
	// CreateLogs stores multiple log entries in bulk.
	CreateLogs(ctx context.Context, entries []*model.LogEntry) error
	// QueryLogs returns one page of entries, newest first.
	QueryLogs(ctx context.Context, opts model.LogQueryOptions) ([]model.LogEntry, error)
	// CountLogs returns the number of entries matching the filters.
	CountLogs(ctx context.Context, opts model.LogQueryOptions) (int64, error)
}

// LoggingServiceImpl implements the LoggingService interface.
type LoggingServiceImpl struct {
	repo repository.LogsRepositoryInterface
}

// NewLoggingService creates a new logging service implementation.
func NewLoggingService(repo repository.LogsRepositoryInterface) LoggingService {
	return &LoggingServiceImpl{repo: repo}
}

func (s *LoggingServiceImpl) CreateLog(ctx context.Context, entry *model.LogEntry) error {
	if entry == nil {
		return nil
	}
	return s.repo.Create(ctx, entry)
}

func (s *LoggingServiceImpl) CreateLogs(ctx context.Context, entries []*model.LogEntry) error {
	if len(entries) == 0 {
		return nil
	}
	return s.repo.CreateMany(ctx, entries)
}

func (s *LoggingServiceImpl) QueryLogs(ctx context.Context, opts model.LogQueryOptions) ([]model.LogEntry, error) {
	return s.repo.Query(ctx, normalizeLogQuery(opts))
}

func (s *LoggingServiceImpl) CountLogs(ctx context.Context, opts model.LogQueryOptions) (int64, error) {
	return s.repo.Count(ctx, opts)
}

// ClampLogLimit returns the page size QueryLogs uses for limit.
func ClampLogLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLogQueryLimit
	case limit > MaxLogQueryLimit:
		return MaxLogQueryLimit
	}
	return limit
}

func normalizeLogQuery(opts model.LogQueryOptions) model.LogQueryOptions {
	opts.Limit = ClampLogLimit(opts.Limit)
	if opts.Skip < 0 {
		opts.Skip = 0
	}
	return opts
}
