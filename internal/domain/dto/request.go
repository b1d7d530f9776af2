package dto

import (
	"strings"

	"github.com/guttosm/lru-webserver/internal/domain/model"
)

// LogsQueryRequest holds the query string of GET /logs.
type LogsQueryRequest struct {
	Path        string `form:"path"`
	Method      string `form:"method"`
	Level       string `form:"level"`
	CacheStatus string `form:"cache_status"`
	RequestID   string `form:"request_id"`
	Limit       int    `form:"limit"`
	Skip        int    `form:"skip"`
}

// ValidationError represents a field validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns the error message for ValidationError.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

var (
	ErrInvalidLimit       = &ValidationError{Field: "limit", Message: "must not be negative"}
	ErrInvalidSkip        = &ValidationError{Field: "skip", Message: "must not be negative"}
	ErrInvalidCacheStatus = &ValidationError{Field: "cache_status", Message: "must be HIT, MISS or BYPASS"}
)

// Validate checks the numeric bounds and the cache status filter.
func (r *LogsQueryRequest) Validate() error {
	if r.Limit < 0 {
		return ErrInvalidLimit
	}
	if r.Skip < 0 {
		return ErrInvalidSkip
	}
	switch model.CacheStatus(strings.ToUpper(r.CacheStatus)) {
	case "", model.CacheHit, model.CacheMiss, model.CacheBypass:
	default:
		return ErrInvalidCacheStatus
	}
	return nil
}

// ToOptions converts the request into repository query options.
// Limit clamping is left to the logging service.
func (r *LogsQueryRequest) ToOptions() model.LogQueryOptions {
	return model.LogQueryOptions{
		Path:        r.Path,
		Method:      strings.ToUpper(r.Method),
		Level:       r.Level,
		CacheStatus: model.CacheStatus(strings.ToUpper(r.CacheStatus)),
		RequestID:   r.RequestID,
		Limit:       r.Limit,
		Skip:        r.Skip,
	}
}

// LogsResponse is one page of access-log entries.
type LogsResponse struct {
	Logs  []model.LogEntry `json:"logs"`
	Total int64            `json:"total"`
	Limit int              `json:"limit"`
	Skip  int              `json:"skip"`
}
