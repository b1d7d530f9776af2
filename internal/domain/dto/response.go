// Package dto holds the JSON bodies the web server reads and writes.
package dto

import (
	"net/http"
	"time"
)

const (
	// ErrCodeInvalidRequest indicates an invalid request.
	ErrCodeInvalidRequest = "invalid_request"
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal = "internal_error"
	// ErrCodeNotFound indicates a resource was not found.
	ErrCodeNotFound = "not_found"
	// ErrCodeNotImplemented indicates an unsupported HTTP method.
	ErrCodeNotImplemented = "not_implemented"
	// ErrCodePayloadTooLarge indicates a request body over the upload limit.
	ErrCodePayloadTooLarge = "payload_too_large"
	// ErrCodeRateLimit indicates rate limit exceeded.
	ErrCodeRateLimit = "rate_limit_exceeded"
	// ErrCodeTimeout indicates a request timeout.
	ErrCodeTimeout = "timeout"
	// ErrCodeUnavailable indicates a dependency, such as the log store, is down.
	ErrCodeUnavailable = "service_unavailable"
)

// StatusOK is the status value of a successful save.
const StatusOK = "OK"

// SuccessResponse wraps JSON responses with request metadata.
type SuccessResponse struct {
	Data      interface{} `json:"data"`
	RequestID string      `json:"request_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// SaveResponse is the body returned after a file was written.
type SaveResponse struct {
	Status string `json:"status"`
}

// CacheStatsResponse reports the LRU cache counters.
type CacheStatsResponse struct {
	Hits      int64   `json:"hits"`
	Misses    int64   `json:"misses"`
	Evictions int64   `json:"evictions"`
	Size      int     `json:"size"`
	Capacity  int     `json:"capacity"`
	HitRatio  float64 `json:"hit_ratio"`
}

// NewCacheStatsResponse builds a CacheStatsResponse and computes the hit ratio.
func NewCacheStatsResponse(hits, misses, evictions int64, size, capacity int) CacheStatsResponse {
	resp := CacheStatsResponse{
		Hits:      hits,
		Misses:    misses,
		Evictions: evictions,
		Size:      size,
		Capacity:  capacity,
	}
	if total := hits + misses; total > 0 {
		resp.HitRatio = float64(hits) / float64(total)
	}
	return resp
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error     string            `json:"error"`
	Message   string            `json:"message,omitempty"`
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

// NewError creates a new ErrorResponse with the given code and message.
func NewError(code, message string) ErrorResponse {
	return ErrorResponse{
		Error:     code,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// WithRequestID adds a request ID to the error response.
func (e ErrorResponse) WithRequestID(requestID string) ErrorResponse {
	e.RequestID = requestID
	return e
}

// WithDetail adds a single detail entry.
func (e ErrorResponse) WithDetail(key, value string) ErrorResponse {
	details := make(map[string]string, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	e.Details = details
	return e
}

// ErrCodeFromStatus returns the appropriate error code for an HTTP status.
func ErrCodeFromStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return ErrCodeInvalidRequest
	case http.StatusNotFound:
		return ErrCodeNotFound
	case http.StatusNotImplemented, http.StatusMethodNotAllowed:
		return ErrCodeNotImplemented
	case http.StatusRequestEntityTooLarge:
		return ErrCodePayloadTooLarge
	case http.StatusTooManyRequests:
		return ErrCodeRateLimit
	case http.StatusGatewayTimeout, http.StatusRequestTimeout:
		return ErrCodeTimeout
	case http.StatusServiceUnavailable:
		return ErrCodeUnavailable
	default:
		return ErrCodeInternal
	}
}
