// Package middleware provides the gin middleware stack of the web server.
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader is the HTTP header name for request ID.
	RequestIDHeader = "X-Request-ID"
	// maxRequestIDLength bounds client-supplied IDs before they reach logs.
	maxRequestIDLength = 128
)

// ContextKey type for context keys to avoid collisions.
type ContextKey string

const (
	RequestIDKey   ContextKey = "request_id"
	CacheStatusKey ContextKey = "cache_status"
)

// RequestID returns a middleware that ensures each request has a unique ID.
// A client-provided X-Request-ID is reused when it is short enough;
// otherwise a UUID v4 is generated.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" || len(requestID) > maxRequestIDLength {
			requestID = uuid.NewString()
		}

		c.Set(string(RequestIDKey), requestID)
		c.Header(RequestIDHeader, requestID)
		c.Next()
	}
}

// GetRequestID retrieves the request ID from the gin context.
func GetRequestID(c *gin.Context) string {
	return c.GetString(string(RequestIDKey))
}

// SetCacheStatus records how a file response was produced, for the access log.
func SetCacheStatus(c *gin.Context, status string) {
	c.Set(string(CacheStatusKey), status)
}

// GetCacheStatus returns the status recorded by SetCacheStatus, or "".
func GetCacheStatus(c *gin.Context) string {
	return c.GetString(string(CacheStatusKey))
}
