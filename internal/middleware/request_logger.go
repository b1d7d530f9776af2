package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/lru-webserver/internal/domain/model"
	"github.com/guttosm/lru-webserver/internal/logger"
	"github.com/rs/zerolog"
)

// RequestLogger logs every request as one structured line and, when sink
// is non-nil, hands an access-log entry to it.
func RequestLogger(sink LogSink) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)
		statusCode := c.Writer.Status()
		cacheStatus := GetCacheStatus(c)
		entry := &model.LogEntry{
			Timestamp:   start.UTC(),
			Level:       getLogLevel(statusCode),
			Message:     "HTTP request",
			RequestID:   GetRequestID(c),
			Method:      c.Request.Method,
			Path:        c.Request.URL.Path,
			StatusCode:  statusCode,
			Duration:    latency.Milliseconds(),
			BytesSent:   c.Writer.Size(),
			CacheStatus: model.CacheStatus(cacheStatus),
			IP:          c.ClientIP(),
			UserAgent:   c.Request.UserAgent(),
		}
		if len(c.Errors) > 0 {
			entry.Error = c.Errors.Last().Error()
		}

		base := logger.Logger()
		var event *zerolog.Event
		switch entry.Level {
		case "error":
			event = base.Error()
		case "warn":
			event = base.Warn()
		default:
			event = base.Info()
		}
		event = event.
			Str("request_id", entry.RequestID).
			Str("method", entry.Method).
			Str("path", entry.Path).
			Int("status_code", statusCode).
			Dur("latency", latency).
			Int("bytes", entry.BytesSent).
			Str("ip", entry.IP).
			Str("user_agent", entry.UserAgent)
		if cacheStatus != "" {
			event = event.Str("cache", cacheStatus)
		}
		event.Msg(entry.Message)

		if sink != nil {
			sink.Log(entry)
		}
	}
}

// getLogLevel returns the log level based on HTTP status code.
func getLogLevel(statusCode int) string {
	switch {
	case statusCode >= 500:
		return "error"
	case statusCode >= 400:
		return "warn"
	default:
		return "info"
	}
}
