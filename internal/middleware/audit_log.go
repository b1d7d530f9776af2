package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/lru-webserver/internal/domain/model"
)

// Audit action types.
const (
	ActionFileSave = "file_save"
)

// AuditLog records a state-changing action, such as a POST save, in the
// access log. It is a no-op with a nil sink.
func AuditLog(sink LogSink, c *gin.Context, actionType, message string, fields map[string]interface{}) {
	if sink == nil {
		return
	}
	entry := auditEntry(c, "info", actionType, message)
	entry.WithFields(fields)
	sink.Log(entry)
}

// AuditLogError records a failed state-changing action.
func AuditLogError(sink LogSink, c *gin.Context, actionType, message string, err error, fields map[string]interface{}) {
	if sink == nil {
		return
	}
	entry := auditEntry(c, "error", actionType, message)
	if err != nil {
		entry.Error = err.Error()
	}
	entry.WithFields(fields)
	sink.Log(entry)
}

func auditEntry(c *gin.Context, level, actionType, message string) *model.LogEntry {
	return &model.LogEntry{
		Timestamp:  time.Now().UTC(),
		Level:      level,
		Message:    message,
		RequestID:  GetRequestID(c),
		Method:     c.Request.Method,
		Path:       c.Request.URL.Path,
		IP:         c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
		ActionType: actionType,
	}
}
