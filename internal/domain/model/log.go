package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LogEntry is an access-log record for one HTTP request or server action.
// Use the Fields map for action-specific context.
type LogEntry struct {
	ID          primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	Timestamp   time.Time              `bson:"timestamp" json:"timestamp"`
	Level       string                 `bson:"level" json:"level"`
	Message     string                 `bson:"message" json:"message"`
	RequestID   string                 `bson:"request_id,omitempty" json:"request_id,omitempty"`
	Method      string                 `bson:"method,omitempty" json:"method,omitempty"`
	Path        string                 `bson:"path,omitempty" json:"path,omitempty"`
	StatusCode  int                    `bson:"status_code,omitempty" json:"status_code,omitempty"`
	Duration    int64                  `bson:"duration_ms,omitempty" json:"duration_ms,omitempty"`
	BytesSent   int                    `bson:"bytes_sent,omitempty" json:"bytes_sent,omitempty"`
	CacheStatus CacheStatus            `bson:"cache_status,omitempty" json:"cache_status,omitempty"`
	IP          string                 `bson:"ip,omitempty" json:"ip,omitempty"`
	UserAgent   string                 `bson:"user_agent,omitempty" json:"user_agent,omitempty"`
	Error       string                 `bson:"error,omitempty" json:"error,omitempty"`
	ActionType  string                 `bson:"action_type,omitempty" json:"action_type,omitempty"` // e.g. "save"
	Fields      map[string]interface{} `bson:"fields,omitempty" json:"fields,omitempty"`
}

// WithFields adds multiple fields to the log entry's Fields map.
func (e *LogEntry) WithFields(fields map[string]interface{}) *LogEntry {
	if e.Fields == nil {
		e.Fields = make(map[string]interface{}, len(fields))
	}
	for k, v := range fields {
		e.Fields[k] = v
	}
	return e
}

// LogQueryOptions provides options for querying access logs.
type LogQueryOptions struct {
	RequestID   string
	Level       string
	Method      string
	Path        string
	CacheStatus CacheStatus
	StartTime   *time.Time
	EndTime     *time.Time
	Limit       int
	Skip        int
}
