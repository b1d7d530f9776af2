//go:build !integration

package repository

import (
	"testing"
	"time"

	"github.com/guttosm/lru-webserver/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestBuildLogFilter(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	tests := []struct {
		name     string
		opts     model.LogQueryOptions
		expected bson.M
	}{
		{name: "empty", opts: model.LogQueryOptions{}, expected: bson.M{}},
		{
			name:     "exact fields",
			opts:     model.LogQueryOptions{RequestID: "r1", Level: "info", Method: "GET", CacheStatus: model.CacheHit},
			expected: bson.M{"request_id": "r1", "level": "info", "method": "GET", "cache_status": model.CacheHit},
		},
		{
			name:     "path is a quoted prefix",
			opts:     model.LogQueryOptions{Path: "/img/a.b"},
			expected: bson.M{"path": bson.M{"$regex": `^/img/a\.b`}},
		},
		{
			name:     "time window",
			opts:     model.LogQueryOptions{StartTime: &start, EndTime: &end},
			expected: bson.M{"timestamp": bson.M{"$gte": start, "$lte": end}},
		},
		{
			name:     "open ended window",
			opts:     model.LogQueryOptions{StartTime: &start},
			expected: bson.M{"timestamp": bson.M{"$gte": start}},
		},
		{
			name:     "limit and skip are not filters",
			opts:     model.LogQueryOptions{Limit: 10, Skip: 5},
			expected: bson.M{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, buildLogFilter(tt.opts))
		})
	}
}

func TestStamp(t *testing.T) {
	entry := &model.LogEntry{}
	stamp(entry)
	assert.False(t, entry.ID.IsZero())
	assert.False(t, entry.Timestamp.IsZero())

	id, ts := entry.ID, entry.Timestamp
	stamp(entry)
	assert.Equal(t, id, entry.ID)
	assert.Equal(t, ts, entry.Timestamp)
}
