package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorResponse_WithRequestID(t *testing.T) {
	err := NewError(ErrCodeInternal, "test error").WithRequestID("test-id")

	assert.Equal(t, "test-id", err.RequestID)
	assert.Equal(t, ErrCodeInternal, err.Error)
	assert.Equal(t, "test error", err.Message)
	assert.NotZero(t, err.Timestamp)
}

func TestErrorResponse_WithDetail(t *testing.T) {
	base := NewError(ErrCodeInvalidRequest, "bad path")
	withPath := base.WithDetail("path", "/../etc/passwd")
	withBoth := withPath.WithDetail("reason", "escapes root")

	assert.Nil(t, base.Details)
	assert.Equal(t, map[string]string{"path": "/../etc/passwd"}, withPath.Details)
	assert.Len(t, withBoth.Details, 2)
}

func TestErrCodeFromStatus(t *testing.T) {
	tests := []struct {
		status       int
		expectedCode string
	}{
		{http.StatusBadRequest, ErrCodeInvalidRequest},
		{http.StatusNotFound, ErrCodeNotFound},
		{http.StatusMethodNotAllowed, ErrCodeNotImplemented},
		{http.StatusNotImplemented, ErrCodeNotImplemented},
		{http.StatusRequestEntityTooLarge, ErrCodePayloadTooLarge},
		{http.StatusTooManyRequests, ErrCodeRateLimit},
		{http.StatusGatewayTimeout, ErrCodeTimeout},
		{http.StatusServiceUnavailable, ErrCodeUnavailable},
		{http.StatusInternalServerError, ErrCodeInternal},
		{http.StatusBadGateway, ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.expectedCode, ErrCodeFromStatus(tt.status))
		})
	}
}

func TestNewCacheStatsResponse(t *testing.T) {
	tests := []struct {
		name          string
		hits, misses  int64
		expectedRatio float64
	}{
		{name: "no lookups", expectedRatio: 0},
		{name: "all hits", hits: 4, expectedRatio: 1},
		{name: "mixed", hits: 3, misses: 1, expectedRatio: 0.75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := NewCacheStatsResponse(tt.hits, tt.misses, 2, 5, 10)
			assert.InDelta(t, tt.expectedRatio, resp.HitRatio, 1e-9)
			assert.Equal(t, int64(2), resp.Evictions)
			assert.Equal(t, 5, resp.Size)
			assert.Equal(t, 10, resp.Capacity)
		})
	}
}
