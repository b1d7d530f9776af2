// Package http exposes the file server, cache statistics and access logs
// over gin.
package http

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/lru-webserver/internal/domain/dto"
	"github.com/guttosm/lru-webserver/internal/i18n"
	"github.com/guttosm/lru-webserver/internal/middleware"
	"github.com/guttosm/lru-webserver/internal/service"
)

// CacheHeader reports whether a file came from the cache.
const CacheHeader = "X-Cache"

// Handler serves and stores files through the file service.
type Handler struct {
	files          service.FileService
	sink           middleware.LogSink
	maxUploadBytes int64
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithAuditSink records successful and failed saves in the access log.
func WithAuditSink(sink middleware.LogSink) HandlerOption {
	return func(h *Handler) {
		h.sink = sink
	}
}

// WithMaxUploadBytes caps POST bodies; n <= 0 disables the cap.
func WithMaxUploadBytes(n int64) HandlerOption {
	return func(h *Handler) {
		h.maxUploadBytes = n
	}
}

// NewHandler creates a new Handler instance.
func NewHandler(files service.FileService, opts ...HandlerOption) *Handler {
	h := &Handler{files: files}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// RegisterRoutes registers /d20 and /cache/stats. Every other path is
// served by Dispatch through NoRoute.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/d20", h.Roll)
	rg.GET("/cache/stats", h.CacheStats)
}

// Roll handles GET /d20.
func (h *Handler) Roll(c *gin.Context) {
	c.String(http.StatusOK, "you get a random number: %d", h.files.Roll())
}

// CacheStats handles GET /cache/stats.
func (h *Handler) CacheStats(c *gin.Context) {
	m := h.files.CacheStats()
	NewResponseBuilder(c).SuccessOK(dto.NewCacheStatsResponse(m.Hits, m.Misses, m.Evictions, m.Size, m.Capacity))
}

// Dispatch routes requests that match no registered route by method.
func (h *Handler) Dispatch(c *gin.Context) {
	switch c.Request.Method {
	case http.MethodGet, http.MethodHead:
		h.ServeFile(c)
	case http.MethodPost:
		h.SaveFile(c)
	default:
		NewResponseBuilder(c).Error(http.StatusNotImplemented, i18n.ErrKeyNotImplemented, nil)
	}
}

// ServeFile answers with the file at the request path.
func (h *Handler) ServeFile(c *gin.Context) {
	builder := NewResponseBuilder(c)
	ctx := c.Request.Context()

	result, err := h.files.Get(ctx, c.Request.URL.Path)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrNotFound):
		page := h.files.NotFoundPage(ctx)
		c.Data(http.StatusNotFound, page.ContentType, page.Data)
		return
	case errors.Is(err, service.ErrInvalidPath):
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidPath, err)
		return
	case errors.Is(err, context.DeadlineExceeded):
		// Timeout writes the 504.
		_ = c.Error(err)
		return
	default:
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	status := string(result.CacheStatus)
	middleware.SetCacheStatus(c, status)
	c.Header(CacheHeader, status)
	c.Data(http.StatusOK, result.ContentType, result.Data)
}

// SaveFile stores the request body at the request path.
func (h *Handler) SaveFile(c *gin.Context) {
	builder := NewResponseBuilder(c)
	path := c.Request.URL.Path

	body := c.Request.Body
	if h.maxUploadBytes > 0 {
		body = http.MaxBytesReader(c.Writer, body, h.maxUploadBytes)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			builder.Error(http.StatusRequestEntityTooLarge, i18n.ErrKeyPayloadTooLarge, err)
			return
		}
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, err)
		return
	}

	err = h.files.Save(c.Request.Context(), path, data)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrEmptyBody):
		builder.Error(http.StatusBadRequest, i18n.ErrKeyEmptyBody, nil)
		return
	case errors.Is(err, service.ErrInvalidPath):
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidPath, err)
		return
	default:
		middleware.AuditLogError(h.sink, c, middleware.ActionFileSave, "file save failed", err, nil)
		builder.Error(http.StatusInternalServerError, i18n.ErrKeySaveFailed, err)
		return
	}

	middleware.AuditLog(h.sink, c, middleware.ActionFileSave, "file saved", map[string]interface{}{
		"bytes": len(data),
	})
	c.JSON(http.StatusOK, dto.SaveResponse{Status: dto.StatusOK})
}
