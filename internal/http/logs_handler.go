package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/lru-webserver/internal/circuitbreaker"
	"github.com/guttosm/lru-webserver/internal/domain/dto"
	"github.com/guttosm/lru-webserver/internal/i18n"
	"github.com/guttosm/lru-webserver/internal/service"
)

// LogsHandler serves the persisted access log.
type LogsHandler struct {
	logs service.LoggingService
}

// NewLogsHandler creates a LogsHandler.
func NewLogsHandler(logs service.LoggingService) *LogsHandler {
	return &LogsHandler{logs: logs}
}

// RegisterRoutes registers GET /logs.
func (h *LogsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/logs", h.QueryLogs)
}

// QueryLogs handles GET /logs.
func (h *LogsHandler) QueryLogs(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BindQuery[dto.LogsQueryRequest](c)
	if err != nil {
		var verr *dto.ValidationError
		if errors.As(err, &verr) {
			builder.ErrorWithMessage(http.StatusBadRequest, verr.Error(), nil)
			return
		}
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, err)
		return
	}

	opts := req.ToOptions()
	ctx := c.Request.Context()
	entries, err := h.logs.QueryLogs(ctx, opts)
	if err == nil {
		var total int64
		total, err = h.logs.CountLogs(ctx, opts)
		if err == nil {
			builder.SuccessOK(dto.LogsResponse{
				Logs:  entries,
				Total: total,
				Limit: service.ClampLogLimit(opts.Limit),
				Skip:  opts.Skip,
			})
			return
		}
	}

	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		builder.Error(http.StatusServiceUnavailable, i18n.ErrKeyLogsUnavailable, err)
		return
	}
	builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
}
