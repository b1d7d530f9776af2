package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/lru-webserver/internal/domain/dto"
	"github.com/guttosm/lru-webserver/internal/i18n"
	"github.com/guttosm/lru-webserver/internal/logger"
)

// ErrorHandler logs errors attached with c.Error and, when the handler did
// not write a response, answers 500.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		requestID := GetRequestID(c)
		log := logger.Logger()
		for _, err := range c.Errors {
			log.Error().
				Str("request_id", requestID).
				Err(err.Err).
				Str("path", c.Request.URL.Path).
				Str("method", c.Request.Method).
				Msg("request error")
		}

		if !c.Writer.Written() {
			message := i18n.GetTranslator().Translate(i18n.ErrKeyInternalError, i18n.GetLocale(c))
			c.JSON(http.StatusInternalServerError,
				dto.NewError(dto.ErrCodeInternal, message).WithRequestID(requestID))
		}
	}
}
