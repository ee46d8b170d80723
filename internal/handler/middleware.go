package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RequestLogger logs one line per request with zerolog; 5xx at error level, 4xx at warn.
func RequestLogger(logger zerolog.Logger) gin.HandlerFunc {
	l := logger.With().Str("module", "http").Logger()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		var event *zerolog.Event
		switch {
		case status >= 500:
			event = l.Error()
		case status >= 400:
			event = l.Warn()
		default:
			event = l.Debug()
		}
		if err := c.Errors.Last(); err != nil {
			event = event.Err(err.Err)
		}
		event.
			Str("method", c.Request.Method).
			Str("route", c.FullPath()).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("http request")
	}
}
