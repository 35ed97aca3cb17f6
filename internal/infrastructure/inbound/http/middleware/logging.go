package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	ports "blogicum/internal/domain/ports/output"
)

func RequestLogger(log ports.Logger, metrics ports.MetricsProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		metrics.HTTPRequestStarted()
		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		metrics.HTTPRequestFinished(c.Request.Method, route, status, duration)

		attrs := []any{
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", status),
			slog.Duration("duration", duration),
			slog.Int64("user_id", actorID(c)),
		}
		if status >= 500 {
			log.Error("HTTP request", attrs...)
			return
		}
		log.Info("HTTP request", attrs...)
	}
}
