package middleware

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/gin-gonic/gin"

	ports "blogicum/internal/domain/ports/output"
	"blogicum/internal/infrastructure/inbound/http/view"
)

// Recovery turns a panic in a handler into the server error page.
func Recovery(renderer view.Renderer, log ports.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		log.Error("Recovered from panic",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.String("panic", fmt.Sprint(recovered)))
		view.ServerError(c, renderer)
		c.Abort()
	})
}
