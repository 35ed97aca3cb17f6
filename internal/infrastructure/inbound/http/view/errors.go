package view

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"blogicum/internal/custom_errors"
	ports "blogicum/internal/domain/ports/output"
)

func NotFound(c *gin.Context, r Renderer) {
	r.Render(c, http.StatusNotFound, PageNotFound, NotFoundPage{Base: NewBase(c)})
}

func CSRFFailure(c *gin.Context, r Renderer, reason string) {
	r.Render(c, http.StatusForbidden, PageCSRFFailure, CSRFFailurePage{Base: NewBase(c), Reason: reason})
}

func ServerError(c *gin.Context, r Renderer) {
	r.Render(c, http.StatusInternalServerError, PageServerError, ServerErrorPage{Base: NewBase(c)})
}

// RenderError shows the not found page for missing or hidden entities and
// the server error page for anything else.
func RenderError(c *gin.Context, r Renderer, log ports.Logger, err error) {
	switch {
	case errors.Is(err, custom_errors.ErrPostNotFound),
		errors.Is(err, custom_errors.ErrCommentNotFound),
		errors.Is(err, custom_errors.ErrCategoryNotFound),
		errors.Is(err, custom_errors.ErrLocationNotFound),
		errors.Is(err, custom_errors.ErrUserNotFound):
		log.Debug("Entity not found", slog.String("path", c.Request.URL.Path), slog.String("error", err.Error()))
		NotFound(c, r)
	default:
		log.Error("Request failed", slog.String("path", c.Request.URL.Path), slog.String("error", err.Error()))
		ServerError(c, r)
	}
}
