package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"blogicum/internal/custom_errors"
	ports "blogicum/internal/domain/ports/output"
	"blogicum/internal/infrastructure/inbound/http/session"
	"blogicum/internal/infrastructure/inbound/http/view"
)

const (
	CSRFCookieName = "csrftoken"
	CSRFFieldName  = "csrf_token"
	CSRFHeaderName = "X-CSRF-Token"

	csrfCookieMaxAge = 365 * 24 * 60 * 60
)

// CSRF implements the double submit check: unsafe requests must echo the
// csrftoken cookie in the csrf_token field or the X-CSRF-Token header.
func CSRF(renderer view.Renderer, secure bool, log ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(CSRFCookieName)
		hasCookie := err == nil && validCSRFToken(cookie)
		if !hasCookie {
			cookie = uuid.NewString()
			SetCookie(c, CSRFCookieName, cookie, csrfCookieMaxAge, secure)
		}
		session.SetCSRFToken(c, cookie)

		if safeMethod(c.Request.Method) {
			c.Next()
			return
		}

		reason := ""
		submitted := c.GetHeader(CSRFHeaderName)
		if submitted == "" {
			submitted = c.Request.PostFormValue(CSRFFieldName)
		}
		switch {
		case !hasCookie:
			reason = "CSRF cookie not set."
		case subtle.ConstantTimeCompare([]byte(submitted), []byte(cookie)) != 1:
			reason = "CSRF token missing or incorrect."
		}
		if reason != "" {
			_ = c.Error(custom_errors.ErrCSRFTokenMismatch)
			log.Debug("CSRF check failed",
				slog.String("path", c.Request.URL.Path),
				slog.String("reason", reason),
				slog.String("error", custom_errors.ErrCSRFTokenMismatch.Error()))
			view.CSRFFailure(c, renderer, reason)
			c.Abort()
			return
		}

		c.Next()
	}
}

func validCSRFToken(token string) bool {
	_, err := uuid.Parse(token)
	return err == nil
}

func safeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	default:
		return false
	}
}
