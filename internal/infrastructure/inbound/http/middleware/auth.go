package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"blogicum/internal/custom_errors"
	model "blogicum/internal/domain/models"
	ports "blogicum/internal/domain/ports/output"
	"blogicum/internal/infrastructure/inbound/http/session"
)

const LoginPath = "/auth/login"

type ActorResolver interface {
	ResolveActor(ctx context.Context, token string) (model.Actor, error)
}

// Auth resolves the session cookie into an Actor. Requests without a valid
// session continue as anonymous and a stale cookie is dropped.
func Auth(resolver ActorResolver, cookieName string, secure bool, log ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			session.SetActor(c, model.Anonymous())
			c.Next()
			return
		}

		actor, err := resolver.ResolveActor(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, custom_errors.ErrInvalidToken) && !errors.Is(err, custom_errors.ErrUnauthenticated) {
				log.Warn("Failed to resolve session", slog.String("error", err.Error()))
			} else {
				ClearCookie(c, cookieName, secure)
			}
			actor = model.Anonymous()
		}

		session.SetActor(c, actor)
		c.Next()
	}
}

// RequireAuth sends anonymous visitors to the login page, remembering where
// they wanted to go.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !session.Actor(c).IsAuthenticated() {
			RedirectToLogin(c)
			c.Abort()
			return
		}
		c.Header("Cache-Control", "no-store")
		c.Next()
	}
}

func RequireGuest() gin.HandlerFunc {
	return func(c *gin.Context) {
		if session.Actor(c).IsAuthenticated() {
			c.Redirect(http.StatusSeeOther, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}

func RedirectToLogin(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, LoginPath+"?next="+url.QueryEscape(c.Request.URL.RequestURI()))
}

func SetCookie(c *gin.Context, name, value string, maxAge int, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, "/", "", secure, true)
}

func ClearCookie(c *gin.Context, name string, secure bool) {
	SetCookie(c, name, "", -1, secure)
}

func actorID(c *gin.Context) int64 {
	return session.Actor(c).UserID
}
