package user_http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"blogicum/internal/custom_errors"
	ports "blogicum/internal/domain/ports/output"
	"blogicum/internal/infrastructure/inbound/http/forms"
	"blogicum/internal/infrastructure/inbound/http/middleware"
	"blogicum/internal/infrastructure/inbound/http/view"
)

type Authenticator interface {
	Login(ctx context.Context, username, password string) (token string, expiresAt time.Time, err error)
}

// LoginHandler signs users in and out through the session cookie.
type LoginHandler struct {
	userService  Authenticator
	cookieName   string
	secureCookie bool
	renderer     view.Renderer
	validate     *validator.Validate
	log          ports.Logger
}

func NewLoginHandler(
	userService Authenticator,
	cookieName string,
	secureCookie bool,
	renderer view.Renderer,
	validate *validator.Validate,
	log ports.Logger,
) *LoginHandler {
	return &LoginHandler{
		userService:  userService,
		cookieName:   cookieName,
		secureCookie: secureCookie,
		renderer:     renderer,
		validate:     validate,
		log:          log,
	}
}

func (h *LoginHandler) Form(c *gin.Context) {
	h.render(c, &forms.LoginForm{Next: c.Query("next")}, forms.FieldErrors{})
}

func (h *LoginHandler) Submit(c *gin.Context) {
	form, errs := forms.ParseLoginForm(c.Request, h.validate)
	if errs.Any() {
		h.render(c, form, errs)
		return
	}

	token, expiresAt, err := h.userService.Login(c.Request.Context(), form.Username, form.Password)
	switch {
	case err == nil:
	case errors.Is(err, custom_errors.ErrInvalidCredentials):
		h.log.Debug("Login rejected", slog.String("username", form.Username))
		errs.Add(forms.NonField, "Please enter a correct username and password. Note that both fields may be case-sensitive.")
		h.render(c, form, errs)
		return
	default:
		view.RenderError(c, h.renderer, h.log, err)
		return
	}

	maxAge := int(time.Until(expiresAt).Seconds())
	middleware.SetCookie(c, h.cookieName, token, maxAge, h.secureCookie)
	c.Redirect(http.StatusSeeOther, forms.SafeNext(form.Next, "/"))
}

func (h *LoginHandler) Logout(c *gin.Context) {
	middleware.ClearCookie(c, h.cookieName, h.secureCookie)
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *LoginHandler) render(c *gin.Context, form *forms.LoginForm, errs forms.FieldErrors) {
	form.Password = ""
	h.renderer.Render(c, http.StatusOK, view.PageLogin, view.LoginPage{
		Base:   view.NewBase(c),
		Form:   form,
		Errors: errs,
	})
}
