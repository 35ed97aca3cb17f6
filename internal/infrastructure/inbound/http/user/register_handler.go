package user_http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"blogicum/internal/custom_errors"
	model "blogicum/internal/domain/models"
	ports "blogicum/internal/domain/ports/output"
	"blogicum/internal/infrastructure/inbound/http/forms"
	"blogicum/internal/infrastructure/inbound/http/middleware"
	"blogicum/internal/infrastructure/inbound/http/view"
)

type UserRegisterer interface {
	Register(ctx context.Context, dto *model.RegisterUserDTO) (*model.User, error)
}

type RegisterHandler struct {
	userService UserRegisterer
	renderer    view.Renderer
	validate    *validator.Validate
	log         ports.Logger
}

func NewRegisterHandler(userService UserRegisterer, renderer view.Renderer, validate *validator.Validate, log ports.Logger) *RegisterHandler {
	return &RegisterHandler{
		userService: userService,
		renderer:    renderer,
		validate:    validate,
		log:         log,
	}
}

func (h *RegisterHandler) Form(c *gin.Context) {
	h.render(c, &forms.RegisterForm{}, forms.FieldErrors{})
}

func (h *RegisterHandler) Submit(c *gin.Context) {
	form, errs := forms.ParseRegisterForm(c.Request, h.validate)
	if errs.Any() {
		h.log.Debug("Registration form validation failed", slog.String("username", form.Username), slog.Int("errors", len(errs)))
		h.render(c, form, errs)
		return
	}

	user, err := h.userService.Register(c.Request.Context(), form.DTO())
	switch {
	case err == nil:
	case errors.Is(err, custom_errors.ErrUsernameTaken):
		errs.Add("username", "A user with that username already exists.")
		h.render(c, form, errs)
		return
	case errors.Is(err, custom_errors.ErrInvalidInput):
		errs.Add(forms.NonField, "The submitted data was not valid.")
		h.render(c, form, errs)
		return
	default:
		view.RenderError(c, h.renderer, h.log, err)
		return
	}

	h.log.Debug("User registered", slog.Int64("user_id", user.ID))
	c.Redirect(http.StatusSeeOther, middleware.LoginPath)
}

func (h *RegisterHandler) render(c *gin.Context, form *forms.RegisterForm, errs forms.FieldErrors) {
	form.Password1, form.Password2 = "", ""
	h.renderer.Render(c, http.StatusOK, view.PageRegistration, view.RegistrationPage{
		Base:   view.NewBase(c),
		Form:   form,
		Errors: errs,
	})
}
