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
	"blogicum/internal/infrastructure/inbound/http/session"
	"blogicum/internal/infrastructure/inbound/http/view"
)

type ProfileEditor interface {
	GetProfileForEdit(ctx context.Context, actor model.Actor, username string) (*model.User, error)
	UpdateProfile(ctx context.Context, actor model.Actor, username string, dto *model.UpdateProfileDTO) (*model.User, error)
}

type EditProfileHandler struct {
	userService ProfileEditor
	renderer    view.Renderer
	validate    *validator.Validate
	log         ports.Logger
}

func NewEditProfileHandler(userService ProfileEditor, renderer view.Renderer, validate *validator.Validate, log ports.Logger) *EditProfileHandler {
	return &EditProfileHandler{
		userService: userService,
		renderer:    renderer,
		validate:    validate,
		log:         log,
	}
}

func (h *EditProfileHandler) Form(c *gin.Context) {
	user, err := h.userService.GetProfileForEdit(c.Request.Context(), session.Actor(c), c.Param("username"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.render(c, forms.ProfileFormFrom(user), forms.FieldErrors{})
}

func (h *EditProfileHandler) Submit(c *gin.Context) {
	actor := session.Actor(c)
	username := c.Param("username")
	if _, err := h.userService.GetProfileForEdit(c.Request.Context(), actor, username); err != nil {
		h.fail(c, err)
		return
	}

	form, errs := forms.ParseProfileForm(c.Request, h.validate)
	if errs.Any() {
		h.render(c, form, errs)
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), actor, username, form.DTO())
	if err != nil {
		if errors.Is(err, custom_errors.ErrUsernameTaken) {
			errs.Add("username", "A user with that username already exists.")
			h.render(c, form, errs)
			return
		}
		h.fail(c, err)
		return
	}

	h.log.Debug("Profile updated", slog.Int64("user_id", user.ID))
	c.Redirect(http.StatusSeeOther, profileURL(user.Username))
}

// fail sends users editing someone else's profile to their own edit page.
func (h *EditProfileHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, custom_errors.ErrForbidden):
		c.Redirect(http.StatusFound, profileURL(session.Actor(c).Username)+"/edit")
	case errors.Is(err, custom_errors.ErrUnauthenticated):
		middleware.RedirectToLogin(c)
	default:
		view.RenderError(c, h.renderer, h.log, err)
	}
}

func (h *EditProfileHandler) render(c *gin.Context, form *forms.ProfileForm, errs forms.FieldErrors) {
	h.renderer.Render(c, http.StatusOK, view.PageProfileForm, view.ProfileFormPage{
		Base:   view.NewBase(c),
		Form:   form,
		Errors: errs,
	})
}
