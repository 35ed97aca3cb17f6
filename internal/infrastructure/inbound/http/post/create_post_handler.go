package post_http

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

type PostCreator interface {
	CreatePost(ctx context.Context, actor model.Actor, post *model.CreatePostDTO) (*model.Post, error)
	ListChoices(ctx context.Context) ([]*model.Category, []*model.Location, error)
}

type CreatePostHandler struct {
	postService PostCreator
	renderer    view.Renderer
	validate    *validator.Validate
	log         ports.Logger
}

func NewCreatePostHandler(postService PostCreator, renderer view.Renderer, validate *validator.Validate, log ports.Logger) *CreatePostHandler {
	return &CreatePostHandler{
		postService: postService,
		renderer:    renderer,
		validate:    validate,
		log:         log,
	}
}

func (h *CreatePostHandler) Form(c *gin.Context) {
	h.render(c, &forms.PostForm{}, forms.FieldErrors{})
}

func (h *CreatePostHandler) Submit(c *gin.Context) {
	actor := session.Actor(c)

	form, errs := forms.ParsePostForm(c.Request, h.validate)
	defer form.Close()
	if errs.Any() {
		h.log.Debug("Post form validation failed", slog.Int64("user_id", actor.UserID), slog.Int("errors", len(errs)))
		h.render(c, form, errs)
		return
	}

	post, err := h.postService.CreatePost(c.Request.Context(), actor, form.CreateDTO())
	if err != nil {
		if field, msg, ok := fieldError(err); ok {
			errs.Add(field, msg)
			h.render(c, form, errs)
			return
		}
		if errors.Is(err, custom_errors.ErrUnauthenticated) {
			middleware.RedirectToLogin(c)
			return
		}
		view.RenderError(c, h.renderer, h.log, err)
		return
	}

	h.log.Debug("Post created", slog.Int64("post_id", post.ID), slog.Int64("user_id", actor.UserID))
	c.Redirect(http.StatusSeeOther, profileURL(actor.Username))
}

func (h *CreatePostHandler) render(c *gin.Context, form *forms.PostForm, errs forms.FieldErrors) {
	categories, locations, err := h.postService.ListChoices(c.Request.Context())
	if err != nil {
		view.RenderError(c, h.renderer, h.log, err)
		return
	}
	h.renderer.Render(c, http.StatusOK, view.PagePostForm, view.PostFormPage{
		Base:       view.NewBase(c),
		Form:       form,
		Errors:     errs,
		Categories: categories,
		Locations:  locations,
	})
}
