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
	"blogicum/internal/infrastructure/inbound/http/session"
	"blogicum/internal/infrastructure/inbound/http/view"
)

type PostEditor interface {
	GetPostForEdit(ctx context.Context, actor model.Actor, id int64) (*model.PostDetailed, error)
	UpdatePost(ctx context.Context, actor model.Actor, id int64, post *model.UpdatePostDTO) error
	ListChoices(ctx context.Context) ([]*model.Category, []*model.Location, error)
}

type UpdatePostHandler struct {
	postService PostEditor
	renderer    view.Renderer
	validate    *validator.Validate
	log         ports.Logger
}

func NewUpdatePostHandler(postService PostEditor, renderer view.Renderer, validate *validator.Validate, log ports.Logger) *UpdatePostHandler {
	return &UpdatePostHandler{
		postService: postService,
		renderer:    renderer,
		validate:    validate,
		log:         log,
	}
}

func (h *UpdatePostHandler) Form(c *gin.Context) {
	post, ok := h.load(c)
	if !ok {
		return
	}
	h.render(c, post, forms.PostFormFrom(post.Post), forms.FieldErrors{})
}

func (h *UpdatePostHandler) Submit(c *gin.Context) {
	post, ok := h.load(c)
	if !ok {
		return
	}
	actor := session.Actor(c)

	form, errs := forms.ParsePostForm(c.Request, h.validate)
	defer form.Close()
	if post.Post.Image != nil {
		form.CurrentImage = *post.Post.Image
	}
	if errs.Any() {
		h.log.Debug("Post form validation failed", slog.Int64("post_id", post.Post.ID), slog.Int("errors", len(errs)))
		h.render(c, post, form, errs)
		return
	}

	err := h.postService.UpdatePost(c.Request.Context(), actor, post.Post.ID, form.UpdateDTO())
	if err != nil {
		if field, msg, ok := fieldError(err); ok {
			errs.Add(field, msg)
			h.render(c, post, form, errs)
			return
		}
		if errors.Is(err, custom_errors.ErrForbidden) {
			redirectToPost(c, post.Post.ID)
			return
		}
		view.RenderError(c, h.renderer, h.log, err)
		return
	}

	h.log.Debug("Post updated", slog.Int64("post_id", post.Post.ID), slog.Int64("user_id", actor.UserID))
	redirectToPost(c, post.Post.ID)
}

// load fetches the post for its author. Other users are sent back to the
// post page and the caller must stop.
func (h *UpdatePostHandler) load(c *gin.Context) (*model.PostDetailed, bool) {
	id, ok := forms.PathID(c.Param("post_id"))
	if !ok {
		view.NotFound(c, h.renderer)
		return nil, false
	}

	post, err := h.postService.GetPostForEdit(c.Request.Context(), session.Actor(c), id)
	switch {
	case err == nil:
		return post, true
	case errors.Is(err, custom_errors.ErrForbidden):
		redirectToPost(c, id)
	default:
		view.RenderError(c, h.renderer, h.log, err)
	}
	return nil, false
}

func (h *UpdatePostHandler) render(c *gin.Context, post *model.PostDetailed, form *forms.PostForm, errs forms.FieldErrors) {
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
		Post:       post,
	})
}
