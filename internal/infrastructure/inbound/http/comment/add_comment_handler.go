package comment_http

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
	"blogicum/internal/domain/visibility"
	"blogicum/internal/infrastructure/inbound/http/forms"
	"blogicum/internal/infrastructure/inbound/http/middleware"
	"blogicum/internal/infrastructure/inbound/http/session"
	"blogicum/internal/infrastructure/inbound/http/view"
)

type CommentAdder interface {
	AddComment(ctx context.Context, actor model.Actor, postID int64, text string) (*model.Comment, error)
	ListComments(ctx context.Context, postID int64) ([]*model.CommentDetailed, error)
}

type PostViewer interface {
	ViewPost(ctx context.Context, viewer model.Actor, id int64) (*model.PostDetailed, error)
}

type AddCommentHandler struct {
	commentService CommentAdder
	postService    PostViewer
	renderer       view.Renderer
	validate       *validator.Validate
	log            ports.Logger
}

func NewAddCommentHandler(commentService CommentAdder, postService PostViewer, renderer view.Renderer, validate *validator.Validate, log ports.Logger) *AddCommentHandler {
	return &AddCommentHandler{
		commentService: commentService,
		postService:    postService,
		renderer:       renderer,
		validate:       validate,
		log:            log,
	}
}

// Form has no page of its own, the comment form lives on the post page.
func (h *AddCommentHandler) Form(c *gin.Context) {
	id, ok := forms.PathID(c.Param("post_id"))
	if !ok {
		view.NotFound(c, h.renderer)
		return
	}
	redirectToPost(c, id)
}

func (h *AddCommentHandler) Submit(c *gin.Context) {
	id, ok := forms.PathID(c.Param("post_id"))
	if !ok {
		view.NotFound(c, h.renderer)
		return
	}
	actor := session.Actor(c)

	form, errs := forms.ParseCommentForm(c.Request, h.validate)
	if errs.Any() {
		h.log.Debug("Comment form validation failed", slog.Int64("post_id", id), slog.Int64("user_id", actor.UserID))
		h.renderPost(c, id, form, errs)
		return
	}

	comment, err := h.commentService.AddComment(c.Request.Context(), actor, id, form.Text)
	switch {
	case err == nil:
	case errors.Is(err, custom_errors.ErrUnauthenticated):
		middleware.RedirectToLogin(c)
		return
	case errors.Is(err, custom_errors.ErrInvalidInput):
		errs.Add("text", "This field is required.")
		h.renderPost(c, id, form, errs)
		return
	default:
		view.RenderError(c, h.renderer, h.log, err)
		return
	}

	h.log.Debug("Comment added", slog.Int64("post_id", id), slog.Int64("comment_id", comment.ID))
	redirectToPost(c, id)
}

func (h *AddCommentHandler) renderPost(c *gin.Context, id int64, form *forms.CommentForm, errs forms.FieldErrors) {
	actor := session.Actor(c)
	post, err := h.postService.ViewPost(c.Request.Context(), actor, id)
	if err != nil {
		view.RenderError(c, h.renderer, h.log, err)
		return
	}
	comments, err := h.commentService.ListComments(c.Request.Context(), id)
	if err != nil {
		view.RenderError(c, h.renderer, h.log, err)
		return
	}
	h.renderer.Render(c, http.StatusOK, view.PageDetail, view.PostDetailPage{
		Base:     view.NewBase(c),
		Post:     post,
		Comments: comments,
		Form:     form,
		Errors:   errs,
		CanEdit:  visibility.CanMutate(post, actor),
	})
}
