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
	"blogicum/internal/infrastructure/inbound/http/forms"
	"blogicum/internal/infrastructure/inbound/http/session"
	"blogicum/internal/infrastructure/inbound/http/view"
)

type CommentEditor interface {
	GetCommentForEdit(ctx context.Context, actor model.Actor, postID, commentID int64) (*model.Comment, error)
	UpdateComment(ctx context.Context, actor model.Actor, postID, commentID int64, text string) error
}

type UpdateCommentHandler struct {
	commentService CommentEditor
	renderer       view.Renderer
	validate       *validator.Validate
	log            ports.Logger
}

func NewUpdateCommentHandler(commentService CommentEditor, renderer view.Renderer, validate *validator.Validate, log ports.Logger) *UpdateCommentHandler {
	return &UpdateCommentHandler{
		commentService: commentService,
		renderer:       renderer,
		validate:       validate,
		log:            log,
	}
}

func (h *UpdateCommentHandler) Form(c *gin.Context) {
	comment, ok := loadComment(c, h.commentService, h.renderer, h.log)
	if !ok {
		return
	}
	h.render(c, comment, forms.CommentFormFrom(comment), forms.FieldErrors{})
}

func (h *UpdateCommentHandler) Submit(c *gin.Context) {
	comment, ok := loadComment(c, h.commentService, h.renderer, h.log)
	if !ok {
		return
	}

	form, errs := forms.ParseCommentForm(c.Request, h.validate)
	if errs.Any() {
		h.render(c, comment, form, errs)
		return
	}

	err := h.commentService.UpdateComment(c.Request.Context(), session.Actor(c), comment.PostID, comment.ID, form.Text)
	switch {
	case err == nil:
	case errors.Is(err, custom_errors.ErrForbidden):
		redirectToPost(c, comment.PostID)
		return
	case errors.Is(err, custom_errors.ErrInvalidInput):
		errs.Add("text", "This field is required.")
		h.render(c, comment, form, errs)
		return
	default:
		view.RenderError(c, h.renderer, h.log, err)
		return
	}

	h.log.Debug("Comment updated", slog.Int64("post_id", comment.PostID), slog.Int64("comment_id", comment.ID))
	redirectToPost(c, comment.PostID)
}

func (h *UpdateCommentHandler) render(c *gin.Context, comment *model.Comment, form *forms.CommentForm, errs forms.FieldErrors) {
	h.renderer.Render(c, http.StatusOK, view.PageCommentForm, view.CommentFormPage{
		Base:    view.NewBase(c),
		PostID:  comment.PostID,
		Comment: comment,
		Form:    form,
		Errors:  errs,
	})
}

type commentGetter interface {
	GetCommentForEdit(ctx context.Context, actor model.Actor, postID, commentID int64) (*model.Comment, error)
}

// loadComment returns the comment for its author. Anyone else is redirected
// to the post page and the caller must stop.
func loadComment(c *gin.Context, service commentGetter, renderer view.Renderer, log ports.Logger) (*model.Comment, bool) {
	postID, ok := forms.PathID(c.Param("post_id"))
	if !ok {
		view.NotFound(c, renderer)
		return nil, false
	}
	commentID, ok := forms.PathID(c.Param("comment_id"))
	if !ok {
		view.NotFound(c, renderer)
		return nil, false
	}

	comment, err := service.GetCommentForEdit(c.Request.Context(), session.Actor(c), postID, commentID)
	switch {
	case err == nil:
		return comment, true
	case errors.Is(err, custom_errors.ErrForbidden):
		redirectToPost(c, postID)
	default:
		view.RenderError(c, renderer, log, err)
	}
	return nil, false
}
