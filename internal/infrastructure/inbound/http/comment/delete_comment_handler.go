package comment_http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"blogicum/internal/custom_errors"
	model "blogicum/internal/domain/models"
	ports "blogicum/internal/domain/ports/output"
	"blogicum/internal/infrastructure/inbound/http/forms"
	"blogicum/internal/infrastructure/inbound/http/session"
	"blogicum/internal/infrastructure/inbound/http/view"
)

type CommentDeleter interface {
	GetCommentForEdit(ctx context.Context, actor model.Actor, postID, commentID int64) (*model.Comment, error)
	DeleteComment(ctx context.Context, actor model.Actor, postID, commentID int64) error
}

type DeleteCommentHandler struct {
	commentService CommentDeleter
	renderer       view.Renderer
	log            ports.Logger
}

func NewDeleteCommentHandler(commentService CommentDeleter, renderer view.Renderer, log ports.Logger) *DeleteCommentHandler {
	return &DeleteCommentHandler{
		commentService: commentService,
		renderer:       renderer,
		log:            log,
	}
}

func (h *DeleteCommentHandler) Confirm(c *gin.Context) {
	comment, ok := loadComment(c, h.commentService, h.renderer, h.log)
	if !ok {
		return
	}
	h.renderer.Render(c, http.StatusOK, view.PageCommentForm, view.CommentFormPage{
		Base:    view.NewBase(c),
		PostID:  comment.PostID,
		Comment: comment,
		Form:    forms.CommentFormFrom(comment),
		Errors:  forms.FieldErrors{},
		Delete:  true,
	})
}

func (h *DeleteCommentHandler) Submit(c *gin.Context) {
	postID, ok := forms.PathID(c.Param("post_id"))
	if !ok {
		view.NotFound(c, h.renderer)
		return
	}
	commentID, ok := forms.PathID(c.Param("comment_id"))
	if !ok {
		view.NotFound(c, h.renderer)
		return
	}

	err := h.commentService.DeleteComment(c.Request.Context(), session.Actor(c), postID, commentID)
	switch {
	case err == nil:
	case errors.Is(err, custom_errors.ErrForbidden):
		redirectToPost(c, postID)
		return
	default:
		view.RenderError(c, h.renderer, h.log, err)
		return
	}

	h.log.Debug("Comment deleted", slog.Int64("post_id", postID), slog.Int64("comment_id", commentID))
	redirectToPost(c, postID)
}
