package post_http

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

type PostDeleter interface {
	GetPostForEdit(ctx context.Context, actor model.Actor, id int64) (*model.PostDetailed, error)
	DeletePost(ctx context.Context, actor model.Actor, id int64) error
}

type DeletePostHandler struct {
	postService    PostDeleter
	commentService CommentLister
	renderer       view.Renderer
	log            ports.Logger
}

func NewDeletePostHandler(postService PostDeleter, commentService CommentLister, renderer view.Renderer, log ports.Logger) *DeletePostHandler {
	return &DeletePostHandler{
		postService:    postService,
		commentService: commentService,
		renderer:       renderer,
		log:            log,
	}
}

// Confirm shows the post with its comments before anything is removed.
func (h *DeletePostHandler) Confirm(c *gin.Context) {
	id, ok := forms.PathID(c.Param("post_id"))
	if !ok {
		view.NotFound(c, h.renderer)
		return
	}

	post, err := h.postService.GetPostForEdit(c.Request.Context(), session.Actor(c), id)
	if err != nil {
		h.fail(c, id, err)
		return
	}

	comments, err := h.commentService.ListComments(c.Request.Context(), id)
	if err != nil {
		view.RenderError(c, h.renderer, h.log, err)
		return
	}

	h.renderer.Render(c, http.StatusOK, view.PagePostForm, view.PostFormPage{
		Base:     view.NewBase(c),
		Form:     &forms.PostForm{},
		Errors:   forms.FieldErrors{},
		Post:     post,
		Comments: comments,
		Delete:   true,
	})
}

func (h *DeletePostHandler) Submit(c *gin.Context) {
	id, ok := forms.PathID(c.Param("post_id"))
	if !ok {
		view.NotFound(c, h.renderer)
		return
	}
	actor := session.Actor(c)

	if err := h.postService.DeletePost(c.Request.Context(), actor, id); err != nil {
		h.fail(c, id, err)
		return
	}

	h.log.Debug("Post deleted", slog.Int64("post_id", id), slog.Int64("user_id", actor.UserID))
	c.Redirect(http.StatusSeeOther, profileURL(actor.Username))
}

func (h *DeletePostHandler) fail(c *gin.Context, id int64, err error) {
	if errors.Is(err, custom_errors.ErrForbidden) {
		redirectToPost(c, id)
		return
	}
	view.RenderError(c, h.renderer, h.log, err)
}
