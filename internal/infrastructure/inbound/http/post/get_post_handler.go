package post_http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	model "blogicum/internal/domain/models"
	ports "blogicum/internal/domain/ports/output"
	"blogicum/internal/domain/visibility"
	"blogicum/internal/infrastructure/inbound/http/forms"
	"blogicum/internal/infrastructure/inbound/http/session"
	"blogicum/internal/infrastructure/inbound/http/view"
)

type PostViewer interface {
	ViewPost(ctx context.Context, viewer model.Actor, id int64) (*model.PostDetailed, error)
}

type CommentLister interface {
	ListComments(ctx context.Context, postID int64) ([]*model.CommentDetailed, error)
}

type GetPostHandler struct {
	postService    PostViewer
	commentService CommentLister
	renderer       view.Renderer
	log            ports.Logger
}

func NewGetPostHandler(postService PostViewer, commentService CommentLister, renderer view.Renderer, log ports.Logger) *GetPostHandler {
	return &GetPostHandler{
		postService:    postService,
		commentService: commentService,
		renderer:       renderer,
		log:            log,
	}
}

func (h *GetPostHandler) Detail(c *gin.Context) {
	id, ok := forms.PathID(c.Param("post_id"))
	if !ok {
		view.NotFound(c, h.renderer)
		return
	}

	actor := session.Actor(c)
	h.log.Debug("Handling post detail", slog.Int64("post_id", id), slog.Int64("viewer_id", actor.UserID))

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
		Form:     &forms.CommentForm{},
		Errors:   forms.FieldErrors{},
		CanEdit:  visibility.CanMutate(post, actor),
	})
}
