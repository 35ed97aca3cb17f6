package comment_http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	comment_service "blogicum/internal/domain/ports/input/comment"
	post_service "blogicum/internal/domain/ports/input/post"
	ports "blogicum/internal/domain/ports/output"
	"blogicum/internal/infrastructure/inbound/http/view"
)

type CommentHandlers struct {
	Add    *AddCommentHandler
	Update *UpdateCommentHandler
	Delete *DeleteCommentHandler
}

func NewCommentHandlers(
	commentService comment_service.Service,
	postService post_service.Service,
	renderer view.Renderer,
	validate *validator.Validate,
	log ports.Logger,
) *CommentHandlers {
	return &CommentHandlers{
		Add:    NewAddCommentHandler(commentService, postService, renderer, validate, log),
		Update: NewUpdateCommentHandler(commentService, renderer, validate, log),
		Delete: NewDeleteCommentHandler(commentService, renderer, log),
	}
}

func redirectToPost(c *gin.Context, postID int64) {
	status := http.StatusFound
	if c.Request.Method != http.MethodGet {
		status = http.StatusSeeOther
	}
	c.Redirect(status, "/posts/"+strconv.FormatInt(postID, 10))
}
