package post_http

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	comment_service "blogicum/internal/domain/ports/input/comment"
	post_service "blogicum/internal/domain/ports/input/post"
	ports "blogicum/internal/domain/ports/output"
	"blogicum/internal/infrastructure/inbound/http/view"
)

// PostHandlers groups the post pages served by the router.
type PostHandlers struct {
	Create *CreatePostHandler
	Get    *GetPostHandler
	Update *UpdatePostHandler
	Delete *DeletePostHandler
}

func NewPostHandlers(
	postService post_service.Service,
	commentService comment_service.Service,
	renderer view.Renderer,
	validate *validator.Validate,
	log ports.Logger,
) *PostHandlers {
	return &PostHandlers{
		Create: NewCreatePostHandler(postService, renderer, validate, log),
		Get:    NewGetPostHandler(postService, commentService, renderer, log),
		Update: NewUpdatePostHandler(postService, renderer, validate, log),
		Delete: NewDeletePostHandler(postService, commentService, renderer, log),
	}
}

func postURL(id int64) string {
	return "/posts/" + strconv.FormatInt(id, 10)
}

func profileURL(username string) string {
	return "/profile/" + url.PathEscape(username)
}

func redirectToPost(c *gin.Context, id int64) {
	status := http.StatusFound
	if c.Request.Method != http.MethodGet {
		status = http.StatusSeeOther
	}
	c.Redirect(status, postURL(id))
}
