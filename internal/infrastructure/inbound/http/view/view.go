package view

import (
	"github.com/gin-gonic/gin"

	model "blogicum/internal/domain/models"
	"blogicum/internal/infrastructure/inbound/http/session"
)

const (
	PageIndex        = "blog/index.html"
	PageDetail       = "blog/detail.html"
	PageCategory     = "blog/category.html"
	PageProfile      = "blog/profile.html"
	PagePostForm     = "blog/create.html"
	PageCommentForm  = "blog/comment.html"
	PageProfileForm  = "blog/user.html"
	PageRegistration = "registration/registration_form.html"
	PageLogin        = "registration/login.html"
	PageCSRFFailure  = "pages/403csrf.html"
	PageNotFound     = "pages/404.html"
	PageServerError  = "pages/500.html"
)

// Renderer writes a named page for the given view model.
type Renderer interface {
	Render(c *gin.Context, status int, name string, data any)
}

// Base is embedded by every view model.
type Base struct {
	Actor     model.Actor
	CSRFToken string
	Path      string
}

func NewBase(c *gin.Context) Base {
	return Base{
		Actor:     session.Actor(c),
		CSRFToken: session.CSRFToken(c),
		Path:      c.Request.URL.Path,
	}
}
