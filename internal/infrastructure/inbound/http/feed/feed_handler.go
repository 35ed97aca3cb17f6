package feed_http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	model "blogicum/internal/domain/models"
	ports "blogicum/internal/domain/ports/output"
	"blogicum/internal/infrastructure/inbound/http/forms"
	"blogicum/internal/infrastructure/inbound/http/session"
	"blogicum/internal/infrastructure/inbound/http/view"
)

type FeedReader interface {
	GlobalFeed(ctx context.Context, page int) (*model.PostPage, error)
	CategoryFeed(ctx context.Context, slug string, page int) (*model.CategoryFeed, error)
	ProfileFeed(ctx context.Context, viewer model.Actor, username string, page int) (*model.ProfileFeed, error)
}

// FeedHandler serves the paginated post listings.
type FeedHandler struct {
	feedService FeedReader
	renderer    view.Renderer
	validate    *validator.Validate
	log         ports.Logger
}

func NewFeedHandler(feedService FeedReader, renderer view.Renderer, validate *validator.Validate, log ports.Logger) *FeedHandler {
	return &FeedHandler{
		feedService: feedService,
		renderer:    renderer,
		validate:    validate,
		log:         log,
	}
}

func (h *FeedHandler) Index(c *gin.Context) {
	page, err := h.feedService.GlobalFeed(c.Request.Context(), forms.PageNumber(c.Query("page")))
	if err != nil {
		view.RenderError(c, h.renderer, h.log, err)
		return
	}
	h.renderer.Render(c, http.StatusOK, view.PageIndex, view.IndexPage{
		Base: view.NewBase(c),
		Page: page,
	})
}

func (h *FeedHandler) Category(c *gin.Context) {
	slug := c.Param("category_slug")
	if err := h.validate.Var(slug, "required,slug"); err != nil {
		h.log.Debug("Malformed category slug", slog.String("slug", slug))
		view.NotFound(c, h.renderer)
		return
	}

	feed, err := h.feedService.CategoryFeed(c.Request.Context(), slug, forms.PageNumber(c.Query("page")))
	if err != nil {
		view.RenderError(c, h.renderer, h.log, err)
		return
	}
	h.renderer.Render(c, http.StatusOK, view.PageCategory, view.CategoryPage{
		Base:     view.NewBase(c),
		Category: feed.Category,
		Page:     feed.Page,
	})
}

func (h *FeedHandler) Profile(c *gin.Context) {
	username := c.Param("username")
	feed, err := h.feedService.ProfileFeed(c.Request.Context(), session.Actor(c), username, forms.PageNumber(c.Query("page")))
	if err != nil {
		view.RenderError(c, h.renderer, h.log, err)
		return
	}
	h.renderer.Render(c, http.StatusOK, view.PageProfile, view.ProfilePage{
		Base:    view.NewBase(c),
		Profile: feed.Profile,
		Page:    feed.Page,
		IsOwner: feed.IsOwner,
	})
}
