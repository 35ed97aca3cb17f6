package http_server

import (
	"github.com/gin-gonic/gin"

	ports "blogicum/internal/domain/ports/output"
	comment_http "blogicum/internal/infrastructure/inbound/http/comment"
	feed_http "blogicum/internal/infrastructure/inbound/http/feed"
	"blogicum/internal/infrastructure/inbound/http/middleware"
	post_http "blogicum/internal/infrastructure/inbound/http/post"
	user_http "blogicum/internal/infrastructure/inbound/http/user"
	"blogicum/internal/infrastructure/inbound/http/view"
)

type Handlers struct {
	Feed    *feed_http.FeedHandler
	Post    *post_http.PostHandlers
	Comment *comment_http.CommentHandlers
	User    *user_http.UserHandlers
}

type RouterConfig struct {
	CookieName   string
	SecureCookie bool
	MediaRoot    string
	MediaPrefix  string
}

func NewRouter(
	h Handlers,
	actors middleware.ActorResolver,
	renderer view.Renderer,
	cfg RouterConfig,
	log ports.Logger,
	metrics ports.MetricsProvider,
) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestLogger(log, metrics), middleware.Recovery(renderer, log))

	r.Static(cfg.MediaPrefix, cfg.MediaRoot)

	auth := middleware.Auth(actors, cfg.CookieName, cfg.SecureCookie, log)
	r.NoRoute(auth, func(c *gin.Context) {
		view.NotFound(c, renderer)
	})

	site := r.Group("/", auth, middleware.CSRF(renderer, cfg.SecureCookie, log))
	site.GET("/", h.Feed.Index)
	site.GET("/category/:category_slug", h.Feed.Category)
	site.GET("/profile/:username", h.Feed.Profile)
	site.GET("/posts/:post_id", h.Post.Get.Detail)

	members := site.Group("/", middleware.RequireAuth())
	{
		members.GET("/posts/create", h.Post.Create.Form)
		members.POST("/posts/create", h.Post.Create.Submit)
		members.GET("/posts/:post_id/edit", h.Post.Update.Form)
		members.POST("/posts/:post_id/edit", h.Post.Update.Submit)
		members.GET("/posts/:post_id/delete", h.Post.Delete.Confirm)
		members.POST("/posts/:post_id/delete", h.Post.Delete.Submit)

		members.GET("/posts/:post_id/comment", h.Comment.Add.Form)
		members.POST("/posts/:post_id/comment", h.Comment.Add.Submit)
		members.GET("/posts/:post_id/edit_comment/:comment_id", h.Comment.Update.Form)
		members.POST("/posts/:post_id/edit_comment/:comment_id", h.Comment.Update.Submit)
		members.GET("/posts/:post_id/delete_comment/:comment_id", h.Comment.Delete.Confirm)
		members.POST("/posts/:post_id/delete_comment/:comment_id", h.Comment.Delete.Submit)

		members.GET("/profile/:username/edit", h.User.Profile.Form)
		members.POST("/profile/:username/edit", h.User.Profile.Submit)

		members.POST("/auth/logout", h.User.Login.Logout)
	}

	guests := site.Group("/auth", middleware.RequireGuest())
	{
		guests.GET("/registration", h.User.Register.Form)
		guests.POST("/registration", h.User.Register.Submit)
		guests.GET("/login", h.User.Login.Form)
		guests.POST("/login", h.User.Login.Submit)
	}

	return r
}
