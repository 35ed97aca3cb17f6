package http_server_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	comment_service "blogicum/internal/application/service/comment"
	feed_service "blogicum/internal/application/service/feed"
	post_service "blogicum/internal/application/service/post"
	user_service "blogicum/internal/application/service/user"
	"blogicum/internal/custom_errors"
	model "blogicum/internal/domain/models"
	"blogicum/internal/infrastructure/config"
	http_server "blogicum/internal/infrastructure/inbound/http"
	comment_http "blogicum/internal/infrastructure/inbound/http/comment"
	feed_http "blogicum/internal/infrastructure/inbound/http/feed"
	"blogicum/internal/infrastructure/inbound/http/forms"
	"blogicum/internal/infrastructure/inbound/http/middleware"
	post_http "blogicum/internal/infrastructure/inbound/http/post"
	user_http "blogicum/internal/infrastructure/inbound/http/user"
	"blogicum/internal/infrastructure/inbound/http/view"
	"blogicum/internal/infrastructure/logger"
	prometheus_metrics "blogicum/internal/infrastructure/outbound/metrics/prometheus"
	"blogicum/internal/infrastructure/outbound/repository/memory"
	"blogicum/internal/infrastructure/outbound/storage/local"
	"blogicum/internal/infrastructure/outbound/token/jwt"
)

const (
	cookieName = "sessionid"
	csrfToken  = "6f1c1e0e-7a43-4c36-9d3c-0b7f4ad2c001"
	password   = "correct-horse"
)

type rendered struct {
	status int
	name   string
	data   any
}

type recordingRenderer struct {
	last *rendered
}

func (r *recordingRenderer) Render(c *gin.Context, status int, name string, data any) {
	r.last = &rendered{status: status, name: name, data: data}
	c.String(status, name)
}

type testEnv struct {
	router   *gin.Engine
	renderer *recordingRenderer
	repos    *memory.Repositories
	tokens   *jwt.Manager
}

func setupRouterTest(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.New("test")
	metrics := prometheus_metrics.NewPrometheusMetricsProvider()
	repos := memory.NewRepositories(memory.NewStore(), log)
	uow := memory.NewUnitOfWork(repos)
	tokens := jwt.NewManager("test-secret", time.Hour, log)
	storage, err := local.NewStorage(t.TempDir(), 1<<20, log)
	require.NoError(t, err)

	postService := post_service.NewPostService(repos.Posts, repos.Categories, repos.Locations, uow, storage, log, metrics)
	commentService := comment_service.NewCommentService(repos.Comments, uow, nil, log, metrics)
	feedService := feed_service.NewFeedService(repos.Posts, repos.Categories, repos.Users, log)
	userService := user_service.NewUserService(repos.Users, uow, nil, tokens, log, metrics)

	renderer := &recordingRenderer{}
	validate := forms.NewValidator()
	router := http_server.NewRouter(
		http_server.Handlers{
			Feed:    feed_http.NewFeedHandler(feedService, renderer, validate, log),
			Post:    post_http.NewPostHandlers(postService, commentService, renderer, validate, log),
			Comment: comment_http.NewCommentHandlers(commentService, postService, renderer, validate, log),
			User:    user_http.NewUserHandlers(userService, config.Auth{CookieName: cookieName}, renderer, validate, log),
		},
		userService,
		renderer,
		http_server.RouterConfig{CookieName: cookieName, MediaRoot: t.TempDir(), MediaPrefix: "/media"},
		log,
		metrics,
	)

	return &testEnv{router: router, renderer: renderer, repos: repos, tokens: tokens}
}

func (e *testEnv) user(t *testing.T, username string) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user, err := e.repos.Users.Create(context.Background(), &model.User{Username: username, PasswordHash: string(hash)})
	require.NoError(t, err)
	return user
}

func (e *testEnv) post(t *testing.T, author *model.User, pubDate time.Time) *model.Post {
	t.Helper()
	post, err := e.repos.Posts.Create(context.Background(), &model.Post{
		Title: "title", Text: "text", AuthorID: author.ID, IsPublished: true, PubDate: pubDate,
	})
	require.NoError(t, err)
	return post
}

// do sends a request as user (nil for anonymous). POST requests carry a
// valid CSRF pair unless the form already sets csrf_token.
func (e *testEnv) do(t *testing.T, method, target string, form url.Values, user *model.User) *httptest.ResponseRecorder {
	t.Helper()
	e.renderer.last = nil

	var req *http.Request
	if method == http.MethodPost {
		if form == nil {
			form = url.Values{}
		}
		if _, ok := form[middleware.CSRFFieldName]; !ok {
			form.Set(middleware.CSRFFieldName, csrfToken)
		}
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req.AddCookie(&http.Cookie{Name: middleware.CSRFCookieName, Value: csrfToken})
	if user != nil {
		token, _, err := e.tokens.Issue(user.ID)
		require.NoError(t, err)
		req.AddCookie(&http.Cookie{Name: cookieName, Value: token})
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func postPath(id int64, suffix string) string {
	return "/posts/" + strconv.FormatInt(id, 10) + suffix
}

func validPostForm() url.Values {
	return url.Values{
		"title":    {"Fresh"},
		"text":     {"Body"},
		"pub_date": {time.Now().Add(-time.Hour).Format(forms.DateTimeLayout)},
	}
}

func TestRouter_Feeds(t *testing.T) {
	env := setupRouterTest(t)
	author := env.user(t, "author")
	env.post(t, author, time.Now().Add(-time.Hour))
	env.post(t, author, time.Now().Add(24*time.Hour))

	w := env.do(t, http.MethodGet, "/", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, view.PageIndex, env.renderer.last.name)
	page := env.renderer.last.data.(view.IndexPage)
	assert.Len(t, page.Page.Posts, 1)

	w = env.do(t, http.MethodGet, "/?page=abc", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, env.renderer.last.data.(view.IndexPage).Page.Number)

	env.do(t, http.MethodGet, "/profile/author", nil, nil)
	profile := env.renderer.last.data.(view.ProfilePage)
	assert.False(t, profile.IsOwner)
	assert.Len(t, profile.Page.Posts, 1)

	env.do(t, http.MethodGet, "/profile/author", nil, author)
	profile = env.renderer.last.data.(view.ProfilePage)
	assert.True(t, profile.IsOwner)
	assert.Len(t, profile.Page.Posts, 2)

	w = env.do(t, http.MethodGet, "/profile/nobody", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_CategoryFeed(t *testing.T) {
	env := setupRouterTest(t)
	ctx := context.Background()
	_, err := env.repos.Categories.Create(ctx, &model.Category{Title: "Travel", Slug: "travel", IsPublished: true})
	require.NoError(t, err)
	hidden, err := env.repos.Categories.Create(ctx, &model.Category{Title: "Hidden", Slug: "hidden", IsPublished: true})
	require.NoError(t, err)
	require.NoError(t, env.repos.Categories.SetPublished(hidden.ID, false))

	w := env.do(t, http.MethodGet, "/category/travel", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, view.PageCategory, env.renderer.last.name)

	for _, path := range []string{"/category/hidden", "/category/missing", "/category/bad%20slug"} {
		w = env.do(t, http.MethodGet, path, nil, nil)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
		assert.Equal(t, view.PageNotFound, env.renderer.last.name, path)
	}
}

func TestRouter_PostDetail(t *testing.T) {
	env := setupRouterTest(t)
	author := env.user(t, "author")
	other := env.user(t, "other")
	scheduled := env.post(t, author, time.Now().Add(24*time.Hour))

	tests := []struct {
		name     string
		path     string
		viewer   *model.User
		wantCode int
		wantPage string
	}{
		{name: "unknown id", path: "/posts/999", wantCode: http.StatusNotFound, wantPage: view.PageNotFound},
		{name: "malformed id", path: "/posts/abc", wantCode: http.StatusNotFound, wantPage: view.PageNotFound},
		{name: "scheduled hidden from anonymous", path: postPath(scheduled.ID, ""), wantCode: http.StatusNotFound, wantPage: view.PageNotFound},
		{name: "scheduled hidden from others", path: postPath(scheduled.ID, ""), viewer: other, wantCode: http.StatusNotFound, wantPage: view.PageNotFound},
		{name: "author preview", path: postPath(scheduled.ID, ""), viewer: author, wantCode: http.StatusOK, wantPage: view.PageDetail},
		{name: "unknown route", path: "/nope/here", wantCode: http.StatusNotFound, wantPage: view.PageNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodGet, tt.path, nil, tt.viewer)
			assert.Equal(t, tt.wantCode, w.Code)
			require.NotNil(t, env.renderer.last)
			assert.Equal(t, tt.wantPage, env.renderer.last.name)
		})
	}

	env.do(t, http.MethodGet, postPath(scheduled.ID, ""), nil, author)
	assert.True(t, env.renderer.last.data.(view.PostDetailPage).CanEdit)
}

func TestRouter_LoginRequired(t *testing.T) {
	env := setupRouterTest(t)

	w := env.do(t, http.MethodGet, "/posts/create", nil, nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/auth/login?next=%2Fposts%2Fcreate", w.Header().Get("Location"))

	w = env.do(t, http.MethodPost, "/posts/1/comment", url.Values{"text": {"hi"}}, nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Location"), "/auth/login?next="))
}

func TestRouter_CreatePost(t *testing.T) {
	env := setupRouterTest(t)
	author := env.user(t, "author")

	w := env.do(t, http.MethodGet, "/posts/create", nil, author)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, view.PagePostForm, env.renderer.last.name)

	w = env.do(t, http.MethodPost, "/posts/create", url.Values{"title": {""}}, author)
	require.Equal(t, http.StatusOK, w.Code)
	formPage := env.renderer.last.data.(view.PostFormPage)
	assert.Contains(t, formPage.Errors, "title")

	bad := validPostForm()
	bad.Set("category", "42")
	w = env.do(t, http.MethodPost, "/posts/create", bad, author)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, env.renderer.last.data.(view.PostFormPage).Errors, "category")

	_, total, err := env.repos.Posts.List(context.Background(), model.PostFilters{})
	require.NoError(t, err)
	assert.Equal(t, 0, total)

	w = env.do(t, http.MethodPost, "/posts/create", validPostForm(), author)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/profile/author", w.Header().Get("Location"))

	posts, total, err := env.repos.Posts.List(context.Background(), model.PostFilters{})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	assert.Equal(t, author.ID, posts[0].Post.AuthorID)
	assert.Equal(t, "Fresh", posts[0].Post.Title)
}

func TestRouter_CSRF(t *testing.T) {
	env := setupRouterTest(t)
	author := env.user(t, "author")

	w := env.do(t, http.MethodPost, "/posts/create", url.Values{middleware.CSRFFieldName: {"forged"}}, author)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, view.PageCSRFFailure, env.renderer.last.name)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader("username=a&password=b"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w = httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "CSRF cookie not set.", env.renderer.last.data.(view.CSRFFailurePage).Reason)
}

func TestRouter_NonOwnerCannotMutatePost(t *testing.T) {
	env := setupRouterTest(t)
	author := env.user(t, "author")
	other := env.user(t, "other")
	post := env.post(t, author, time.Now().Add(-time.Hour))

	requests := []struct {
		method string
		path   string
		form   url.Values
	}{
		{http.MethodGet, postPath(post.ID, "/edit"), nil},
		{http.MethodPost, postPath(post.ID, "/edit"), validPostForm()},
		{http.MethodGet, postPath(post.ID, "/delete"), nil},
		{http.MethodPost, postPath(post.ID, "/delete"), nil},
	}

	for _, r := range requests {
		w := env.do(t, r.method, r.path, r.form, other)
		assert.Contains(t, []int{http.StatusFound, http.StatusSeeOther}, w.Code, r.method+" "+r.path)
		assert.Equal(t, postPath(post.ID, ""), w.Header().Get("Location"), r.method+" "+r.path)
	}

	stored, err := env.repos.Posts.GetByID(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, "title", stored.Title)
}

func TestRouter_EditPost(t *testing.T) {
	env := setupRouterTest(t)
	author := env.user(t, "author")
	post := env.post(t, author, time.Now().Add(-time.Hour))

	w := env.do(t, http.MethodGet, postPath(post.ID, "/edit"), nil, author)
	require.Equal(t, http.StatusOK, w.Code)
	formPage := env.renderer.last.data.(view.PostFormPage)
	assert.Equal(t, "title", formPage.Form.Title)
	assert.NotNil(t, formPage.Post)

	w = env.do(t, http.MethodPost, postPath(post.ID, "/edit"), validPostForm(), author)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, postPath(post.ID, ""), w.Header().Get("Location"))

	stored, err := env.repos.Posts.GetByID(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Fresh", stored.Title)
}

func TestRouter_TwoStepDelete(t *testing.T) {
	env := setupRouterTest(t)
	author := env.user(t, "author")
	post := env.post(t, author, time.Now().Add(-time.Hour))

	w := env.do(t, http.MethodGet, postPath(post.ID, "/delete"), nil, author)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.renderer.last.data.(view.PostFormPage).Delete)

	_, err := env.repos.Posts.GetByID(context.Background(), post.ID)
	require.NoError(t, err)

	w = env.do(t, http.MethodPost, postPath(post.ID, "/delete"), nil, author)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/profile/author", w.Header().Get("Location"))

	_, err = env.repos.Posts.GetByID(context.Background(), post.ID)
	assert.ErrorIs(t, err, custom_errors.ErrPostNotFound)

	w = env.do(t, http.MethodGet, postPath(post.ID, "/delete"), nil, author)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_Comments(t *testing.T) {
	env := setupRouterTest(t)
	author := env.user(t, "author")
	other := env.user(t, "other")
	post := env.post(t, author, time.Now().Add(-time.Hour))
	scheduled := env.post(t, author, time.Now().Add(time.Hour))

	w := env.do(t, http.MethodPost, postPath(post.ID, "/comment"), url.Values{"text": {"  "}}, other)
	require.Equal(t, http.StatusOK, w.Code)
	detail := env.renderer.last.data.(view.PostDetailPage)
	assert.Contains(t, detail.Errors, "text")

	w = env.do(t, http.MethodPost, postPath(scheduled.ID, "/comment"), url.Values{"text": {"hi"}}, other)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodPost, postPath(post.ID, "/comment"), url.Values{"text": {"nice post"}}, other)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, postPath(post.ID, ""), w.Header().Get("Location"))

	comments, err := env.repos.Comments.ListByPost(context.Background(), post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	commentID := comments[0].Comment.ID
	editPath := postPath(post.ID, "/edit_comment/"+strconv.FormatInt(commentID, 10))
	deletePath := postPath(post.ID, "/delete_comment/"+strconv.FormatInt(commentID, 10))

	w = env.do(t, http.MethodPost, editPath, url.Values{"text": {"hijacked"}}, author)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, postPath(post.ID, ""), w.Header().Get("Location"))

	w = env.do(t, http.MethodGet, postPath(scheduled.ID, "/edit_comment/"+strconv.FormatInt(commentID, 10)), nil, other)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodGet, editPath, nil, other)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "nice post", env.renderer.last.data.(view.CommentFormPage).Form.Text)

	w = env.do(t, http.MethodPost, editPath, url.Values{"text": {"edited"}}, other)
	assert.Equal(t, http.StatusSeeOther, w.Code)

	comments, err = env.repos.Comments.ListByPost(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, "edited", comments[0].Comment.Text)

	w = env.do(t, http.MethodGet, deletePath, nil, other)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.renderer.last.data.(view.CommentFormPage).Delete)

	w = env.do(t, http.MethodPost, deletePath, nil, other)
	assert.Equal(t, http.StatusSeeOther, w.Code)

	comments, err = env.repos.Comments.ListByPost(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestRouter_EditProfile(t *testing.T) {
	env := setupRouterTest(t)
	author := env.user(t, "author")
	env.user(t, "other")

	w := env.do(t, http.MethodGet, "/profile/other/edit", nil, author)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/profile/author/edit", w.Header().Get("Location"))

	w = env.do(t, http.MethodPost, "/profile/other/edit", url.Values{"username": {"stolen"}}, author)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/profile/author/edit", w.Header().Get("Location"))

	w = env.do(t, http.MethodPost, "/profile/author/edit", url.Values{"username": {"other"}}, author)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, env.renderer.last.data.(view.ProfileFormPage).Errors, "username")

	w = env.do(t, http.MethodPost, "/profile/author/edit", url.Values{"username": {"renamed"}, "first_name": {"Ann"}}, author)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/profile/renamed", w.Header().Get("Location"))

	stored, err := env.repos.Users.GetByID(context.Background(), author.ID)
	require.NoError(t, err)
	assert.Equal(t, "renamed", stored.Username)
	assert.Equal(t, "Ann", stored.FirstName)
}

func TestRouter_Auth(t *testing.T) {
	env := setupRouterTest(t)
	author := env.user(t, "author")

	w := env.do(t, http.MethodPost, "/auth/login", url.Values{"username": {"author"}, "password": {"wrong"}}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, env.renderer.last.data.(view.LoginPage).Errors, forms.NonField)

	w = env.do(t, http.MethodPost, "/auth/login", url.Values{
		"username": {"author"},
		"password": {password},
		"next":     {"/posts/create"},
	}, nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/posts/create", w.Header().Get("Location"))
	assert.Contains(t, w.Header().Get("Set-Cookie"), cookieName+"=ey")

	w = env.do(t, http.MethodPost, "/auth/login", url.Values{
		"username": {"author"},
		"password": {password},
		"next":     {"https://evil.example"},
	}, nil)
	assert.Equal(t, "/", w.Header().Get("Location"))

	w = env.do(t, http.MethodGet, "/auth/login", nil, author)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	w = env.do(t, http.MethodPost, "/auth/logout", nil, author)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Contains(t, strings.Join(w.Header().Values("Set-Cookie"), "\n"), cookieName+"=;")
}

func TestRouter_Registration(t *testing.T) {
	env := setupRouterTest(t)
	env.user(t, "taken")

	w := env.do(t, http.MethodPost, "/auth/registration", url.Values{
		"username":  {"taken"},
		"password1": {"long-enough"},
		"password2": {"long-enough"},
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, env.renderer.last.data.(view.RegistrationPage).Errors, "username")

	w = env.do(t, http.MethodPost, "/auth/registration", url.Values{
		"username":  {"newbie"},
		"password1": {"long-enough"},
		"password2": {"long-enough"},
	}, nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, middleware.LoginPath, w.Header().Get("Location"))

	_, err := env.repos.Users.GetByUsername(context.Background(), "newbie")
	assert.NoError(t, err)
}

func TestRouter_StaleSessionIsAnonymous(t *testing.T) {
	env := setupRouterTest(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: cookieName, Value: "garbage"})
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, env.renderer.last.data.(view.IndexPage).Actor.IsAuthenticated())
	assert.Contains(t, strings.Join(w.Header().Values("Set-Cookie"), "\n"), cookieName+"=;")
}

func TestRouter_RecoversFromPanic(t *testing.T) {
	env := setupRouterTest(t)
	env.router.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := env.do(t, http.MethodGet, "/boom", nil, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, view.PageServerError, env.renderer.last.name)
}
