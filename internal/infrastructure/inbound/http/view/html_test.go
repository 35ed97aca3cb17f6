package view_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "blogicum/internal/domain/models"
	"blogicum/internal/infrastructure/inbound/http/forms"
	"blogicum/internal/infrastructure/inbound/http/session"
	"blogicum/internal/infrastructure/inbound/http/view"
	"blogicum/internal/infrastructure/logger"
)

func newContext(path string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, path, nil)
	session.SetActor(c, model.Actor{UserID: 1, Username: "author"})
	session.SetCSRFToken(c, "csrf-value")
	return c, w
}

func samplePost() *model.PostDetailed {
	image := "posts_images/a.png"
	return &model.PostDetailed{
		Post: &model.Post{
			ID:          5,
			Title:       "Trip <report>",
			Text:        "one two three",
			PubDate:     time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
			AuthorID:    1,
			IsPublished: true,
			Image:       &image,
		},
		Author:       &model.User{ID: 1, Username: "author"},
		Category:     &model.Category{ID: 2, Title: "Travel", Slug: "travel", IsPublished: true},
		Location:     &model.Location{ID: 3, Name: "Island", IsPublished: true},
		CommentCount: 1,
	}
}

func sampleComments() []*model.CommentDetailed {
	return []*model.CommentDetailed{{
		Comment: &model.Comment{ID: 9, PostID: 5, AuthorID: 1, Text: "first!"},
		Author:  &model.User{ID: 1, Username: "author"},
	}}
}

func TestHTMLRenderer_Pages(t *testing.T) {
	renderer, err := view.NewHTMLRenderer("/media", logger.New("test"))
	require.NoError(t, err)

	page := &model.PostPage{Posts: []*model.PostDetailed{samplePost()}, Number: 2, TotalPages: 3, TotalCount: 21, PageSize: 10}
	categories := []*model.Category{{ID: 2, Title: "Travel"}}
	locations := []*model.Location{{ID: 3, Name: "Island"}}

	tests := []struct {
		name     string
		page     string
		data     func(c *gin.Context) any
		contains []string
	}{
		{
			name: "index",
			page: view.PageIndex,
			data: func(c *gin.Context) any { return view.IndexPage{Base: view.NewBase(c), Page: page} },
			contains: []string{
				`href="/posts/5"`, "Trip &lt;report&gt;", "/media/posts_images/a.png",
				"Comments (1)", "Page 2 of 3", `href="?page=3"`, `href="/category/travel"`,
			},
		},
		{
			name: "category",
			page: view.PageCategory,
			data: func(c *gin.Context) any {
				return view.CategoryPage{Base: view.NewBase(c), Category: categories[0], Page: &model.PostPage{Number: 1, TotalPages: 1}}
			},
			contains: []string{"Travel", "No posts yet."},
		},
		{
			name: "profile",
			page: view.PageProfile,
			data: func(c *gin.Context) any {
				return view.ProfilePage{Base: view.NewBase(c), Profile: &model.User{Username: "author", FirstName: "Ann"}, Page: page, IsOwner: true}
			},
			contains: []string{"Name: Ann", `href="/profile/author/edit"`},
		},
		{
			name: "detail",
			page: view.PageDetail,
			data: func(c *gin.Context) any {
				return view.PostDetailPage{
					Base:     view.NewBase(c),
					Post:     samplePost(),
					Comments: sampleComments(),
					Form:     &forms.CommentForm{},
					Errors:   forms.FieldErrors{"text": "This field is required."},
					CanEdit:  true,
				}
			},
			contains: []string{
				`href="/posts/5/edit"`, `href="/posts/5/delete_comment/9"`, "first!",
				`value="csrf-value"`, "This field is required.",
			},
		},
		{
			name: "create",
			page: view.PagePostForm,
			data: func(c *gin.Context) any {
				return view.PostFormPage{Base: view.NewBase(c), Form: &forms.PostForm{CategoryID: "2"}, Categories: categories, Locations: locations}
			},
			contains: []string{`action="/posts/create"`, `<option value="2" selected>Travel</option>`, `<option value="3">Island</option>`},
		},
		{
			name: "edit",
			page: view.PagePostForm,
			data: func(c *gin.Context) any {
				return view.PostFormPage{Base: view.NewBase(c), Form: forms.PostFormFrom(samplePost().Post), Post: samplePost()}
			},
			contains: []string{`action="/posts/5/edit"`, `name="image_clear"`},
		},
		{
			name: "delete",
			page: view.PagePostForm,
			data: func(c *gin.Context) any {
				return view.PostFormPage{Base: view.NewBase(c), Form: &forms.PostForm{}, Post: samplePost(), Comments: sampleComments(), Delete: true}
			},
			contains: []string{`action="/posts/5/delete"`, "first!"},
		},
		{
			name: "comment edit",
			page: view.PageCommentForm,
			data: func(c *gin.Context) any {
				comment := sampleComments()[0].Comment
				return view.CommentFormPage{Base: view.NewBase(c), PostID: 5, Comment: comment, Form: forms.CommentFormFrom(comment)}
			},
			contains: []string{`action="/posts/5/edit_comment/9"`, "first!"},
		},
		{
			name: "profile form",
			page: view.PageProfileForm,
			data: func(c *gin.Context) any {
				return view.ProfileFormPage{Base: view.NewBase(c), Form: &forms.ProfileForm{Username: "author"}}
			},
			contains: []string{`action="/profile/author/edit"`, `value="author"`},
		},
		{
			name: "login",
			page: view.PageLogin,
			data: func(c *gin.Context) any {
				return view.LoginPage{Base: view.NewBase(c), Form: &forms.LoginForm{Next: "/posts/5"}, Errors: forms.FieldErrors{forms.NonField: "bad"}}
			},
			contains: []string{`name="next" value="/posts/5"`, "bad"},
		},
		{
			name: "registration",
			page: view.PageRegistration,
			data: func(c *gin.Context) any {
				return view.RegistrationPage{Base: view.NewBase(c), Form: &forms.RegisterForm{}}
			},
			contains: []string{`name="password2"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newContext("/somewhere")
			renderer.Render(c, http.StatusOK, tt.page, tt.data(c))

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
			for _, s := range tt.contains {
				assert.Contains(t, w.Body.String(), s)
			}
		})
	}
}

func TestErrorPages(t *testing.T) {
	renderer, err := view.NewHTMLRenderer("/media", logger.New("test"))
	require.NoError(t, err)

	c, w := newContext("/missing")
	view.NotFound(c, renderer)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "/missing")

	c, w = newContext("/")
	view.CSRFFailure(c, renderer, "token missing")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "token missing")

	c, w = newContext("/")
	view.ServerError(c, renderer)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestHTMLRenderer_UnknownPage(t *testing.T) {
	renderer, err := view.NewHTMLRenderer("/media", logger.New("test"))
	require.NoError(t, err)

	c, w := newContext("/")
	renderer.Render(c, http.StatusOK, "nope.html", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
