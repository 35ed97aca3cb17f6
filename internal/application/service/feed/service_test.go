package feed_service

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"blogicum/internal/custom_errors"
	model "blogicum/internal/domain/models"
	"blogicum/internal/infrastructure/logger"
	"blogicum/internal/infrastructure/outbound/repository/memory"
	post_repository_mock "blogicum/mocks/post"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	service *FeedService
	repos   *memory.Repositories
	author  *model.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repos := memory.NewRepositories(memory.NewStore(), logger.New("test"))
	author, err := repos.Users.Create(context.Background(), &model.User{Username: "author", PasswordHash: "x"})
	require.NoError(t, err)

	s := NewFeedService(repos.Posts, repos.Categories, repos.Users, logger.New("test"))
	s.now = func() time.Time { return testNow }
	return &fixture{service: s, repos: repos, author: author}
}

func (f *fixture) post(t *testing.T, p model.Post) *model.Post {
	t.Helper()
	if p.AuthorID == 0 {
		p.AuthorID = f.author.ID
	}
	if p.Title == "" {
		p.Title = "post"
	}
	created, err := f.repos.Posts.Create(context.Background(), &p)
	require.NoError(t, err)
	return created
}

func (f *fixture) publicPosts(t *testing.T, n int) []*model.Post {
	t.Helper()
	posts := make([]*model.Post, 0, n)
	for i := 0; i < n; i++ {
		posts = append(posts, f.post(t, model.Post{
			Title:       fmt.Sprintf("post %d", i),
			IsPublished: true,
			PubDate:     testNow.Add(-time.Duration(n-i) * time.Minute),
		}))
	}
	return posts
}

func TestFeedService_GlobalFeedPaging(t *testing.T) {
	f := newFixture(t)
	posts := f.publicPosts(t, 25)
	ctx := context.Background()

	tests := []struct {
		name       string
		page       int
		wantNumber int
		wantLen    int
		wantFirst  int64
	}{
		{name: "first page holds the ten newest", page: 1, wantNumber: 1, wantLen: 10, wantFirst: posts[24].ID},
		{name: "last page holds the remainder", page: 3, wantNumber: 3, wantLen: 5, wantFirst: posts[4].ID},
		{name: "past the end clamps to the last page", page: 99, wantNumber: 3, wantLen: 5, wantFirst: posts[4].ID},
		{name: "zero clamps to the first page", page: 0, wantNumber: 1, wantLen: 10, wantFirst: posts[24].ID},
		{name: "negative clamps to the first page", page: -4, wantNumber: 1, wantLen: 10, wantFirst: posts[24].ID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := f.service.GlobalFeed(ctx, tt.page)
			require.NoError(t, err)
			assert.Equal(t, tt.wantNumber, page.Number)
			assert.Equal(t, 3, page.TotalPages)
			assert.Equal(t, 25, page.TotalCount)
			assert.Equal(t, PageSize, page.PageSize)
			require.Len(t, page.Posts, tt.wantLen)
			assert.Equal(t, tt.wantFirst, page.Posts[0].Post.ID)
		})
	}
}

func TestFeedService_EmptyFeedIsOnePage(t *testing.T) {
	f := newFixture(t)

	page, err := f.service.GlobalFeed(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Number)
	assert.Equal(t, 1, page.TotalPages)
	assert.Empty(t, page.Posts)
	assert.False(t, page.HasPrev())
	assert.False(t, page.HasNext())
}

func TestFeedService_VisibilityAcrossFeeds(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	travel, err := f.repos.Categories.Create(ctx, &model.Category{Title: "Travel", Slug: "travel", IsPublished: true})
	require.NoError(t, err)
	hidden, err := f.repos.Categories.Create(ctx, &model.Category{Title: "Hidden", Slug: "hidden", IsPublished: false})
	require.NoError(t, err)

	visible := f.post(t, model.Post{IsPublished: true, PubDate: testNow.Add(-time.Hour), CategoryID: &travel.ID})
	future := f.post(t, model.Post{IsPublished: true, PubDate: testNow.Add(time.Hour), CategoryID: &travel.ID})
	draft := f.post(t, model.Post{IsPublished: false, PubDate: testNow.Add(-time.Hour)})
	inHidden := f.post(t, model.Post{IsPublished: true, PubDate: testNow.Add(-time.Hour), CategoryID: &hidden.ID})

	ids := func(page *model.PostPage) []int64 {
		out := make([]int64, 0, len(page.Posts))
		for _, p := range page.Posts {
			out = append(out, p.Post.ID)
		}
		return out
	}

	global, err := f.service.GlobalFeed(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{visible.ID}, ids(global))

	category, err := f.service.CategoryFeed(ctx, "travel", 1)
	require.NoError(t, err)
	assert.Equal(t, travel.ID, category.Category.ID)
	assert.Equal(t, []int64{visible.ID}, ids(category.Page))

	_, err = f.service.CategoryFeed(ctx, "hidden", 1)
	assert.ErrorIs(t, err, custom_errors.ErrCategoryNotFound)
	_, err = f.service.CategoryFeed(ctx, "missing", 1)
	assert.ErrorIs(t, err, custom_errors.ErrCategoryNotFound)

	stranger, err := f.service.ProfileFeed(ctx, model.Actor{UserID: 999, Username: "x"}, "author", 1)
	require.NoError(t, err)
	assert.False(t, stranger.IsOwner)
	assert.Equal(t, []int64{visible.ID}, ids(stranger.Page))

	anonymous, err := f.service.ProfileFeed(ctx, model.Anonymous(), "author", 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{visible.ID}, ids(anonymous.Page))

	owner, err := f.service.ProfileFeed(ctx, model.ActorFor(f.author), "author", 1)
	require.NoError(t, err)
	assert.True(t, owner.IsOwner)
	assert.ElementsMatch(t, []int64{visible.ID, future.ID, draft.ID, inHidden.ID}, ids(owner.Page))
	assert.Equal(t, future.ID, owner.Page.Posts[0].Post.ID)

	_, err = f.service.ProfileFeed(ctx, model.Anonymous(), "nobody", 1)
	assert.ErrorIs(t, err, custom_errors.ErrUserNotFound)
}

func TestFeedService_CommentCountIsLive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	post := f.post(t, model.Post{IsPublished: true, PubDate: testNow.Add(-time.Hour)})

	for i := 0; i < 4; i++ {
		_, err := f.repos.Comments.Create(ctx, &model.Comment{PostID: post.ID, AuthorID: f.author.ID, Text: "c"})
		require.NoError(t, err)
	}

	page, err := f.service.GlobalFeed(ctx, 1)
	require.NoError(t, err)
	require.Len(t, page.Posts, 1)
	assert.Equal(t, 4, page.Posts[0].CommentCount)

	comments, err := f.repos.Comments.ListByPost(ctx, post.ID)
	require.NoError(t, err)
	require.NoError(t, f.repos.Comments.Delete(ctx, comments[0].Comment.ID))

	page, err = f.service.GlobalFeed(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, page.Posts[0].CommentCount)
}

func TestFeedService_ScheduledPostAppearsOnceDue(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	scheduled := f.post(t, model.Post{IsPublished: true, PubDate: testNow.Add(30 * time.Minute)})

	page, err := f.service.GlobalFeed(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, page.Posts)

	f.service.now = func() time.Time { return testNow.Add(time.Hour) }
	page, err = f.service.GlobalFeed(ctx, 1)
	require.NoError(t, err)
	require.Len(t, page.Posts, 1)
	assert.Equal(t, scheduled.ID, page.Posts[0].Post.ID)
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total int
		want  int
	}{
		{0, 1}, {1, 1}, {10, 1}, {11, 2}, {25, 3}, {30, 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TotalPages(tt.total), "total=%d", tt.total)
	}
}

func TestFeedService_HugePageNeverSendsNegativeOffset(t *testing.T) {
	postRepo := new(post_repository_mock.Repository)
	var offsets []int
	postRepo.On("List", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			offsets = append(offsets, *args.Get(1).(model.PostFilters).Offset)
		}).
		Return(nil, 25, nil)

	s := NewFeedService(postRepo, nil, nil, logger.New("test"))
	s.now = func() time.Time { return testNow }

	for _, page := range []int{math.MaxInt/PageSize + 2, math.MaxInt} {
		offsets = nil
		result, err := s.GlobalFeed(context.Background(), page)
		require.NoError(t, err)
		assert.Equal(t, 3, result.Number)
		require.NotEmpty(t, offsets)
		for _, offset := range offsets {
			assert.GreaterOrEqual(t, offset, 0)
		}
		assert.Equal(t, 20, offsets[len(offsets)-1])
	}
}
