package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogicum/internal/custom_errors"
	model "blogicum/internal/domain/models"
	"blogicum/internal/infrastructure/logger"
	"blogicum/internal/infrastructure/outbound/repository/memory"
)

func setupStoreTest(t *testing.T) *memory.Repositories {
	t.Helper()
	return memory.NewRepositories(memory.NewStore(), logger.New("test"))
}

func mustUser(t *testing.T, repos *memory.Repositories, username string) *model.User {
	t.Helper()
	user, err := repos.Users.Create(context.Background(), &model.User{Username: username, PasswordHash: "x"})
	require.NoError(t, err)
	return user
}

func mustPost(t *testing.T, repos *memory.Repositories, post *model.Post) *model.Post {
	t.Helper()
	created, err := repos.Posts.Create(context.Background(), post)
	require.NoError(t, err)
	return created
}

func int64Ptr(v int64) *int64 { return &v }
func intPtr(v int) *int       { return &v }

func TestPostRepository_ListOrderingAndPaging(t *testing.T) {
	repos := setupStoreTest(t)
	ctx := context.Background()
	author := mustUser(t, repos, "author")
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		mustPost(t, repos, &model.Post{
			Title: "p", Text: "t", AuthorID: author.ID, IsPublished: true,
			PubDate: base.Add(time.Duration(i) * time.Hour),
		})
	}
	// same pub date as the newest one, higher id wins
	tie := mustPost(t, repos, &model.Post{
		Title: "tie", Text: "t", AuthorID: author.ID, IsPublished: true,
		PubDate: base.Add(4 * time.Hour),
	})

	posts, total, err := repos.Posts.List(ctx, model.PostFilters{Limit: intPtr(3), Offset: intPtr(0)})
	require.NoError(t, err)
	assert.Equal(t, 6, total)
	require.Len(t, posts, 3)
	assert.Equal(t, tie.ID, posts[0].Post.ID)
	for i := 1; i < len(posts); i++ {
		assert.False(t, posts[i].Post.PubDate.After(posts[i-1].Post.PubDate))
	}

	rest, total, err := repos.Posts.List(ctx, model.PostFilters{Limit: intPtr(3), Offset: intPtr(3)})
	require.NoError(t, err)
	assert.Equal(t, 6, total)
	assert.Len(t, rest, 3)

	empty, _, err := repos.Posts.List(ctx, model.PostFilters{Limit: intPtr(3), Offset: intPtr(30)})
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestPostRepository_ListPublicOnly(t *testing.T) {
	repos := setupStoreTest(t)
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	author := mustUser(t, repos, "author")

	visibleCat, err := repos.Categories.Create(ctx, &model.Category{Title: "a", Slug: "a", IsPublished: true})
	require.NoError(t, err)
	hiddenCat, err := repos.Categories.Create(ctx, &model.Category{Title: "b", Slug: "b", IsPublished: false})
	require.NoError(t, err)

	visible := mustPost(t, repos, &model.Post{Title: "visible", AuthorID: author.ID, IsPublished: true,
		PubDate: now.Add(-time.Hour), CategoryID: int64Ptr(visibleCat.ID)})
	noCategory := mustPost(t, repos, &model.Post{Title: "no category", AuthorID: author.ID, IsPublished: true,
		PubDate: now.Add(-2 * time.Hour)})
	mustPost(t, repos, &model.Post{Title: "future", AuthorID: author.ID, IsPublished: true,
		PubDate: now.Add(time.Hour)})
	mustPost(t, repos, &model.Post{Title: "unpublished", AuthorID: author.ID, IsPublished: false,
		PubDate: now.Add(-time.Hour)})
	mustPost(t, repos, &model.Post{Title: "hidden category", AuthorID: author.ID, IsPublished: true,
		PubDate: now.Add(-time.Hour), CategoryID: int64Ptr(hiddenCat.ID)})

	posts, total, err := repos.Posts.List(ctx, model.PostFilters{PublicOnly: true, Now: now})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, posts, 2)
	assert.Equal(t, visible.ID, posts[0].Post.ID)
	assert.Equal(t, noCategory.ID, posts[1].Post.ID)

	all, total, err := repos.Posts.List(ctx, model.PostFilters{AuthorID: int64Ptr(author.ID)})
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	assert.Len(t, all, 5)
}

func TestPostRepository_CommentCountIsLive(t *testing.T) {
	repos := setupStoreTest(t)
	ctx := context.Background()
	author := mustUser(t, repos, "author")
	post := mustPost(t, repos, &model.Post{Title: "p", AuthorID: author.ID, IsPublished: true, PubDate: time.Now().Add(-time.Hour)})

	for i := 0; i < 3; i++ {
		_, err := repos.Comments.Create(ctx, &model.Comment{PostID: post.ID, AuthorID: author.ID, Text: "c"})
		require.NoError(t, err)
	}

	detailed, err := repos.Posts.GetDetailedByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, detailed.CommentCount)
	assert.Equal(t, "author", detailed.Author.Username)

	comments, err := repos.Comments.ListByPost(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 3)
	require.NoError(t, repos.Comments.Delete(ctx, comments[0].Comment.ID))

	detailed, err = repos.Posts.GetDetailedByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, detailed.CommentCount)
}

func TestCommentRepository_ListByPostOrderedByCreation(t *testing.T) {
	repos := setupStoreTest(t)
	ctx := context.Background()
	author := mustUser(t, repos, "author")
	post := mustPost(t, repos, &model.Post{Title: "p", AuthorID: author.ID, PubDate: time.Now()})
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := repos.Comments.Create(ctx, &model.Comment{PostID: post.ID, AuthorID: author.ID, Text: "second", CreatedAt: base.Add(time.Minute)})
	require.NoError(t, err)
	_, err = repos.Comments.Create(ctx, &model.Comment{PostID: post.ID, AuthorID: author.ID, Text: "first", CreatedAt: base})
	require.NoError(t, err)

	comments, err := repos.Comments.ListByPost(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "first", comments[0].Comment.Text)
	assert.Equal(t, "second", comments[1].Comment.Text)

	_, err = repos.Comments.Create(ctx, &model.Comment{PostID: 999, AuthorID: author.ID, Text: "x"})
	assert.ErrorIs(t, err, custom_errors.ErrPostNotFound)
}

func TestStore_ReferentialRules(t *testing.T) {
	ctx := context.Background()

	t.Run("deleting a post removes its comments", func(t *testing.T) {
		repos := setupStoreTest(t)
		author := mustUser(t, repos, "author")
		post := mustPost(t, repos, &model.Post{Title: "p", AuthorID: author.ID, PubDate: time.Now()})
		comment, err := repos.Comments.Create(ctx, &model.Comment{PostID: post.ID, AuthorID: author.ID, Text: "c"})
		require.NoError(t, err)

		require.NoError(t, repos.Posts.Delete(ctx, post.ID))

		_, err = repos.Comments.GetByID(ctx, comment.ID)
		assert.ErrorIs(t, err, custom_errors.ErrCommentNotFound)
		assert.ErrorIs(t, repos.Posts.Delete(ctx, post.ID), custom_errors.ErrPostNotFound)
	})

	t.Run("deleting a user removes their posts and comments", func(t *testing.T) {
		repos := setupStoreTest(t)
		author := mustUser(t, repos, "author")
		other := mustUser(t, repos, "other")
		post := mustPost(t, repos, &model.Post{Title: "p", AuthorID: author.ID, PubDate: time.Now()})
		otherPost := mustPost(t, repos, &model.Post{Title: "o", AuthorID: other.ID, PubDate: time.Now()})
		onOther, err := repos.Comments.Create(ctx, &model.Comment{PostID: otherPost.ID, AuthorID: author.ID, Text: "c"})
		require.NoError(t, err)

		require.NoError(t, repos.Users.Delete(ctx, author.ID))

		_, err = repos.Posts.GetByID(ctx, post.ID)
		assert.ErrorIs(t, err, custom_errors.ErrPostNotFound)
		_, err = repos.Comments.GetByID(ctx, onOther.ID)
		assert.ErrorIs(t, err, custom_errors.ErrCommentNotFound)
		_, err = repos.Posts.GetByID(ctx, otherPost.ID)
		assert.NoError(t, err)
	})

	t.Run("deleting a category or location clears the reference", func(t *testing.T) {
		repos := setupStoreTest(t)
		author := mustUser(t, repos, "author")
		category, err := repos.Categories.Create(ctx, &model.Category{Title: "c", Slug: "c", IsPublished: true})
		require.NoError(t, err)
		location, err := repos.Locations.Create(ctx, &model.Location{Name: "l", IsPublished: true})
		require.NoError(t, err)
		post := mustPost(t, repos, &model.Post{Title: "p", AuthorID: author.ID, PubDate: time.Now(),
			CategoryID: int64Ptr(category.ID), LocationID: int64Ptr(location.ID)})

		require.NoError(t, repos.Categories.Delete(ctx, category.ID))
		require.NoError(t, repos.Locations.Delete(ctx, location.ID))

		got, err := repos.Posts.GetDetailedByID(ctx, post.ID)
		require.NoError(t, err)
		assert.Nil(t, got.Post.CategoryID)
		assert.Nil(t, got.Post.LocationID)
		assert.Nil(t, got.Category)
		assert.Nil(t, got.Location)
	})
}

func TestUserAndCategory_Uniqueness(t *testing.T) {
	repos := setupStoreTest(t)
	ctx := context.Background()

	mustUser(t, repos, "alice")
	bob := mustUser(t, repos, "bob")

	_, err := repos.Users.Create(ctx, &model.User{Username: "alice"})
	assert.ErrorIs(t, err, custom_errors.ErrUsernameTaken)

	_, err = repos.Users.Update(ctx, bob.ID, &model.UpdateProfileDTO{Username: "alice"})
	assert.ErrorIs(t, err, custom_errors.ErrUsernameTaken)

	updated, err := repos.Users.Update(ctx, bob.ID, &model.UpdateProfileDTO{Username: "robert", FirstName: "Rob"})
	require.NoError(t, err)
	assert.Equal(t, "robert", updated.Username)

	_, err = repos.Categories.Create(ctx, &model.Category{Title: "x", Slug: "travel"})
	require.NoError(t, err)
	_, err = repos.Categories.Create(ctx, &model.Category{Title: "y", Slug: "travel"})
	assert.ErrorIs(t, err, custom_errors.ErrSlugTaken)
}
