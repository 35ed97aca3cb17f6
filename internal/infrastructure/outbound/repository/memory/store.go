package memory

import (
	"sync"

	model "blogicum/internal/domain/models"
	ports "blogicum/internal/domain/ports/output"
)

// Store holds every table in memory and enforces the same referential rules
// as the postgres schema: deleting a user or post cascades, deleting a
// category or location clears the reference.
type Store struct {
	mu sync.RWMutex

	users      map[int64]*model.User
	categories map[int64]*model.Category
	locations  map[int64]*model.Location
	posts      map[int64]*model.Post
	comments   map[int64]*model.Comment

	nextUserID     int64
	nextCategoryID int64
	nextLocationID int64
	nextPostID     int64
	nextCommentID  int64
}

func NewStore() *Store {
	return &Store{
		users:          make(map[int64]*model.User),
		categories:     make(map[int64]*model.Category),
		locations:      make(map[int64]*model.Location),
		posts:          make(map[int64]*model.Post),
		comments:       make(map[int64]*model.Comment),
		nextUserID:     1,
		nextCategoryID: 1,
		nextLocationID: 1,
		nextPostID:     1,
		nextCommentID:  1,
	}
}

// Repositories bundles one repository per table over a shared store.
type Repositories struct {
	Posts      *PostRepository
	Comments   *CommentRepository
	Categories *CategoryRepository
	Locations  *LocationRepository
	Users      *UserRepository
}

func NewRepositories(store *Store, log ports.Logger) *Repositories {
	return &Repositories{
		Posts:      NewPostRepository(store, log),
		Comments:   NewCommentRepository(store, log),
		Categories: NewCategoryRepository(store, log),
		Locations:  NewLocationRepository(store, log),
		Users:      NewUserRepository(store, log),
	}
}

func (s *Store) deletePostLocked(id int64) {
	delete(s.posts, id)
	for commentID, comment := range s.comments {
		if comment.PostID == id {
			delete(s.comments, commentID)
		}
	}
}

func (s *Store) commentCountLocked(postID int64) int {
	count := 0
	for _, comment := range s.comments {
		if comment.PostID == postID {
			count++
		}
	}
	return count
}

func (s *Store) detailLocked(post *model.Post) *model.PostDetailed {
	postCopy := *post
	detailed := &model.PostDetailed{
		Post:         &postCopy,
		CommentCount: s.commentCountLocked(post.ID),
	}
	if author, ok := s.users[post.AuthorID]; ok {
		authorCopy := *author
		detailed.Author = &authorCopy
	}
	if post.CategoryID != nil {
		if category, ok := s.categories[*post.CategoryID]; ok {
			categoryCopy := *category
			detailed.Category = &categoryCopy
		}
	}
	if post.LocationID != nil {
		if location, ok := s.locations[*post.LocationID]; ok {
			locationCopy := *location
			detailed.Location = &locationCopy
		}
	}
	return detailed
}

func copyInt64(v *int64) *int64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func copyString(v *string) *string {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
