// Package visibility decides who may see and who may change posts and
// comments. All functions are pure.
package visibility

import (
	"time"

	model "blogicum/internal/domain/models"
)

// IsPubliclyVisible reports whether any visitor may see the post at now:
// it is published, its pub date has passed and its category, if any, is
// published.
func IsPubliclyVisible(post *model.PostDetailed, now time.Time) bool {
	if post == nil || post.Post == nil {
		return false
	}
	if !post.Post.IsPublished {
		return false
	}
	if post.Post.PubDate.After(now) {
		return false
	}
	if post.Post.CategoryID != nil && (post.Category == nil || !post.Category.IsPublished) {
		return false
	}
	return true
}

// CanView reports whether viewer may open the post. Authors always see their
// own posts, which is how scheduled and unpublished posts are previewed.
func CanView(post *model.PostDetailed, viewer model.Actor, now time.Time) bool {
	if IsPubliclyVisible(post, now) {
		return true
	}
	return post != nil && post.Post != nil && IsOwner(post, viewer)
}

// CanMutate reports whether actor may edit or delete entity.
func CanMutate(entity model.Authored, actor model.Actor) bool {
	return IsOwner(entity, actor)
}

func IsOwner(entity model.Authored, actor model.Actor) bool {
	if entity == nil || !actor.IsAuthenticated() {
		return false
	}
	return entity.GetAuthorID() == actor.UserID
}
