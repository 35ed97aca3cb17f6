package redis

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"blogicum/internal/custom_errors"
	model "blogicum/internal/domain/models"
	ports "blogicum/internal/domain/ports/output"
)

// Post details change whenever a comment is added, so entries live briefly and
// writers invalidate explicitly.
const postTTL = time.Minute

// PostCache stores detailed posts as loaded from the database. Entries say
// nothing about who may see them; readers check visibility on every hit.
type PostCache struct {
	client *Client
	log    ports.Logger
}

func NewPostCache(client *Client, log ports.Logger) *PostCache {
	return &PostCache{client: client, log: log}
}

func (p *PostCache) GetPost(ctx context.Context, postID int64) (*model.PostDetailed, error) {
	var post model.PostDetailed
	err := p.client.getJSON(ctx, postKey(postID), &post)
	if err == nil && post.Post == nil {
		err = custom_errors.ErrCacheMiss
	}
	switch {
	case err == nil:
		p.client.metrics.IncrementCacheHits("post")
		return &post, nil
	case errors.Is(err, custom_errors.ErrCacheMiss):
		p.client.metrics.IncrementCacheMisses("post")
		return nil, custom_errors.ErrCacheMiss
	default:
		p.log.Error("Post cache read failed", slog.Int64("post_id", postID), slog.String("error", err.Error()))
		return nil, err
	}
}

func (p *PostCache) SetPost(ctx context.Context, post *model.PostDetailed) error {
	if post == nil || post.Post == nil {
		return custom_errors.ErrInvalidInput
	}
	return p.client.setJSON(ctx, postKey(post.Post.ID), post, postTTL)
}

func (p *PostCache) DeletePost(ctx context.Context, postID int64) error {
	if err := p.client.del(ctx, postKey(postID)); err != nil {
		return err
	}
	p.log.Debug("Post evicted from cache", slog.Int64("post_id", postID))
	return nil
}

func postKey(postID int64) string {
	return "post:" + strconv.FormatInt(postID, 10)
}
