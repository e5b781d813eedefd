package api

import (
	"context"
	"net/http"
)

// PostService manages blog posts.
type PostService struct {
	ep endpoint[Post]
}

// List returns a page of posts, drafts included.
func (s *PostService) List(ctx context.Context, p Page) (List[Post], error) {
	return s.ep.list(ctx, p)
}

// Get returns the post with the given id.
func (s *PostService) Get(ctx context.Context, id string) (Post, error) {
	return s.ep.get(ctx, id)
}

// GetBySlug returns the post published under slug.
func (s *PostService) GetBySlug(ctx context.Context, slug string) (Post, error) {
	return s.ep.get(ctx, "slug", slug)
}

// Create stores a new draft.
func (s *PostService) Create(ctx context.Context, in NewPost) (Post, error) {
	return s.ep.create(ctx, in)
}

// Update replaces the post's content.
func (s *PostService) Update(ctx context.Context, id string, in NewPost) (Post, error) {
	return s.ep.send(ctx, http.MethodPut, in, id)
}

// Publish makes a draft visible on the public blog.
func (s *PostService) Publish(ctx context.Context, id string) (Post, error) {
	return s.ep.send(ctx, http.MethodPost, nil, id, "publish")
}

// Delete removes the post.
func (s *PostService) Delete(ctx context.Context, id string) error {
	return s.ep.remove(ctx, id)
}
