package services

import (
	"context"
	"fmt"
	"time"

	"blogcms/internal/cache"
	"blogcms/internal/logger"
	"blogcms/internal/models"
	"blogcms/internal/repository"
)

const (
	PostsCacheKey   = "api:posts"
	DefaultCacheTTL = 60 * time.Second
)

// PostResource is the Read API representation of a post.
type PostResource struct {
	ID            uint      `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	IsPublic      bool      `json:"is_public"`
	Content       string    `json:"content"`
	Category      string    `json:"category"`
	Slug          string    `json:"slug"`
	FeaturedImage *string   `json:"featured_image"`
	DateCreated   time.Time `json:"date_created"`
}

// NewPostResource 序列化文章，空图片输出为 null
func NewPostResource(p *models.Post) PostResource {
	res := PostResource{
		ID:          p.ID,
		Title:       p.Title,
		Author:      p.Author,
		IsPublic:    p.IsPublic,
		Content:     p.Content,
		Category:    p.Category,
		Slug:        p.Slug,
		DateCreated: p.CreatedAt,
	}
	if p.FeaturedImage != "" {
		image := p.FeaturedImage
		res.FeaturedImage = &image
	}
	return res
}

// APIService backs the read-only JSON endpoints.
type APIService struct {
	posts repository.PostRepository
	cache cache.Store
	ttl   time.Duration
}

// NewAPIService 创建 API 服务，store 为 nil 时不缓存
func NewAPIService(posts repository.PostRepository, store cache.Store, ttl time.Duration) *APIService {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &APIService{posts: posts, cache: store, ttl: ttl}
}

// ListPosts returns every public post, newest first. Approved comments are prefetched in a
// single batched query.
func (s *APIService) ListPosts(ctx context.Context) ([]PostResource, error) {
	var cached []PostResource
	hit, err := cache.GetJSON(ctx, s.cache, PostsCacheKey, &cached)
	if err != nil {
		logger.Warnw("api_posts_cache_read_failed", "error", err)
	} else if hit {
		return cached, nil
	}

	posts, err := s.posts.List(ctx, repository.PostQuery{OnlyPublic: true, WithApprovedComments: true})
	if err != nil {
		return nil, fmt.Errorf("list api posts: %w", err)
	}
	out := make([]PostResource, len(posts))
	for i := range posts {
		out[i] = NewPostResource(&posts[i])
	}

	if err := cache.SetJSON(ctx, s.cache, PostsCacheKey, out, s.ttl); err != nil {
		logger.Warnw("api_posts_cache_write_failed", "error", err)
	}
	return out, nil
}

// GetPost returns one public post by id.
func (s *APIService) GetPost(ctx context.Context, id uint) (*PostResource, error) {
	post, err := s.posts.Get(ctx, repository.PostQuery{ID: id, OnlyPublic: true, WithApprovedComments: true})
	if err != nil {
		return nil, fmt.Errorf("get api post %d: %w", id, err)
	}
	if post == nil {
		return nil, ErrNotFound
	}
	res := NewPostResource(post)
	return &res, nil
}
