package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"blogcms/internal/cache"
	"blogcms/internal/logger"
	"blogcms/internal/models"
	"blogcms/internal/repository"

	"github.com/gosimple/slug"
	"golang.org/x/crypto/bcrypt"
)

const (
	AdminPageSize = 25
	maxSlugLength = 200
	fallbackSlug  = "post"
)

// AdminService 后台文章与评论管理
type AdminService struct {
	posts        repository.PostRepository
	comments     repository.CommentRepository
	cache        cache.Store
	passwordHash string
}

// NewAdminService 创建后台服务，passwordHash 为空时后台不可用
func NewAdminService(posts repository.PostRepository, comments repository.CommentRepository, store cache.Store, passwordHash string) *AdminService {
	return &AdminService{
		posts:        posts,
		comments:     comments,
		cache:        store,
		passwordHash: strings.TrimSpace(passwordHash),
	}
}

// Enabled reports whether an admin password is configured.
func (s *AdminService) Enabled() bool {
	return s.passwordHash != ""
}

// Login checks password against the configured bcrypt hash.
func (s *AdminService) Login(password string) error {
	if !s.Enabled() {
		return ErrAdminDisabled
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrInvalidPassword
		}
		return fmt.Errorf("compare admin password: %w", err)
	}
	return nil
}

// HashPassword 生成 admin.password_hash 配置值
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// PostFilter 后台文章列表筛选
type PostFilter struct {
	Search   string
	IsPublic *bool
	Category string
	Author   string
	Page     int
}

// ListPosts 后台文章列表
func (s *AdminService) ListPosts(ctx context.Context, f PostFilter) ([]models.Post, int64, error) {
	q := repository.PostQuery{
		Search:   f.Search,
		IsPublic: f.IsPublic,
		Category: strings.TrimSpace(f.Category),
		Author:   strings.TrimSpace(f.Author),
	}
	total, err := s.posts.Count(ctx, q)
	if err != nil {
		return nil, 0, fmt.Errorf("count admin posts: %w", err)
	}
	q.Page = f.Page
	q.PageSize = AdminPageSize
	posts, err := s.posts.List(ctx, q)
	if err != nil {
		return nil, 0, fmt.Errorf("list admin posts: %w", err)
	}
	return posts, total, nil
}

// GetPost 获取任意状态的文章
func (s *AdminService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	post, err := s.posts.Get(ctx, repository.PostQuery{ID: id})
	if err != nil {
		return nil, fmt.Errorf("get admin post %d: %w", id, err)
	}
	if post == nil {
		return nil, ErrNotFound
	}
	return post, nil
}

// PostInput 创建/更新文章输入
type PostInput struct {
	Title         string `json:"title"`
	Author        string `json:"author"`
	Slug          string `json:"slug"`
	Content       string `json:"content"`
	Category      string `json:"category"`
	Tags          string `json:"tags"`
	FeaturedImage string `json:"featured_image"`
	IsPublic      *bool  `json:"is_public"`
}

func (in *PostInput) normalize() error {
	in.Title = strings.TrimSpace(in.Title)
	in.Author = strings.TrimSpace(in.Author)
	in.Slug = strings.TrimSpace(in.Slug)
	in.Category = strings.TrimSpace(in.Category)
	in.Tags = strings.TrimSpace(in.Tags)
	in.FeaturedImage = strings.TrimSpace(in.FeaturedImage)
	if in.Title == "" || in.Author == "" || strings.TrimSpace(in.Content) == "" {
		return fmt.Errorf("%w: title, author and content are required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(in.Title) > 200 || utf8.RuneCountInString(in.Author) > 100 ||
		utf8.RuneCountInString(in.Category) > 100 || utf8.RuneCountInString(in.Tags) > 200 ||
		utf8.RuneCountInString(in.FeaturedImage) > 255 {
		return fmt.Errorf("%w: field too long", ErrInvalidInput)
	}
	if in.Category == "" {
		in.Category = models.DefaultCategory
	}
	return nil
}

// CreatePost 创建文章。slug 为空时由标题生成并自动去重
func (s *AdminService) CreatePost(ctx context.Context, in PostInput) (*models.Post, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}
	postSlug, err := s.resolveSlug(ctx, in.Slug, in.Title, 0)
	if err != nil {
		return nil, err
	}

	isPublic := true
	if in.IsPublic != nil {
		isPublic = *in.IsPublic
	}
	post := &models.Post{
		Title:         in.Title,
		Author:        in.Author,
		Slug:          postSlug,
		Content:       in.Content,
		Category:      in.Category,
		Tags:          in.Tags,
		FeaturedImage: in.FeaturedImage,
		IsPublic:      isPublic,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	s.invalidate(ctx)
	return post, nil
}

// UpdatePost 全量更新文章
func (s *AdminService) UpdatePost(ctx context.Context, id uint, in PostInput) (*models.Post, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}
	post, err := s.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	postSlug, err := s.resolveSlug(ctx, in.Slug, in.Title, id)
	if err != nil {
		return nil, err
	}

	post.Title = in.Title
	post.Author = in.Author
	post.Slug = postSlug
	post.Content = in.Content
	post.Category = in.Category
	post.Tags = in.Tags
	post.FeaturedImage = in.FeaturedImage
	if in.IsPublic != nil {
		post.IsPublic = *in.IsPublic
	}
	if err := s.posts.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("update post %d: %w", id, err)
	}
	s.invalidate(ctx)
	return post, nil
}

// SetPostPublic 切换发布状态
func (s *AdminService) SetPostPublic(ctx context.Context, id uint, isPublic bool) error {
	ok, err := s.posts.SetPublic(ctx, id, isPublic)
	if err != nil {
		return fmt.Errorf("set post %d public: %w", id, err)
	}
	if !ok {
		return ErrNotFound
	}
	s.invalidate(ctx)
	return nil
}

// DeletePost 删除文章及其评论
func (s *AdminService) DeletePost(ctx context.Context, id uint) error {
	ok, err := s.posts.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete post %d: %w", id, err)
	}
	if !ok {
		return ErrNotFound
	}
	s.invalidate(ctx)
	return nil
}

// CommentFilter 后台评论列表筛选
type CommentFilter struct {
	Search     string
	IsApproved *bool
	PostID     uint
	Page       int
}

// ListComments 后台评论列表，关联文章在同一次查询中加载
func (s *AdminService) ListComments(ctx context.Context, f CommentFilter) ([]models.Comment, int64, error) {
	q := repository.CommentQuery{
		Search:     f.Search,
		IsApproved: f.IsApproved,
		PostID:     f.PostID,
	}
	total, err := s.comments.Count(ctx, q)
	if err != nil {
		return nil, 0, fmt.Errorf("count admin comments: %w", err)
	}
	q.Page = f.Page
	q.PageSize = AdminPageSize
	q.WithPost = true
	comments, err := s.comments.List(ctx, q)
	if err != nil {
		return nil, 0, fmt.Errorf("list admin comments: %w", err)
	}
	return comments, total, nil
}

// SetCommentApproved 切换评论审核状态
func (s *AdminService) SetCommentApproved(ctx context.Context, id uint, approved bool) error {
	ok, err := s.comments.SetApproved(ctx, id, approved)
	if err != nil {
		return fmt.Errorf("set comment %d approved: %w", id, err)
	}
	if !ok {
		return ErrNotFound
	}
	s.invalidate(ctx)
	return nil
}

// resolveSlug validates an explicit slug or derives a free one from the title.
func (s *AdminService) resolveSlug(ctx context.Context, explicit, title string, excludeID uint) (string, error) {
	if explicit != "" {
		normalized := truncateSlug(slug.Make(explicit), maxSlugLength)
		if normalized == "" {
			return "", fmt.Errorf("%w: slug has no usable characters", ErrInvalidInput)
		}
		exists, err := s.posts.SlugExists(ctx, normalized, excludeID)
		if err != nil {
			return "", fmt.Errorf("check slug: %w", err)
		}
		if exists {
			return "", ErrSlugExists
		}
		return normalized, nil
	}

	base := truncateSlug(slug.Make(title), maxSlugLength)
	if base == "" {
		base = fallbackSlug
	}
	candidate := base
	for n := 2; ; n++ {
		exists, err := s.posts.SlugExists(ctx, candidate, excludeID)
		if err != nil {
			return "", fmt.Errorf("check slug: %w", err)
		}
		if !exists {
			return candidate, nil
		}
		suffix := "-" + strconv.Itoa(n)
		candidate = truncateSlug(base, maxSlugLength-len(suffix)) + suffix
	}
}

func truncateSlug(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return strings.TrimRight(s[:n], "-")
}

func (s *AdminService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, PostsCacheKey); err != nil {
		logger.Warnw("api_posts_cache_invalidate_failed", "error", err)
	}
}
