package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"blogcms/internal/models"
	"blogcms/internal/repository"
	"blogcms/internal/utils"

	"github.com/go-playground/validator/v10"
)

const (
	ListPageSize        = 6
	DefaultCommentCount = 3
	CommentCountStep    = 5
)

const (
	MsgCommentSubmitted = "Your comment has been submitted successfully!"
	MsgFillAllFields    = "Please fill in all fields."
	MsgFieldsTooLong    = "Please shorten the highlighted fields."
)

// BlogService 前台文章列表、详情与评论提交
type BlogService struct {
	posts    repository.PostRepository
	comments repository.CommentRepository
	validate *validator.Validate
}

// NewBlogService 创建前台服务
func NewBlogService(posts repository.PostRepository, comments repository.CommentRepository) *BlogService {
	return &BlogService{
		posts:    posts,
		comments: comments,
		validate: newValidator(),
	}
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report fields by their form name
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// ListPosts returns one page of public posts matching query, plus the trimmed query.
func (s *BlogService) ListPosts(ctx context.Context, query, page string) (*Page[models.Post], string, error) {
	query = strings.TrimSpace(query)
	q := repository.PostQuery{
		OnlyPublic: true,
		Search:     query,
		Fields:     repository.PostSummaryFields,
	}

	total, err := s.posts.Count(ctx, q)
	if err != nil {
		return nil, query, fmt.Errorf("count posts: %w", err)
	}
	number, pages := resolvePage(page, total, ListPageSize)

	result := &Page[models.Post]{
		Items:      []models.Post{},
		Number:     number,
		TotalPages: pages,
		TotalCount: total,
		PerPage:    ListPageSize,
	}
	if total == 0 {
		return result, query, nil
	}

	q.Page = number
	q.PageSize = ListPageSize
	posts, err := s.posts.List(ctx, q)
	if err != nil {
		return nil, query, fmt.Errorf("list posts: %w", err)
	}
	result.Items = posts
	return result, query, nil
}

// LatestPosts returns the newest public posts with their content, for feeds.
func (s *BlogService) LatestPosts(ctx context.Context, limit int) ([]models.Post, error) {
	posts, err := s.posts.List(ctx, repository.PostQuery{OnlyPublic: true, Page: 1, PageSize: limit})
	if err != nil {
		return nil, fmt.Errorf("list latest posts: %w", err)
	}
	return posts, nil
}

// Detail is a public post with the first CurrentCount approved comments.
type Detail struct {
	Post            *models.Post
	ShownComments   []models.Comment
	TotalComments   int64
	HasMoreComments bool
	NextCount       int
	CurrentCount    int
}

// GetDetail loads the public post with slug. c is the number of comments to disclose.
func (s *BlogService) GetDetail(ctx context.Context, slug, c string) (*Detail, error) {
	post, err := s.posts.Get(ctx, repository.PostQuery{Slug: slug, OnlyPublic: true})
	if err != nil {
		return nil, fmt.Errorf("get post %q: %w", slug, err)
	}
	if post == nil {
		return nil, ErrNotFound
	}

	count := utils.ParsePositiveInt(c, DefaultCommentCount)
	q := repository.CommentQuery{PostID: post.ID, OnlyApproved: true}
	total, err := s.comments.Count(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("count comments: %w", err)
	}

	shown := []models.Comment{}
	if total > 0 {
		q.Page = 1
		q.PageSize = count
		if shown, err = s.comments.List(ctx, q); err != nil {
			return nil, fmt.Errorf("list comments: %w", err)
		}
	}

	return &Detail{
		Post:            post,
		ShownComments:   shown,
		TotalComments:   total,
		HasMoreComments: total > int64(count),
		NextCount:       nextCount(count),
		CurrentCount:    count,
	}, nil
}

// nextCount is the disclosure count for the "show more" link, saturating at math.MaxInt.
func nextCount(count int) int {
	if count > math.MaxInt-CommentCountStep {
		return math.MaxInt
	}
	return count + CommentCountStep
}

// CommentInput is a visitor's comment form.
type CommentInput struct {
	Name    string `form:"name" validate:"required,max=100"`
	Email   string `form:"email" validate:"required,max=254"`
	Content string `form:"content" validate:"required,max=10000"`
}

func (in CommentInput) trimmed() CommentInput {
	return CommentInput{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Content: strings.TrimSpace(in.Content),
	}
}

type SubmissionStatus string

const (
	StatusSuccess         SubmissionStatus = "success"
	StatusValidationError SubmissionStatus = "validation_error"
)

// SubmissionResult is the outcome of a comment submission that reached the store or was
// rejected by validation. Store failures are returned as errors instead.
type SubmissionResult struct {
	Status  SubmissionStatus
	Message string
	Fields  []string
	Comment *models.Comment
	Input   CommentInput
}

func (r SubmissionResult) OK() bool { return r.Status == StatusSuccess }

// SubmitComment validates in and stores an approved comment on post.
func (s *BlogService) SubmitComment(ctx context.Context, post *models.Post, in CommentInput) (SubmissionResult, error) {
	in = in.trimmed()
	if post == nil {
		return SubmissionResult{}, ErrNotFound
	}

	if err := s.validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return SubmissionResult{}, fmt.Errorf("validate comment: %w", err)
		}
		result := SubmissionResult{Status: StatusValidationError, Message: MsgFieldsTooLong, Input: in}
		for _, fe := range verrs {
			result.Fields = append(result.Fields, fe.Field())
			if fe.Tag() == "required" {
				result.Message = MsgFillAllFields
			}
		}
		return result, nil
	}

	comment := &models.Comment{
		PostID:     post.ID,
		Name:       in.Name,
		Email:      in.Email,
		Content:    in.Content,
		IsApproved: true,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return SubmissionResult{}, fmt.Errorf("create comment: %w", err)
	}
	return SubmissionResult{
		Status:  StatusSuccess,
		Message: MsgCommentSubmitted,
		Comment: comment,
		Input:   in,
	}, nil
}
