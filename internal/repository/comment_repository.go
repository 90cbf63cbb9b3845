package repository

import (
	"context"
	"errors"
	"strings"

	"blogcms/internal/models"

	"gorm.io/gorm"
)

var commentSearchColumns = []string{"comments.name", "comments.email", "comments.content", "posts.title"}

// CommentRepository 评论数据访问接口
type CommentRepository interface {
	List(ctx context.Context, q CommentQuery) ([]models.Comment, error)
	Count(ctx context.Context, q CommentQuery) (int64, error)
	Get(ctx context.Context, id uint) (*models.Comment, error)
	Create(ctx context.Context, comment *models.Comment) error
	SetApproved(ctx context.Context, id uint, approved bool) (bool, error)
}

// GormCommentRepository GORM 实现
type GormCommentRepository struct {
	db *gorm.DB
}

// NewCommentRepository 创建评论仓库
func NewCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

// where applies the predicate part of q. Column names are qualified because the posts
// table is joined in for title search.
func (r *GormCommentRepository) where(ctx context.Context, q CommentQuery) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.Comment{})
	if q.ID != 0 {
		query = query.Where("comments.id = ?", q.ID)
	}
	if q.PostID != 0 {
		query = query.Where("comments.post_id = ?", q.PostID)
	}
	if q.OnlyApproved {
		query = query.Where("comments.is_approved = ?", true)
	} else if q.IsApproved != nil {
		query = query.Where("comments.is_approved = ?", *q.IsApproved)
	}
	if search := strings.TrimSpace(q.Search); search != "" {
		cond, args := anyColumnContains(commentSearchColumns, search)
		query = query.Joins("LEFT JOIN posts ON posts.id = comments.post_id").Where(cond, args...)
	}
	return query
}

// List 评论列表
func (r *GormCommentRepository) List(ctx context.Context, q CommentQuery) ([]models.Comment, error) {
	orderBy := q.OrderBy
	if orderBy == "" {
		orderBy = "comments.created_at DESC, comments.id DESC"
	}
	query := r.where(ctx, q).Select("comments.*").Order(orderBy)
	if q.WithPost {
		query = query.Preload("Post", func(tx *gorm.DB) *gorm.DB {
			return tx.Select("id", "title", "slug")
		})
	}

	var comments []models.Comment
	if err := applyPagination(query, q.Page, q.PageSize).Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// Count 统计符合条件的评论数
func (r *GormCommentRepository) Count(ctx context.Context, q CommentQuery) (int64, error) {
	var total int64
	if err := r.where(ctx, q).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// Get 根据 ID 获取评论，不存在时返回 nil
func (r *GormCommentRepository) Get(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &comment, nil
}

// Create inserts a single comment row.
func (r *GormCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Omit("Post").Create(comment).Error
}

// SetApproved 切换审核状态
func (r *GormCommentRepository) SetApproved(ctx context.Context, id uint, approved bool) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.Comment{}).Where("id = ?", id).Update("is_approved", approved)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
