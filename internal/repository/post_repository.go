package repository

import (
	"context"
	"errors"
	"strings"

	"blogcms/internal/models"

	"gorm.io/gorm"
)

var postSearchColumns = []string{"title", "content", "tags", "category", "author"}

// PostRepository 文章数据访问接口
type PostRepository interface {
	List(ctx context.Context, q PostQuery) ([]models.Post, error)
	Count(ctx context.Context, q PostQuery) (int64, error)
	Get(ctx context.Context, q PostQuery) (*models.Post, error)
	Create(ctx context.Context, post *models.Post) error
	Update(ctx context.Context, post *models.Post) error
	SetPublic(ctx context.Context, id uint, isPublic bool) (bool, error)
	Delete(ctx context.Context, id uint) (bool, error)
	SlugExists(ctx context.Context, slug string, excludeID uint) (bool, error)
}

// GormPostRepository GORM 实现
type GormPostRepository struct {
	db *gorm.DB
}

// NewPostRepository 创建文章仓库
func NewPostRepository(db *gorm.DB) *GormPostRepository {
	return &GormPostRepository{db: db}
}

// where applies the predicate part of q. Count and List share it so a page and its total
// always describe the same set.
func (r *GormPostRepository) where(ctx context.Context, q PostQuery) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.Post{})
	if q.ID != 0 {
		query = query.Where("id = ?", q.ID)
	}
	if q.Slug != "" {
		query = query.Where("slug = ?", q.Slug)
	}
	if q.OnlyPublic {
		query = query.Where("is_public = ?", true)
	} else if q.IsPublic != nil {
		query = query.Where("is_public = ?", *q.IsPublic)
	}
	if q.Category != "" {
		query = query.Where("category = ?", q.Category)
	}
	if q.Author != "" {
		query = query.Where("author = ?", q.Author)
	}
	if search := strings.TrimSpace(q.Search); search != "" {
		cond, args := anyColumnContains(postSearchColumns, search)
		query = query.Where(cond, args...)
	}
	return query
}

func (r *GormPostRepository) shape(query *gorm.DB, q PostQuery) *gorm.DB {
	if len(q.Fields) > 0 {
		query = query.Select(q.Fields)
	}
	if q.WithApprovedComments {
		query = query.Preload("Comments", func(tx *gorm.DB) *gorm.DB {
			return tx.Where("is_approved = ?", true).Order(defaultOrder)
		})
	}
	orderBy := q.OrderBy
	if orderBy == "" {
		orderBy = defaultOrder
	}
	return query.Order(orderBy)
}

// List 文章列表
func (r *GormPostRepository) List(ctx context.Context, q PostQuery) ([]models.Post, error) {
	var posts []models.Post
	query := applyPagination(r.shape(r.where(ctx, q), q), q.Page, q.PageSize)
	if err := query.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// Count 统计符合条件的文章数
func (r *GormPostRepository) Count(ctx context.Context, q PostQuery) (int64, error) {
	var total int64
	if err := r.where(ctx, q).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// Get returns the first post matching q, or nil when there is none.
func (r *GormPostRepository) Get(ctx context.Context, q PostQuery) (*models.Post, error) {
	var post models.Post
	if err := r.shape(r.where(ctx, q), q).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// Create 创建文章
func (r *GormPostRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Omit("Comments").Create(post).Error
}

// Update 更新文章
func (r *GormPostRepository) Update(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Omit("Comments", "CreatedAt").Save(post).Error
}

// SetPublic flips the publication flag. It reports false when no post has the id.
func (r *GormPostRepository) SetPublic(ctx context.Context, id uint, isPublic bool) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", id).Update("is_public", isPublic)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Delete removes the post and its comments in one transaction.
func (r *GormPostRepository) Delete(ctx context.Context, id uint) (bool, error) {
	var deleted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Post{}, id)
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected > 0
		return nil
	})
	return deleted, err
}

// SlugExists 检查 slug 是否已被其他文章占用
func (r *GormPostRepository) SlugExists(ctx context.Context, slug string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.Post{}).Where("slug = ?", slug)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
