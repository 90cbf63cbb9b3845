package repository

// PostQuery 文章查询规格：谓词 + 排序 + 分页窗口 + 字段投影
type PostQuery struct {
	ID         uint
	Slug       string
	OnlyPublic bool
	IsPublic   *bool
	Category   string
	Author     string
	// Search matches title, content, tags, category or author, case-insensitively.
	Search string
	// Fields restricts the selected columns. Empty selects every column.
	Fields  []string
	OrderBy string
	// Page and PageSize form the pagination window. PageSize <= 0 disables it.
	Page     int
	PageSize int
	// WithApprovedComments prefetches approved comments for the whole result set in one query.
	WithApprovedComments bool
}

// CommentQuery 评论查询规格
type CommentQuery struct {
	ID           uint
	PostID       uint
	OnlyApproved bool
	IsApproved   *bool
	// Search matches name, email, content or the parent post title.
	Search   string
	OrderBy  string
	Page     int
	PageSize int
	// WithPost loads the parent post (id, title, slug) for every comment.
	WithPost bool
}

// PostSummaryFields is the projection used by list pages.
var PostSummaryFields = []string{
	"id", "title", "slug", "author", "category", "featured_image", "created_at", "updated_at",
}
