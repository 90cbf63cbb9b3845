package services

import (
	"context"
	"math"
	"strings"
	"testing"

	"blogcms/internal/models"
	"blogcms/internal/repository"
	"blogcms/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newAdminService(t *testing.T, hash string) (*AdminService, *gorm.DB) {
	t.Helper()
	conn := testutil.NewDB(t)
	return NewAdminService(repository.NewPostRepository(conn), repository.NewCommentRepository(conn), nil, hash), conn
}

func TestAdminLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	svc, _ := newAdminService(t, string(hash))
	assert.True(t, svc.Enabled())
	assert.NoError(t, svc.Login("s3cret"))
	assert.ErrorIs(t, svc.Login("wrong"), ErrInvalidPassword)

	disabled, _ := newAdminService(t, " ")
	assert.False(t, disabled.Enabled())
	assert.ErrorIs(t, disabled.Login("anything"), ErrAdminDisabled)
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("pw")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("pw")))

	_, err = HashPassword("")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreatePostDefaultsAndSlugSuffix(t *testing.T) {
	svc, _ := newAdminService(t, "")
	ctx := context.Background()

	first, err := svc.CreatePost(ctx, PostInput{Title: "Hello, World!", Author: "Ana", Content: "<p>x</p>"})
	require.NoError(t, err)
	assert.Equal(t, "hello-world", first.Slug)
	assert.True(t, first.IsPublic)
	assert.Equal(t, models.DefaultCategory, first.Category)
	assert.False(t, first.UpdatedAt.Before(first.CreatedAt))

	second, err := svc.CreatePost(ctx, PostInput{Title: "Hello World", Author: "Ana", Content: "<p>y</p>", IsPublic: testutil.Bool(false)})
	require.NoError(t, err)
	assert.Equal(t, "hello-world-2", second.Slug)
	assert.False(t, second.IsPublic)

	third, err := svc.CreatePost(ctx, PostInput{Title: "hello world", Author: "Ana", Content: "<p>z</p>"})
	require.NoError(t, err)
	assert.Equal(t, "hello-world-3", third.Slug)

	stored, err := svc.GetPost(ctx, second.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsPublic, "explicit false survives the insert")
}

func TestCreatePostSlugEdgeCases(t *testing.T) {
	svc, _ := newAdminService(t, "")
	ctx := context.Background()

	symbols, err := svc.CreatePost(ctx, PostInput{Title: "!!!", Author: "Ana", Content: "x"})
	require.NoError(t, err)
	assert.Equal(t, "post", symbols.Slug)

	long, err := svc.CreatePost(ctx, PostInput{Title: strings.Repeat("a", 200), Author: "Ana", Content: "x", Slug: ""})
	require.NoError(t, err)
	assert.Len(t, long.Slug, 200)

	again, err := svc.CreatePost(ctx, PostInput{Title: strings.Repeat("a", 200), Author: "Ana", Content: "x"})
	require.NoError(t, err)
	assert.Len(t, again.Slug, 200)
	assert.True(t, strings.HasSuffix(again.Slug, "-2"))

	_, err = svc.CreatePost(ctx, PostInput{Title: "Other", Author: "Ana", Content: "x", Slug: "post"})
	assert.ErrorIs(t, err, ErrSlugExists)

	_, err = svc.CreatePost(ctx, PostInput{Title: " ", Author: "Ana", Content: "x"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdatePostKeepsOwnSlug(t *testing.T) {
	svc, conn := newAdminService(t, "")
	ctx := context.Background()
	post := testutil.CreatePost(t, conn, models.Post{Slug: "mine", Title: "Mine", IsPublic: true})
	testutil.CreatePost(t, conn, models.Post{Slug: "taken"})

	updated, err := svc.UpdatePost(ctx, post.ID, PostInput{Title: "Mine v2", Author: "Bo", Slug: "mine", Content: "<p>new</p>"})
	require.NoError(t, err)
	assert.Equal(t, "mine", updated.Slug)
	assert.Equal(t, "Mine v2", updated.Title)
	assert.True(t, updated.IsPublic, "omitted is_public keeps the current value")
	assert.True(t, updated.CreatedAt.Equal(testutil.Base))

	_, err = svc.UpdatePost(ctx, post.ID, PostInput{Title: "x", Author: "Bo", Slug: "taken", Content: "c"})
	assert.ErrorIs(t, err, ErrSlugExists)

	_, err = svc.UpdatePost(ctx, 9999, PostInput{Title: "x", Author: "Bo", Content: "c"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAdminListPostsFilters(t *testing.T) {
	svc, conn := newAdminService(t, "")
	ctx := context.Background()
	for i := 0; i < 30; i++ {
		testutil.CreatePost(t, conn, models.Post{IsPublic: i%3 != 0, CreatedAt: testutil.Minutes(i)})
	}
	testutil.CreatePost(t, conn, models.Post{Title: "Needle", Author: "Kim", Category: "Misc", IsPublic: false, CreatedAt: testutil.Minutes(50)})

	posts, total, err := svc.ListPosts(ctx, PostFilter{Page: 1})
	require.NoError(t, err)
	assert.EqualValues(t, 31, total)
	assert.Len(t, posts, AdminPageSize)
	assert.Equal(t, "Needle", posts[0].Title)

	posts, total, err = svc.ListPosts(ctx, PostFilter{IsPublic: testutil.Bool(false), Category: "Misc"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, posts, 1)

	_, total, err = svc.ListPosts(ctx, PostFilter{Search: "needle"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	posts, total, err = svc.ListPosts(ctx, PostFilter{Author: " Kim "})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, posts, 1)
	assert.Equal(t, "Needle", posts[0].Title)

	_, total, err = svc.ListPosts(ctx, PostFilter{Author: "ki"})
	require.NoError(t, err)
	assert.Zero(t, total)

	posts, total, err = svc.ListPosts(ctx, PostFilter{Page: math.MaxInt})
	require.NoError(t, err)
	assert.EqualValues(t, 31, total)
	assert.Empty(t, posts)
}

func TestSetPublicAndDelete(t *testing.T) {
	svc, conn := newAdminService(t, "")
	ctx := context.Background()
	post := testutil.CreatePost(t, conn, models.Post{IsPublic: true})
	testutil.CreateComment(t, conn, post.ID, models.Comment{IsApproved: true})

	require.NoError(t, svc.SetPostPublic(ctx, post.ID, false))
	stored, err := svc.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsPublic)
	assert.ErrorIs(t, svc.SetPostPublic(ctx, 9999, true), ErrNotFound)

	require.NoError(t, svc.DeletePost(ctx, post.ID))
	_, err = svc.GetPost(ctx, post.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	var comments int64
	require.NoError(t, conn.Model(&models.Comment{}).Count(&comments).Error)
	assert.Zero(t, comments)
	assert.ErrorIs(t, svc.DeletePost(ctx, post.ID), ErrNotFound)
}

func TestModerationHidesCommentFromDetail(t *testing.T) {
	svc, conn := newAdminService(t, "")
	blog := NewBlogService(repository.NewPostRepository(conn), repository.NewCommentRepository(conn))
	ctx := context.Background()
	post := testutil.CreatePost(t, conn, models.Post{Slug: "p", Title: "Moderated", IsPublic: true})
	comment := testutil.CreateComment(t, conn, post.ID, models.Comment{Name: "spam", IsApproved: true})

	require.NoError(t, svc.SetCommentApproved(ctx, comment.ID, false))
	detail, err := blog.GetDetail(ctx, "p", "")
	require.NoError(t, err)
	assert.Zero(t, detail.TotalComments)
	assert.Empty(t, detail.ShownComments)

	comments, total, err := svc.ListComments(ctx, CommentFilter{IsApproved: testutil.Bool(false), Search: "moderated"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, comments, 1)
	require.NotNil(t, comments[0].Post)
	assert.Equal(t, "Moderated", comments[0].Post.Title)

	assert.ErrorIs(t, svc.SetCommentApproved(ctx, 9999, true), ErrNotFound)
}
