package services

import (
	"context"
	"encoding/json"
	"testing"

	"blogcms/internal/cache"
	"blogcms/internal/models"
	"blogcms/internal/repository"
	"blogcms/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIListPostsShapeAndVisibility(t *testing.T) {
	conn := testutil.NewDB(t)
	svc := NewAPIService(repository.NewPostRepository(conn), nil, 0)

	withImage := testutil.CreatePost(t, conn, models.Post{Title: "a", FeaturedImage: "img/a.png", IsPublic: true, CreatedAt: testutil.Minutes(1)})
	testutil.CreatePost(t, conn, models.Post{Title: "b", IsPublic: true, CreatedAt: testutil.Minutes(2)})
	testutil.CreatePost(t, conn, models.Post{Title: "hidden", IsPublic: false, CreatedAt: testutil.Minutes(3)})
	testutil.CreateComment(t, conn, withImage.ID, models.Comment{Content: "secret pending", IsApproved: false})

	posts, err := svc.ListPosts(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "b", posts[0].Title)
	assert.Nil(t, posts[0].FeaturedImage)
	require.NotNil(t, posts[1].FeaturedImage)
	assert.Equal(t, "img/a.png", *posts[1].FeaturedImage)

	raw, err := json.Marshal(posts[1])
	require.NoError(t, err)
	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &fields))
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	assert.ElementsMatch(t, []string{
		"id", "title", "author", "is_public", "content", "category", "slug", "featured_image", "date_created",
	}, keys)
	assert.NotContains(t, string(raw), "secret pending")
}

func TestAPIListPostsUsesCacheUntilInvalidated(t *testing.T) {
	conn := testutil.NewDB(t)
	store, err := cache.NewLRU(8)
	require.NoError(t, err)
	posts := repository.NewPostRepository(conn)
	api := NewAPIService(posts, store, 0)
	admin := NewAdminService(posts, repository.NewCommentRepository(conn), store, "")
	ctx := context.Background()

	testutil.CreatePost(t, conn, models.Post{Title: "first", IsPublic: true})
	got, err := api.ListPosts(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)

	// written behind the service's back, so only a cache miss can see it
	testutil.CreatePost(t, conn, models.Post{Title: "second", IsPublic: true, CreatedAt: testutil.Minutes(5)})
	got, err = api.ListPosts(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	_, err = admin.CreatePost(ctx, PostInput{Title: "third", Author: "A", Content: "<p>x</p>"})
	require.NoError(t, err)
	got, err = api.ListPosts(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestAPIGetPost(t *testing.T) {
	conn := testutil.NewDB(t)
	svc := NewAPIService(repository.NewPostRepository(conn), nil, 0)
	public := testutil.CreatePost(t, conn, models.Post{Title: "pub", IsPublic: true})
	hidden := testutil.CreatePost(t, conn, models.Post{Title: "hid", IsPublic: false})

	got, err := svc.GetPost(context.Background(), public.ID)
	require.NoError(t, err)
	assert.Equal(t, "pub", got.Title)
	assert.True(t, got.IsPublic)

	_, err = svc.GetPost(context.Background(), hidden.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
