package main

import (
	"context"
	"fmt"
	"time"

	"blogcms/internal/config"
	"blogcms/internal/db"
	"blogcms/internal/logger"
	"blogcms/internal/models"
	"blogcms/internal/repository"
	"blogcms/internal/services"
)

type seedPost struct {
	input    services.PostInput
	comments []models.Comment
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.StdLogger().Fatalf("load config: %v", err)
	}
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	conn, err := db.Init(cfg.Database, cfg.Server.Mode)
	if err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	ctx := context.Background()
	posts := repository.NewPostRepository(conn)
	comments := repository.NewCommentRepository(conn)

	total, err := posts.Count(ctx, repository.PostQuery{})
	if err != nil {
		stdLog.Fatalf("Failed to count posts: %v", err)
	}
	if total > 0 {
		stdLog.Printf("Database already has %d posts, skipping seed", total)
		return
	}

	// 缓存为空即可，seed 不需要失效 Read API
	admin := services.NewAdminService(posts, comments, nil, "")
	draft := false

	samples := []seedPost{
		{
			input: services.PostInput{
				Title:    "Hello, world",
				Author:   "Dara",
				Category: "News",
				Tags:     "welcome, meta",
				Content:  "<p>First post on the new blog. Comments are moderated, so be nice.</p>",
			},
			comments: []models.Comment{
				{Name: "Sam", Email: "sam@example.com", Content: "Welcome **aboard**!", IsApproved: true},
				{Name: "Lee", Email: "lee@example.com", Content: "Looking forward to more.", IsApproved: true},
				{Name: "Spam Bot", Email: "bot@example.com", Content: "Buy now", IsApproved: false},
			},
		},
		{
			input: services.PostInput{
				Title:    "Writing small Go services",
				Author:   "Dara",
				Category: "Engineering",
				Tags:     "go, gin",
				Content:  "<p>Keep handlers thin and push logic into services.</p><p>https://www.youtube.com/watch?v=dQw4w9WgXcQ</p>",
			},
		},
		{
			input: services.PostInput{
				Title:    "Unfinished thoughts",
				Author:   "Dara",
				Tags:     "draft",
				Content:  "<p>Not ready yet.</p>",
				IsPublic: &draft,
			},
		},
	}
	for i := 1; i <= 8; i++ {
		samples = append(samples, seedPost{input: services.PostInput{
			Title:    fmt.Sprintf("Weekly notes #%d", i),
			Author:   "Kim",
			Category: "Notes",
			Content:  fmt.Sprintf("<p>Notes for week %d.</p>", i),
		}})
	}

	for i, sample := range samples {
		post, err := admin.CreatePost(ctx, sample.input)
		if err != nil {
			stdLog.Printf("Failed to create post %q: %v", sample.input.Title, err)
			continue
		}
		// 错开创建时间，保证列表顺序稳定
		createdAt := time.Now().Add(-time.Duration(len(samples)-i) * time.Hour)
		if err := conn.Model(post).UpdateColumn("created_at", createdAt).Error; err != nil {
			stdLog.Printf("Failed to backdate post %s: %v", post.Slug, err)
		}
		for j := range sample.comments {
			comment := sample.comments[j]
			comment.PostID = post.ID
			comment.CreatedAt = createdAt.Add(time.Duration(j+1) * time.Minute)
			if err := comments.Create(ctx, &comment); err != nil {
				stdLog.Printf("Failed to create comment on %s: %v", post.Slug, err)
			}
		}
		stdLog.Printf("Created post: %s", post.Slug)
	}
}
