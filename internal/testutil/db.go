// Package testutil holds the in-memory database and fixtures shared by package tests.
package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"blogcms/internal/db"
	"blogcms/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq atomic.Int64

// NewDB opens a private in-memory sqlite database with the blog schema.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_pragma=foreign_keys(1)", name, dbSeq.Add(1))
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Discard})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("get sql db failed: %v", err)
	}
	// a single connection keeps the shared memory database alive and serializes writers
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.Migrate(conn); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return conn
}

// Base is the reference time fixtures count from; Minutes(n) is n minutes after it.
var Base = time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

func Minutes(n int) time.Time {
	return Base.Add(time.Duration(n) * time.Minute)
}

// CreatePost inserts p, filling the fields a test did not care about.
func CreatePost(t *testing.T, conn *gorm.DB, p models.Post) *models.Post {
	t.Helper()
	if p.Slug == "" {
		p.Slug = fmt.Sprintf("post-%d", dbSeq.Add(1))
	}
	if p.Title == "" {
		p.Title = "Post " + p.Slug
	}
	if p.Author == "" {
		p.Author = "Dara"
	}
	if p.Content == "" {
		p.Content = "<p>body</p>"
	}
	if p.Category == "" {
		p.Category = models.DefaultCategory
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = Base
	}
	if err := conn.Create(&p).Error; err != nil {
		t.Fatalf("create post failed: %v", err)
	}
	return &p
}

// CreateComment inserts c for postID. IsApproved is taken as given.
func CreateComment(t *testing.T, conn *gorm.DB, postID uint, c models.Comment) *models.Comment {
	t.Helper()
	c.PostID = postID
	if c.Name == "" {
		c.Name = "Visitor"
	}
	if c.Email == "" {
		c.Email = "visitor@example.com"
	}
	if c.Content == "" {
		c.Content = "Nice post"
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = Base
	}
	if err := conn.Create(&c).Error; err != nil {
		t.Fatalf("create comment failed: %v", err)
	}
	return &c
}

// Bool returns a pointer to v.
func Bool(v bool) *bool {
	return &v
}
