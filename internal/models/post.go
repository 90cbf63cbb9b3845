package models

import (
	"strings"
	"time"
)

// DefaultCategory is assigned when a post is saved without a category.
const DefaultCategory = "Uncategorized"

type Post struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Title         string    `gorm:"size:200;not null;index" json:"title"`
	Author        string    `gorm:"size:100;not null;index" json:"author"`
	IsPublic      bool      `gorm:"not null;index;index:post_public_date_idx,priority:1" json:"is_public"`
	Slug          string    `gorm:"size:200;not null;uniqueIndex" json:"slug"`
	FeaturedImage string    `gorm:"size:255" json:"featured_image"` // Optional
	Content       string    `gorm:"type:text;not null" json:"content"`
	Category      string    `gorm:"size:100;not null;index;index:post_cat_date_idx,priority:1" json:"category"`
	Tags          string    `gorm:"size:200" json:"tags"` // Comma separated
	CreatedAt     time.Time `gorm:"index:post_date_created_idx,sort:desc;index:post_public_date_idx,priority:2,sort:desc;index:post_cat_date_idx,priority:2,sort:desc" json:"date_created"`
	UpdatedAt     time.Time `json:"date_updated"`

	Comments []Comment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

// TagList splits the comma separated tag string, dropping blanks.
func (p *Post) TagList() []string {
	var tags []string
	for _, tag := range strings.Split(p.Tags, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

func (p Post) String() string {
	return p.Title
}
