package models

import (
	"fmt"
	"time"
)

type Comment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PostID     uint      `gorm:"not null;index;index:comment_post_approved_idx,priority:1" json:"post_id"`
	Post       *Post     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"post,omitempty"`
	Name       string    `gorm:"size:100;not null" json:"name"`
	Email      string    `gorm:"size:254;not null" json:"email"` // Never rendered publicly
	Content    string    `gorm:"type:text;not null" json:"content"`
	IsApproved bool      `gorm:"not null;index;index:comment_post_approved_idx,priority:2" json:"is_approved"`
	CreatedAt  time.Time `gorm:"index;index:comment_post_approved_idx,priority:3,sort:desc" json:"date_created"`
}

func (c Comment) String() string {
	if c.Post != nil {
		return fmt.Sprintf("Comment by %s on %s", c.Name, c.Post.Title)
	}
	return fmt.Sprintf("Comment by %s", c.Name)
}
