package model

import (
	"time"
)

type Comment struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	BoardID   int64     `gorm:"not null;index:idx_comments_post" json:"board_id"`
	PostID    int64     `gorm:"not null;index:idx_comments_post" json:"post_id"`
	ParentID  *int64    `gorm:"index" json:"parent_id,omitempty"`
	Level     int       `gorm:"not null;default:0" json:"level"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Writer    string    `gorm:"size:100;not null;index" json:"writer"`
	LikeCount int       `gorm:"not null;default:0;index" json:"like_count"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Comment) TableName() string {
	return "comments"
}

// IsTopLevel 是否为顶级评论
func (c *Comment) IsTopLevel() bool {
	return c.ParentID == nil
}
