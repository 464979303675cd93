package model

import (
	"time"
)

type Post struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	BoardID   int64     `gorm:"not null;index" json:"board_id"`
	Title     string    `gorm:"size:200;not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Writer    string    `gorm:"size:100;not null;index" json:"writer"`
	LikeCount int       `gorm:"not null;default:0" json:"like_count"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 当前请求者是否点过赞（查询时计算，不落库）
	IsLiked bool `gorm:"-" json:"is_liked"`
}

func (Post) TableName() string {
	return "posts"
}
