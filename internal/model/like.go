package model

import (
	"time"
)

type PostLike struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	PostID      int64     `gorm:"not null;uniqueIndex:idx_post_likes_member" json:"post_id"`
	MemberEmail string    `gorm:"size:100;not null;uniqueIndex:idx_post_likes_member" json:"member_email"`
	CreatedAt   time.Time `json:"created_at"`
}

func (PostLike) TableName() string {
	return "post_likes"
}

type CommentLike struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	CommentID   int64     `gorm:"not null;uniqueIndex:idx_comment_likes_member" json:"comment_id"`
	MemberEmail string    `gorm:"size:100;not null;uniqueIndex:idx_comment_likes_member" json:"member_email"`
	CreatedAt   time.Time `json:"created_at"`
}

func (CommentLike) TableName() string {
	return "comment_likes"
}
