package dto

// CreateCommentRequest 创建评论请求
type CreateCommentRequest struct {
	Content  string `json:"content" binding:"required,min=1,max=500"`
	ParentID *int64 `json:"parent_id,omitempty"`
}

// UpdateCommentRequest 修改评论请求
type UpdateCommentRequest struct {
	Content string `json:"content" binding:"required,min=1,max=500"`
}

// CommentItem 评论项
type CommentItem struct {
	ID        int64  `json:"id"`
	BoardID   int64  `json:"board_id"`
	PostID    int64  `json:"post_id"`
	ParentID  *int64 `json:"parent_id"`
	Level     int    `json:"level"`
	Content   string `json:"content"`
	Writer    string `json:"writer"`
	LikeCount int    `json:"like_count"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// CommentPage 游标分页评论列表
type CommentPage struct {
	Items      []*CommentItem `json:"items"`
	NextCursor *string        `json:"next_cursor"`
}
