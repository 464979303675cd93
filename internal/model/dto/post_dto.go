package dto

// CreatePostRequest 创建帖子请求
type CreatePostRequest struct {
	Title   string `json:"title" binding:"required,min=1,max=200"`
	Content string `json:"content" binding:"required,min=1"`
}

// UpdatePostRequest 修改帖子请求
type UpdatePostRequest struct {
	Title   string `json:"title" binding:"required,min=1,max=200"`
	Content string `json:"content" binding:"required,min=1"`
}

// PostItem 帖子项
type PostItem struct {
	ID        int64  `json:"id"`
	BoardID   int64  `json:"board_id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Writer    string `json:"writer"`
	LikeCount int    `json:"like_count"`
	IsLiked   bool   `json:"is_liked"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}
