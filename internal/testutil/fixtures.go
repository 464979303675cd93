package testutil

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/qs3c/board_go_server/internal/model"
)

// TestMember 创建测试会员
func TestMember(t *testing.T, db *gorm.DB, opts ...func(*model.Member)) *model.Member {
	t.Helper()

	member := &model.Member{
		Email:       fmt.Sprintf("test_%d@example.com", time.Now().UnixNano()),
		Password:    "$2a$10$abcdefghijklmnopqrstuvwxyz123456", // bcrypt hash placeholder
		Nickname:    fmt.Sprintf("member_%d", time.Now().UnixNano()%10000),
		Authorities: "USER",
	}

	for _, opt := range opts {
		opt(member)
	}

	if err := db.Create(member).Error; err != nil {
		t.Fatalf("Failed to create test member: %v", err)
	}

	return member
}

// WithEmail 设置邮箱
func WithEmail(email string) func(*model.Member) {
	return func(m *model.Member) {
		m.Email = email
	}
}

// WithPassword 设置密码哈希
func WithPassword(hash string) func(*model.Member) {
	return func(m *model.Member) {
		m.Password = hash
	}
}

// WithAuthorities 设置权限
func WithAuthorities(authorities string) func(*model.Member) {
	return func(m *model.Member) {
		m.Authorities = authorities
	}
}

// WithRefreshToken 设置刷新 Token
func WithRefreshToken(token string) func(*model.Member) {
	return func(m *model.Member) {
		m.RefreshToken = &token
	}
}

// TestBoard 创建测试板块
func TestBoard(t *testing.T, db *gorm.DB, writer string, opts ...func(*model.Board)) *model.Board {
	t.Helper()

	board := &model.Board{
		Name:        fmt.Sprintf("board_%d", time.Now().UnixNano()),
		Description: "test board",
		Writer:      writer,
		Modifier:    writer,
	}

	for _, opt := range opts {
		opt(board)
	}

	if err := db.Create(board).Error; err != nil {
		t.Fatalf("Failed to create test board: %v", err)
	}

	return board
}

// WithBoardName 设置板块名称
func WithBoardName(name string) func(*model.Board) {
	return func(b *model.Board) {
		b.Name = name
	}
}

// TestPost 创建测试帖子
func TestPost(t *testing.T, db *gorm.DB, boardID int64, writer string, opts ...func(*model.Post)) *model.Post {
	t.Helper()

	post := &model.Post{
		BoardID: boardID,
		Title:   fmt.Sprintf("Test Post %d", time.Now().UnixNano()%10000),
		Content: "test content",
		Writer:  writer,
	}

	for _, opt := range opts {
		opt(post)
	}

	if err := db.Create(post).Error; err != nil {
		t.Fatalf("Failed to create test post: %v", err)
	}

	return post
}

// WithTitle 设置帖子标题
func WithTitle(title string) func(*model.Post) {
	return func(p *model.Post) {
		p.Title = title
	}
}

// TestComment 创建测试顶级评论
func TestComment(t *testing.T, db *gorm.DB, boardID, postID int64, writer, content string) *model.Comment {
	t.Helper()

	comment := &model.Comment{
		BoardID: boardID,
		PostID:  postID,
		Level:   0,
		Content: content,
		Writer:  writer,
	}

	if err := db.Create(comment).Error; err != nil {
		t.Fatalf("Failed to create test comment: %v", err)
	}

	return comment
}

// TestReply 创建测试子评论
func TestReply(t *testing.T, db *gorm.DB, parent *model.Comment, writer, content string) *model.Comment {
	t.Helper()

	comment := &model.Comment{
		BoardID:  parent.BoardID,
		PostID:   parent.PostID,
		ParentID: &parent.ID,
		Level:    parent.Level + 1,
		Content:  content,
		Writer:   writer,
	}

	if err := db.Create(comment).Error; err != nil {
		t.Fatalf("Failed to create test reply: %v", err)
	}

	return comment
}

// TestCommentLike 创建测试评论点赞（并同步计数）
func TestCommentLike(t *testing.T, db *gorm.DB, commentID int64, memberEmail string) *model.CommentLike {
	t.Helper()

	like := &model.CommentLike{
		CommentID:   commentID,
		MemberEmail: memberEmail,
	}

	if err := db.Create(like).Error; err != nil {
		t.Fatalf("Failed to create test comment like: %v", err)
	}

	if err := db.Model(&model.Comment{}).Where("id = ?", commentID).
		Update("like_count", gorm.Expr("like_count + 1")).Error; err != nil {
		t.Fatalf("Failed to bump like count: %v", err)
	}

	return like
}
