package repository

import (
	"gorm.io/gorm"

	"github.com/qs3c/board_go_server/internal/model"
)

// 评论排序方式
const (
	OrderByRecent = "recent"
	OrderByLike   = "like"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// WithTx 返回使用指定事务的副本
func (r *CommentRepository) WithTx(tx *gorm.DB) *CommentRepository {
	return &CommentRepository{db: tx}
}

func (r *CommentRepository) Create(comment *model.Comment) error {
	return r.db.Create(comment).Error
}

// GetByID 按 ID 获取评论
func (r *CommentRepository) GetByID(id int64) (*model.Comment, error) {
	var comment model.Comment
	err := r.db.Where("id = ?", id).First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetByPost 按 (boardID, postID, commentID) 获取评论
func (r *CommentRepository) GetByPost(boardID, postID, commentID int64) (*model.Comment, error) {
	var comment model.Comment
	err := r.db.Where("board_id = ? AND post_id = ? AND id = ?", boardID, postID, commentID).
		First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *CommentRepository) Update(comment *model.Comment) error {
	return r.db.Save(comment).Error
}

func (r *CommentRepository) Delete(id int64) error {
	return r.db.Delete(&model.Comment{}, id).Error
}

// DeleteByIDs 按 ID 批量删除，返回删除行数
func (r *CommentRepository) DeleteByIDs(ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.Where("id IN ?", ids).Delete(&model.Comment{})
	return result.RowsAffected, result.Error
}

// DeleteByPostIDs 删除帖子下全部评论，返回评论 ID 列表
func (r *CommentRepository) DeleteByPostIDs(postIDs []int64) ([]int64, error) {
	if len(postIDs) == 0 {
		return nil, nil
	}
	var ids []int64
	if err := r.db.Model(&model.Comment{}).Where("post_id IN ?", postIDs).Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	if err := r.db.Where("post_id IN ?", postIDs).Delete(&model.Comment{}).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// ListTopLevelByRecent 顶级评论按创建先后倒序（keyset：id < after）
func (r *CommentRepository) ListTopLevelByRecent(boardID, postID int64, limit int, after *int64) ([]*model.Comment, error) {
	query := r.db.Where("board_id = ? AND post_id = ? AND parent_id IS NULL", boardID, postID)
	if after != nil {
		query = query.Where("id < ?", *after)
	}

	var comments []*model.Comment
	err := query.Order("id DESC").Limit(limit).Find(&comments).Error
	return comments, err
}

// ListTopLevelByLike 顶级评论按点赞数倒序（keyset：(like_count, id) 字典序递减）
func (r *CommentRepository) ListTopLevelByLike(boardID, postID int64, limit int, afterLike, afterID *int64) ([]*model.Comment, error) {
	query := r.db.Where("board_id = ? AND post_id = ? AND parent_id IS NULL", boardID, postID)
	if afterLike != nil && afterID != nil {
		query = query.Where("like_count < ? OR (like_count = ? AND id < ?)", *afterLike, *afterLike, *afterID)
	}

	var comments []*model.Comment
	err := query.Order("like_count DESC, id DESC").Limit(limit).Find(&comments).Error
	return comments, err
}

// ListChildren 直接子评论按回复先后正序（keyset：id > after）
func (r *CommentRepository) ListChildren(boardID, postID, parentID int64, limit int, after *int64) ([]*model.Comment, error) {
	query := r.db.Where("board_id = ? AND post_id = ? AND parent_id = ?", boardID, postID, parentID)
	if after != nil {
		query = query.Where("id > ?", *after)
	}

	var comments []*model.Comment
	err := query.Order("id ASC").Limit(limit).Find(&comments).Error
	return comments, err
}

// ListChildIDs 查询一批评论的直接子评论 ID
func (r *CommentRepository) ListChildIDs(parentIDs []int64) ([]int64, error) {
	if len(parentIDs) == 0 {
		return nil, nil
	}
	var ids []int64
	err := r.db.Model(&model.Comment{}).Where("parent_id IN ?", parentIDs).Pluck("id", &ids).Error
	return ids, err
}

// CollectSubtreeIDs 收集评论及其全部后代的 ID（按层 BFS）
func (r *CommentRepository) CollectSubtreeIDs(rootID int64) ([]int64, error) {
	all := []int64{rootID}
	frontier := []int64{rootID}

	for len(frontier) > 0 {
		children, err := r.ListChildIDs(frontier)
		if err != nil {
			return nil, err
		}
		if len(children) == 0 {
			break
		}
		all = append(all, children...)
		frontier = children
	}

	return all, nil
}

// IncrementLikeCount 调整点赞数（delta 可为负）
func (r *CommentRepository) IncrementLikeCount(id int64, delta int) error {
	return r.db.Model(&model.Comment{}).Where("id = ?", id).
		Update("like_count", gorm.Expr("like_count + ?", delta)).Error
}

// CreateLike 创建点赞记录
func (r *CommentRepository) CreateLike(like *model.CommentLike) error {
	return r.db.Create(like).Error
}

// DeleteLike 删除点赞记录，返回删除行数
func (r *CommentRepository) DeleteLike(commentID int64, memberEmail string) (int64, error) {
	result := r.db.Where("comment_id = ? AND member_email = ?", commentID, memberEmail).
		Delete(&model.CommentLike{})
	return result.RowsAffected, result.Error
}

// LikeExists 检查是否已点赞
func (r *CommentRepository) LikeExists(commentID int64, memberEmail string) (bool, error) {
	var count int64
	err := r.db.Model(&model.CommentLike{}).
		Where("comment_id = ? AND member_email = ?", commentID, memberEmail).
		Count(&count).Error
	return count > 0, err
}

// DeleteLikesByCommentIDs 批量删除评论点赞记录
func (r *CommentRepository) DeleteLikesByCommentIDs(commentIDs []int64) error {
	if len(commentIDs) == 0 {
		return nil
	}
	return r.db.Where("comment_id IN ?", commentIDs).Delete(&model.CommentLike{}).Error
}
