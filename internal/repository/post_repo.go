package repository

import (
	"gorm.io/gorm"

	"github.com/qs3c/board_go_server/internal/model"
)

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

// WithTx 返回使用指定事务的副本
func (r *PostRepository) WithTx(tx *gorm.DB) *PostRepository {
	return &PostRepository{db: tx}
}

func (r *PostRepository) Create(post *model.Post) error {
	return r.db.Create(post).Error
}

// GetByBoard 按 (boardID, postID) 获取帖子
func (r *PostRepository) GetByBoard(boardID, postID int64) (*model.Post, error) {
	var post model.Post
	err := r.db.Where("board_id = ? AND id = ?", boardID, postID).First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// List 板块内帖子分页列表
func (r *PostRepository) List(boardID int64, page, pageSize int) ([]*model.Post, int64, error) {
	var posts []*model.Post
	var total int64

	query := r.db.Model(&model.Post{}).Where("board_id = ?", boardID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("id DESC").Offset(offset).Limit(pageSize).Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

func (r *PostRepository) Update(post *model.Post) error {
	return r.db.Save(post).Error
}

func (r *PostRepository) Delete(id int64) error {
	return r.db.Delete(&model.Post{}, id).Error
}

// DeleteByBoardID 删除板块下全部帖子，返回帖子 ID 列表
func (r *PostRepository) DeleteByBoardID(boardID int64) ([]int64, error) {
	var ids []int64
	if err := r.db.Model(&model.Post{}).Where("board_id = ?", boardID).Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	if err := r.db.Where("board_id = ?", boardID).Delete(&model.Post{}).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// IncrementLikeCount 调整点赞数（delta 可为负）
func (r *PostRepository) IncrementLikeCount(id int64, delta int) error {
	return r.db.Model(&model.Post{}).Where("id = ?", id).
		Update("like_count", gorm.Expr("like_count + ?", delta)).Error
}

// CreateLike 创建点赞记录
func (r *PostRepository) CreateLike(like *model.PostLike) error {
	return r.db.Create(like).Error
}

// DeleteLike 删除点赞记录，返回删除行数
func (r *PostRepository) DeleteLike(postID int64, memberEmail string) (int64, error) {
	result := r.db.Where("post_id = ? AND member_email = ?", postID, memberEmail).
		Delete(&model.PostLike{})
	return result.RowsAffected, result.Error
}

// LikeExists 检查是否已点赞
func (r *PostRepository) LikeExists(postID int64, memberEmail string) (bool, error) {
	var count int64
	err := r.db.Model(&model.PostLike{}).
		Where("post_id = ? AND member_email = ?", postID, memberEmail).
		Count(&count).Error
	return count > 0, err
}

// DeleteLikesByPostIDs 批量删除帖子点赞记录
func (r *PostRepository) DeleteLikesByPostIDs(postIDs []int64) error {
	if len(postIDs) == 0 {
		return nil
	}
	return r.db.Where("post_id IN ?", postIDs).Delete(&model.PostLike{}).Error
}
