package repository

import (
	"gorm.io/gorm"

	"github.com/qs3c/board_go_server/internal/model"
)

type BoardRepository struct {
	db *gorm.DB
}

func NewBoardRepository(db *gorm.DB) *BoardRepository {
	return &BoardRepository{db: db}
}

// WithTx 返回使用指定事务的副本
func (r *BoardRepository) WithTx(tx *gorm.DB) *BoardRepository {
	return &BoardRepository{db: tx}
}

func (r *BoardRepository) Create(board *model.Board) error {
	return r.db.Create(board).Error
}

func (r *BoardRepository) GetByID(id int64) (*model.Board, error) {
	var board model.Board
	err := r.db.Where("id = ?", id).First(&board).Error
	if err != nil {
		return nil, err
	}
	return &board, nil
}

func (r *BoardRepository) ExistsByName(name string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Board{}).Where("name = ?", name).Count(&count).Error
	return count > 0, err
}

// List 板块分页列表（keyword 匹配名称或描述）
func (r *BoardRepository) List(keyword string, page, pageSize int) ([]*model.Board, int64, error) {
	var boards []*model.Board
	var total int64

	query := r.db.Model(&model.Board{})
	if keyword != "" {
		like := "%" + keyword + "%"
		query = query.Where("name LIKE ? OR description LIKE ?", like, like)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("id DESC").Offset(offset).Limit(pageSize).Find(&boards).Error
	if err != nil {
		return nil, 0, err
	}

	return boards, total, nil
}

func (r *BoardRepository) Update(board *model.Board) error {
	return r.db.Save(board).Error
}

func (r *BoardRepository) Delete(id int64) error {
	return r.db.Delete(&model.Board{}, id).Error
}
