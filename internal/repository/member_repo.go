package repository

import (
	"gorm.io/gorm"

	"github.com/qs3c/board_go_server/internal/model"
)

type MemberRepository struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

// WithTx 返回使用指定事务的副本
func (r *MemberRepository) WithTx(tx *gorm.DB) *MemberRepository {
	return &MemberRepository{db: tx}
}

func (r *MemberRepository) Create(member *model.Member) error {
	return r.db.Create(member).Error
}

func (r *MemberRepository) GetByID(id int64) (*model.Member, error) {
	var member model.Member
	err := r.db.Where("id = ?", id).First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *MemberRepository) GetByEmail(email string) (*model.Member, error) {
	var member model.Member
	err := r.db.Where("email = ?", email).First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// GetByRefreshToken 按存储的刷新 Token 精确查找会员
func (r *MemberRepository) GetByRefreshToken(token string) (*model.Member, error) {
	var member model.Member
	err := r.db.Where("refresh_token = ?", token).First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *MemberRepository) ExistsByEmail(email string) (bool, error) {
	var count int64
	err := r.db.Model(&model.Member{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *MemberRepository) Update(member *model.Member) error {
	return r.db.Save(member).Error
}

// SaveRefreshToken 保存刷新 Token（覆盖旧值，同一会员最多一个有效 Token）
func (r *MemberRepository) SaveRefreshToken(email string, token string) error {
	return r.db.Model(&model.Member{}).Where("email = ?", email).
		Update("refresh_token", token).Error
}

// ClearRefreshToken 清除刷新 Token
func (r *MemberRepository) ClearRefreshToken(email string) error {
	return r.db.Model(&model.Member{}).Where("email = ?", email).
		Update("refresh_token", nil).Error
}

// ListWithRefreshToken 列出持有刷新 Token 的会员（清理任务用）
func (r *MemberRepository) ListWithRefreshToken() ([]*model.Member, error) {
	var members []*model.Member
	err := r.db.Where("refresh_token IS NOT NULL").Find(&members).Error
	return members, err
}
