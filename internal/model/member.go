package model

import (
	"strings"
	"time"
)

type Member struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password     string    `gorm:"size:255;not null" json:"-"`
	Nickname     string    `gorm:"size:50;not null" json:"nickname"`
	Authorities  string    `gorm:"size:255;not null;default:USER" json:"authorities"`
	RefreshToken *string   `gorm:"size:512" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Member) TableName() string {
	return "members"
}

// AuthorityList 拆分权限列表（逗号分隔存储）
func (m *Member) AuthorityList() []string {
	if m.Authorities == "" {
		return nil
	}
	parts := strings.Split(m.Authorities, ",")
	authorities := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			authorities = append(authorities, p)
		}
	}
	return authorities
}

// HasAuthority 检查是否拥有指定权限
func (m *Member) HasAuthority(authority string) bool {
	for _, a := range m.AuthorityList() {
		if a == authority {
			return true
		}
	}
	return false
}
