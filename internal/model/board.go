package model

import (
	"time"
)

type Board struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description string    `gorm:"size:500" json:"description"`
	Writer      string    `gorm:"size:100;not null" json:"writer"`
	Modifier    string    `gorm:"size:100;not null" json:"modifier"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Board) TableName() string {
	return "boards"
}
