package models

import (
	"time"
)

type Post struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	Pid       string    `gorm:"uniqueIndex;size:36;not null" json:"id"` // public id (uuid)
	UserID    uint      `gorm:"not null;index" json:"userId"`
	Title     string    `gorm:"not null" json:"title"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// 非数据库字段，用于查询时填充
	Liked    bool   `gorm:"-" json:"liked"`
	BodyHTML string `gorm:"-" json:"bodyHtml,omitempty"`
}
