package models

import (
	"time"
)

// Like 点赞模型 - (user, post) 边，唯一索引保证同一对最多一条
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_user_post" json:"userId"`
	PostID    uint      `gorm:"not null;index;uniqueIndex:idx_user_post" json:"postId"`
	CreatedAt time.Time `json:"createdAt"`
}
