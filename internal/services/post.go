package services

import (
	"context"
	"errors"
	"postline/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PostService creates and deletes posts. Deletion is owner-scoped and
// cascades the post's like edges in the same transaction.
type PostService struct {
	db *gorm.DB
}

func NewPostService(db *gorm.DB) *PostService {
	return &PostService{db: db}
}

func (s *PostService) Create(ctx context.Context, userID uint, title, body string) (*models.Post, error) {
	post := models.Post{
		Pid:    uuid.New().String(),
		UserID: userID,
		Title:  title,
		Body:   body,
	}
	if err := s.db.WithContext(ctx).Create(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// Delete removes the post only when userID owns it. A missing post and a
// foreign post are the same ErrPostNotFound so existence never leaks.
func (s *PostService) Delete(ctx context.Context, userID uint, pid string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.Select("id", "user_id").Where("pid = ?", pid).First(&post).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPostNotFound
			}
			return err
		}
		if post.UserID != userID {
			return ErrPostNotFound
		}

		// 级联删除点赞边，避免悬空记录
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, post.ID).Error
	})
}
