package services

import (
	"context"
	"errors"
	"postline/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrPostNotFound = errors.New("post not found")

// LikeService maintains the (user, post) like edges. All mutations are
// idempotent: repeats never error, the unique index is the only guard
// against concurrent duplicates.
type LikeService struct {
	db *gorm.DB
}

func NewLikeService(db *gorm.DB) *LikeService {
	return &LikeService{db: db}
}

// Like creates the edge for (userID, pid). Returns created=false when the
// edge already existed, which callers report as a success, not an error.
func (s *LikeService) Like(ctx context.Context, userID uint, pid string) (created bool, err error) {
	// 确认帖子存在，点赞不能指向不存在的帖子
	var post models.Post
	if err := s.db.WithContext(ctx).Select("id").Where("pid = ?", pid).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrPostNotFound
		}
		return false, err
	}

	// 幂等：唯一索引冲突时 DO NOTHING，并发重复点赞也只落一条
	like := models.Like{UserID: userID, PostID: post.ID}
	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&like)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// Unlike removes the edge if present. removed reports whether an edge
// actually went away; a missing edge or even a missing post is not an
// error, the end state is liked=false either way.
func (s *LikeService) Unlike(ctx context.Context, userID uint, pid string) (removed bool, err error) {
	var post models.Post
	if err := s.db.WithContext(ctx).Select("id").Where("pid = ?", pid).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	result := s.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, post.ID).
		Delete(&models.Like{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ClearAll removes every edge owned by userID and returns how many were
// deleted. Other users' edges are untouched.
func (s *LikeService) ClearAll(ctx context.Context, userID uint) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.Like{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
