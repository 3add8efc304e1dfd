package services

import (
	"fmt"
	"postline/internal/models"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	// 内存库绑定单连接，避免连接池拿到不同的 :memory: 实例
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.User{}, &models.Post{}, &models.Like{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := models.User{Name: "Tester", Email: email, Password: "irrelevant-hash"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return &user
}

func createTestPost(t *testing.T, db *gorm.DB, userID uint, title string, createdAt time.Time) *models.Post {
	t.Helper()
	post := models.Post{
		Pid:       uuid.New().String(),
		UserID:    userID,
		Title:     title,
		Body:      "Body text",
		CreatedAt: createdAt,
	}
	if err := db.Create(&post).Error; err != nil {
		t.Fatalf("create post: %v", err)
	}
	return &post
}

// seedTestPosts creates n posts with strictly increasing creation times so
// newest-first ordering is deterministic. Even indexes get "banana" in the
// title, odd get "apple".
func seedTestPosts(t *testing.T, db *gorm.DB, userID uint, n int) []*models.Post {
	t.Helper()
	base := time.Now().Add(-time.Duration(n) * time.Minute)
	posts := make([]*models.Post, n)
	for i := 0; i < n; i++ {
		fruit := "banana"
		if i%2 == 1 {
			fruit = "apple"
		}
		title := fmt.Sprintf("Post title %d %s", i, fruit)
		posts[i] = createTestPost(t, db, userID, title, base.Add(time.Duration(i)*time.Minute))
	}
	return posts
}

func countLikes(t *testing.T, db *gorm.DB, userID, postID uint) int64 {
	t.Helper()
	var count int64
	q := db.Model(&models.Like{})
	if userID != 0 {
		q = q.Where("user_id = ?", userID)
	}
	if postID != 0 {
		q = q.Where("post_id = ?", postID)
	}
	if err := q.Count(&count).Error; err != nil {
		t.Fatalf("count likes: %v", err)
	}
	return count
}
