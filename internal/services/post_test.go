package services

import (
	"context"
	"errors"
	"postline/internal/models"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestCreatePostAssignsPid(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "author@example.com")

	s := NewPostService(db)
	post, err := s.Create(context.Background(), user.ID, "My title", "My body")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := uuid.Parse(post.Pid); err != nil {
		t.Errorf("Expected uuid pid, got %q", post.Pid)
	}
	if post.UserID != user.ID {
		t.Errorf("Expected owner %d, got %d", user.ID, post.UserID)
	}

	var inDB models.Post
	if err := db.Where("pid = ?", post.Pid).First(&inDB).Error; err != nil {
		t.Fatalf("Created post not in store: %v", err)
	}
}

func TestDeletePostIsOwnerScoped(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	attacker := createTestUser(t, db, "attacker@example.com")
	post := createTestPost(t, db, owner.ID, "Owner post", time.Now())

	s := NewPostService(db)
	ctx := context.Background()

	// 非属主删除与不存在同样报 NotFound
	if err := s.Delete(ctx, attacker.ID, post.Pid); !errors.Is(err, ErrPostNotFound) {
		t.Errorf("Expected ErrPostNotFound for foreign delete, got %v", err)
	}
	var still models.Post
	if err := db.Where("pid = ?", post.Pid).First(&still).Error; err != nil {
		t.Fatal("Post must survive a foreign delete attempt")
	}

	if err := s.Delete(ctx, owner.ID, post.Pid); err != nil {
		t.Fatalf("Owner delete failed: %v", err)
	}
	var count int64
	db.Model(&models.Post{}).Where("pid = ?", post.Pid).Count(&count)
	if count != 0 {
		t.Error("Post must be gone after owner delete")
	}

	// 再删一次：已经不存在
	if err := s.Delete(ctx, owner.ID, post.Pid); !errors.Is(err, ErrPostNotFound) {
		t.Errorf("Expected ErrPostNotFound for repeated delete, got %v", err)
	}

	if err := s.Delete(ctx, owner.ID, uuid.New().String()); !errors.Is(err, ErrPostNotFound) {
		t.Errorf("Expected ErrPostNotFound for unknown pid, got %v", err)
	}
}

func TestDeletePostCascadesLikeEdges(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	fan := createTestUser(t, db, "fan@example.com")
	post := createTestPost(t, db, owner.ID, "Popular post", time.Now())
	keep := createTestPost(t, db, owner.ID, "Other post", time.Now())

	likes := NewLikeService(db)
	ctx := context.Background()
	for _, uid := range []uint{owner.ID, fan.ID} {
		if _, err := likes.Like(ctx, uid, post.Pid); err != nil {
			t.Fatalf("Like failed: %v", err)
		}
	}
	if _, err := likes.Like(ctx, fan.ID, keep.Pid); err != nil {
		t.Fatalf("Like failed: %v", err)
	}

	s := NewPostService(db)
	if err := s.Delete(ctx, owner.ID, post.Pid); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if n := countLikes(t, db, 0, post.ID); n != 0 {
		t.Errorf("Expected 0 edges for deleted post, got %d", n)
	}
	if n := countLikes(t, db, 0, keep.ID); n != 1 {
		t.Errorf("Expected edge on surviving post untouched, got %d", n)
	}
}
