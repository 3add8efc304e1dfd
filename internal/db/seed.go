package db

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"postline/internal/models"
	"postline/internal/utils"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const seedSourceURL = "https://jsonplaceholder.typicode.com/posts"

type seedPost struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// SeedPostsIfEmpty fills an empty posts table from JSONPlaceholder so a
// fresh install has something to browse. Failure is non-fatal.
func SeedPostsIfEmpty(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Post{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Printf("Posts already exist (%d), skipping seed", count)
		return nil
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(seedSourceURL)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to fetch seed posts: %d", resp.StatusCode)
	}

	var data []seedPost
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return err
	}

	// 种子帖子需要一个属主
	hash, err := utils.HashPassword(uuid.New().String())
	if err != nil {
		return err
	}
	seedUser := models.User{
		Name:     "seed",
		Email:    "seed@postline.local",
		Password: hash,
	}
	if err := db.Create(&seedUser).Error; err != nil {
		return err
	}

	posts := make([]models.Post, len(data))
	for i, p := range data {
		posts[i] = models.Post{
			Pid:    uuid.New().String(),
			UserID: seedUser.ID,
			Title:  p.Title,
			Body:   p.Body,
		}
	}
	if err := db.Create(&posts).Error; err != nil {
		return err
	}

	log.Printf("Seeded %d posts", len(posts))
	return nil
}
