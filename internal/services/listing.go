package services

import (
	"context"
	"fmt"
	"math"
	"postline/internal/models"
	"postline/internal/utils"
	"strings"
	"time"

	"gorm.io/gorm"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10

	listCacheSize = 500
	listCacheTTL  = 1 * time.Minute
)

// ListParams 分页与搜索参数，page/limit 合法性由 handler 层校验
type ListParams struct {
	Page   int
	Limit  int
	Search string
}

// ListResult is the listing envelope returned to clients.
type ListResult struct {
	Items        []models.Post `json:"items"`
	Page         int           `json:"page"`
	Limit        int           `json:"limit"`
	Total        int64         `json:"total"`
	TotalPages   int           `json:"totalPages"`
	HasNextPage  bool          `json:"hasNextPage"`
	HasPrevPage  bool          `json:"hasPrevPage"`
	Search       *string       `json:"search"`
	LikedEnabled bool          `json:"likedEnabled"`
}

// ListingService pages through posts, filters by title and annotates each
// item with whether the viewing user has liked it.
type ListingService struct {
	db    *gorm.DB
	cache *utils.Cache
}

func NewListingService(db *gorm.DB) *ListingService {
	return &ListingService{
		db:    db,
		cache: utils.NewCache(listCacheSize),
	}
}

// escapeLike 转义 LIKE 通配符，保证搜索词按字面匹配
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

// List runs the two-phase listing: fetch the page, then one batched like
// lookup for just that page. viewerID == 0 means anonymous.
func (s *ListingService) List(ctx context.Context, params ListParams, viewerID uint) (*ListResult, error) {
	page := params.Page
	if page <= 0 {
		page = DefaultPage
	}
	limit := params.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	search := strings.TrimSpace(params.Search)
	offset := (page - 1) * limit

	// 匿名请求结果与用户无关，可以短暂缓存
	cacheKey := fmt.Sprintf("posts:list:%d:%d:%q", page, limit, search)
	if viewerID == 0 {
		if cached := s.cache.Get(cacheKey); cached != nil {
			if result, ok := cached.(*ListResult); ok {
				return result, nil
			}
		}
	}

	query := s.db.WithContext(ctx).Model(&models.Post{})
	if search != "" {
		pattern := "%" + escapeLike(strings.ToLower(search)) + "%"
		query = query.Where(`LOWER(title) LIKE ? ESCAPE '\'`, pattern)
	}
	// 复用同一组条件做 count 和翻页查询
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var posts []models.Post
	if err := query.
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error; err != nil {
		return nil, err
	}

	likedEnabled := viewerID != 0
	if likedEnabled && len(posts) > 0 {
		if err := s.fillLiked(ctx, posts, viewerID); err != nil {
			return nil, err
		}
	}

	for i := range posts {
		posts[i].BodyHTML = utils.RenderMarkdown(posts[i].Body)
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))

	var searchOut *string
	if search != "" {
		searchOut = &search
	}

	result := &ListResult{
		Items:        posts,
		Page:         page,
		Limit:        limit,
		Total:        total,
		TotalPages:   totalPages,
		HasNextPage:  page < totalPages,
		HasPrevPage:  page > 1,
		Search:       searchOut,
		LikedEnabled: likedEnabled,
	}

	if viewerID == 0 {
		s.cache.Set(cacheKey, result, listCacheTTL)
	}

	return result, nil
}

// fillLiked 批量查询当前页哪些帖子被该用户点赞
func (s *ListingService) fillLiked(ctx context.Context, posts []models.Post, viewerID uint) error {
	postIDs := make([]uint, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
	}

	var likes []models.Like
	if err := s.db.WithContext(ctx).
		Select("post_id").
		Where("user_id = ? AND post_id IN ?", viewerID, postIDs).
		Find(&likes).Error; err != nil {
		return err
	}

	likedSet := make(map[uint]bool, len(likes))
	for _, l := range likes {
		likedSet[l.PostID] = true
	}

	for i := range posts {
		posts[i].Liked = likedSet[posts[i].ID]
	}
	return nil
}

// InvalidateCache drops all cached anonymous pages. Called after any post
// mutation so stale pages are never served.
func (s *ListingService) InvalidateCache() {
	s.cache.Purge()
}
