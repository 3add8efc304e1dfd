package handlers

import (
	"errors"
	"io"
	"net/http"
	"postline/internal/middleware"
	"postline/internal/services"
	"postline/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PostHandler struct {
	posts   *services.PostService
	listing *services.ListingService
}

func NewPostHandler(posts *services.PostService, listing *services.ListingService) *PostHandler {
	return &PostHandler{
		posts:   posts,
		listing: listing,
	}
}

// page/limit 从 query 取，校验失败直接 400，不进入 Listing Engine
type listQuery struct {
	Page  int `form:"page,default=1" binding:"gt=0"`
	Limit int `form:"limit,default=10" binding:"gt=0,lte=1000"`
}

// search 从 body 取，可为空
type listBody struct {
	Search string `json:"search" binding:"omitempty,max=200"`
}

type createPostRequest struct {
	Title string `json:"title" binding:"required"`
	Body  string `json:"body" binding:"required"`
}

// parsePid rejects malformed post ids at the boundary
func parsePid(c *gin.Context) (string, bool) {
	pid := c.Param("postId")
	if _, err := uuid.Parse(pid); err != nil {
		JSONError(c, http.StatusBadRequest, "Invalid postId")
		return "", false
	}
	return pid, true
}

// List 帖子列表：公开接口，带 token 时附加 liked 标记
func (h *PostHandler) List(c *gin.Context) {
	var query listQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		JSONError(c, http.StatusBadRequest, "page must be > 0 and limit between 1 and 1000")
		return
	}

	// body 可缺省；chunked 请求没有 Content-Length，统一尝试绑定，空 body 得 io.EOF
	var body listBody
	if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
		JSONError(c, http.StatusBadRequest, "search must be a string of at most 200 chars")
		return
	}

	viewerID := middleware.CurrentUserID(c)
	result, err := h.listing.List(c.Request.Context(), services.ListParams{
		Page:   query.Page,
		Limit:  query.Limit,
		Search: body.Search,
	}, viewerID)
	if err != nil {
		JSONInternalError(c, err, "Failed to fetch posts")
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *PostHandler) Create(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusBadRequest, "title and body are required")
		return
	}

	post, err := h.posts.Create(c.Request.Context(), userID, req.Title, req.Body)
	if err != nil {
		JSONInternalError(c, err, "Failed to create post")
		return
	}
	h.listing.InvalidateCache()

	post.BodyHTML = utils.RenderMarkdown(post.Body)
	c.JSON(http.StatusCreated, post)
}

func (h *PostHandler) Delete(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	pid, ok := parsePid(c)
	if !ok {
		return
	}

	if err := h.posts.Delete(c.Request.Context(), userID, pid); err != nil {
		if errors.Is(err, services.ErrPostNotFound) {
			// 不存在与无权限合并返回，避免泄露帖子是否存在
			JSONError(c, http.StatusNotFound, "Post not found or you do not have permission to delete it")
			return
		}
		JSONInternalError(c, err, "Failed to delete post")
		return
	}
	h.listing.InvalidateCache()

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}
