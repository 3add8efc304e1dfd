package handlers

import (
	"errors"
	"net/http"
	"postline/internal/middleware"
	"postline/internal/services"

	"github.com/gin-gonic/gin"
)

type LikeHandler struct {
	likes *services.LikeService
}

func NewLikeHandler(likes *services.LikeService) *LikeHandler {
	return &LikeHandler{likes: likes}
}

// Like 点赞：新边 201，重复点赞 200，两者最终状态都是 liked=true
func (h *LikeHandler) Like(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	pid, ok := parsePid(c)
	if !ok {
		return
	}

	created, err := h.likes.Like(c.Request.Context(), userID, pid)
	if err != nil {
		if errors.Is(err, services.ErrPostNotFound) {
			JSONError(c, http.StatusNotFound, "Post not found")
			return
		}
		JSONInternalError(c, err, "Failed to like post")
		return
	}

	if !created {
		c.JSON(http.StatusOK, gin.H{"liked": true, "message": "Already liked", "postId": pid})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"liked": true, "postId": pid})
}

// Unlike 取消点赞：没有边也返回成功，removed 标记是否真的删了
func (h *LikeHandler) Unlike(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	pid, ok := parsePid(c)
	if !ok {
		return
	}

	removed, err := h.likes.Unlike(c.Request.Context(), userID, pid)
	if err != nil {
		JSONInternalError(c, err, "Failed to unlike post")
		return
	}

	c.JSON(http.StatusOK, gin.H{"liked": false, "removed": removed, "postId": pid})
}

// ClearAll 清空当前用户的全部点赞
func (h *LikeHandler) ClearAll(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	deleted, err := h.likes.ClearAll(c.Request.Context(), userID)
	if err != nil {
		JSONInternalError(c, err, "Failed to clear likes")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "All likes cleared", "deletedCount": deleted})
}
