package handlers

import (
	"errors"
	"net/http"
	"postline/internal/services"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	auth   *services.AuthService
	tokens *services.TokenService
}

func NewAuthHandler(auth *services.AuthService, tokens *services.TokenService) *AuthHandler {
	return &AuthHandler{
		auth:   auth,
		tokens: tokens,
	}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required,min=2"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// tokenResponse 登录/注册成功返回 token 与基本信息
func tokenResponse(token, name string) gin.H {
	return gin.H{
		"token": token,
		"info":  gin.H{"name": name},
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusBadRequest, "Invalid registration payload")
		return
	}

	user, err := h.auth.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			JSONError(c, http.StatusBadRequest, "User Already Exists")
			return
		}
		JSONInternalError(c, err, "Failed to register")
		return
	}

	token, err := h.tokens.Sign(user.ID)
	if err != nil {
		JSONInternalError(c, err, "Failed to register")
		return
	}
	c.JSON(http.StatusOK, tokenResponse(token, user.Name))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusBadRequest, "Invalid login payload")
		return
	}

	user, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			JSONError(c, http.StatusUnauthorized, "Wrong email or password")
			return
		}
		JSONInternalError(c, err, "Failed to log in")
		return
	}

	token, err := h.tokens.Sign(user.ID)
	if err != nil {
		JSONInternalError(c, err, "Failed to log in")
		return
	}
	c.JSON(http.StatusOK, tokenResponse(token, user.Name))
}
