package middleware

import (
	"net/http"
	"postline/internal/services"
	"strings"

	"github.com/gin-gonic/gin"
)

const UserIDKey = "user_id"

// LoadUser resolves an optional bearer token into a user id on the
// context. Invalid or missing tokens are ignored: read paths degrade to
// anonymous, never fail.
func LoadUser(tokens *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			token := strings.TrimPrefix(header, "Bearer ")
			if userID, err := tokens.Parse(token); err == nil {
				c.Set(UserIDKey, userID)
			}
		}
		c.Next()
	}
}

// AuthRequired ensures LoadUser resolved an identity
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(UserIDKey); !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}
		c.Next()
	}
}

// CurrentUserID returns the resolved user id, 0 when anonymous
func CurrentUserID(c *gin.Context) uint {
	if v, exists := c.Get(UserIDKey); exists {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}
