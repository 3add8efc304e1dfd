package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// JSONError writes the standard error payload
func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"message": message})
}

// JSONInternalError logs the real error and returns an opaque message
func JSONInternalError(c *gin.Context, err error, message string) {
	log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, gin.H{"message": message})
}
