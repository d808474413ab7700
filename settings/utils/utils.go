package utils

import (
	"github.com/gin-gonic/gin"
)

// JSON writes v with the given status.
func JSON(c *gin.Context, status int, v any) {
	c.Header("Content-Type", "application/json")
	c.JSON(status, v)
}

// Error writes a plain message-only error body.
func Error(c *gin.Context, status int, message string) {
	JSON(c, status, gin.H{"message": message})
}
