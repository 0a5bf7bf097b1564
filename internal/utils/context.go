package utils

import "github.com/gin-gonic/gin"

// Gin context keys for the authenticated identity. They live here, below
// both the middleware and the authorization layers, so either side can
// read them without depending on the other.
const (
	ContextUserID   = "user_id"
	ContextUsername = "username"
)

// GetUserID gets the current user ID from context
func GetUserID(c *gin.Context) uint {
	if id, exists := c.Get(ContextUserID); exists {
		return id.(uint)
	}
	return 0
}

// GetUsername gets the current username from context
func GetUsername(c *gin.Context) string {
	if username, exists := c.Get(ContextUsername); exists {
		return username.(string)
	}
	return ""
}
