package handlers

import (
	"github.com/blinko-space/blinko-server/internal/settings"
	"github.com/gin-gonic/gin"
)

// getUserID extracts the user ID from gin context.
func getUserID(c *gin.Context) uint64 {
	val, exists := c.Get("userID")
	if !exists {
		return 0
	}
	switch v := val.(type) {
	case uint64:
		return v
	case int64:
		return uint64(v)
	case uint:
		return uint64(v)
	case int:
		return uint64(v)
	default:
		return 0
	}
}

// getRole extracts the caller role from gin context.
func getRole(c *gin.Context) string {
	val, exists := c.Get("role")
	if !exists {
		return ""
	}
	role, _ := val.(string)
	return role
}

// callerFromContext builds the settings caller for the current request.
// An unauthenticated request yields the anonymous caller.
func callerFromContext(c *gin.Context) settings.Caller {
	return settings.Caller{ID: getUserID(c), Role: getRole(c)}
}
