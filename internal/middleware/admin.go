package middleware

import (
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework
)

// AdminOnly rejects requests whose session user is missing or not an admin.
// Each endpoint passes its own rejection message.
func AdminOnly(message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c) // Session-resolved user, nil when anonymous
		if user == nil || !user.IsAdmin {
			// Anonymous and non-admin callers get the same 403
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": message})
			return
		}
		c.Next() // Admin, proceed to the handler
	}
}
