package middleware

import (
	"net/http" // HTTP status codes

	"employee_management/internal/domain"  // Importing domain models
	"employee_management/internal/session" // Session store

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// Context keys set by SessionAuth
const (
	currentUserKey  = "currentUser"  // Resolved *domain.User
	sessionTokenKey = "sessionToken" // Token presented by the client
)

// SessionAuth resolves the session cookie to a user record and stores it in
// the request context. A missing, unknown or expired token leaves the
// request anonymous; handlers that need a caller gate on it explicitly.
func SessionAuth(db *gorm.DB, sessions session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(session.CookieName) // Read the session cookie
		if err != nil || token == "" {
			c.Next() // No cookie, anonymous request
			return
		}
		c.Set(sessionTokenKey, token) // Keep the token for logout/debug
		rec, err := sessions.Get(c.Request.Context(), token)
		if err != nil || rec == nil {
			c.Next() // Invalid or expired token, anonymous request
			return
		}
		var user domain.User // Resolve the session's user row
		if err := db.First(&user, rec.UserID).Error; err != nil {
			c.Next() // Session points at a deleted user
			return
		}
		c.Set(currentUserKey, &user) // Authenticated request
		c.Next()
	}
}

// CurrentUser returns the session-resolved user, or nil for anonymous requests
func CurrentUser(c *gin.Context) *domain.User {
	if v, ok := c.Get(currentUserKey); ok {
		if user, ok := v.(*domain.User); ok {
			return user
		}
	}
	return nil
}

// SessionToken returns the token the client presented, or empty
func SessionToken(c *gin.Context) string {
	if v, ok := c.Get(sessionTokenKey); ok {
		if token, ok := v.(string); ok {
			return token
		}
	}
	return ""
}

// RequireUser aborts anonymous requests with 403
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Authentication required"})
			return
		}
		c.Next()
	}
}
