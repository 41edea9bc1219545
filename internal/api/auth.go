package api

import (
	"net/http" // HTTP status codes

	"employee_management/internal/config"     // Configuration
	"employee_management/internal/domain"     // Importing domain models
	"employee_management/internal/middleware" // Session context helpers
	"employee_management/internal/session"    // Session store

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
)

// LoginRequest carries a username/password pair. Presence is checked by the
// credential validator, not binding tags, so the error messages stay stable.
type LoginRequest struct {
	Username string `json:"username" form:"username"` // Username
	Password string `json:"password" form:"password"` // Password
}

// credentialError reports a credential failure as a 400 validation error
func credentialError(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"non_field_errors": []string{msg}}})
}

// authenticateUser checks a username/password pair against the user table.
// Unknown usernames and wrong passwords yield the same message so the
// response does not reveal which part failed. A correct password on a
// disabled account reports the account state instead.
func authenticateUser(db *gorm.DB, username, password string) (*domain.User, string) {
	if username == "" || password == "" {
		return nil, "Both username and password required"
	}
	var user domain.User // Fetch user from database
	if err := db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, "Invalid credentials"
	}
	// Compare provided password with stored hash
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "Invalid credentials"
	}
	if !user.IsActive {
		return nil, "User account is disabled"
	}
	return &user, ""
}

// establishSession mints a fresh session for the user and sets the cookie.
// Every login gets a new token, so no prior session identity carries over.
func establishSession(c *gin.Context, sessions session.Store, cfg *config.Config, userID uint) error {
	token, err := sessions.Create(c.Request.Context(), userID)
	if err != nil {
		return err
	}
	maxAge := cfg.SessionTTLHours * 3600 // Cookie lifetime in seconds
	c.SetCookie(session.CookieName, token, maxAge, "/", "", cfg.IsProd, true)
	return nil
}

// AdminLoginHandler authenticates an admin and establishes a session
func AdminLoginHandler(db *gorm.DB, sessions session.Store, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBind(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		user, msg := authenticateUser(db, req.Username, req.Password)
		if user == nil {
			credentialError(c, msg) // Same 400 shape for all credential failures
			return
		}
		// Valid credentials are not enough here; the account must be an admin
		if !user.IsAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Not an admin user"})
			return
		}
		if err := establishSession(c, sessions, cfg, user.ID); err != nil {
			logrus.WithField("error", err.Error()).Error("Failed to create session")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":  user.ID,       // Authenticated user ID
			"username": user.Username, // Username
		}).Info("Admin login") // Log admin login
		c.JSON(http.StatusOK, gin.H{
			"message": "Admin login successful",                // Success message
			"user":    serializeUser(c, user, cfg.MediaURL), // Serialized user
		})
	}
}

// UserLoginHandler authenticates an employee and establishes a session
func UserLoginHandler(db *gorm.DB, sessions session.Store, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBind(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		user, msg := authenticateUser(db, req.Username, req.Password)
		if user == nil {
			credentialError(c, msg) // Same 400 shape for all credential failures
			return
		}
		// Admins have their own login entry point
		if user.IsAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin users should use admin login"})
			return
		}
		if err := establishSession(c, sessions, cfg, user.ID); err != nil {
			logrus.WithField("error", err.Error()).Error("Failed to create session")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":  user.ID,       // Authenticated user ID
			"username": user.Username, // Username
		}).Info("User login") // Log user login
		c.JSON(http.StatusOK, gin.H{
			"message": "User login successful",                // Success message
			"user":    serializeUser(c, user, cfg.MediaURL), // Serialized user
		})
	}
}

// LogoutHandler invalidates the current session. Anonymous callers get the
// same success response; logout is idempotent.
func LogoutHandler(sessions session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := middleware.SessionToken(c); token != "" {
			_ = sessions.Delete(c.Request.Context(), token) // Invalidate server-side state
		}
		// Expire the cookie either way
		c.SetCookie(session.CookieName, "", -1, "/", "", false, true)
		c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
	}
}

// TestHandler is a liveness/echo endpoint
func TestHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c) // Session-resolved user, nil when anonymous
		username := "Anonymous"
		if user != nil {
			username = user.Username
		}
		var sessionKey any // Null when no session cookie was presented
		if token := middleware.SessionToken(c); token != "" {
			sessionKey = token
		}
		c.JSON(http.StatusOK, gin.H{
			"message":            "API is working!", // Liveness message
			"user_authenticated": user != nil,       // Whether a session resolved
			"user":               username,          // Username or Anonymous
			"session_key":        sessionKey,        // Presented session token
		})
	}
}

// DebugUserHandler reports the request's session and auth state. Diagnostic
// endpoint; it exposes the raw session record.
func DebugUserHandler(sessions session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)   // Session-resolved user
		token := middleware.SessionToken(c) // Presented token
		resp := gin.H{
			"user_authenticated": user != nil, // Whether a session resolved
			"user_id":            nil,         // Filled in when authenticated
			"username":           "Anonymous", // Username or Anonymous
			"is_admin":           false,       // Admin flag
			"is_active":          false,       // Account enabled flag
			"session_key":        nil,         // Presented session token
			"session_data":       gin.H{},     // Raw session record
		}
		if user != nil {
			resp["user_id"] = user.ID
			resp["username"] = user.Username
			resp["is_admin"] = user.IsAdmin
			resp["is_active"] = user.IsActive
		}
		if token != "" {
			resp["session_key"] = token
			// Expose the stored record as-is
			if rec, err := sessions.Get(c.Request.Context(), token); err == nil && rec != nil {
				resp["session_data"] = rec
			}
		}
		c.JSON(http.StatusOK, resp)
	}
}
