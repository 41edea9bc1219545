package api

import (
	"strings" // String manipulation

	"employee_management/internal/config"     // Configuration
	"employee_management/internal/middleware" // Session and role middleware
	"employee_management/internal/session"    // Session store

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// NewRouter wires the API routes. Dependencies come in explicitly so tests
// can run the same router against any database and session store.
func NewRouter(db *gorm.DB, sessions session.Store, cfg *config.Config) *gin.Engine {
	r := gin.Default() // Gin router instance
	_ = r.SetTrustedProxies(nil)
	r.MaxMultipartMemory = 8 << 20
	// Serve uploaded profile photos
	r.Static(strings.TrimSuffix(cfg.MediaURL, "/"), cfg.MediaRoot)

	apiGroup := r.Group("/api")
	// Resolve the session cookie on every API request
	apiGroup.Use(middleware.SessionAuth(db, sessions))

	// Diagnostics
	apiGroup.GET("/test/", TestHandler())                   // Liveness/echo
	apiGroup.GET("/debug-user/", DebugUserHandler(sessions)) // Session introspection

	// Auth
	apiGroup.POST("/admin/login/", AdminLoginHandler(db, sessions, cfg)) // Admin login
	apiGroup.POST("/user/login/", UserLoginHandler(db, sessions, cfg))   // Employee login
	apiGroup.POST("/logout/", LogoutHandler(sessions))                   // Invalidate session

	// Admin-only management
	apiGroup.POST("/register-employee/",
		middleware.AdminOnly("Only admin can register employees"), RegisterEmployeeHandler(db, cfg))
	apiGroup.GET("/employees/",
		middleware.AdminOnly("Only admin can view employees"), ListEmployeesHandler(db, cfg))
	apiGroup.PUT("/employees/:id/permissions/",
		middleware.AdminOnly("Only admin can update permissions"), UpdatePermissionsHandler(db, cfg))

	// Self-service
	apiGroup.GET("/current-user/", middleware.RequireUser(), CurrentUserHandler(cfg))     // Own record
	apiGroup.PUT("/update-profile/", middleware.RequireUser(), UpdateProfileHandler(db, cfg)) // Own profile

	return r
}
