package api

import (
	"net/http" // HTTP status codes
	"regexp"   // Regular expressions
	"strconv"  // String conversion

	"employee_management/internal/config"     // Configuration
	"employee_management/internal/domain"     // Importing domain models
	"employee_management/internal/middleware" // Session context helpers

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
)

// RegisterEmployeeRequest is the registration payload, JSON or multipart.
// There is no is_admin field: registered employees are never admins.
type RegisterEmployeeRequest struct {
	Username           string `json:"username" form:"username"`                         // Required, unique
	Email              string `json:"email" form:"email"`                               // Required, unique
	Password           string `json:"password" form:"password"`                         // Required, min length 6
	Name               string `json:"name" form:"name"`                                 // Display name
	Address            string `json:"address" form:"address"`                           // Address
	Gender             string `json:"gender" form:"gender"`                             // "Male", "Female" or empty
	MobileNumber       string `json:"mobile_number" form:"mobile_number"`               // Mobile number
	IsActivePermission *bool  `json:"is_active_permission" form:"is_active_permission"` // Defaults to true
}

// fieldErrors accumulates field-keyed validation messages
type fieldErrors map[string][]string

// add appends a message for a field
func (e fieldErrors) add(field, msg string) {
	e[field] = append(e[field], msg)
}

// emailPattern is a coarse shape check, the unique index does the rest
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// isValidGender checks the gender value against the allowed choices
func isValidGender(gender string) bool {
	return gender == "" || gender == "Male" || gender == "Female"
}

// validateRegistration checks required fields, formats and uniqueness.
// Uniqueness is pre-checked explicitly so conflicts come back as field
// errors rather than a bare database error.
func validateRegistration(db *gorm.DB, req *RegisterEmployeeRequest) fieldErrors {
	errs := fieldErrors{}
	if req.Username == "" {
		errs.add("username", "Username is required")
	} else {
		var count int64 // Pre-check username uniqueness
		db.Model(&domain.User{}).Where("username = ?", req.Username).Count(&count)
		if count > 0 {
			errs.add("username", "Username already exists")
		}
	}
	if req.Email == "" {
		errs.add("email", "Email is required")
	} else if !emailPattern.MatchString(req.Email) {
		errs.add("email", "Enter a valid email address")
	} else {
		var count int64 // Pre-check email uniqueness
		db.Model(&domain.User{}).Where("email = ?", req.Email).Count(&count)
		if count > 0 {
			errs.add("email", "Email already exists")
		}
	}
	if req.Password == "" {
		errs.add("password", "Password is required")
	} else if len(req.Password) < 6 {
		errs.add("password", "Password must be at least 6 characters")
	}
	if !isValidGender(req.Gender) {
		errs.add("gender", "\""+req.Gender+"\" is not a valid choice")
	}
	return errs
}

// RegisterEmployeeHandler creates an employee account on behalf of an admin.
// The route is admin-gated; the created account is always non-admin.
func RegisterEmployeeHandler(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterEmployeeRequest // Bind JSON or multipart form
		if err := c.ShouldBind(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		errs := validateRegistration(db, &req)
		// Optional photo part, multipart requests only
		hasPhoto := false
		if file, err := c.FormFile("profile_photo"); err == nil {
			if !isImageFile(file.Filename) {
				errs.add("profile_photo", "Upload a valid image")
			} else {
				hasPhoto = true
			}
		}
		if len(errs) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"errors": errs}) // Field-keyed validation errors
			return
		}
		// Hash the password
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		photoPath := ""
		if hasPhoto {
			photoPath, err = savePhoto(c, cfg.MediaRoot) // Store the uploaded photo
			if err != nil {
				logrus.WithField("error", err.Error()).Error("Failed to store profile photo")
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store profile photo"})
				return
			}
		}
		isActivePermission := true // Default when omitted
		if req.IsActivePermission != nil {
			isActivePermission = *req.IsActivePermission
		}
		user := domain.User{
			Username:           req.Username,       // Username
			Email:              req.Email,          // Email
			Password:           string(hash),       // Hashed password
			Name:               req.Name,           // Display name
			Address:            req.Address,        // Address
			ProfilePhoto:       photoPath,          // Stored photo path, empty if none
			Gender:             req.Gender,         // Gender
			MobileNumber:       req.MobileNumber,   // Mobile number
			IsAdmin:            false,              // Registered employees are never admins
			IsActive:           true,               // Account enabled
			IsActivePermission: isActivePermission, // Employee-status flag
		}
		if err := db.Create(&user).Error; err != nil {
			// Uniqueness was pre-checked; reaching this is a race or a DB failure
			logrus.WithField("error", err.Error()).Error("Failed to create employee")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create employee"})
			return
		}
		logrus.WithFields(logrus.Fields{
			"admin_id":    middleware.CurrentUser(c).ID, // Registering admin
			"employee_id": user.ID,                      // New employee ID
			"username":    user.Username,                // New employee username
		}).Info("Employee registered") // Log registration
		c.JSON(http.StatusCreated, gin.H{
			"message": "Employee registered successfully",    // Success message
			"user":    serializeUser(c, &user, cfg.MediaURL), // Serialized user
		})
	}
}

// ListEmployeesHandler returns all non-admin accounts, unpaginated
func ListEmployeesHandler(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var employees []domain.User // Slice to hold employees
		// Admin accounts are excluded from the listing
		if err := db.Where("is_admin = ?", false).Find(&employees).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch employees"})
			return
		}
		resp := make([]UserResponse, len(employees))
		for i := range employees {
			resp[i] = serializeUser(c, &employees[i], cfg.MediaURL) // Serialize each employee
		}
		c.JSON(http.StatusOK, resp) // Bare array, no envelope
	}
}

// PermissionUpdateRequest toggles the employee-status flag. An omitted
// field keeps the stored value.
type PermissionUpdateRequest struct {
	IsActivePermission *bool `json:"is_active_permission" form:"is_active_permission"` // New flag value
}

// UpdatePermissionsHandler sets is_active_permission on a non-admin account.
// The lookup is scoped to non-admin rows, so an admin's id is a 404.
func UpdatePermissionsHandler(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id")) // Parse the employee id
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
			return
		}
		var employee domain.User
		// Admin ids are deliberately outside the lookup scope
		if err := db.Where("id = ? AND is_admin = ?", id, false).First(&employee).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
			return
		}
		var req PermissionUpdateRequest // Bind JSON request to struct
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		if req.IsActivePermission != nil {
			employee.IsActivePermission = *req.IsActivePermission // Apply the new value
		}
		if err := db.Save(&employee).Error; err != nil {
			logrus.WithField("error", err.Error()).Error("Failed to update permissions")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update permissions"})
			return
		}
		logrus.WithFields(logrus.Fields{
			"admin_id":             middleware.CurrentUser(c).ID,  // Acting admin
			"employee_id":          employee.ID,                   // Target employee
			"is_active_permission": employee.IsActivePermission,   // Resulting flag
		}).Info("Employee permissions updated") // Log permission change
		c.JSON(http.StatusOK, gin.H{
			"message": "Permissions updated successfully",        // Success message
			"user":    serializeUser(c, &employee, cfg.MediaURL), // Serialized user
		})
	}
}
