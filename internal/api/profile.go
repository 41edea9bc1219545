package api

import (
	"net/http" // HTTP status codes

	"employee_management/internal/config"     // Configuration
	"employee_management/internal/domain"     // Importing domain models
	"employee_management/internal/middleware" // Session context helpers

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// CurrentUserHandler returns the caller's own record
func CurrentUserHandler(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c) // Route is session-gated
		c.JSON(http.StatusOK, serializeUser(c, user, cfg.MediaURL))
	}
}

// ProfileUpdateRequest is a partial update: nil fields are left untouched.
// id, is_admin and date_joined are read-only and have no field here; the
// password is only set at registration. is_active_permission stays
// self-writable, matching the shared read/update field set.
type ProfileUpdateRequest struct {
	Username           *string `json:"username" form:"username"`                         // Unique
	Email              *string `json:"email" form:"email"`                               // Unique
	Name               *string `json:"name" form:"name"`                                 // Display name
	Address            *string `json:"address" form:"address"`                           // Address
	Gender             *string `json:"gender" form:"gender"`                             // "Male", "Female" or empty
	MobileNumber       *string `json:"mobile_number" form:"mobile_number"`               // Mobile number
	IsActivePermission *bool   `json:"is_active_permission" form:"is_active_permission"` // Employee-status flag
}

// validateProfileUpdate checks the supplied fields, excluding the caller's
// own row from the uniqueness pre-checks.
func validateProfileUpdate(db *gorm.DB, user *domain.User, req *ProfileUpdateRequest) fieldErrors {
	errs := fieldErrors{}
	if req.Username != nil {
		if *req.Username == "" {
			errs.add("username", "Username cannot be blank")
		} else if *req.Username != user.Username {
			var count int64 // Pre-check username uniqueness
			db.Model(&domain.User{}).Where("username = ? AND id <> ?", *req.Username, user.ID).Count(&count)
			if count > 0 {
				errs.add("username", "Username already exists")
			}
		}
	}
	if req.Email != nil {
		if *req.Email == "" {
			errs.add("email", "Email cannot be blank")
		} else if !emailPattern.MatchString(*req.Email) {
			errs.add("email", "Enter a valid email address")
		} else if *req.Email != user.Email {
			var count int64 // Pre-check email uniqueness
			db.Model(&domain.User{}).Where("email = ? AND id <> ?", *req.Email, user.ID).Count(&count)
			if count > 0 {
				errs.add("email", "Email already exists")
			}
		}
	}
	if req.Gender != nil && !isValidGender(*req.Gender) {
		errs.add("gender", "\""+*req.Gender+"\" is not a valid choice")
	}
	return errs
}

// UpdateProfileHandler applies a partial update to the caller's own record,
// from JSON or multipart (optional profile_photo file part).
func UpdateProfileHandler(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c) // Route is session-gated
		var req ProfileUpdateRequest      // Bind JSON or multipart form
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		errs := validateProfileUpdate(db, user, &req)
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
		// Apply supplied fields only
		if req.Username != nil {
			user.Username = *req.Username
		}
		if req.Email != nil {
			user.Email = *req.Email
		}
		if req.Name != nil {
			user.Name = *req.Name
		}
		if req.Address != nil {
			user.Address = *req.Address
		}
		if req.Gender != nil {
			user.Gender = *req.Gender
		}
		if req.MobileNumber != nil {
			user.MobileNumber = *req.MobileNumber
		}
		if req.IsActivePermission != nil {
			user.IsActivePermission = *req.IsActivePermission
		}
		if hasPhoto {
			photoPath, err := savePhoto(c, cfg.MediaRoot) // Store the uploaded photo
			if err != nil {
				logrus.WithField("error", err.Error()).Error("Failed to store profile photo")
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store profile photo"})
				return
			}
			user.ProfilePhoto = photoPath
		}
		if err := db.Save(user).Error; err != nil {
			logrus.WithField("error", err.Error()).Error("Failed to update profile")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":  user.ID,       // Updated user
			"username": user.Username, // Username
		}).Info("Profile updated") // Log profile update
		c.JSON(http.StatusOK, gin.H{
			"message": "Profile updated successfully",       // Success message
			"user":    serializeUser(c, user, cfg.MediaURL), // Serialized user
		})
	}
}
