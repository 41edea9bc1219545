package api

import (
	"path/filepath" // File extension handling
	"strings"       // String manipulation
	"time"          // Timestamps

	"employee_management/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin" // Gin web framework
	"github.com/google/uuid"   // Stored photo filenames
)

// UserResponse is the wire representation of a user. The password hash is
// never part of it; id, is_admin and date_joined are read-only on updates.
type UserResponse struct {
	ID                 uint      `json:"id"`                   // User ID
	Username           string    `json:"username"`             // Username
	Email              string    `json:"email"`                // Email
	Name               string    `json:"name"`                 // Display name
	Address            string    `json:"address"`              // Free-text address
	ProfilePhoto       *string   `json:"profile_photo"`        // Media path, null if no photo
	ProfilePhotoURL    *string   `json:"profile_photo_url"`    // Absolute URL, null if no photo
	Gender             string    `json:"gender"`               // "Male", "Female" or empty
	MobileNumber       string    `json:"mobile_number"`        // Mobile number
	IsActivePermission bool      `json:"is_active_permission"` // Employee-status flag
	IsAdmin            bool      `json:"is_admin"`             // Admin flag
	DateJoined         time.Time `json:"date_joined"`          // Account creation timestamp
}

// serializeUser converts a stored user to its wire form. With a request
// context the photo URL is absolute, built from the request's host;
// without one it stays relative. No photo yields null for both fields.
func serializeUser(c *gin.Context, user *domain.User, mediaURL string) UserResponse {
	resp := UserResponse{
		ID:                 user.ID,                 // User ID
		Username:           user.Username,           // Username
		Email:              user.Email,              // Email
		Name:               user.Name,               // Display name
		Address:            user.Address,            // Address
		Gender:             user.Gender,             // Gender
		MobileNumber:       user.MobileNumber,       // Mobile number
		IsActivePermission: user.IsActivePermission, // Employee-status flag
		IsAdmin:            user.IsAdmin,            // Admin flag
		DateJoined:         user.DateJoined,         // Creation timestamp
	}
	if user.ProfilePhoto != "" {
		path := strings.TrimSuffix(mediaURL, "/") + "/" + user.ProfilePhoto // e.g. /media/profiles/x.jpg
		resp.ProfilePhoto = &path
		url := path // Relative fallback when no request context is available
		if c != nil && c.Request != nil {
			scheme := "http"
			if c.Request.TLS != nil {
				scheme = "https"
			}
			url = scheme + "://" + c.Request.Host + path
		}
		resp.ProfilePhotoURL = &url
	}
	return resp
}

// isImageFile checks the upload's extension against the accepted photo types
func isImageFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return ext == ".jpg" || ext == ".jpeg" || ext == ".png"
}

// savePhoto stores an uploaded photo under <mediaRoot>/profiles with a
// generated name and returns the relative path persisted on the user row.
func savePhoto(c *gin.Context, mediaRoot string) (string, error) {
	file, err := c.FormFile("profile_photo")
	if err != nil {
		return "", err
	}
	name := uuid.NewString() + strings.ToLower(filepath.Ext(file.Filename)) // Collision-free stored name
	if err := c.SaveUploadedFile(file, filepath.Join(mediaRoot, "profiles", name)); err != nil {
		return "", err
	}
	return "profiles/" + name, nil // Relative path goes into the table
}
