package db

import (
	"employee_management/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus" // Logging library
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
)

// SeedAdmin creates the bootstrap admin account if it does not exist yet.
// Registration is admin-only, so the first admin has to come from config.
func SeedAdmin(db *gorm.DB, username, email, password string) error {
	if username == "" || password == "" {
		return nil // No bootstrap admin configured
	}
	var count int64
	// Check if the admin account already exists
	if err := db.Model(&domain.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logrus.Info("Admin user already exists") // Nothing to do
		return nil
	}
	// Hash the configured password
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := domain.User{
		Username:           username,     // Admin username from config
		Email:              email,        // Admin email from config
		Password:           string(hash), // Hashed password
		IsAdmin:            true,         // Grant management rights
		IsActive:           true,         // Account enabled
		IsActivePermission: true,         // Business flag enabled
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	logrus.WithField("username", username).Info("Bootstrap admin created")
	return nil
}
