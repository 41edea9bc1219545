package domain

import "time"

// User Model
type User struct {
	ID                 uint      `gorm:"primaryKey"`      // Primary key
	Username           string    `gorm:"unique;not null"` // Unique username
	Email              string    `gorm:"unique;not null"` // Unique email
	Password           string    `gorm:"not null"`        // Hashed password, never serialized
	Name               string    `gorm:"size:100"`        // Display name
	Address            string    `gorm:"type:text"`       // Free-text address
	ProfilePhoto       string    // Relative path under the media root, empty if none
	Gender             string    `gorm:"size:10"`              // "Male", "Female" or empty
	MobileNumber       string    `gorm:"size:15"`              // Mobile number
	IsAdmin            bool      `gorm:"not null;default:false"` // Grants management operations
	IsActive           bool      `gorm:"not null"`               // Account enabled; checked at login
	IsActivePermission bool      `gorm:"not null"`               // Employee-status toggle, admin controlled
	DateJoined         time.Time `gorm:"autoCreateTime"`       // Account creation timestamp
}
