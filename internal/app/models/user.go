package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID             int64     `json:"id" db:"id"`
	Username       string    `json:"username" db:"username"`
	Password       string    `json:"-" db:"password"` // bcrypt hash, excluded from JSON
	DisplayName    string    `json:"displayName" db:"display_name"`
	ProfilePicture *string   `json:"profilePicture,omitempty" db:"profile_picture"`
	Consent        bool      `json:"consent" db:"consent"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"`
}
