package models

import (
	"time"
)

// User roles
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User represents a registered account (client or admin)
type User struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Email           string    `gorm:"uniqueIndex;not null" json:"email"` // stored lowercased
	PasswordHash    string    `gorm:"not null" json:"-"`
	FullName        string    `gorm:"not null" json:"full_name"`
	Phone           *string   `json:"phone,omitempty"`
	Address         *string   `json:"address,omitempty"`
	ProfilePhotoKey *string   `json:"profile_photo_key,omitempty"` // S3 key for the profile photo
	ProfilePhotoURL *string   `gorm:"-" json:"profile_photo_url,omitempty"` // computed, presigned URL
	Role            string    `gorm:"not null;default:'USER'" json:"role"` // "USER" or "ADMIN"
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
