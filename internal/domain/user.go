package domain

import "time" // Timestamps

// Role is the access tier of a user
type Role string

// Known roles
const (
	RoleUser  Role = "USER"  // Sees only their own feedback
	RoleAdmin Role = "ADMIN" // Sees everything, may query analytics
)

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User Model
type User struct {
	ID           string    `gorm:"primaryKey;size:36"`                  // Primary key (uuid)
	Name         string    `gorm:"size:100;not null"`                   // Display name
	Email        string    `gorm:"size:255;uniqueIndex;not null"`       // Unique, stored lower-cased
	PasswordHash string    `gorm:"column:password_hash;not null"`       // bcrypt hash, never serialized
	Role         Role      `gorm:"size:16;not null;default:USER;index"` // USER or ADMIN
	CreatedAt    time.Time // Creation timestamp (UTC)
	UpdatedAt    time.Time // Update timestamp (UTC)
}
