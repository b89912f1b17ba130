package model

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleStudent    Role = "student"
	RoleInstructor Role = "instructor"
	RoleAdmin      Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleInstructor, RoleAdmin:
		return true
	}
	return false
}

// User represents a registered account
type User struct {
	ID               uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Username         string    `gorm:"size:100;not null;uniqueIndex" json:"username"`
	Email            string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	PasswordHash     string    `gorm:"not null" json:"-"`
	Role             Role      `gorm:"size:20;not null;default:'student'" json:"role"`
	IsVerified       bool      `gorm:"not null" json:"isVerified"`
	VerificationCode *string   `gorm:"size:6" json:"-"`
	IsBanned         bool      `gorm:"not null" json:"isBanned"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
