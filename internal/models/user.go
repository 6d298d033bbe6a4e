package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the application profile behind a session. Identifier is the
// contact string used to sign up (email).
type User struct {
	ID               uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Identifier       string         `gorm:"not null;size:255;uniqueIndex" json:"identifier"`
	Password         string         `gorm:"not null" json:"-"`
	IsAdmin          bool           `gorm:"default:false" json:"isAdmin"`
	IsBanned         bool           `gorm:"default:false" json:"isBanned"`
	IsVerified       bool           `gorm:"default:false" json:"isVerified"`
	VerificationCode string         `gorm:"size:6" json:"-"`
	ResetCode        string         `gorm:"size:6" json:"-"`
	ResetExpiresAt   *time.Time     `json:"-"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "profiles"
}
