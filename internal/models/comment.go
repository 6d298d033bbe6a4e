package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment on an approved report. IsAnonymous controls display identity only;
// the true author is always retained in UserID.
type Comment struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ReportID    uuid.UUID `gorm:"type:uuid;not null;index" json:"report_id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Text        string    `gorm:"not null;type:text" json:"text"`
	IsAnonymous bool      `gorm:"default:false" json:"is_anonymous"`
	CreatedAt   time.Time `json:"created_at"`
	User        User      `gorm:"foreignKey:UserID" json:"-"`

	// Joined data, populated by the store. Empty when IsAnonymous.
	UserIdentifier string `gorm:"-" json:"userIdentifier,omitempty"`
}
