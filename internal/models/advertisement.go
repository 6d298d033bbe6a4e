package models

import "time"

// AdvertisementConfigID is the fixed primary key of the single advertisement
// row. The table holds exactly one row, seeded at startup.
const AdvertisementConfigID = 1

// AdvertisementConfig is the singleton banner configuration. If IsEnabled is
// true both ImageURL and TargetURL must be set; the service enforces this
// before persistence.
type AdvertisementConfig struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	IsEnabled bool      `gorm:"default:false" json:"is_enabled"`
	ImageURL  string    `gorm:"size:512" json:"image_url,omitempty"`
	TargetURL string    `gorm:"size:512" json:"target_url,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`

	// Public URL resolved from the blob store, not persisted.
	PublicURL string `gorm:"-" json:"publicURL,omitempty"`
}

func (AdvertisementConfig) TableName() string {
	return "advertisement"
}
