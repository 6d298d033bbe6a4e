package models

import (
	"time"

	"github.com/google/uuid"
)

// EvidenceFile is the metadata row for an evidence blob. The set of evidence
// files is fixed at report creation; rows are only ever deleted together with
// their report.
type EvidenceFile struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ReportID     uuid.UUID `gorm:"type:uuid;not null;index" json:"report_id"`
	FilePath     string    `gorm:"not null;size:512" json:"filePath"`
	OriginalName string    `gorm:"not null;size:255" json:"originalName"`
	MimeType     string    `gorm:"size:255" json:"mimeType"`
	Size         int64     `json:"size"`
	CreatedAt    time.Time `json:"created_at"`

	// Public URL resolved from the blob store, not persisted.
	PublicURL string `gorm:"-" json:"publicURL,omitempty"`
}
