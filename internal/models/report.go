package models

import (
	"time"

	"github.com/google/uuid"
)

// Report status values. Status starts at StatusPending and changes only
// through the moderation transition in the report service.
const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

// Target types a report can be filed against.
const (
	TargetBusiness = "Business"
	TargetPerson   = "Person"
	TargetCompany  = "Company"
	TargetWebsite  = "Website"
	TargetOther    = "Other"
)

// Report categories.
const (
	CategoryScam     = "Scam"
	CategorySpam     = "Spam"
	CategoryPhishing = "Phishing"
	CategoryMalware  = "Malware"
)

// ValidStatus reports whether s is a known report status.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

// ValidTargetType reports whether t is a known target type.
func ValidTargetType(t string) bool {
	switch t {
	case TargetBusiness, TargetPerson, TargetCompany, TargetWebsite, TargetOther:
		return true
	}
	return false
}

// ValidCategory reports whether c is a known report category.
func ValidCategory(c string) bool {
	switch c {
	case CategoryScam, CategorySpam, CategoryPhishing, CategoryMalware:
		return true
	}
	return false
}

// Report is a community-submitted scam/spam/phishing report.
type Report struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title        string    `gorm:"not null;size:255" json:"title"`
	TargetType   string    `gorm:"not null;size:50;index" json:"targetType"`
	Category     string    `gorm:"not null;size:50;index" json:"category"`
	Description  string    `gorm:"not null;type:text" json:"description"`
	ContactInfo  string    `gorm:"size:255" json:"contactInfo,omitempty"`
	Status       string    `gorm:"not null;default:'Pending';size:50;index" json:"status"`
	ReportedByID uuid.UUID `gorm:"type:uuid;not null;index" json:"reported_by_id"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Reporter     User      `gorm:"foreignKey:ReportedByID" json:"-"`

	// Joined data, populated by the store.
	EvidenceFiles      []EvidenceFile `gorm:"foreignKey:ReportID" json:"evidenceFiles,omitempty"`
	ReporterIdentifier string         `gorm:"-" json:"reporterIdentifier,omitempty"`
}
