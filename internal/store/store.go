// Package store defines the persistent-store boundary. Services depend on
// these interfaces; the GORM implementation in gorm.go binds them to
// PostgreSQL. Lookups return (nil, nil) when the row is absent so callers
// can distinguish "not there" from provider failure.
package store

import (
	"context"

	"github.com/fardinbaf/scamguard-backend/internal/models"
	"github.com/google/uuid"
)

// ReportFilter is the effective filter applied to a report search. It is
// produced by the service after policy narrowing; sentinel values ("All
// Types", "All Categories", "All Statuses") never appear here.
type ReportFilter struct {
	Keyword    string
	TargetType string
	Category   string
	// Statuses nil means no status constraint.
	Statuses []string
}

type ReportStore interface {
	// CreateReport inserts the report and its evidence metadata rows in one
	// transaction.
	CreateReport(ctx context.Context, r *models.Report, evidence []models.EvidenceFile) error
	ReportByID(ctx context.Context, id uuid.UUID) (*models.Report, error)
	// SearchReports returns matches ordered by created_at descending, ties
	// broken by id descending.
	SearchReports(ctx context.Context, f ReportFilter) ([]models.Report, error)
	UpdateReportStatus(ctx context.Context, id uuid.UUID, status string) error
	// DeleteReportCascade removes the report, its comments and its evidence
	// metadata rows in one transaction.
	DeleteReportCascade(ctx context.Context, id uuid.UUID) error
	// EvidencePaths lists all stored evidence blob paths, for the orphan
	// sweep.
	EvidencePaths(ctx context.Context) ([]string, error)
}

type CommentStore interface {
	CreateComment(ctx context.Context, c *models.Comment) error
	CommentsByReport(ctx context.Context, reportID uuid.UUID) ([]models.Comment, error)
}

type UserStore interface {
	ProfileByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	ProfileByIdentifier(ctx context.Context, identifier string) (*models.User, error)
	CreateProfile(ctx context.Context, u *models.User) error
	SaveProfile(ctx context.Context, u *models.User) error
	ListProfiles(ctx context.Context) ([]models.User, error)
}

type TokenStore interface {
	CreateRefreshToken(ctx context.Context, t *models.RefreshToken) error
	RefreshTokenByHash(ctx context.Context, hash string) (*models.RefreshToken, error)
	RevokeRefreshToken(ctx context.Context, hash string) error
}

type AdStore interface {
	AdConfig(ctx context.Context) (*models.AdvertisementConfig, error)
	SaveAdConfig(ctx context.Context, cfg *models.AdvertisementConfig) error
}
