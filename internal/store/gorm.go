package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/fardinbaf/scamguard-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Gorm implements every store interface on a *gorm.DB.
type Gorm struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

// --- reports ---

func (s *Gorm) CreateReport(ctx context.Context, r *models.Report, evidence []models.EvidenceFile) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(r).Error; err != nil {
			return fmt.Errorf("insert report: %w", err)
		}
		for i := range evidence {
			evidence[i].ReportID = r.ID
		}
		if len(evidence) > 0 {
			if err := tx.Create(&evidence).Error; err != nil {
				return fmt.Errorf("insert evidence metadata: %w", err)
			}
		}
		return nil
	})
}

func (s *Gorm) ReportByID(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	var r models.Report
	err := s.db.WithContext(ctx).
		Preload("EvidenceFiles").
		Preload("Reporter").
		First(&r, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	r.ReporterIdentifier = r.Reporter.Identifier
	return &r, nil
}

func (s *Gorm) SearchReports(ctx context.Context, f ReportFilter) ([]models.Report, error) {
	query := s.db.WithContext(ctx).Model(&models.Report{}).
		Preload("EvidenceFiles").
		Preload("Reporter")

	if f.Keyword != "" {
		like := "%" + f.Keyword + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", like, like)
	}
	if f.TargetType != "" {
		query = query.Where("target_type = ?", f.TargetType)
	}
	if f.Category != "" {
		query = query.Where("category = ?", f.Category)
	}
	if len(f.Statuses) > 0 {
		query = query.Where("status IN ?", f.Statuses)
	}

	var reports []models.Report
	if err := query.Order("created_at DESC, id DESC").Find(&reports).Error; err != nil {
		return nil, err
	}
	for i := range reports {
		reports[i].ReporterIdentifier = reports[i].Reporter.Identifier
	}
	return reports, nil
}

func (s *Gorm) UpdateReportStatus(ctx context.Context, id uuid.UUID, status string) error {
	result := s.db.WithContext(ctx).Model(&models.Report{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *Gorm) DeleteReportCascade(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("report_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return fmt.Errorf("delete comments: %w", err)
		}
		if err := tx.Where("report_id = ?", id).Delete(&models.EvidenceFile{}).Error; err != nil {
			return fmt.Errorf("delete evidence metadata: %w", err)
		}
		return tx.Delete(&models.Report{}, "id = ?", id).Error
	})
}

func (s *Gorm) EvidencePaths(ctx context.Context) ([]string, error) {
	var paths []string
	err := s.db.WithContext(ctx).Model(&models.EvidenceFile{}).
		Pluck("file_path", &paths).Error
	return paths, err
}

// --- comments ---

func (s *Gorm) CreateComment(ctx context.Context, c *models.Comment) error {
	return s.db.WithContext(ctx).Create(c).Error
}

func (s *Gorm) CommentsByReport(ctx context.Context, reportID uuid.UUID) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.db.WithContext(ctx).
		Preload("User").
		Where("report_id = ?", reportID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	for i := range comments {
		comments[i].UserIdentifier = comments[i].User.Identifier
	}
	return comments, nil
}

// --- profiles ---

func (s *Gorm) ProfileByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var u models.User
	err := s.db.WithContext(ctx).First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Gorm) ProfileByIdentifier(ctx context.Context, identifier string) (*models.User, error) {
	var u models.User
	err := s.db.WithContext(ctx).First(&u, "identifier = ?", identifier).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Gorm) CreateProfile(ctx context.Context, u *models.User) error {
	return s.db.WithContext(ctx).Create(u).Error
}

func (s *Gorm) SaveProfile(ctx context.Context, u *models.User) error {
	return s.db.WithContext(ctx).Save(u).Error
}

func (s *Gorm) ListProfiles(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).Order("created_at ASC").Find(&users).Error
	return users, err
}

// --- refresh tokens ---

func (s *Gorm) CreateRefreshToken(ctx context.Context, t *models.RefreshToken) error {
	return s.db.WithContext(ctx).Create(t).Error
}

func (s *Gorm) RefreshTokenByHash(ctx context.Context, hash string) (*models.RefreshToken, error) {
	var t models.RefreshToken
	err := s.db.WithContext(ctx).
		First(&t, "token_hash = ? AND revoked = false", hash).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *Gorm) RevokeRefreshToken(ctx context.Context, hash string) error {
	return s.db.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("token_hash = ?", hash).
		Update("revoked", true).Error
}

// --- advertisement ---

func (s *Gorm) AdConfig(ctx context.Context) (*models.AdvertisementConfig, error) {
	var cfg models.AdvertisementConfig
	err := s.db.WithContext(ctx).
		First(&cfg, "id = ?", models.AdvertisementConfigID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (s *Gorm) SaveAdConfig(ctx context.Context, cfg *models.AdvertisementConfig) error {
	cfg.ID = models.AdvertisementConfigID
	return s.db.WithContext(ctx).Save(cfg).Error
}
