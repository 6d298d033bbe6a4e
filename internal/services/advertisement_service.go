package services

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/fardinbaf/scamguard-backend/internal/dto"
	"github.com/fardinbaf/scamguard-backend/internal/identity"
	"github.com/fardinbaf/scamguard-backend/internal/models"
	"github.com/fardinbaf/scamguard-backend/internal/policy"
	"github.com/fardinbaf/scamguard-backend/internal/storage"
	"github.com/fardinbaf/scamguard-backend/internal/store"
	"github.com/google/uuid"
)

// AdvertisementService manages the single advertisement banner row. The row
// is seeded at startup so Get never has to special-case an empty table.
type AdvertisementService struct {
	ads   store.AdStore
	blobs storage.BlobStore
}

func NewAdvertisementService(ads store.AdStore, blobs storage.BlobStore) *AdvertisementService {
	return &AdvertisementService{ads: ads, blobs: blobs}
}

// Seed ensures the singleton row exists, disabled by default.
func (s *AdvertisementService) Seed(ctx context.Context) error {
	cfg, err := s.ads.AdConfig(ctx)
	if err != nil {
		return fmt.Errorf("fetch advertisement config: %w", err)
	}
	if cfg != nil {
		return nil
	}
	return s.ads.SaveAdConfig(ctx, &models.AdvertisementConfig{
		ID:        models.AdvertisementConfigID,
		IsEnabled: false,
	})
}

// Get is public; the banner is shown to everyone when enabled.
func (s *AdvertisementService) Get(ctx context.Context) (*models.AdvertisementConfig, error) {
	cfg, err := s.ads.AdConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch advertisement config: %w", err)
	}
	if cfg == nil {
		cfg = &models.AdvertisementConfig{ID: models.AdvertisementConfigID}
	}
	if cfg.ImageURL != "" {
		cfg.PublicURL = s.blobs.PublicURL(cfg.ImageURL)
	}
	return cfg, nil
}

// Save updates the singleton row, optionally replacing the banner image.
// An enabled banner must have both an image and a target URL; that is
// enforced here, before persistence, not in the UI.
func (s *AdvertisementService) Save(ctx context.Context, actor *identity.Identity, req *dto.SaveAdvertisementRequest, image *EvidenceUpload) (*models.AdvertisementConfig, error) {
	if err := policy.CanManageUsers(actor); err != nil {
		return nil, err
	}

	cfg, err := s.ads.AdConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch advertisement config: %w", err)
	}
	if cfg == nil {
		cfg = &models.AdvertisementConfig{ID: models.AdvertisementConfigID}
	}

	// Validate before touching the blob store: a rejected save must not
	// leave an orphaned banner blob behind.
	targetURL := strings.TrimSpace(req.TargetURL)
	willHaveImage := cfg.ImageURL != "" || image != nil
	if req.IsEnabled && (!willHaveImage || targetURL == "") {
		return nil, fmt.Errorf("%w: an enabled advertisement needs an image and a target URL", policy.ErrValidation)
	}

	oldImage := ""
	if image != nil {
		blobPath := path.Join("ads",
			"banner-"+uuid.NewString()+strings.ToLower(path.Ext(image.Name)))
		if err := s.blobs.Upload(blobPath, image.Content); err != nil {
			return nil, fmt.Errorf("upload banner image: %w", err)
		}
		oldImage = cfg.ImageURL
		cfg.ImageURL = blobPath
	}

	cfg.IsEnabled = req.IsEnabled
	cfg.TargetURL = targetURL

	if err := s.ads.SaveAdConfig(ctx, cfg); err != nil {
		return nil, fmt.Errorf("save advertisement config: %w", err)
	}

	if oldImage != "" && oldImage != cfg.ImageURL {
		if err := s.blobs.Remove([]string{oldImage}); err != nil {
			slog.Error("failed to remove replaced banner image",
				"path", oldImage, "error", err)
		}
	}

	cfg.PublicURL = ""
	if cfg.ImageURL != "" {
		cfg.PublicURL = s.blobs.PublicURL(cfg.ImageURL)
	}
	return cfg, nil
}
