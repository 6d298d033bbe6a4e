package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/fardinbaf/scamguard-backend/internal/storage"
	"github.com/fardinbaf/scamguard-backend/internal/store"
)

// StartOrphanSweep runs a daily goroutine that flags stored blobs with no
// referencing row: evidence blobs without a metadata row and banner blobs the
// advertisement config no longer points at. Orphans happen when a metadata
// write fails after a blob upload; the blob alone is inert, so the sweep only
// reports it for manual cleanup instead of deleting anything.
func StartOrphanSweep(reports store.ReportStore, ads store.AdStore, blobs storage.BlobStore, done chan struct{}) {
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				sweepOrphans(reports, ads, blobs)
			case <-done:
				return
			}
		}
	}()
}

func sweepOrphans(reports store.ReportStore, ads store.AdStore, blobs storage.BlobStore) {
	known, err := reports.EvidencePaths(context.Background())
	if err != nil {
		slog.Error("orphan sweep: failed to list evidence metadata", "error", err)
		return
	}
	knownSet := make(map[string]struct{}, len(known)+1)
	for _, p := range known {
		knownSet[p] = struct{}{}
	}

	adCfg, err := ads.AdConfig(context.Background())
	if err != nil {
		slog.Error("orphan sweep: failed to fetch advertisement config", "error", err)
		return
	}
	if adCfg != nil && adCfg.ImageURL != "" {
		knownSet[adCfg.ImageURL] = struct{}{}
	}

	stored, err := blobs.List("")
	if err != nil {
		slog.Error("orphan sweep: failed to list blobs", "error", err)
		return
	}

	orphans := 0
	for _, p := range stored {
		if _, ok := knownSet[p]; !ok {
			orphans++
			slog.Warn("orphaned blob", "path", p)
		}
	}
	if orphans > 0 {
		slog.Info("orphan sweep completed", "orphans", orphans, "blobs", len(stored))
	}
}
