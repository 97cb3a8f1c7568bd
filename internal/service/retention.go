package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/Hostizzy/hostizzy-pms/internal/repository"
	"github.com/Hostizzy/hostizzy-pms/internal/storage"
)

// retentionInterval is how often the KYC cleanup pass runs.
const retentionInterval = 24 * time.Hour

// StartKYCRetention purges guest ID documents past their delete_after
// date: the object is removed from the bucket and the row keeps only
// the metadata.  The loop runs until ctx is cancelled; a nil store
// means nothing was ever uploaded, so there is nothing to purge.
func StartKYCRetention(ctx context.Context, guests *repository.GuestRepo, store *storage.Store, logger *slog.Logger) {
	if store == nil {
		return
	}
	ticker := time.NewTicker(retentionInterval)
	defer ticker.Stop()

	sweepKYC(ctx, guests, store, logger)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sweepKYC(ctx, guests, store, logger)
		}
	}
}

func sweepKYC(ctx context.Context, guests *repository.GuestRepo, store *storage.Store, logger *slog.Logger) {
	expired, err := guests.ExpiredGuestIDs(ctx, time.Now().UTC())
	if err != nil {
		logger.Error("kyc retention: list expired failed", "err", err)
		return
	}
	for _, gid := range expired {
		if gid.FileURL == nil {
			continue
		}
		if err := store.Remove(ctx, *gid.FileURL); err != nil {
			logger.Error("kyc retention: remove object failed", "key", *gid.FileURL, "err", err)
			continue
		}
		if err := guests.ClearFileURL(ctx, gid.ID); err != nil {
			logger.Error("kyc retention: clear file url failed", "id", gid.ID, "err", err)
			continue
		}
		logger.Info("kyc document purged", "id", gid.ID, "key", *gid.FileURL)
	}
}
