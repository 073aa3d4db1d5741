package service

import (
	"context"

	"go.uber.org/zap"

	"stationhub/backend/services/stations-service/internal/models"
)

// OwnerCache holds owner projections between requests.
type OwnerCache interface {
	GetMany(ctx context.Context, ids []int64) (map[int64]models.OwnerSummary, error)
	SaveMany(ctx context.Context, owners map[int64]models.OwnerSummary) error
}

// CachedOwnerDirectory serves owner projections from cache and falls back to the user
// store for misses. Cache errors are logged and never fail the read.
type CachedOwnerDirectory struct {
	owners OwnerDirectory
	cache  OwnerCache
	logger *zap.Logger
}

// NewCachedOwnerDirectory wraps owners with cache.
func NewCachedOwnerDirectory(owners OwnerDirectory, cache OwnerCache, logger *zap.Logger) *CachedOwnerDirectory {
	return &CachedOwnerDirectory{owners: owners, cache: cache, logger: logger}
}

// GetOwnerSummaries implements OwnerDirectory.
func (d *CachedOwnerDirectory) GetOwnerSummaries(ctx context.Context, ids []int64) (map[int64]models.OwnerSummary, error) {
	out, err := d.cache.GetMany(ctx, ids)
	if err != nil {
		d.logger.Warn("owner cache read failed", zap.Int("owners", len(ids)), zap.Error(err))
		out = make(map[int64]models.OwnerSummary, len(ids))
	}

	var missing []int64
	for _, id := range ids {
		if _, ok := out[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) == 0 {
		return out, nil
	}

	loaded, err := d.owners.GetOwnerSummaries(ctx, missing)
	if err != nil {
		return nil, err
	}
	if err := d.cache.SaveMany(ctx, loaded); err != nil {
		d.logger.Warn("owner cache write failed", zap.Int("owners", len(loaded)), zap.Error(err))
	}
	for id, owner := range loaded {
		out[id] = owner
	}
	return out, nil
}
