package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"stationhub/backend/services/stations-service/internal/models"
)

// OwnerStore caches the public owner projections attached to station responses.
// It is never consulted for authentication.
type OwnerStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewOwnerStore returns redis-backed store.
func NewOwnerStore(client *redis.Client, ttl time.Duration) *OwnerStore {
	return &OwnerStore{client: client, ttl: ttl}
}

func ownerKey(userID int64) string {
	return fmt.Sprintf("stations:owner:%d", userID)
}

// GetMany returns the cached projections for ids. Misses are absent from the result.
func (s *OwnerStore) GetMany(ctx context.Context, ids []int64) (map[int64]models.OwnerSummary, error) {
	out := make(map[int64]models.OwnerSummary, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = ownerKey(id)
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		owner, err := decodeOwner([]byte(raw))
		if err != nil {
			return nil, err
		}
		out[owner.ID] = owner
	}
	return out, nil
}

// SaveMany caches every projection for the configured ttl in one round trip.
func (s *OwnerStore) SaveMany(ctx context.Context, owners map[int64]models.OwnerSummary) error {
	if len(owners) == 0 {
		return nil
	}
	pipe := s.client.Pipeline()
	for id, owner := range owners {
		data, err := json.Marshal(owner)
		if err != nil {
			return err
		}
		pipe.Set(ctx, ownerKey(id), data, s.ttl)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func decodeOwner(raw []byte) (models.OwnerSummary, error) {
	var owner models.OwnerSummary
	if err := json.Unmarshal(raw, &owner); err != nil {
		return models.OwnerSummary{}, fmt.Errorf("cache: decode owner: %w", err)
	}
	return owner, nil
}
