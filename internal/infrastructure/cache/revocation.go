package cache

import (
	"context"
	"time"
)

const revokedKeyPrefix = "auth:revoked:"

// RevocationStore marks logged-out tokens by their token id until they
// would have expired anyway. Checks are best-effort: with Redis down a
// token stays accepted for its remaining validity window, which trades
// consistency for login availability.
type RevocationStore struct {
	redis *Redis
}

func NewRevocationStore(r *Redis) *RevocationStore {
	return &RevocationStore{redis: r}
}

func (s *RevocationStore) MarkRevoked(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if s == nil || tokenID == "" {
		return nil
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		// Already expired, nothing to revoke.
		return nil
	}
	return s.redis.Set(ctx, revokedKeyPrefix+tokenID, "1", ttl)
}

func (s *RevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if s == nil || tokenID == "" {
		return false, nil
	}
	return s.redis.Exists(ctx, revokedKeyPrefix+tokenID)
}
