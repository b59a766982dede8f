// Package rediscache adds redis read-through caching in front of storage repositories.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"internhub-api/internal/logger"
	"internhub-api/internal/metrics"
	"internhub-api/internal/models"
	"internhub-api/internal/storage"

	"github.com/redis/go-redis/v9"
)

const visiblePoolKey = "internhub:candidates:visible"

// CandidateCache caches the visible candidate pool as one JSON snapshot.
// Redis failures fall through to the wrapped repository.
type CandidateCache struct {
	next   storage.CandidateRepository
	client *redis.Client
	ttl    time.Duration
	log    logger.Logger
}

func NewCandidateCache(next storage.CandidateRepository, client *redis.Client, ttl time.Duration, log logger.Logger) *CandidateCache {
	return &CandidateCache{
		next:   next,
		client: client,
		ttl:    ttl,
		log:    log.WithFields(map[string]interface{}{"component": "candidate_cache"}),
	}
}

var _ storage.CandidateRepository = (*CandidateCache)(nil)

func (c *CandidateCache) ListVisible(ctx context.Context) ([]models.CandidateProfile, error) {
	raw, err := c.client.Get(ctx, visiblePoolKey).Bytes()
	switch {
	case err == nil:
		var pool []models.CandidateProfile
		jsonErr := json.Unmarshal(raw, &pool)
		if jsonErr == nil {
			metrics.CandidateCacheLookups.WithLabelValues("hit").Inc()
			return pool, nil
		}
		c.log.Warn("ListVisible: discarding undecodable cache entry", map[string]interface{}{"error": jsonErr.Error()})
	case errors.Is(err, redis.Nil):
	default:
		c.log.Warn("ListVisible: redis read failed, reading store", map[string]interface{}{"error": err.Error()})
	}
	metrics.CandidateCacheLookups.WithLabelValues("miss").Inc()

	pool, err := c.next.ListVisible(ctx)
	if err != nil {
		return nil, err
	}
	if payload, err := json.Marshal(pool); err == nil {
		if err := c.client.Set(ctx, visiblePoolKey, payload, c.ttl).Err(); err != nil {
			c.log.Warn("ListVisible: redis write failed", map[string]interface{}{"error": err.Error()})
		}
	}
	return pool, nil
}

// GetByUID always reads through; visibility checks must see the live profile.
// A live miss or opt-out for a student still in the cached pool drops the pool,
// so discovery stops listing them before the TTL runs out.
func (c *CandidateCache) GetByUID(ctx context.Context, uid string) (*models.CandidateProfile, error) {
	profile, err := c.next.GetByUID(ctx, uid)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		c.dropIfCached(ctx, uid)
	case err == nil && !profile.VisibleToPartners:
		c.dropIfCached(ctx, uid)
	}
	return profile, err
}

func (c *CandidateCache) dropIfCached(ctx context.Context, uid string) {
	raw, err := c.client.Get(ctx, visiblePoolKey).Bytes()
	if err != nil {
		return
	}
	var pool []models.CandidateProfile
	if json.Unmarshal(raw, &pool) != nil {
		return
	}
	for i := range pool {
		if pool[i].UID != uid {
			continue
		}
		if err := c.Invalidate(ctx); err != nil {
			c.log.Warn("GetByUID: dropping stale pool failed", map[string]interface{}{"uid": uid, "error": err.Error()})
			return
		}
		metrics.CandidateCacheLookups.WithLabelValues("invalidated").Inc()
		return
	}
}

// Invalidate drops the cached pool.
func (c *CandidateCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, visiblePoolKey).Err()
}
