package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/juggajay/risksure-backend/internal/domain/requirement"
	"github.com/juggajay/risksure-backend/internal/metrics"
	"github.com/juggajay/risksure-backend/internal/service/verdict"
)

// RequirementCache is a read-through cache over a RequirementStore.
// Requirements change rarely (contract amendments) and are read on every
// submission, so a short TTL keeps the database off the hot path without a
// separate invalidation channel.
type RequirementCache struct {
	store  verdict.RequirementStore
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRequirementCache wraps the store with a Redis cache.
func NewRequirementCache(store verdict.RequirementStore, client *redis.Client, ttl time.Duration, logger *zap.Logger) *RequirementCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &RequirementCache{
		store:  store,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// ListByProject serves from Redis when possible and falls back to the store.
// Cache errors degrade to a store read rather than failing the evaluation.
func (c *RequirementCache) ListByProject(ctx context.Context, projectID uuid.UUID) ([]requirement.InsuranceRequirement, error) {
	key := requirementKey(projectID)

	payload, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var reqs []requirement.InsuranceRequirement
		if err := json.Unmarshal(payload, &reqs); err == nil {
			metrics.CacheHitsTotal.WithLabelValues("requirements", "hit").Inc()
			return reqs, nil
		}
		// Corrupt entry: fall through to the store and overwrite it.
		c.logger.Warn("discarding corrupt requirement cache entry", zap.String("key", key))

	case errors.Is(err, redis.Nil):
		metrics.CacheHitsTotal.WithLabelValues("requirements", "miss").Inc()

	default:
		metrics.CacheHitsTotal.WithLabelValues("requirements", "error").Inc()
		c.logger.Warn("requirement cache read failed", zap.String("key", key), zap.Error(err))
	}

	reqs, err := c.store.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(reqs); err == nil {
		if err := c.client.Set(ctx, key, encoded, c.ttl).Err(); err != nil {
			c.logger.Warn("requirement cache write failed", zap.String("key", key), zap.Error(err))
		}
	}

	return reqs, nil
}

// Invalidate drops the cached requirement list for a project, for use when a
// contract is amended.
func (c *RequirementCache) Invalidate(ctx context.Context, projectID uuid.UUID) error {
	if err := c.client.Del(ctx, requirementKey(projectID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate requirement cache: %w", err)
	}
	return nil
}

func requirementKey(projectID uuid.UUID) string {
	return "requirements:project:" + projectID.String()
}
