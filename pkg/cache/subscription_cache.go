package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// SubscriptionCacheTTL is the time-to-live for cached subscriptions.
	SubscriptionCacheTTL = 24 * time.Hour

	subscriptionCacheKeyPrefix = "subscription"
)

// CachedSubscription is the denormalized read model stored in Redis as a hash.
// Name and Email are plain strings here; readers must parse them back into
// domain values before use.
type CachedSubscription struct {
	ID           uuid.UUID `json:"id"`
	ListID       uuid.UUID `json:"list_id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Status       string    `json:"status"`
	SubscribedAt time.Time `json:"subscribed_at"`
}

// SubscriptionCache provides read/write operations for subscription cache entries.
// Keys are scoped by listID to prevent cross-tenant data leakage.
// Key format: "subscription:{listID}:{subscriptionID}"
type SubscriptionCache struct {
	client *RedisClient
}

// NewSubscriptionCache creates a SubscriptionCache backed by the given RedisClient.
func NewSubscriptionCache(r *RedisClient) *SubscriptionCache {
	return &SubscriptionCache{client: r}
}

// Get retrieves a cached subscription. Returns redis.Nil when the key does
// not exist or has expired.
func (c *SubscriptionCache) Get(ctx context.Context, listID, id uuid.UUID) (*CachedSubscription, error) {
	vals, err := c.client.Client().HGetAll(ctx, c.key(listID, id)).Result()
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	if len(vals) == 0 {
		return nil, redis.Nil
	}

	sid, err := uuid.Parse(vals["id"])
	if err != nil {
		return nil, fmt.Errorf("cache parse id: %w", err)
	}
	lid, err := uuid.Parse(vals["list_id"])
	if err != nil {
		return nil, fmt.Errorf("cache parse list_id: %w", err)
	}
	subscribedAt, err := time.Parse(time.RFC3339Nano, vals["subscribed_at"])
	if err != nil {
		return nil, fmt.Errorf("cache parse subscribed_at: %w", err)
	}

	return &CachedSubscription{
		ID:           sid,
		ListID:       lid,
		Email:        vals["email"],
		Name:         vals["name"],
		Status:       vals["status"],
		SubscribedAt: subscribedAt,
	}, nil
}

// Set writes a subscription as a Redis hash with a 24-hour TTL in one pipeline.
// It ignores the generation guard; read-path fills use SetIfGeneration.
func (c *SubscriptionCache) Set(ctx context.Context, s *CachedSubscription) error {
	_, err := c.client.Client().Pipelined(ctx, func(pipe redis.Pipeliner) error {
		c.writeEntry(ctx, pipe, s)
		return nil
	})
	if err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Generation returns the invalidation counter for a subscription; 0 when it
// was never invalidated or the counter expired. Read it before loading the
// row that will be passed to SetIfGeneration.
func (c *SubscriptionCache) Generation(ctx context.Context, listID, id uuid.UUID) (int64, error) {
	gen, err := c.client.Client().Get(ctx, c.genKey(listID, id)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("cache generation: %w", err)
	}
	return gen, nil
}

// SetIfGeneration writes s only if no Invalidate ran since gen was read.
// The check and the write run in one WATCH/MULTI transaction. It reports
// false, with a nil error, when the write was skipped as stale.
func (c *SubscriptionCache) SetIfGeneration(ctx context.Context, s *CachedSubscription, gen int64) (bool, error) {
	genKey := c.genKey(s.ListID, s.ID)
	stored := false
	err := c.client.Client().Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, genKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if cur != gen {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			c.writeEntry(ctx, pipe, s)
			return nil
		})
		if err != nil {
			return err
		}
		stored = true
		return nil
	}, genKey)
	if errors.Is(err, redis.TxFailedErr) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache conditional set: %w", err)
	}
	return stored, nil
}

// Invalidate drops the cached entry and bumps its generation so fills that
// loaded the row earlier are discarded. Call it after every database write.
func (c *SubscriptionCache) Invalidate(ctx context.Context, listID, id uuid.UUID) error {
	genKey := c.genKey(listID, id)
	_, err := c.client.Client().TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, genKey)
		pipe.Expire(ctx, genKey, SubscriptionCacheTTL)
		pipe.Del(ctx, c.key(listID, id))
		return nil
	})
	if err != nil {
		return fmt.Errorf("cache invalidate: %w", err)
	}
	return nil
}

func (c *SubscriptionCache) writeEntry(ctx context.Context, pipe redis.Pipeliner, s *CachedSubscription) {
	key := c.key(s.ListID, s.ID)
	pipe.HSet(ctx, key,
		"id", s.ID.String(),
		"list_id", s.ListID.String(),
		"email", s.Email,
		"name", s.Name,
		"status", s.Status,
		"subscribed_at", s.SubscribedAt.UTC().Format(time.RFC3339Nano),
	)
	pipe.Expire(ctx, key, SubscriptionCacheTTL)
}

func (c *SubscriptionCache) key(listID, id uuid.UUID) string {
	return fmt.Sprintf("%s:%s:%s", subscriptionCacheKeyPrefix, listID, id)
}

func (c *SubscriptionCache) genKey(listID, id uuid.UUID) string {
	return c.key(listID, id) + ":gen"
}
