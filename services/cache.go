package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"shop-queue/internal/status"
	"shop-queue/models"
)

// AnalyticsCache stores computed snapshots in Redis under a shop+range key
// with a short TTL. Writes are whole-value replacements; concurrent misses
// for the same key may both compute and both write, last writer wins.
type AnalyticsCache struct {
	Redis *redis.Client
	TTL   time.Duration
}

func NewAnalyticsCache(redisClient *redis.Client, ttl time.Duration) *AnalyticsCache {
	return &AnalyticsCache{
		Redis: redisClient,
		TTL:   ttl,
	}
}

// Key builds the cache key for a shop and date range. Ranges are normalized
// to calendar days, matching how the period resolver produces them.
func (c *AnalyticsCache) Key(shopID string, rng models.DateRange) string {
	return fmt.Sprintf("analytics:%s:%s:%s",
		shopID, rng.From.Format("2006-01-02"), rng.To.Format("2006-01-02"))
}

// Get returns the cached snapshot or status.ErrCacheMiss.
func (c *AnalyticsCache) Get(ctx context.Context, shopID string, rng models.DateRange) (*models.AnalyticsSnapshot, error) {
	data, err := c.Redis.Get(ctx, c.Key(shopID, rng)).Result()
	if err == redis.Nil {
		return nil, status.ErrCacheMiss
	} else if err != nil {
		return nil, err
	}

	var snapshot models.AnalyticsSnapshot
	if err := json.Unmarshal([]byte(data), &snapshot); err != nil {
		// A corrupt entry is treated as a miss so the caller recomputes and
		// overwrites it.
		return nil, status.ErrCacheMiss
	}
	return &snapshot, nil
}

// Set stores the snapshot under its shop+range key with the cache TTL.
func (c *AnalyticsCache) Set(ctx context.Context, snapshot models.AnalyticsSnapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	return c.Redis.Set(ctx, c.Key(snapshot.ShopID, snapshot.DateRange), data, c.TTL).Err()
}
