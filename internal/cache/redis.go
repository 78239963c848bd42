// Package cache holds the optional Redis cache for built snapshots.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/waterops/backend/internal/domain"
	"github.com/waterops/backend/internal/logger"
)

// Cache wraps the Redis client for snapshot caching.
type Cache struct {
	client *redis.Client
	log    *logger.Logger
}

// Connect creates a Redis connection and verifies it with a ping.
func Connect(addr, password string, log *logger.Logger) (*Cache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("cache: failed to connect to Redis: %w", err)
	}

	log.Info("Connected to Redis")
	return &Cache{client: rdb, log: log}, nil
}

// Close closes the Redis connection
func (c *Cache) Close() error {
	return c.client.Close()
}

// SetSnapshot stores a snapshot under its seed and thresholds with a TTL.
func (c *Cache) SetSnapshot(ctx context.Context, s domain.Snapshot, thr domain.Thresholds, ttl time.Duration) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("cache: failed to marshal snapshot: %w", err)
	}

	if err := c.client.Set(ctx, snapshotKey(s.Seed, thr), data, ttl).Err(); err != nil {
		return fmt.Errorf("cache: failed to set snapshot: %w", err)
	}

	c.log.WithField("seed", s.Seed).Debug("Snapshot cached")
	return nil
}

// GetSnapshot returns the snapshot cached for a seed and thresholds, or
// (nil, nil) on a miss.
func (c *Cache) GetSnapshot(ctx context.Context, seed int64, thr domain.Thresholds) (*domain.Snapshot, error) {
	data, err := c.client.Get(ctx, snapshotKey(seed, thr)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache: failed to get snapshot: %w", err)
	}

	var s domain.Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("cache: failed to unmarshal snapshot: %w", err)
	}
	return &s, nil
}

// The thresholds are part of the key: the action list depends on them, so a
// request with different thresholds must never see an entry built under the
// old ones.
func snapshotKey(seed int64, thr domain.Thresholds) string {
	return fmt.Sprintf("dashboard:snapshot:%d:%d:%d:%g", seed, thr.StaleSeconds, thr.ManualMinutes, thr.DeviationPct)
}
