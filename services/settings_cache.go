package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	settingsCacheKey = "site_settings"
	settingsCacheTTL = 5 * time.Minute
)

// SettingsCache is a Redis-backed cache for the typed settings struct.
// Cache misses and Redis errors fall through to the database; a broken
// cache never fails a request.
type SettingsCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewSettingsCache connects to Redis and verifies the connection
func NewSettingsCache(redisURL string) (*SettingsCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &SettingsCache{rdb: rdb, ttl: settingsCacheTTL}, nil
}

// Get returns the cached settings and whether the lookup hit
func (c *SettingsCache) Get(ctx context.Context) (*Settings, bool) {
	val, err := c.rdb.Get(ctx, settingsCacheKey).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("settings cache read failed: %v", err)
		}
		return nil, false
	}

	var settings Settings
	if err := json.Unmarshal([]byte(val), &settings); err != nil {
		log.Printf("settings cache held malformed JSON: %v", err)
		return nil, false
	}
	return &settings, true
}

// Set stores the settings with the cache TTL
func (c *SettingsCache) Set(ctx context.Context, settings *Settings) {
	data, err := json.Marshal(settings)
	if err != nil {
		log.Printf("failed to marshal settings for cache: %v", err)
		return
	}
	if err := c.rdb.Set(ctx, settingsCacheKey, data, c.ttl).Err(); err != nil {
		log.Printf("settings cache write failed: %v", err)
	}
}

// Invalidate drops the cached settings after an update
func (c *SettingsCache) Invalidate(ctx context.Context) {
	if err := c.rdb.Del(ctx, settingsCacheKey).Err(); err != nil {
		log.Printf("settings cache invalidation failed: %v", err)
	}
}

// Close closes the underlying Redis connection
func (c *SettingsCache) Close() error {
	return c.rdb.Close()
}
