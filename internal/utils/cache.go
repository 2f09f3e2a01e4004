package utils

import (
	"context"       // Context for Redis operations
	"encoding/json" // JSON encoding/decoding
	"errors"        // Error matching
	"strconv"       // Key formatting
	"time"          // Time durations

	"github.com/redis/go-redis/v9" // Redis client
)

// ResponsesGenerationKey holds the counter that versions a user's cached listings
func ResponsesGenerationKey(userID uint) string {
	return "responses:user:" + strconv.FormatUint(uint64(userID), 10) + ":gen"
}

// ResponsesCacheKey is the cache key of a user's yearly responses listing at generation gen.
// Bumping the generation orphans every listing cached under an older one.
func ResponsesCacheKey(userID uint, gen int64) string {
	return "responses:user:" + strconv.FormatUint(uint64(userID), 10) + ":g" + strconv.FormatInt(gen, 10)
}

// CacheGeneration reads the counter at key, 0 when it was never bumped.
// Readers must take it before loading the data they are about to cache.
func CacheGeneration(ctx context.Context, rdb *redis.Client, key string) (int64, error) {
	if rdb == nil {
		return 0, nil // Caching disabled
	}
	gen, err := rdb.Get(ctx, key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil // Never invalidated
	}
	return gen, err
}

// BumpGeneration advances the counter at key so later reads miss older entries
func BumpGeneration(ctx context.Context, rdb *redis.Client, key string) error {
	if rdb == nil {
		return nil // Caching disabled
	}
	return rdb.Incr(ctx, key).Err()
}

// GetCache retrieves a value from Redis and unmarshals it into dest.
// A nil client behaves as a permanent cache miss.
func GetCache(ctx context.Context, rdb *redis.Client, key string, dest any) (bool, error) {
	if rdb == nil {
		return false, nil // Caching disabled
	}
	val, err := rdb.Get(ctx, key).Result() // Get value from Redis
	if errors.Is(err, redis.Nil) {
		return false, nil // Key does not exist
	} else if err != nil {
		return false, err // Other Redis error
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false, err // Corrupt entry counts as a miss
	}
	return true, nil
}

// SetCache sets a value in Redis with a specified TTL
func SetCache(ctx context.Context, rdb *redis.Client, key string, value any, ttl time.Duration) error {
	if rdb == nil {
		return nil // Caching disabled
	}
	b, err := json.Marshal(value) // Marshal value to JSON
	if err != nil {
		return err // Return error if marshaling fails
	}
	return rdb.Set(ctx, key, b, ttl).Err() // Set value in Redis with TTL
}
