package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"strconv"  // Year parsing
	"strings"  // Trimming
	"time"     // Cache TTL

	"esg_portal/internal/domain"     // Domain models
	"esg_portal/internal/middleware" // Session and request ID
	"esg_portal/internal/store"      // Persistence
	"esg_portal/internal/utils"      // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// Accepted financial year range
const (
	minYear = 1900
	maxYear = 2100
)

// parseYear parses a financial year path or payload key
func parseYear(s string) (int, bool) {
	y, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || y < minYear || y > maxYear {
		return 0, false
	}
	return y, true
}

// currentSession returns the request's session or answers 401
func currentSession(c *gin.Context) (*middleware.Session, bool) {
	sess, ok := middleware.SessionFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	}
	return sess, ok
}

// internalError logs err with its context and answers a generic 500
func internalError(c *gin.Context, msg string, err error, fields logrus.Fields) {
	entry := logrus.WithFields(fields).WithFields(logrus.Fields{
		"request_id": middleware.RequestID(c), // Request ID
		"error":      err.Error(),             // Error message
	})
	entry.Error(msg)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

// loadYears returns the user's stored years, served from Redis when cached.
// The listing is cached under the generation read before the DB query, so a
// listing read ahead of a concurrent save can only land on an orphaned key.
func loadYears(ctx context.Context, st *store.Store, rdb *redis.Client, ttl time.Duration, userID uint) (map[int]domain.YearlyResponse, error) {
	gen, err := utils.CacheGeneration(ctx, rdb, utils.ResponsesGenerationKey(userID))
	if err != nil {
		logrus.WithFields(logrus.Fields{"user_id": userID, "error": err.Error()}).Warn("Cache generation read failed")
		return st.ListYears(ctx, userID) // Bypass the cache
	}
	cacheKey := utils.ResponsesCacheKey(userID, gen) // Cache key for the listing
	var cached map[int]domain.YearlyResponse
	found, err := utils.GetCache(ctx, rdb, cacheKey, &cached)
	if err == nil && found {
		return cached, nil // Served from cache
	}
	if err != nil {
		logrus.WithFields(logrus.Fields{"user_id": userID, "error": err.Error()}).Warn("Cache read failed")
	}
	years, err := st.ListYears(ctx, userID) // Fetch from DB
	if err != nil {
		return nil, err
	}
	if err := utils.SetCache(ctx, rdb, cacheKey, years, ttl); err != nil {
		logrus.WithFields(logrus.Fields{"user_id": userID, "error": err.Error()}).Warn("Cache write failed")
	}
	return years, nil
}

// invalidateYears bumps the user's listing generation after a write
func invalidateYears(ctx context.Context, rdb *redis.Client, userID uint) {
	if err := utils.BumpGeneration(ctx, rdb, utils.ResponsesGenerationKey(userID)); err != nil {
		logrus.WithFields(logrus.Fields{"user_id": userID, "error": err.Error()}).Warn("Cache invalidation failed")
	}
}
