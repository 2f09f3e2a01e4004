package api

import (
	"errors"   // Error matching
	"net/http" // HTTP status codes
	"sort"     // Deterministic save order
	"strconv"  // Year keys
	"time"     // Timestamps

	"esg_portal/internal/domain"     // Importing domain models
	"esg_portal/internal/store"      // Persistence
	"esg_portal/internal/validation" // Validation rules

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// SaveResponsesRequest carries raw answers keyed by financial year.
// Derived metrics sent by clients are ignored since RawInputs has no such fields.
type SaveResponsesRequest struct {
	Responses map[string]domain.RawInputs `json:"responses" binding:"required"` // Year to raw answers
}

// GetResponsesHandler returns every stored year of the authenticated user
func GetResponsesHandler(st *store.Store, rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := currentSession(c)
		if !ok {
			return
		}
		years, err := loadYears(c.Request.Context(), st, rdb, ttl, sess.UserID)
		if err != nil {
			internalError(c, "Failed to fetch responses", err, logrus.Fields{"user_id": sess.UserID})
			return
		}
		c.JSON(http.StatusOK, gin.H{"responses": years})
	}
}

// SaveResponsesHandler validates, derives and upserts each populated year
func SaveResponsesHandler(st *store.Store, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := currentSession(c)
		if !ok {
			return
		}
		var req SaveResponsesRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}

		pending := make(map[int]domain.RawInputs, len(req.Responses)) // Years to store
		violations := map[string]validation.Violations{}              // Year to violations
		seen := make(map[int]bool, len(req.Responses))                // Keys such as "2023" and "02023" collide
		for key, raw := range req.Responses {
			year, ok := parseYear(key)
			if !ok || seen[year] {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year: " + key})
				return
			}
			seen[year] = true
			if raw.IsEmpty() {
				continue // Nothing entered for this year
			}
			if v := validation.Validate(raw); len(v) > 0 {
				violations[strconv.Itoa(year)] = v
				continue
			}
			pending[year] = raw
		}
		// Nothing is written while any year is invalid
		if len(violations) > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "violations": violations})
			return
		}

		years := make([]int, 0, len(pending))
		for y := range pending {
			years = append(years, y)
		}
		sort.Ints(years)
		ctx := c.Request.Context()
		defer invalidateYears(ctx, rdb, sess.UserID) // Orphan cached listings, also after a partial save
		for _, y := range years {
			saved, err := st.UpsertYear(ctx, sess.UserID, y, pending[y])
			if err != nil {
				internalError(c, "Failed to save response", err, logrus.Fields{"user_id": sess.UserID, "year": y})
				return
			}
			// Log each stored year
			logrus.WithFields(logrus.Fields{
				"user_id":     sess.UserID,                     // User ID
				"year":        y,                               // Financial year
				"response_id": saved.ID,                        // Row ID
				"type":        "save_response",                 // Event type
				"timestamp":   time.Now().Format(time.RFC3339), // Current timestamp
			}).Info("Response saved")
		}
		c.JSON(http.StatusOK, gin.H{"count": len(years)})
	}
}

// DeleteResponseHandler removes one financial year of the authenticated user
func DeleteResponseHandler(st *store.Store, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := currentSession(c)
		if !ok {
			return
		}
		year, ok := parseYear(c.Param("year"))
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
			return
		}
		if err := st.DeleteYear(c.Request.Context(), sess.UserID, year); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Response not found"})
				return
			}
			internalError(c, "Failed to delete response", err, logrus.Fields{"user_id": sess.UserID, "year": year})
			return
		}
		invalidateYears(c.Request.Context(), rdb, sess.UserID) // Orphan cached listings
		logrus.WithFields(logrus.Fields{
			"user_id":   sess.UserID,                     // User ID
			"year":      year,                            // Financial year
			"type":      "delete_response",               // Event type
			"timestamp": time.Now().Format(time.RFC3339), // Current timestamp
		}).Info("Response deleted")
		c.JSON(http.StatusOK, gin.H{"message": "Response deleted"})
	}
}
