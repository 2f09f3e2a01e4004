package middleware

import (
	"errors"   // Error matching
	"net/http" // HTTP status codes

	"esg_portal/internal/store" // Persistence

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// CurrentUserMiddleware loads the session's user from the database on each request,
// so tokens of deleted accounts stop working immediately
func CurrentUserMiddleware(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := SessionFrom(c) // Get session from context
		// Check if the session exists
		if !ok {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		user, err := st.FindUserByID(c.Request.Context(), sess.UserID) // Fetch user from database
		if errors.Is(err, store.ErrNotFound) {
			// Token outlived its account
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id":    sess.UserID,  // User ID
				"request_id": RequestID(c), // Request ID
				"error":      err.Error(),  // Error message
			}).Error("Failed to load session user")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		sess.User = user // Attach the user to the session
		c.Next()         // Proceed to the next handler
	}
}
