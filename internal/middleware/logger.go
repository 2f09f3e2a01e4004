package middleware

import (
	"time" // Latency

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/google/uuid"     // Request IDs
	"github.com/sirupsen/logrus" // Logging library
)

// RequestIDHeader carries the request ID in both directions
const RequestIDHeader = "X-Request-ID"

const requestIDKey = "requestID"

// RequestID returns the ID assigned by RequestLogger, or "" outside of it
func RequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// RequestLogger tags every request with an ID and logs its outcome through logrus
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString() // Generate when the client sent none
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)

		c.Next()

		entry := logrus.WithFields(logrus.Fields{
			"request_id": id,                               // Request ID
			"method":     c.Request.Method,                 // HTTP method
			"path":       c.FullPath(),                     // Route pattern
			"status":     c.Writer.Status(),                // Response status
			"latency_ms": time.Since(start).Milliseconds(), // Handling time
			"client_ip":  c.ClientIP(),                     // Caller address
		})
		switch status := c.Writer.Status(); {
		case status >= 500:
			entry.Error("Request failed")
		case status >= 400:
			entry.Warn("Request rejected")
		default:
			entry.Info("Request handled")
		}
	}
}
