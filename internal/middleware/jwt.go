package middleware

import (
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"esg_portal/internal/utils" // JWT utility functions

	"github.com/gin-gonic/gin" // Gin web framework
)

// JWTAuthMiddleware validates bearer tokens and opens the request's session
func JWTAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		// Check if the Authorization header is present and properly formatted
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ") // Extract the token string
		userID, ok := utils.VerifyJWT(tokenStr, secret)       // Verify signature and expiry
		if !ok {
			// If verification fails, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		setSession(c, &Session{UserID: userID}) // Store session in context
		c.Next()                                // Proceed to the next handler
	}
}
