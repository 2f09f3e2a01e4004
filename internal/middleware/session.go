package middleware

import (
	"esg_portal/internal/domain" // Domain models

	"github.com/gin-gonic/gin" // Gin web framework
)

// sessionKey is where the request's Session lives in the gin context
const sessionKey = "session"

// Session is the single source of truth for who is making the request
type Session struct {
	UserID uint        // Subject of the verified token
	User   domain.User // Loaded by CurrentUserMiddleware
}

// SessionFrom returns the request's session, false when the route is not authenticated
func SessionFrom(c *gin.Context) (*Session, bool) {
	v, exists := c.Get(sessionKey)
	if !exists {
		return nil, false
	}
	s, ok := v.(*Session)
	return s, ok && s != nil
}

// setSession stores s on the context
func setSession(c *gin.Context, s *Session) {
	c.Set(sessionKey, s)
}
