package api

import (
	"net/http" // HTTP status codes
	"time"     // Clock and cache TTL

	"esg_portal/internal/middleware" // Custom middleware
	"esg_portal/internal/store"      // Persistence

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// Deps are the collaborators the handlers are built from
type Deps struct {
	Store     *store.Store     // Users and yearly responses
	Redis     *redis.Client    // Listing cache, nil disables caching
	JWTSecret string           // Token signing secret
	CacheTTL  time.Duration    // Lifetime of cached listings
	Now       func() time.Time // Clock, time.Now when nil
}

// HealthHandler reports that the service is up
func HealthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "esg-portal"})
	}
}

// recovery logs panics through logrus and answers a generic 500
func recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, err any) {
		logrus.WithFields(logrus.Fields{
			"request_id": middleware.RequestID(c), // Request ID
			"panic":      err,                     // Recovered value
		}).Error("Handler panicked")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	})
}

// NewRouter wires every route onto a new gin engine
func NewRouter(d Deps) *gin.Engine {
	if d.Now == nil {
		d.Now = time.Now
	}
	r := gin.New() // Gin router instance
	r.Use(middleware.RequestLogger(), recovery())

	r.GET("/health", HealthHandler()) // Health check

	// Auth routes
	r.POST("/auth/signup", SignupHandler(d.Store))            // Registration endpoint
	r.POST("/auth/login", LoginHandler(d.Store, d.JWTSecret)) // Login endpoint

	// Everything else needs a valid token of an existing user
	authed := r.Group("")
	authed.Use(middleware.JWTAuthMiddleware(d.JWTSecret), middleware.CurrentUserMiddleware(d.Store))
	authed.GET("/auth/me", MeHandler())                               // Current user
	authed.DELETE("/auth/me", DeleteAccountHandler(d.Store, d.Redis)) // Delete account and all years

	authed.GET("/responses", GetResponsesHandler(d.Store, d.Redis, d.CacheTTL)) // List years
	authed.POST("/responses", SaveResponsesHandler(d.Store, d.Redis))           // Upsert years
	authed.DELETE("/responses/:year", DeleteResponseHandler(d.Store, d.Redis))  // Delete one year

	authed.GET("/dashboard", DashboardHandler(d.Store, d.Redis, d.CacheTTL, d.Now))   // Dashboard summary
	authed.GET("/reports/charts/:metric", ChartHandler(d.Store, d.Redis, d.CacheTTL)) // PNG chart per metric
	authed.GET("/reports/pdf", PDFHandler(d.Store, d.Redis, d.CacheTTL, d.Now))       // PDF export
	return r
}
