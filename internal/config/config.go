package config

import (
	"fmt"     // Error wrapping
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"strings" // Normalizing values
	"time"    // Durations

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort         string        // Application port
	DBDriver        string        // Database driver: mysql, postgres or sqlite
	DBUser          string        // Database user
	DBPassword      string        // Database password
	DBHost          string        // Database host
	DBPort          string        // Database port
	DBName          string        // Database name, or file path for sqlite
	JWTSecret       string        // JWT secret key
	RedisAddr       string        // Redis server address, empty disables caching
	RedisPass       string        // Redis password
	RedisDB         int           // Redis database number
	CacheTTL        time.Duration // Lifetime of cached listings
	IsProd          bool          // Is production environment
	LogLevel        string        // Logrus level name
	LogFormat       string        // text or json
	ShutdownTimeout time.Duration // Grace period for in-flight requests
}

// Supported database drivers
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	_ = godotenv.Load() // Load .env file if present
	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "60s"))
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL: %w", err)
	}
	shutdown, err := time.ParseDuration(getEnv("SHUTDOWN_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %w", err)
	}
	cfg := &Config{
		AppPort:         getEnv("APP_PORT", "8080"),                                 // Application port
		DBDriver:        strings.ToLower(getEnv("DB_DRIVER", DriverMySQL)),          // Database driver
		DBUser:          os.Getenv("DB_USER"),                                       // Database user
		DBPassword:      os.Getenv("DB_PASSWORD"),                                   // Database password
		DBHost:          getEnv("DB_HOST", "127.0.0.1"),                             // Database host
		DBPort:          os.Getenv("DB_PORT"),                                       // Database port
		DBName:          getEnv("DB_NAME", "esg"),                                   // Database name
		JWTSecret:       os.Getenv("JWT_SECRET"),                                    // JWT secret key
		RedisAddr:       os.Getenv("REDIS_ADDR"),                                    // Redis server address
		RedisPass:       os.Getenv("REDIS_PASS"),                                    // Redis password
		RedisDB:         redisDB,                                                    // Redis database number
		CacheTTL:        cacheTTL,                                                   // Listing cache TTL
		IsProd:          os.Getenv("IS_PROD") == "true",                             // Is production environment
		LogLevel:        getEnv("LOG_LEVEL", "info"),                                // Log level
		LogFormat:       strings.ToLower(getEnv("LOG_FORMAT", "text")),              // Log format
		ShutdownTimeout: shutdown,                                                   // Shutdown grace period
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings the server cannot start without
func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverMySQL, DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must be set")
	}
	return nil
}

// DSN builds the data source name for the configured driver
func (c *Config) DSN() string {
	switch c.DBDriver {
	case DriverPostgres:
		port := c.DBPort
		if port == "" {
			port = "5432"
		}
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			c.DBHost, c.DBUser, c.DBPassword, c.DBName, port)
	case DriverSQLite:
		return c.DBName
	default:
		port := c.DBPort
		if port == "" {
			port = "3306"
		}
		return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + port + ")/" + c.DBName + "?parseTime=true"
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
