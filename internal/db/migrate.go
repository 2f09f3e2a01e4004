package db

import (
	"fmt"  // Error wrapping
	"time" // Pool lifetimes

	"esg_portal/internal/config" // Configuration
	"esg_portal/internal/domain" // Importing domain models

	"gorm.io/driver/mysql"    // MySQL driver for GORM
	"gorm.io/driver/postgres" // PostgreSQL driver for GORM
	"gorm.io/driver/sqlite"   // SQLite driver for GORM
	"gorm.io/gorm"            // GORM ORM library
	"gorm.io/gorm/logger"     // GORM logger
)

// Dialector picks the GORM dialector for the configured driver
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case config.DriverMySQL:
		return mysql.Open(cfg.DSN()), nil
	case config.DriverPostgres:
		return postgres.Open(cfg.DSN()), nil
	case config.DriverSQLite:
		return sqlite.Open(cfg.DSN()), nil
	}
	return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
}

// Open connects to the database and sizes the connection pool
func Open(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}
	level := logger.Warn // Only slow queries and errors
	if !cfg.IsProd {
		level = logger.Info
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(level),
		TranslateError: true, // Map unique violations to gorm.ErrDuplicatedKey
	})
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", cfg.DBDriver, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get database instance: %w", err)
	}
	sqlDB.SetMaxOpenConns(10)           // Maximum open connections
	sqlDB.SetMaxIdleConns(5)            // Maximum idle connections
	sqlDB.SetConnMaxLifetime(time.Hour) // Recycle connections hourly
	return db, nil
}

// Migrate performs automatic migration for the database schema
func Migrate(db *gorm.DB) error {
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
	if err := db.AutoMigrate(&domain.User{}, &domain.YearlyResponse{}); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}
