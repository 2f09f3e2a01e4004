package main

import (
	"esg_portal/internal/config" // Custom import path (Config)
	"esg_portal/internal/db"     // Custom import path (Database)

	"github.com/sirupsen/logrus" // Logging
)

// Main entry point for migration
func main() {
	cfg, err := config.LoadConfig() // Load configuration
	if err != nil {
		logrus.Fatalf("invalid configuration: %v", err)
	}
	gdb, err := db.Open(cfg) // Open a connection to the database
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		logrus.Fatalf("%v", err)
	}
	logrus.Info("Migration completed.") // Log successful migration
}
