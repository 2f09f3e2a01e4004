// Package store persists users and their yearly responses through GORM.
package store

import (
	"errors" // Sentinel errors

	"gorm.io/gorm" // GORM ORM library
)

var (
	// ErrNotFound is returned when the requested row does not exist for the user
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateEmail is returned when signing up with an email that is already registered
	ErrDuplicateEmail = errors.New("email already registered")
)

// Store wraps the database handle shared by all operations
type Store struct {
	db *gorm.DB
}

// New returns a Store backed by db
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// notFound maps GORM's missing-row error onto ErrNotFound
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
