package store

import (
	"context" // Request scoped context
	"errors"  // Error matching
	"fmt"     // Error wrapping
	"strings" // Email normalization

	"esg_portal/internal/domain" // Domain models

	"gorm.io/gorm" // GORM ORM library
)

// NormalizeEmail lower-cases and trims an email so uniqueness is case-insensitive
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CreateUser inserts u, failing with ErrDuplicateEmail when the email is taken
func (s *Store) CreateUser(ctx context.Context, u *domain.User) error {
	u.Email = NormalizeEmail(u.Email)
	var count int64
	if err := s.db.WithContext(ctx).Model(&domain.User{}).Where("email = ?", u.Email).Count(&count).Error; err != nil {
		return fmt.Errorf("check email: %w", err)
	}
	if count > 0 {
		return ErrDuplicateEmail
	}
	if err := s.db.WithContext(ctx).Create(u).Error; err != nil {
		// Two signups racing past the count above
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// FindUserByEmail looks a user up by normalized email
func (s *Store) FindUserByEmail(ctx context.Context, email string) (domain.User, error) {
	var u domain.User
	err := s.db.WithContext(ctx).Where("email = ?", NormalizeEmail(email)).First(&u).Error
	return u, notFound(err)
}

// FindUserByID looks a user up by primary key
func (s *Store) FindUserByID(ctx context.Context, id uint) (domain.User, error) {
	var u domain.User
	err := s.db.WithContext(ctx).First(&u, id).Error
	return u, notFound(err)
}

// DeleteUser removes the user and every yearly response it owns
func (s *Store) DeleteUser(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Explicit delete so drivers without enforced foreign keys still cascade
		if err := tx.Where("user_id = ?", id).Delete(&domain.YearlyResponse{}).Error; err != nil {
			return err // Return error to rollback
		}
		res := tx.Delete(&domain.User{}, id)
		if res.Error != nil {
			return res.Error // Return error to rollback
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil // Commit transaction
	})
}
