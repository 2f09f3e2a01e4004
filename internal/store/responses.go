package store

import (
	"context" // Request scoped context
	"fmt"     // Error wrapping

	"esg_portal/internal/domain"  // Domain models
	"esg_portal/internal/metrics" // Derived ratios

	"gorm.io/gorm/clause" // Upsert clause
)

// upsertColumns are overwritten when a (user, year) row already exists
var upsertColumns = []string{
	"total_electricity_consumption",
	"renewable_electricity_consumption",
	"total_fuel_consumption",
	"carbon_emissions",
	"total_employees",
	"female_employees",
	"average_training_hours",
	"community_investment",
	"independent_board_members",
	"has_data_privacy_policy",
	"total_revenue",
	"carbon_intensity",
	"renewable_electricity_ratio",
	"diversity_ratio",
	"community_spend_ratio",
	"updated_at",
}

// UpsertYear stores raw for (userID, year) together with its derived metrics and returns the stored row.
// Concurrent writes to the same year are last-write-wins.
func (s *Store) UpsertYear(ctx context.Context, userID uint, year int, raw domain.RawInputs) (domain.YearlyResponse, error) {
	rec := domain.YearlyResponse{
		UserID:         userID,
		Year:           year,
		RawInputs:      raw,
		DerivedMetrics: metrics.Compute(raw),
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "year"}},
		DoUpdates: clause.AssignmentColumns(upsertColumns),
	}).Create(&rec).Error
	if err != nil {
		return domain.YearlyResponse{}, fmt.Errorf("upsert year %d: %w", year, err)
	}
	var stored domain.YearlyResponse
	if err := s.db.WithContext(ctx).Where("user_id = ? AND year = ?", userID, year).First(&stored).Error; err != nil {
		return domain.YearlyResponse{}, fmt.Errorf("reload year %d: %w", year, notFound(err))
	}
	return stored, nil
}

// ListYears returns every stored year of the user keyed by year
func (s *Store) ListYears(ctx context.Context, userID uint) (map[int]domain.YearlyResponse, error) {
	var rows []domain.YearlyResponse
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("year asc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list years: %w", err)
	}
	out := make(map[int]domain.YearlyResponse, len(rows))
	for _, r := range rows {
		out[r.Year] = r
	}
	return out, nil
}

// DeleteYear removes one year of the user, ErrNotFound when it was never stored
func (s *Store) DeleteYear(ctx context.Context, userID uint, year int) error {
	res := s.db.WithContext(ctx).Where("user_id = ? AND year = ?", userID, year).Delete(&domain.YearlyResponse{})
	if res.Error != nil {
		return fmt.Errorf("delete year %d: %w", year, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
