package store

import (
	"context"
	"testing"

	"esg_portal/internal/config"
	"esg_portal/internal/db"
	"esg_portal/internal/domain"
	"esg_portal/internal/metrics"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	cfg := &config.Config{
		DBDriver: config.DriverSQLite,
		DBName:   "file:" + uuid.NewString() + "?mode=memory&cache=shared&_foreign_keys=on",
		IsProd:   true,
	}
	gdb, err := db.Open(cfg)
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return New(gdb)
}

func f(v float64) *float64 { return &v }
func b(v bool) *bool       { return &v }

func sampleRaw() domain.RawInputs {
	return domain.RawInputs{
		TotalElectricityConsumption:     f(1000),
		RenewableElectricityConsumption: f(400),
		TotalFuelConsumption:            f(250),
		CarbonEmissions:                 f(5),
		TotalEmployees:                  f(10),
		FemaleEmployees:                 f(4),
		AverageTrainingHours:            f(12),
		CommunityInvestment:             f(20),
		IndependentBoardMembers:         f(40),
		HasDataPrivacyPolicy:            b(true),
		TotalRevenue:                    f(1000),
	}
}

func createUser(t *testing.T, s *Store, email string) domain.User {
	t.Helper()
	u := domain.User{Name: "A B", Email: email, Password: "hash"}
	require.NoError(t, s.CreateUser(context.Background(), &u))
	require.NotZero(t, u.ID)
	return u
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	createUser(t, s, "a@b.com")

	dup := domain.User{Name: "Other", Email: "  A@B.com ", Password: "hash"}
	err := s.CreateUser(ctx, &dup)
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	var count int64
	require.NoError(t, s.db.Model(&domain.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestFindUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u := createUser(t, s, "Mixed@Case.com")

	got, err := s.FindUserByEmail(ctx, "mixed@case.COM")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "mixed@case.com", got.Email)

	got, err = s.FindUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "A B", got.Name)

	_, err = s.FindUserByEmail(ctx, "nobody@case.com")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.FindUserByID(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpsertYear_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u := createUser(t, s, "a@b.com")
	raw := sampleRaw()

	saved, err := s.UpsertYear(ctx, u.ID, 2023, raw)
	require.NoError(t, err)
	assert.Equal(t, 2023, saved.Year)

	years, err := s.ListYears(ctx, u.ID)
	require.NoError(t, err)
	require.Contains(t, years, 2023)
	got := years[2023]
	assert.Equal(t, raw, got.RawInputs)
	assert.Equal(t, metrics.Compute(raw), got.DerivedMetrics)
	require.NotNil(t, got.CarbonIntensity)
	assert.InDelta(t, 0.005, *got.CarbonIntensity, 1e-9)
}

func TestUpsertYear_UpdatesInPlace(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u := createUser(t, s, "a@b.com")

	first, err := s.UpsertYear(ctx, u.ID, 2022, sampleRaw())
	require.NoError(t, err)

	raw := sampleRaw()
	raw.TotalRevenue = f(0)
	raw.CommunityInvestment = f(0)
	second, err := s.UpsertYear(ctx, u.ID, 2022, raw)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Nil(t, second.CarbonIntensity, "derived fields follow the latest raw fields")
	assert.Nil(t, second.CommunitySpendRatio)

	years, err := s.ListYears(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, years, 1)
}

func TestListYears_ScopedToUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	a := createUser(t, s, "a@b.com")
	other := createUser(t, s, "c@d.com")

	for _, y := range []int{2021, 2023, 2022} {
		_, err := s.UpsertYear(ctx, a.ID, y, sampleRaw())
		require.NoError(t, err)
	}
	_, err := s.UpsertYear(ctx, other.ID, 2023, sampleRaw())
	require.NoError(t, err)

	years, err := s.ListYears(ctx, a.ID)
	require.NoError(t, err)
	assert.Len(t, years, 3)

	years, err = s.ListYears(ctx, other.ID)
	require.NoError(t, err)
	assert.Len(t, years, 1)
}

func TestDeleteYear(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u := createUser(t, s, "a@b.com")
	other := createUser(t, s, "c@d.com")
	_, err := s.UpsertYear(ctx, u.ID, 2023, sampleRaw())
	require.NoError(t, err)

	assert.ErrorIs(t, s.DeleteYear(ctx, other.ID, 2023), ErrNotFound, "other users cannot delete it")
	require.NoError(t, s.DeleteYear(ctx, u.ID, 2023))
	assert.ErrorIs(t, s.DeleteYear(ctx, u.ID, 2023), ErrNotFound)

	years, err := s.ListYears(ctx, u.ID)
	require.NoError(t, err)
	assert.NotContains(t, years, 2023)
}

func TestDeleteUser_Cascades(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	u := createUser(t, s, "a@b.com")
	for _, y := range []int{2022, 2023} {
		_, err := s.UpsertYear(ctx, u.ID, y, sampleRaw())
		require.NoError(t, err)
	}

	require.NoError(t, s.DeleteUser(ctx, u.ID))

	var count int64
	require.NoError(t, s.db.Model(&domain.YearlyResponse{}).Where("user_id = ?", u.ID).Count(&count).Error)
	assert.Zero(t, count)
	assert.ErrorIs(t, s.DeleteUser(ctx, u.ID), ErrNotFound)
}
