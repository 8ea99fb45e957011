package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignaguri/oktoberfest-attendance-sub000/internal/domain"
)

type fakeConsumptionRepo struct {
	attendance   domain.Attendance
	consumptions []domain.Consumption
	existingKeys map[string]bool
	totals       domain.AttendanceWithTotals

	findOrCreateCalls int
	createCalls       int
}

func newFakeConsumptionRepo() *fakeConsumptionRepo {
	return &fakeConsumptionRepo{
		attendance: domain.Attendance{
			ID:         uuid.New(),
			UserID:     uuid.New(),
			FestivalID: uuid.New(),
			Date:       "2025-09-20",
		},
		existingKeys: map[string]bool{},
	}
}

func (f *fakeConsumptionRepo) FindOrCreate(_ context.Context, _, _ uuid.UUID, _ string) (domain.Attendance, error) {
	f.findOrCreateCalls++

	return f.attendance, nil
}

func (f *fakeConsumptionRepo) CreateConsumption(_ context.Context, c domain.Consumption) (domain.Consumption, error) {
	f.createCalls++
	f.consumptions = append(f.consumptions, c)

	return c, nil
}

func (f *fakeConsumptionRepo) HasConsumptionWithKey(_ context.Context, _ uuid.UUID, key string) (bool, error) {
	return f.existingKeys[key], nil
}

func (f *fakeConsumptionRepo) GetWithTotals(_ context.Context, _ uuid.UUID) (domain.AttendanceWithTotals, error) {
	return f.totals, nil
}

type fakePriceResolver struct {
	price int
	calls int
}

func (f *fakePriceResolver) ResolvePrice(_ context.Context, _ uuid.UUID, _ *uuid.UUID, _ domain.DrinkType) (int, error) {
	f.calls++

	return f.price, nil
}

func TestLogConsumption_RejectsMalformedDates(t *testing.T) {
	tests := []struct {
		name string
		date string
	}{
		{name: "wrong separator", date: "2025/09/20"},
		{name: "reversed order", date: "20-09-2025"},
		{name: "trailing characters", date: "2025-09-20T12:00"},
		{name: "impossible month and day", date: "2025-13-40"},
		{name: "empty", date: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeConsumptionRepo()
			prices := &fakePriceResolver{price: 1500}
			svc := NewConsumptionService(repo, prices)

			_, err := svc.LogConsumption(context.Background(), uuid.New(), LogConsumptionInput{
				FestivalID:     uuid.New(),
				Date:           tt.date,
				PricePaidCents: 1500,
			})

			require.ErrorIs(t, err, ErrInvalidDateFormat)
			// Validation failures must not touch the store.
			assert.Zero(t, repo.findOrCreateCalls)
			assert.Zero(t, repo.createCalls)
			assert.Zero(t, prices.calls)
		})
	}
}

func TestLogConsumption_DrinkTypeDefaultsToBeer(t *testing.T) {
	repo := newFakeConsumptionRepo()
	svc := NewConsumptionService(repo, &fakePriceResolver{price: 1500})

	_, err := svc.LogConsumption(context.Background(), uuid.New(), LogConsumptionInput{
		FestivalID:     uuid.New(),
		Date:           "2025-09-20",
		PricePaidCents: 1500,
	})

	require.NoError(t, err)
	require.Len(t, repo.consumptions, 1)
	assert.Equal(t, domain.DrinkBeer, repo.consumptions[0].DrinkType)
	assert.Equal(t, domain.DefaultVolumeML, repo.consumptions[0].VolumeML)
}

func TestLogConsumption_RejectsUnknownDrinkType(t *testing.T) {
	repo := newFakeConsumptionRepo()
	svc := NewConsumptionService(repo, &fakePriceResolver{price: 1500})

	_, err := svc.LogConsumption(context.Background(), uuid.New(), LogConsumptionInput{
		FestivalID:     uuid.New(),
		Date:           "2025-09-20",
		DrinkType:      "mead",
		PricePaidCents: 1500,
	})

	require.ErrorIs(t, err, ErrInvalidDrinkType)
	assert.Zero(t, repo.createCalls)
}

func TestLogConsumption_BasePriceOverrideSkipsResolver(t *testing.T) {
	repo := newFakeConsumptionRepo()
	prices := &fakePriceResolver{price: 1500}
	svc := NewConsumptionService(repo, prices)

	base := 1200
	_, err := svc.LogConsumption(context.Background(), uuid.New(), LogConsumptionInput{
		FestivalID:     uuid.New(),
		Date:           "2025-09-20",
		BasePriceCents: &base,
		PricePaidCents: 1300,
	})

	require.NoError(t, err)
	assert.Zero(t, prices.calls)
	require.Len(t, repo.consumptions, 1)
	assert.Equal(t, 1200, repo.consumptions[0].BasePriceCents)
	assert.Equal(t, 100, repo.consumptions[0].TipCents)
}

func TestLogConsumption_PricePaidBelowBase(t *testing.T) {
	tests := []struct {
		name      string
		basePrice int
		pricePaid int
		wantErr   error
		wantTip   int
	}{
		{name: "below base is rejected", basePrice: 1500, pricePaid: 1499, wantErr: ErrPriceBelowBase},
		{name: "exactly base means no tip", basePrice: 1500, pricePaid: 1500, wantTip: 0},
		{name: "above base is a tip", basePrice: 1500, pricePaid: 1700, wantTip: 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeConsumptionRepo()
			svc := NewConsumptionService(repo, &fakePriceResolver{price: tt.basePrice})

			_, err := svc.LogConsumption(context.Background(), uuid.New(), LogConsumptionInput{
				FestivalID:     uuid.New(),
				Date:           "2025-09-20",
				PricePaidCents: tt.pricePaid,
			})

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Zero(t, repo.createCalls)

				return
			}

			require.NoError(t, err)
			require.Len(t, repo.consumptions, 1)
			assert.Equal(t, tt.wantTip, repo.consumptions[0].TipCents)
		})
	}
}

func TestLogConsumption_IdempotencyKeyShortCircuits(t *testing.T) {
	repo := newFakeConsumptionRepo()
	repo.existingKeys["retry-abc"] = true
	repo.totals = domain.AttendanceWithTotals{
		Attendance:       repo.attendance,
		AttendanceTotals: domain.AttendanceTotals{DrinkCount: 3, BeerCount: 2},
	}
	svc := NewConsumptionService(repo, &fakePriceResolver{price: 1500})

	got, err := svc.LogConsumption(context.Background(), uuid.New(), LogConsumptionInput{
		FestivalID:     uuid.New(),
		Date:           "2025-09-20",
		PricePaidCents: 1500,
		IdempotencyKey: "retry-abc",
	})

	require.NoError(t, err)
	// The retry is answered from existing state without a second insert.
	assert.Zero(t, repo.createCalls)
	assert.Equal(t, 3, got.DrinkCount)
	assert.Equal(t, 2, got.BeerCount)
}

func TestLogConsumption_SoftDrinkStillCounted(t *testing.T) {
	repo := newFakeConsumptionRepo()
	svc := NewConsumptionService(repo, &fakePriceResolver{price: 500})

	_, err := svc.LogConsumption(context.Background(), uuid.New(), LogConsumptionInput{
		FestivalID:     uuid.New(),
		Date:           "2025-09-20",
		DrinkType:      domain.DrinkSoftDrink,
		PricePaidCents: 500,
	})

	require.NoError(t, err)
	require.Len(t, repo.consumptions, 1)
	assert.Equal(t, domain.DrinkSoftDrink, repo.consumptions[0].DrinkType)
	assert.False(t, repo.consumptions[0].DrinkType.CountsAsBeer())
}
