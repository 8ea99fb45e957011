package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignaguri/oktoberfest-attendance-sub000/internal/domain"
	"github.com/ignaguri/oktoberfest-attendance-sub000/internal/repository/dao"
)

type priceKey struct {
	festivalID uuid.UUID
	tentID     uuid.UUID
	drinkType  string
}

type fakeFestivalDAO struct {
	tentPrices     map[priceKey]int
	festivalPrices map[priceKey]int

	tentLookups     int
	festivalLookups int
}

func newFakeFestivalDAO() *fakeFestivalDAO {
	return &fakeFestivalDAO{
		tentPrices:     map[priceKey]int{},
		festivalPrices: map[priceKey]int{},
	}
}

func (f *fakeFestivalDAO) List(_ context.Context) ([]dao.Festival, error) {
	return nil, nil
}

func (f *fakeFestivalDAO) GetByID(_ context.Context, _ uuid.UUID) (dao.Festival, error) {
	return dao.Festival{}, nil
}

func (f *fakeFestivalDAO) ListTents(_ context.Context, _ uuid.UUID) ([]dao.Tent, error) {
	return nil, nil
}

func (f *fakeFestivalDAO) FindTentPrice(_ context.Context, festivalID, tentID uuid.UUID, drinkType string) (int, error) {
	f.tentLookups++

	if price, ok := f.tentPrices[priceKey{festivalID, tentID, drinkType}]; ok {
		return price, nil
	}

	return 0, dao.ErrPriceNotFound
}

func (f *fakeFestivalDAO) FindFestivalPrice(_ context.Context, festivalID uuid.UUID, drinkType string) (int, error) {
	f.festivalLookups++

	if price, ok := f.festivalPrices[priceKey{festivalID: festivalID, drinkType: drinkType}]; ok {
		return price, nil
	}

	return 0, dao.ErrPriceNotFound
}

func TestResolvePrice_Cascade(t *testing.T) {
	festivalID := uuid.New()
	tentID := uuid.New()

	tests := []struct {
		name          string
		tentPrice     *int
		festivalPrice *int
		tentID        *uuid.UUID
		want          int
	}{
		{
			name:          "tent price wins over festival price",
			tentPrice:     intPtr(1480),
			festivalPrice: intPtr(1550),
			tentID:        &tentID,
			want:          1480,
		},
		{
			name:          "festival price when tent has none",
			festivalPrice: intPtr(1550),
			tentID:        &tentID,
			want:          1550,
		},
		{
			name:          "festival price without a tent",
			festivalPrice: intPtr(1550),
			want:          1550,
		},
		{
			name:   "fallback when nothing is configured",
			tentID: &tentID,
			want:   domain.FallbackPriceCents,
		},
		{
			name: "fallback without a tent",
			want: domain.FallbackPriceCents,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fakeDAO := newFakeFestivalDAO()
			if tt.tentPrice != nil {
				fakeDAO.tentPrices[priceKey{festivalID, tentID, "beer"}] = *tt.tentPrice
			}
			if tt.festivalPrice != nil {
				fakeDAO.festivalPrices[priceKey{festivalID: festivalID, drinkType: "beer"}] = *tt.festivalPrice
			}
			repo := NewFestivalRepository(fakeDAO)

			price, err := repo.ResolvePrice(context.Background(), festivalID, tt.tentID, domain.DrinkBeer)

			require.NoError(t, err)
			assert.Equal(t, tt.want, price)
		})
	}
}

func TestResolvePrice_SkipsTentLookupWithoutTent(t *testing.T) {
	fakeDAO := newFakeFestivalDAO()
	repo := NewFestivalRepository(fakeDAO)

	_, err := repo.ResolvePrice(context.Background(), uuid.New(), nil, domain.DrinkBeer)

	require.NoError(t, err)
	assert.Zero(t, fakeDAO.tentLookups)
	assert.Equal(t, 1, fakeDAO.festivalLookups)
}

func TestResolvePrice_PerDrinkType(t *testing.T) {
	festivalID := uuid.New()
	fakeDAO := newFakeFestivalDAO()
	fakeDAO.festivalPrices[priceKey{festivalID: festivalID, drinkType: "beer"}] = 1550
	fakeDAO.festivalPrices[priceKey{festivalID: festivalID, drinkType: "soft_drink"}] = 550
	repo := NewFestivalRepository(fakeDAO)

	beer, err := repo.ResolvePrice(context.Background(), festivalID, nil, domain.DrinkBeer)
	require.NoError(t, err)
	assert.Equal(t, 1550, beer)

	soft, err := repo.ResolvePrice(context.Background(), festivalID, nil, domain.DrinkSoftDrink)
	require.NoError(t, err)
	assert.Equal(t, 550, soft)

	// radler has no configured row of its own, so it falls through.
	radler, err := repo.ResolvePrice(context.Background(), festivalID, nil, domain.DrinkRadler)
	require.NoError(t, err)
	assert.Equal(t, domain.FallbackPriceCents, radler)
}

func intPtr(n int) *int {
	return &n
}
