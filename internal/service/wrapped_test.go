package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignaguri/oktoberfest-attendance-sub000/internal/domain"
)

type fakeWrappedRepo struct {
	wrapped domain.Wrapped
	calls   int
}

func (f *fakeWrappedRepo) Aggregate(_ context.Context, userID, festivalID uuid.UUID) (domain.Wrapped, error) {
	f.calls++
	f.wrapped.UserID = userID
	f.wrapped.FestivalID = festivalID

	return f.wrapped, nil
}

func TestGetWrapped_WithoutCache(t *testing.T) {
	repo := &fakeWrappedRepo{
		wrapped: domain.Wrapped{
			DaysAttended: 7,
			TotalDrinks:  23,
			TotalBeers:   19,
			FavoriteTent: "Augustiner",
		},
	}
	svc := NewWrappedService(repo, nil)
	userID := uuid.New()
	festivalID := uuid.New()

	got, err := svc.GetWrapped(context.Background(), userID, festivalID)

	require.NoError(t, err)
	assert.Equal(t, 7, got.DaysAttended)
	assert.Equal(t, "Augustiner", got.FavoriteTent)

	// A nil cache means every read aggregates again.
	_, err = svc.GetWrapped(context.Background(), userID, festivalID)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.calls)
}
