package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ignaguri/oktoberfest-attendance-sub000/internal/domain"
	"github.com/ignaguri/oktoberfest-attendance-sub000/internal/repository/dao"
)

type WrappedDAO interface {
	Aggregate(ctx context.Context, userID, festivalID uuid.UUID) (dao.WrappedRow, error)
}

type WrappedRepository struct {
	dao WrappedDAO
}

func NewWrappedRepository(dao WrappedDAO) *WrappedRepository {
	return &WrappedRepository{
		dao: dao,
	}
}

func (r *WrappedRepository) Aggregate(ctx context.Context, userID, festivalID uuid.UUID) (domain.Wrapped, error) {
	row, err := r.dao.Aggregate(ctx, userID, festivalID)
	if err != nil {
		return domain.Wrapped{}, fmt.Errorf("r.dao.Aggregate -> %w", err)
	}

	return domain.Wrapped{
		UserID:          userID,
		FestivalID:      festivalID,
		DaysAttended:    row.DaysAttended,
		TotalDrinks:     row.TotalDrinks,
		TotalBeers:      row.TotalBeers,
		TotalSpentCents: row.TotalSpentCents,
		TotalVolumeML:   row.TotalVolumeML,
		AvgDrinksPerDay: row.AvgDrinksPerDay,
		FavoriteTent:    row.FavoriteTent,
		PeakDay:         row.PeakDay,
	}, nil
}
