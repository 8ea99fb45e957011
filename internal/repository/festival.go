package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ignaguri/oktoberfest-attendance-sub000/internal/domain"
	"github.com/ignaguri/oktoberfest-attendance-sub000/internal/repository/dao"
)

var (
	ErrFestivalNotFound = dao.ErrFestivalNotFound
	ErrTentNotFound     = dao.ErrTentNotFound
)

type FestivalDAO interface {
	List(ctx context.Context) ([]dao.Festival, error)
	GetByID(ctx context.Context, id uuid.UUID) (dao.Festival, error)
	ListTents(ctx context.Context, festivalID uuid.UUID) ([]dao.Tent, error)
	FindTentPrice(ctx context.Context, festivalID, tentID uuid.UUID, drinkType string) (int, error)
	FindFestivalPrice(ctx context.Context, festivalID uuid.UUID, drinkType string) (int, error)
}

type FestivalRepository struct {
	dao FestivalDAO
}

func NewFestivalRepository(dao FestivalDAO) *FestivalRepository {
	return &FestivalRepository{
		dao: dao,
	}
}

func (r *FestivalRepository) daoToDomain(f dao.Festival) domain.Festival {
	return domain.Festival{
		ID:        f.ID,
		Name:      f.Name,
		Location:  f.Location,
		StartDate: f.StartDate,
		EndDate:   f.EndDate,
		IsActive:  f.IsActive,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

func (r *FestivalRepository) tentDaoToDomain(t dao.Tent) domain.Tent {
	return domain.Tent{
		ID:         t.ID,
		FestivalID: t.FestivalID,
		Name:       t.Name,
		CreatedAt:  t.CreatedAt,
	}
}

func (r *FestivalRepository) List(ctx context.Context) ([]domain.Festival, error) {
	festivals, err := r.dao.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.List -> %w", err)
	}

	result := make([]domain.Festival, len(festivals))
	for i, f := range festivals {
		result[i] = r.daoToDomain(f)
	}

	return result, nil
}

func (r *FestivalRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Festival, error) {
	festival, err := r.dao.GetByID(ctx, id)
	if err != nil {
		return domain.Festival{}, fmt.Errorf("r.dao.GetByID -> %w", err)
	}

	return r.daoToDomain(festival), nil
}

func (r *FestivalRepository) ListTents(ctx context.Context, festivalID uuid.UUID) ([]domain.Tent, error) {
	tents, err := r.dao.ListTents(ctx, festivalID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListTents -> %w", err)
	}

	result := make([]domain.Tent, len(tents))
	for i, t := range tents {
		result[i] = r.tentDaoToDomain(t)
	}

	return result, nil
}

// ResolvePrice walks the pricing cascade: tent-specific price, then festival
// default, then the system fallback. First match wins; nothing is cached so
// mid-event price changes take effect on the next consumption.
func (r *FestivalRepository) ResolvePrice(ctx context.Context, festivalID uuid.UUID, tentID *uuid.UUID, drinkType domain.DrinkType) (int, error) {
	if tentID != nil {
		price, err := r.dao.FindTentPrice(ctx, festivalID, *tentID, string(drinkType))
		if err == nil {
			return price, nil
		}
		if !errors.Is(err, dao.ErrPriceNotFound) {
			return 0, fmt.Errorf("r.dao.FindTentPrice -> %w", err)
		}
	}

	price, err := r.dao.FindFestivalPrice(ctx, festivalID, string(drinkType))
	if err == nil {
		return price, nil
	}
	if !errors.Is(err, dao.ErrPriceNotFound) {
		return 0, fmt.Errorf("r.dao.FindFestivalPrice -> %w", err)
	}

	return domain.FallbackPriceCents, nil
}
