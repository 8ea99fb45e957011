package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ignaguri/oktoberfest-attendance-sub000/internal/domain"
	"github.com/ignaguri/oktoberfest-attendance-sub000/internal/repository"
)

var ErrFestivalNotFound = repository.ErrFestivalNotFound

type FestivalRepository interface {
	List(ctx context.Context) ([]domain.Festival, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Festival, error)
	ListTents(ctx context.Context, festivalID uuid.UUID) ([]domain.Tent, error)
}

type FestivalService struct {
	repo FestivalRepository
}

func NewFestivalService(repo FestivalRepository) *FestivalService {
	return &FestivalService{
		repo: repo,
	}
}

func (s *FestivalService) List(ctx context.Context) ([]domain.Festival, error) {
	festivals, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}

	return festivals, nil
}

func (s *FestivalService) GetByID(ctx context.Context, id uuid.UUID) (domain.Festival, error) {
	festival, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Festival{}, fmt.Errorf("s.repo.GetByID -> %w", err)
	}

	return festival, nil
}

func (s *FestivalService) ListTents(ctx context.Context, festivalID uuid.UUID) ([]domain.Tent, error) {
	if _, err := s.repo.GetByID(ctx, festivalID); err != nil {
		return nil, fmt.Errorf("s.repo.GetByID -> %w", err)
	}

	tents, err := s.repo.ListTents(ctx, festivalID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListTents -> %w", err)
	}

	return tents, nil
}
