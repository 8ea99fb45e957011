package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ignaguri/oktoberfest-attendance-sub000/internal/domain"
	"github.com/ignaguri/oktoberfest-attendance-sub000/internal/repository"
)

var ErrAttendanceNotFound = repository.ErrAttendanceNotFound

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

type AttendanceRepository interface {
	ListByUser(ctx context.Context, userID, festivalID uuid.UUID, limit, offset int) ([]domain.AttendanceWithTotals, int64, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

type AttendanceService struct {
	repo AttendanceRepository
}

func NewAttendanceService(repo AttendanceRepository) *AttendanceService {
	return &AttendanceService{
		repo: repo,
	}
}

func (s *AttendanceService) List(ctx context.Context, userID, festivalID uuid.UUID, limit, offset int) ([]domain.AttendanceWithTotals, int64, error) {
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	if offset < 0 {
		offset = 0
	}

	attendances, total, err := s.repo.ListByUser(ctx, userID, festivalID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("s.repo.ListByUser -> %w", err)
	}

	return attendances, total, nil
}

// Delete removes the attendance and, via the store's cascade, its
// consumptions.
func (s *AttendanceService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if err := s.repo.Delete(ctx, id, userID); err != nil {
		return err
	}

	return nil
}
