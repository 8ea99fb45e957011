package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dlclark/regexp2"
	"github.com/google/uuid"

	"github.com/ignaguri/oktoberfest-attendance-sub000/internal/domain"
)

var (
	ErrInvalidDateFormat = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidDrinkType  = errors.New("unknown drink type")
	ErrPriceBelowBase    = errors.New("price paid cannot be below the base price")
)

var datePattern = regexp2.MustCompile(`^\d{4}-\d{2}-\d{2}$`, regexp2.None)

type ConsumptionAttendanceRepository interface {
	FindOrCreate(ctx context.Context, userID, festivalID uuid.UUID, date string) (domain.Attendance, error)
	CreateConsumption(ctx context.Context, consumption domain.Consumption) (domain.Consumption, error)
	HasConsumptionWithKey(ctx context.Context, attendanceID uuid.UUID, key string) (bool, error)
	GetWithTotals(ctx context.Context, attendanceID uuid.UUID) (domain.AttendanceWithTotals, error)
}

type PriceResolver interface {
	ResolvePrice(ctx context.Context, festivalID uuid.UUID, tentID *uuid.UUID, drinkType domain.DrinkType) (int, error)
}

type LogConsumptionInput struct {
	FestivalID     uuid.UUID
	Date           string
	TentID         *uuid.UUID
	DrinkType      domain.DrinkType
	DrinkName      string
	BasePriceCents *int
	PricePaidCents int
	VolumeML       *int
	RecordedAt     *time.Time
	IdempotencyKey string
}

type ConsumptionService struct {
	repo   ConsumptionAttendanceRepository
	prices PriceResolver
}

func NewConsumptionService(repo ConsumptionAttendanceRepository, prices PriceResolver) *ConsumptionService {
	return &ConsumptionService{
		repo:   repo,
		prices: prices,
	}
}

// LogConsumption records one drink and returns the day's updated totals.
// Validation happens before any store access. The base price comes from the
// caller when supplied, otherwise from the pricing cascade; price paid above
// base is a tip, below base is rejected.
func (s *ConsumptionService) LogConsumption(ctx context.Context, userID uuid.UUID, input LogConsumptionInput) (domain.AttendanceWithTotals, error) {
	if err := validateDate(input.Date); err != nil {
		return domain.AttendanceWithTotals{}, err
	}

	drinkType := input.DrinkType
	if drinkType == "" {
		drinkType = domain.DrinkBeer
	}
	if !drinkType.IsValid() {
		return domain.AttendanceWithTotals{}, ErrInvalidDrinkType
	}

	var basePriceCents int
	if input.BasePriceCents != nil {
		// Client-trusted override.
		basePriceCents = *input.BasePriceCents
	} else {
		resolved, err := s.prices.ResolvePrice(ctx, input.FestivalID, input.TentID, drinkType)
		if err != nil {
			return domain.AttendanceWithTotals{}, fmt.Errorf("s.prices.ResolvePrice -> %w", err)
		}
		basePriceCents = resolved
	}

	if input.PricePaidCents < basePriceCents {
		return domain.AttendanceWithTotals{}, ErrPriceBelowBase
	}

	attendance, err := s.repo.FindOrCreate(ctx, userID, input.FestivalID, input.Date)
	if err != nil {
		return domain.AttendanceWithTotals{}, fmt.Errorf("s.repo.FindOrCreate -> %w", err)
	}

	if input.IdempotencyKey != "" {
		exists, err := s.repo.HasConsumptionWithKey(ctx, attendance.ID, input.IdempotencyKey)
		if err != nil {
			return domain.AttendanceWithTotals{}, fmt.Errorf("s.repo.HasConsumptionWithKey -> %w", err)
		}
		if exists {
			// Client retry; the drink is already recorded.
			return s.currentTotals(ctx, attendance.ID)
		}
	}

	volumeML := domain.DefaultVolumeML
	if input.VolumeML != nil {
		volumeML = *input.VolumeML
	}

	recordedAt := time.Now()
	if input.RecordedAt != nil {
		recordedAt = *input.RecordedAt
	}

	consumption := domain.Consumption{
		AttendanceID:   attendance.ID,
		TentID:         input.TentID,
		DrinkType:      drinkType,
		DrinkName:      input.DrinkName,
		BasePriceCents: basePriceCents,
		PricePaidCents: input.PricePaidCents,
		TipCents:       input.PricePaidCents - basePriceCents,
		VolumeML:       volumeML,
		RecordedAt:     recordedAt,
		IdempotencyKey: input.IdempotencyKey,
	}

	if _, err = s.repo.CreateConsumption(ctx, consumption); err != nil {
		return domain.AttendanceWithTotals{}, fmt.Errorf("s.repo.CreateConsumption -> %w", err)
	}

	// Achievement re-evaluation and group tent-check-in notifications would
	// hook in here; neither is implemented.

	return s.currentTotals(ctx, attendance.ID)
}

func (s *ConsumptionService) currentTotals(ctx context.Context, attendanceID uuid.UUID) (domain.AttendanceWithTotals, error) {
	totals, err := s.repo.GetWithTotals(ctx, attendanceID)
	if err != nil {
		return domain.AttendanceWithTotals{}, fmt.Errorf("s.repo.GetWithTotals -> %w", err)
	}

	return totals, nil
}

func validateDate(date string) error {
	matched, err := datePattern.MatchString(date)
	if err != nil || !matched {
		return ErrInvalidDateFormat
	}

	// The pattern admits impossible dates like 2025-13-40.
	if _, err = time.Parse("2006-01-02", date); err != nil {
		return ErrInvalidDateFormat
	}

	return nil
}
