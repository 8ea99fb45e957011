package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ignaguri/oktoberfest-attendance-sub000/internal/domain"
	"github.com/ignaguri/oktoberfest-attendance-sub000/internal/repository/dao"
)

var ErrAttendanceNotFound = dao.ErrAttendanceNotFound

const dateLayout = "2006-01-02"

type AttendanceDAO interface {
	FindByUserFestivalDate(ctx context.Context, userID, festivalID uuid.UUID, date string) (dao.Attendance, error)
	Create(ctx context.Context, attendance dao.Attendance) (dao.Attendance, error)
	GetByIDAndUser(ctx context.Context, id, userID uuid.UUID) (dao.Attendance, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
	CreateConsumption(ctx context.Context, consumption dao.Consumption) (dao.Consumption, error)
	FindConsumptionByIdempotencyKey(ctx context.Context, attendanceID uuid.UUID, key string) (dao.Consumption, bool, error)
	GetTotals(ctx context.Context, attendanceID uuid.UUID) (dao.AttendanceWithTotals, error)
	ListByUser(ctx context.Context, userID, festivalID uuid.UUID, limit, offset int) ([]dao.AttendanceWithTotals, int64, error)
}

type AttendanceRepository struct {
	dao AttendanceDAO
}

func NewAttendanceRepository(dao AttendanceDAO) *AttendanceRepository {
	return &AttendanceRepository{
		dao: dao,
	}
}

func (r *AttendanceRepository) daoToDomain(a dao.Attendance) domain.Attendance {
	return domain.Attendance{
		ID:         a.ID,
		UserID:     a.UserID,
		FestivalID: a.FestivalID,
		Date:       a.Date.Format(dateLayout),
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

func (r *AttendanceRepository) withTotalsDaoToDomain(a dao.AttendanceWithTotals) domain.AttendanceWithTotals {
	return domain.AttendanceWithTotals{
		Attendance: r.daoToDomain(a.Attendance),
		AttendanceTotals: domain.AttendanceTotals{
			DrinkCount:      a.DrinkCount,
			BeerCount:       a.BeerCount,
			TotalSpentCents: a.TotalSpentCents,
			TotalTipCents:   a.TotalTipCents,
			AvgPriceCents:   a.AvgPriceCents,
		},
	}
}

func (r *AttendanceRepository) consumptionDomainToDao(c domain.Consumption) dao.Consumption {
	return dao.Consumption{
		AttendanceID:   c.AttendanceID,
		TentID:         c.TentID,
		DrinkType:      string(c.DrinkType),
		DrinkName:      c.DrinkName,
		BasePriceCents: c.BasePriceCents,
		PricePaidCents: c.PricePaidCents,
		TipCents:       c.TipCents,
		VolumeML:       c.VolumeML,
		RecordedAt:     c.RecordedAt,
		IdempotencyKey: c.IdempotencyKey,
	}
}

// FindOrCreate looks up the attendance for (user, festival, date) and creates
// it when absent. Uniqueness is find-or-create semantics, not a constraint.
func (r *AttendanceRepository) FindOrCreate(ctx context.Context, userID, festivalID uuid.UUID, date string) (domain.Attendance, error) {
	existing, err := r.dao.FindByUserFestivalDate(ctx, userID, festivalID, date)
	if err == nil {
		return r.daoToDomain(existing), nil
	}
	if !errors.Is(err, dao.ErrAttendanceNotFound) {
		return domain.Attendance{}, fmt.Errorf("r.dao.FindByUserFestivalDate -> %w", err)
	}

	parsed, err := time.Parse(dateLayout, date)
	if err != nil {
		return domain.Attendance{}, fmt.Errorf("time.Parse -> %w", err)
	}

	created, err := r.dao.Create(ctx, dao.Attendance{
		UserID:     userID,
		FestivalID: festivalID,
		Date:       parsed,
	})
	if err != nil {
		return domain.Attendance{}, fmt.Errorf("r.dao.Create -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *AttendanceRepository) CreateConsumption(ctx context.Context, consumption domain.Consumption) (domain.Consumption, error) {
	created, err := r.dao.CreateConsumption(ctx, r.consumptionDomainToDao(consumption))
	if err != nil {
		return domain.Consumption{}, fmt.Errorf("r.dao.CreateConsumption -> %w", err)
	}

	consumption.ID = created.ID
	consumption.CreatedAt = created.CreatedAt

	return consumption, nil
}

// HasConsumptionWithKey reports whether a consumption with the idempotency
// key already exists under the attendance.
func (r *AttendanceRepository) HasConsumptionWithKey(ctx context.Context, attendanceID uuid.UUID, key string) (bool, error) {
	_, found, err := r.dao.FindConsumptionByIdempotencyKey(ctx, attendanceID, key)
	if err != nil {
		return false, fmt.Errorf("r.dao.FindConsumptionByIdempotencyKey -> %w", err)
	}

	return found, nil
}

// GetWithTotals re-fetches the attendance with its store-computed aggregate.
func (r *AttendanceRepository) GetWithTotals(ctx context.Context, attendanceID uuid.UUID) (domain.AttendanceWithTotals, error) {
	row, err := r.dao.GetTotals(ctx, attendanceID)
	if err != nil {
		return domain.AttendanceWithTotals{}, fmt.Errorf("r.dao.GetTotals -> %w", err)
	}

	return r.withTotalsDaoToDomain(row), nil
}

func (r *AttendanceRepository) ListByUser(ctx context.Context, userID, festivalID uuid.UUID, limit, offset int) ([]domain.AttendanceWithTotals, int64, error) {
	rows, total, err := r.dao.ListByUser(ctx, userID, festivalID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("r.dao.ListByUser -> %w", err)
	}

	result := make([]domain.AttendanceWithTotals, len(rows))
	for i, row := range rows {
		result[i] = r.withTotalsDaoToDomain(row)
	}

	return result, total, nil
}

func (r *AttendanceRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if err := r.dao.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, dao.ErrAttendanceNotFound) {
			return ErrAttendanceNotFound
		}

		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}
