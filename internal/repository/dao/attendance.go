package dao

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrAttendanceNotFound = errors.New("attendance not found")

type Attendance struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index:idx_attendance_lookup"`
	FestivalID uuid.UUID `gorm:"type:uuid;not null;index:idx_attendance_lookup"`
	Date       time.Time `gorm:"type:date;not null;index:idx_attendance_lookup"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Consumption struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AttendanceID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	Attendance     Attendance `gorm:"foreignKey:AttendanceID;constraint:OnDelete:CASCADE"`
	TentID         *uuid.UUID `gorm:"type:uuid"`
	DrinkType      string     `gorm:"not null"`
	DrinkName      string
	BasePriceCents int    `gorm:"not null"`
	PricePaidCents int    `gorm:"not null"`
	TipCents       int    `gorm:"not null;default:0"`
	VolumeML       int    `gorm:"column:volume_ml;not null"`
	RecordedAt     time.Time
	IdempotencyKey string `gorm:"index"`
	CreatedAt      time.Time
}

// attendanceTotalsRow is the flat shape of the store-side aggregate.
type attendanceTotalsRow struct {
	DrinkCount      int
	BeerCount       int
	TotalSpentCents int
	TotalTipCents   int
	AvgPriceCents   int
}

// AttendanceWithTotals pairs an attendance row with its aggregate.
type AttendanceWithTotals struct {
	Attendance
	DrinkCount      int
	BeerCount       int
	TotalSpentCents int
	TotalTipCents   int
	AvgPriceCents   int
}

type AttendanceDAO struct {
	db *gorm.DB
}

func NewAttendanceDAO(db *gorm.DB) *AttendanceDAO {
	return &AttendanceDAO{
		db: db,
	}
}

func (d *AttendanceDAO) FindByUserFestivalDate(ctx context.Context, userID, festivalID uuid.UUID, date string) (Attendance, error) {
	var attendance Attendance
	err := d.db.WithContext(ctx).
		Where("user_id = ? AND festival_id = ? AND date = ?", userID, festivalID, date).
		First(&attendance).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Attendance{}, ErrAttendanceNotFound
	}
	if err != nil {
		return Attendance{}, err
	}

	return attendance, nil
}

func (d *AttendanceDAO) Create(ctx context.Context, attendance Attendance) (Attendance, error) {
	if err := d.db.WithContext(ctx).Create(&attendance).Error; err != nil {
		return Attendance{}, err
	}

	return attendance, nil
}

func (d *AttendanceDAO) GetByIDAndUser(ctx context.Context, id, userID uuid.UUID) (Attendance, error) {
	var attendance Attendance
	err := d.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&attendance).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Attendance{}, ErrAttendanceNotFound
	}
	if err != nil {
		return Attendance{}, err
	}

	return attendance, nil
}

// Delete removes the attendance iff it belongs to userID. Consumptions go
// with it via the ON DELETE CASCADE constraint.
func (d *AttendanceDAO) Delete(ctx context.Context, id, userID uuid.UUID) error {
	res := d.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&Attendance{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAttendanceNotFound
	}

	return nil
}

func (d *AttendanceDAO) CreateConsumption(ctx context.Context, consumption Consumption) (Consumption, error) {
	if err := d.db.WithContext(ctx).Create(&consumption).Error; err != nil {
		return Consumption{}, err
	}

	return consumption, nil
}

// FindConsumptionByIdempotencyKey returns the consumption previously created
// with the given key under the same attendance, if any.
func (d *AttendanceDAO) FindConsumptionByIdempotencyKey(ctx context.Context, attendanceID uuid.UUID, key string) (Consumption, bool, error) {
	var consumption Consumption
	err := d.db.WithContext(ctx).
		Where("attendance_id = ? AND idempotency_key = ?", attendanceID, key).
		First(&consumption).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Consumption{}, false, nil
	}
	if err != nil {
		return Consumption{}, false, err
	}

	return consumption, true, nil
}

// GetTotals computes the attendance aggregate in the store. The FILTER
// partition mirrors drink-type-is-beer: only beer and radler count.
func (d *AttendanceDAO) GetTotals(ctx context.Context, attendanceID uuid.UUID) (AttendanceWithTotals, error) {
	attendance, err := d.getByID(ctx, attendanceID)
	if err != nil {
		return AttendanceWithTotals{}, err
	}

	var row attendanceTotalsRow
	err = d.db.WithContext(ctx).Raw(`
		SELECT COUNT(*)                                                        AS drink_count,
		       COUNT(*) FILTER (WHERE drink_type IN ('beer', 'radler'))        AS beer_count,
		       COALESCE(SUM(price_paid_cents), 0)                              AS total_spent_cents,
		       COALESCE(SUM(tip_cents), 0)                                     AS total_tip_cents,
		       COALESCE(ROUND(AVG(price_paid_cents)), 0)                       AS avg_price_cents
		FROM consumptions
		WHERE attendance_id = ?`, attendanceID).
		Scan(&row).Error
	if err != nil {
		return AttendanceWithTotals{}, err
	}

	return AttendanceWithTotals{
		Attendance:      attendance,
		DrinkCount:      row.DrinkCount,
		BeerCount:       row.BeerCount,
		TotalSpentCents: row.TotalSpentCents,
		TotalTipCents:   row.TotalTipCents,
		AvgPriceCents:   row.AvgPriceCents,
	}, nil
}

func (d *AttendanceDAO) getByID(ctx context.Context, id uuid.UUID) (Attendance, error) {
	var attendance Attendance
	err := d.db.WithContext(ctx).Where("id = ?", id).First(&attendance).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Attendance{}, ErrAttendanceNotFound
	}
	if err != nil {
		return Attendance{}, err
	}

	return attendance, nil
}

// ListByUser returns the user's attendances with totals, newest date first,
// plus the unpaginated count.
func (d *AttendanceDAO) ListByUser(ctx context.Context, userID, festivalID uuid.UUID, limit, offset int) ([]AttendanceWithTotals, int64, error) {
	var total int64
	err := d.db.WithContext(ctx).Model(&Attendance{}).
		Where("user_id = ? AND festival_id = ?", userID, festivalID).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var rows []AttendanceWithTotals
	err = d.db.WithContext(ctx).Raw(`
		SELECT a.*,
		       COUNT(c.id)                                                     AS drink_count,
		       COUNT(c.id) FILTER (WHERE c.drink_type IN ('beer', 'radler'))   AS beer_count,
		       COALESCE(SUM(c.price_paid_cents), 0)                            AS total_spent_cents,
		       COALESCE(SUM(c.tip_cents), 0)                                   AS total_tip_cents,
		       COALESCE(ROUND(AVG(c.price_paid_cents)), 0)                     AS avg_price_cents
		FROM attendances a
		LEFT JOIN consumptions c ON c.attendance_id = a.id
		WHERE a.user_id = ? AND a.festival_id = ?
		GROUP BY a.id
		ORDER BY a.date DESC
		LIMIT ? OFFSET ?`, userID, festivalID, limit, offset).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}
