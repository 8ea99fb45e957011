package dao

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WrappedRow is the store-side year-in-review aggregate for one user at one
// festival.
type WrappedRow struct {
	DaysAttended    int
	TotalDrinks     int
	TotalBeers      int
	TotalSpentCents int
	TotalVolumeML   int `gorm:"column:total_volume_ml"`
	AvgDrinksPerDay float64
	FavoriteTent    string
	PeakDay         string
}

type WrappedDAO struct {
	db *gorm.DB
}

func NewWrappedDAO(db *gorm.DB) *WrappedDAO {
	return &WrappedDAO{
		db: db,
	}
}

// Aggregate computes the wrapped summary in a single blocking store call.
func (d *WrappedDAO) Aggregate(ctx context.Context, userID, festivalID uuid.UUID) (WrappedRow, error) {
	var row WrappedRow
	err := d.db.WithContext(ctx).Raw(`
		WITH base AS (
			SELECT a.date, c.id AS consumption_id, c.drink_type, c.price_paid_cents,
			       c.volume_ml, c.tent_id
			FROM attendances a
			LEFT JOIN consumptions c ON c.attendance_id = a.id
			WHERE a.user_id = @user AND a.festival_id = @festival
		)
		SELECT COUNT(DISTINCT base.date)                                          AS days_attended,
		       COUNT(base.consumption_id)                                         AS total_drinks,
		       COUNT(base.consumption_id)
		           FILTER (WHERE base.drink_type IN ('beer', 'radler'))           AS total_beers,
		       COALESCE(SUM(base.price_paid_cents), 0)                            AS total_spent_cents,
		       COALESCE(SUM(base.volume_ml), 0)                                   AS total_volume_ml,
		       COALESCE(COUNT(base.consumption_id)::float
		           / NULLIF(COUNT(DISTINCT base.date), 0), 0)                     AS avg_drinks_per_day,
		       COALESCE((
		           SELECT t.name
		           FROM base b
		           JOIN tents t ON t.id = b.tent_id
		           GROUP BY t.name
		           ORDER BY COUNT(*) DESC
		           LIMIT 1), '')                                                  AS favorite_tent,
		       COALESCE((
		           SELECT to_char(b.date, 'YYYY-MM-DD')
		           FROM base b
		           WHERE b.consumption_id IS NOT NULL
		           GROUP BY b.date
		           ORDER BY COUNT(*) DESC
		           LIMIT 1), '')                                                  AS peak_day
		FROM base`,
		map[string]interface{}{
			"user":     userID,
			"festival": festivalID,
		}).
		Scan(&row).Error
	if err != nil {
		return WrappedRow{}, err
	}

	return row, nil
}
