package dao

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LeaderboardRow is one ranked user as computed by the store. avg_beers is
// beers per attended day.
type LeaderboardRow struct {
	UserID       uuid.UUID
	Name         string
	DaysAttended int
	TotalBeers   int
	AvgBeers     float64
}

type LeaderboardDAO struct {
	db *gorm.DB
}

func NewLeaderboardDAO(db *gorm.DB) *LeaderboardDAO {
	return &LeaderboardDAO{
		db: db,
	}
}

// criteria codes follow the store's winning_criteria lookup table:
// 1 = days_attended, 2 = total_beers, 3 = avg_beers.
var orderByCriteria = map[int]string{
	1: "days_attended DESC, total_beers DESC",
	2: "total_beers DESC, days_attended DESC",
	3: "avg_beers DESC, total_beers DESC",
}

// GlobalRanking materializes the full ranking for a festival. Pagination is
// the caller's concern; the store always returns the complete set.
func (d *LeaderboardDAO) GlobalRanking(ctx context.Context, festivalID uuid.UUID, criteria int) ([]LeaderboardRow, error) {
	orderBy, ok := orderByCriteria[criteria]
	if !ok {
		orderBy = orderByCriteria[2]
	}

	var rows []LeaderboardRow
	err := d.db.WithContext(ctx).Raw(`
		SELECT a.user_id,
		       u.name,
		       COUNT(DISTINCT a.date)                                          AS days_attended,
		       COUNT(c.id) FILTER (WHERE c.drink_type IN ('beer', 'radler'))   AS total_beers,
		       COALESCE(
		           COUNT(c.id) FILTER (WHERE c.drink_type IN ('beer', 'radler'))::float
		           / NULLIF(COUNT(DISTINCT a.date), 0), 0)                     AS avg_beers
		FROM attendances a
		JOIN users u ON u.id = a.user_id
		LEFT JOIN consumptions c ON c.attendance_id = a.id
		WHERE a.festival_id = ?
		GROUP BY a.user_id, u.name
		ORDER BY `+orderBy, festivalID).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

// GroupRanking is the global ranking narrowed to one group's members.
func (d *LeaderboardDAO) GroupRanking(ctx context.Context, groupID uuid.UUID, criteria int) ([]LeaderboardRow, error) {
	orderBy, ok := orderByCriteria[criteria]
	if !ok {
		orderBy = orderByCriteria[2]
	}

	var rows []LeaderboardRow
	err := d.db.WithContext(ctx).Raw(`
		SELECT a.user_id,
		       u.name,
		       COUNT(DISTINCT a.date)                                          AS days_attended,
		       COUNT(c.id) FILTER (WHERE c.drink_type IN ('beer', 'radler'))   AS total_beers,
		       COALESCE(
		           COUNT(c.id) FILTER (WHERE c.drink_type IN ('beer', 'radler'))::float
		           / NULLIF(COUNT(DISTINCT a.date), 0), 0)                     AS avg_beers
		FROM groups g
		JOIN group_members gm ON gm.group_id = g.id
		JOIN attendances a ON a.user_id = gm.user_id AND a.festival_id = g.festival_id
		JOIN users u ON u.id = a.user_id
		LEFT JOIN consumptions c ON c.attendance_id = a.id
		WHERE g.id = ?
		GROUP BY a.user_id, u.name
		ORDER BY `+orderBy, groupID).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}
