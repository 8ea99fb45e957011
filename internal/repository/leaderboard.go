package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ignaguri/oktoberfest-attendance-sub000/internal/domain"
	"github.com/ignaguri/oktoberfest-attendance-sub000/internal/repository/dao"
)

type LeaderboardDAO interface {
	GlobalRanking(ctx context.Context, festivalID uuid.UUID, criteria int) ([]dao.LeaderboardRow, error)
	GroupRanking(ctx context.Context, groupID uuid.UUID, criteria int) ([]dao.LeaderboardRow, error)
}

type LeaderboardRepository struct {
	dao LeaderboardDAO
}

func NewLeaderboardRepository(dao LeaderboardDAO) *LeaderboardRepository {
	return &LeaderboardRepository{
		dao: dao,
	}
}

func (r *LeaderboardRepository) rowsToDomain(rows []dao.LeaderboardRow) []domain.LeaderboardEntry {
	entries := make([]domain.LeaderboardEntry, len(rows))
	for i, row := range rows {
		entries[i] = domain.LeaderboardEntry{
			UserID:       row.UserID,
			Name:         row.Name,
			DaysAttended: row.DaysAttended,
			TotalBeers:   row.TotalBeers,
			AvgBeers:     row.AvgBeers,
		}
	}

	return entries
}

// GlobalRanking returns the festival's complete ranking, already ordered by
// the winning criteria. Pagination happens client-side in the service.
func (r *LeaderboardRepository) GlobalRanking(ctx context.Context, festivalID uuid.UUID, criteria domain.WinningCriteria) ([]domain.LeaderboardEntry, error) {
	rows, err := r.dao.GlobalRanking(ctx, festivalID, int(criteria))
	if err != nil {
		return nil, fmt.Errorf("r.dao.GlobalRanking -> %w", err)
	}

	return r.rowsToDomain(rows), nil
}

func (r *LeaderboardRepository) GroupRanking(ctx context.Context, groupID uuid.UUID, criteria domain.WinningCriteria) ([]domain.LeaderboardEntry, error) {
	rows, err := r.dao.GroupRanking(ctx, groupID, int(criteria))
	if err != nil {
		return nil, fmt.Errorf("r.dao.GroupRanking -> %w", err)
	}

	return r.rowsToDomain(rows), nil
}
