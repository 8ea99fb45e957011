package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ignaguri/oktoberfest-attendance-sub000/internal/domain"
)

var ErrNotGroupMember = errors.New("user is not a member of this group")

type LeaderboardRepository interface {
	GlobalRanking(ctx context.Context, festivalID uuid.UUID, criteria domain.WinningCriteria) ([]domain.LeaderboardEntry, error)
	GroupRanking(ctx context.Context, groupID uuid.UUID, criteria domain.WinningCriteria) ([]domain.LeaderboardEntry, error)
}

type GroupMembershipChecker interface {
	IsMember(ctx context.Context, groupID, userID uuid.UUID) (bool, error)
}

type LeaderboardService struct {
	repo   LeaderboardRepository
	groups GroupMembershipChecker
}

func NewLeaderboardService(repo LeaderboardRepository, groups GroupMembershipChecker) *LeaderboardService {
	return &LeaderboardService{
		repo:   repo,
		groups: groups,
	}
}

// GetGlobal returns one page of the festival ranking. The store materializes
// the full ranking; pagination is an in-memory slice, so total is the full
// ranking size rather than a separate count query.
func (s *LeaderboardService) GetGlobal(ctx context.Context, festivalID uuid.UUID, sortBy string, limit, offset int) ([]domain.LeaderboardEntry, int, error) {
	criteria := domain.CriteriaFromSortKey(sortBy)

	ranking, err := s.repo.GlobalRanking(ctx, festivalID, criteria)
	if err != nil {
		return nil, 0, fmt.Errorf("s.repo.GlobalRanking -> %w", err)
	}

	page := paginate(ranking, limit, offset)

	return page, len(ranking), nil
}

func (s *LeaderboardService) GetGroup(ctx context.Context, groupID, userID uuid.UUID, sortBy string, limit, offset int) ([]domain.LeaderboardEntry, int, error) {
	isMember, err := s.groups.IsMember(ctx, groupID, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("s.groups.IsMember -> %w", err)
	}
	if !isMember {
		return nil, 0, ErrNotGroupMember
	}

	criteria := domain.CriteriaFromSortKey(sortBy)

	ranking, err := s.repo.GroupRanking(ctx, groupID, criteria)
	if err != nil {
		return nil, 0, fmt.Errorf("s.repo.GroupRanking -> %w", err)
	}

	page := paginate(ranking, limit, offset)

	return page, len(ranking), nil
}

// paginate slices the materialized ranking and assigns 1-based positions
// relative to the full set.
func paginate(ranking []domain.LeaderboardEntry, limit, offset int) []domain.LeaderboardEntry {
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	if offset < 0 {
		offset = 0
	}
	if offset >= len(ranking) {
		return []domain.LeaderboardEntry{}
	}

	end := offset + limit
	if end > len(ranking) {
		end = len(ranking)
	}

	page := make([]domain.LeaderboardEntry, end-offset)
	copy(page, ranking[offset:end])
	for i := range page {
		page[i].Position = offset + i + 1
	}

	return page
}
