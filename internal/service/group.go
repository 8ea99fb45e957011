package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ignaguri/oktoberfest-attendance-sub000/internal/domain"
	"github.com/ignaguri/oktoberfest-attendance-sub000/internal/repository"
)

var (
	ErrGroupNotFound = repository.ErrGroupNotFound
	ErrAlreadyMember = repository.ErrAlreadyMember
)

type GroupRepository interface {
	Create(ctx context.Context, group domain.Group) (domain.Group, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Group, error)
	FindByInviteToken(ctx context.Context, token string) (domain.Group, error)
	AddMember(ctx context.Context, groupID, userID uuid.UUID) error
	IsMember(ctx context.Context, groupID, userID uuid.UUID) (bool, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Group, error)
	ListMembers(ctx context.Context, groupID uuid.UUID) ([]domain.GroupMember, error)
}

type GroupService struct {
	repo GroupRepository
}

func NewGroupService(repo GroupRepository) *GroupService {
	return &GroupService{
		repo: repo,
	}
}

// Create makes a new group with a fresh invite token; the creator joins
// automatically.
func (s *GroupService) Create(ctx context.Context, userID, festivalID uuid.UUID, name string) (domain.Group, error) {
	group, err := s.repo.Create(ctx, domain.Group{
		FestivalID:  festivalID,
		Name:        name,
		InviteToken: uuid.NewString(),
		CreatedBy:   userID,
	})
	if err != nil {
		return domain.Group{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return group, nil
}

// Join adds the user to the group behind the invite token. A second join is
// a conflict.
func (s *GroupService) Join(ctx context.Context, userID uuid.UUID, inviteToken string) (domain.Group, error) {
	group, err := s.repo.FindByInviteToken(ctx, inviteToken)
	if err != nil {
		return domain.Group{}, fmt.Errorf("s.repo.FindByInviteToken -> %w", err)
	}

	if err = s.repo.AddMember(ctx, group.ID, userID); err != nil {
		return domain.Group{}, fmt.Errorf("s.repo.AddMember -> %w", err)
	}

	return group, nil
}

func (s *GroupService) ListMine(ctx context.Context, userID uuid.UUID) ([]domain.Group, error) {
	groups, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListByUser -> %w", err)
	}

	return groups, nil
}

// ListMembers returns the group roster; only members may see it.
func (s *GroupService) ListMembers(ctx context.Context, groupID, userID uuid.UUID) ([]domain.GroupMember, error) {
	isMember, err := s.repo.IsMember(ctx, groupID, userID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.IsMember -> %w", err)
	}
	if !isMember {
		return nil, ErrNotGroupMember
	}

	members, err := s.repo.ListMembers(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListMembers -> %w", err)
	}

	return members, nil
}
