package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ignaguri/oktoberfest-attendance-sub000/internal/domain"
	"github.com/ignaguri/oktoberfest-attendance-sub000/internal/repository/dao"
)

var (
	ErrGroupNotFound = dao.ErrGroupNotFound
	ErrAlreadyMember = dao.ErrAlreadyMember
)

type GroupDAO interface {
	Create(ctx context.Context, group dao.Group) (dao.Group, error)
	GetByID(ctx context.Context, id uuid.UUID) (dao.Group, error)
	FindByInviteToken(ctx context.Context, token string) (dao.Group, error)
	AddMember(ctx context.Context, groupID, userID uuid.UUID) error
	IsMember(ctx context.Context, groupID, userID uuid.UUID) (bool, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]dao.Group, error)
	ListMembers(ctx context.Context, groupID uuid.UUID) ([]dao.GroupMemberRow, error)
}

type GroupRepository struct {
	dao GroupDAO
}

func NewGroupRepository(dao GroupDAO) *GroupRepository {
	return &GroupRepository{
		dao: dao,
	}
}

func (r *GroupRepository) daoToDomain(g dao.Group) domain.Group {
	return domain.Group{
		ID:          g.ID,
		FestivalID:  g.FestivalID,
		Name:        g.Name,
		InviteToken: g.InviteToken,
		CreatedBy:   g.CreatedBy,
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}
}

func (r *GroupRepository) Create(ctx context.Context, group domain.Group) (domain.Group, error) {
	created, err := r.dao.Create(ctx, dao.Group{
		FestivalID:  group.FestivalID,
		Name:        group.Name,
		InviteToken: group.InviteToken,
		CreatedBy:   group.CreatedBy,
	})
	if err != nil {
		return domain.Group{}, fmt.Errorf("r.dao.Create -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *GroupRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Group, error) {
	group, err := r.dao.GetByID(ctx, id)
	if err != nil {
		return domain.Group{}, fmt.Errorf("r.dao.GetByID -> %w", err)
	}

	return r.daoToDomain(group), nil
}

func (r *GroupRepository) FindByInviteToken(ctx context.Context, token string) (domain.Group, error) {
	group, err := r.dao.FindByInviteToken(ctx, token)
	if err != nil {
		return domain.Group{}, fmt.Errorf("r.dao.FindByInviteToken -> %w", err)
	}

	return r.daoToDomain(group), nil
}

func (r *GroupRepository) AddMember(ctx context.Context, groupID, userID uuid.UUID) error {
	if err := r.dao.AddMember(ctx, groupID, userID); err != nil {
		return fmt.Errorf("r.dao.AddMember -> %w", err)
	}

	return nil
}

func (r *GroupRepository) IsMember(ctx context.Context, groupID, userID uuid.UUID) (bool, error) {
	isMember, err := r.dao.IsMember(ctx, groupID, userID)
	if err != nil {
		return false, fmt.Errorf("r.dao.IsMember -> %w", err)
	}

	return isMember, nil
}

func (r *GroupRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Group, error) {
	groups, err := r.dao.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListByUser -> %w", err)
	}

	result := make([]domain.Group, len(groups))
	for i, g := range groups {
		result[i] = r.daoToDomain(g)
	}

	return result, nil
}

func (r *GroupRepository) ListMembers(ctx context.Context, groupID uuid.UUID) ([]domain.GroupMember, error) {
	rows, err := r.dao.ListMembers(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListMembers -> %w", err)
	}

	members := make([]domain.GroupMember, len(rows))
	for i, row := range rows {
		members[i] = domain.GroupMember{
			GroupID:  row.GroupID,
			UserID:   row.UserID,
			Name:     row.Name,
			JoinedAt: row.JoinedAt,
		}
	}

	return members, nil
}
