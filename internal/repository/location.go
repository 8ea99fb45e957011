package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ignaguri/oktoberfest-attendance-sub000/internal/domain"
	"github.com/ignaguri/oktoberfest-attendance-sub000/internal/repository/dao"
)

var ErrSessionNotFound = dao.ErrSessionNotFound

type LocationDAO interface {
	FindActiveSession(ctx context.Context, userID, festivalID uuid.UUID, now time.Time) (dao.LocationSession, error)
	CreateSession(ctx context.Context, session dao.LocationSession) (dao.LocationSession, error)
	StopSession(ctx context.Context, sessionID, userID uuid.UUID) (dao.LocationSession, error)
	FindOwnedActiveSession(ctx context.Context, sessionID, userID uuid.UUID) (dao.LocationSession, error)
	AppendPoint(ctx context.Context, point dao.LocationPoint) error
	ExpireSessions(ctx context.Context, now time.Time) (int64, error)
	NearbyMembers(ctx context.Context, callerID, festivalID uuid.UUID, latitude, longitude, radiusMeters float64, groupID *uuid.UUID) ([]dao.NearbyMemberRow, error)
}

type LocationRepository struct {
	dao LocationDAO
}

func NewLocationRepository(dao LocationDAO) *LocationRepository {
	return &LocationRepository{
		dao: dao,
	}
}

func (r *LocationRepository) daoToDomain(s dao.LocationSession) domain.LocationSession {
	return domain.LocationSession{
		ID:         s.ID,
		UserID:     s.UserID,
		FestivalID: s.FestivalID,
		IsActive:   s.IsActive,
		StartedAt:  s.StartedAt,
		ExpiresAt:  s.ExpiresAt,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

func (r *LocationRepository) memberDaoToDomain(m dao.NearbyMemberRow) domain.NearbyMember {
	return domain.NearbyMember{
		UserID:         m.UserID,
		Name:           m.Name,
		GroupID:        m.GroupID,
		Latitude:       m.Latitude,
		Longitude:      m.Longitude,
		DistanceMeters: m.DistanceMeters,
		LastSeenAt:     m.LastSeenAt,
	}
}

func (r *LocationRepository) FindActiveSession(ctx context.Context, userID, festivalID uuid.UUID, now time.Time) (domain.LocationSession, error) {
	session, err := r.dao.FindActiveSession(ctx, userID, festivalID, now)
	if err != nil {
		return domain.LocationSession{}, fmt.Errorf("r.dao.FindActiveSession -> %w", err)
	}

	return r.daoToDomain(session), nil
}

func (r *LocationRepository) CreateSession(ctx context.Context, session domain.LocationSession) (domain.LocationSession, error) {
	created, err := r.dao.CreateSession(ctx, dao.LocationSession{
		UserID:     session.UserID,
		FestivalID: session.FestivalID,
		IsActive:   session.IsActive,
		StartedAt:  session.StartedAt,
		ExpiresAt:  session.ExpiresAt,
	})
	if err != nil {
		return domain.LocationSession{}, fmt.Errorf("r.dao.CreateSession -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *LocationRepository) StopSession(ctx context.Context, sessionID, userID uuid.UUID) (domain.LocationSession, error) {
	stopped, err := r.dao.StopSession(ctx, sessionID, userID)
	if err != nil {
		return domain.LocationSession{}, fmt.Errorf("r.dao.StopSession -> %w", err)
	}

	return r.daoToDomain(stopped), nil
}

func (r *LocationRepository) FindOwnedActiveSession(ctx context.Context, sessionID, userID uuid.UUID) (domain.LocationSession, error) {
	session, err := r.dao.FindOwnedActiveSession(ctx, sessionID, userID)
	if err != nil {
		return domain.LocationSession{}, fmt.Errorf("r.dao.FindOwnedActiveSession -> %w", err)
	}

	return r.daoToDomain(session), nil
}

func (r *LocationRepository) AppendPoint(ctx context.Context, point domain.LocationPoint) error {
	err := r.dao.AppendPoint(ctx, dao.LocationPoint{
		SessionID:  point.SessionID,
		Latitude:   point.Latitude,
		Longitude:  point.Longitude,
		Accuracy:   point.Accuracy,
		RecordedAt: point.RecordedAt,
	})
	if err != nil {
		return fmt.Errorf("r.dao.AppendPoint -> %w", err)
	}

	return nil
}

func (r *LocationRepository) ExpireSessions(ctx context.Context, now time.Time) (int64, error) {
	expired, err := r.dao.ExpireSessions(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("r.dao.ExpireSessions -> %w", err)
	}

	return expired, nil
}

func (r *LocationRepository) NearbyMembers(ctx context.Context, callerID, festivalID uuid.UUID, latitude, longitude, radiusMeters float64, groupID *uuid.UUID) ([]domain.NearbyMember, error) {
	rows, err := r.dao.NearbyMembers(ctx, callerID, festivalID, latitude, longitude, radiusMeters, groupID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.NearbyMembers -> %w", err)
	}

	members := make([]domain.NearbyMember, len(rows))
	for i, row := range rows {
		members[i] = r.memberDaoToDomain(row)
	}

	return members, nil
}
