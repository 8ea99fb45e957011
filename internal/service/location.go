package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ignaguri/oktoberfest-attendance-sub000/internal/domain"
	"github.com/ignaguri/oktoberfest-attendance-sub000/internal/repository"
)

var (
	ErrSessionNotFound     = repository.ErrSessionNotFound
	ErrActiveSessionExists = errors.New("an active location session already exists for this festival")
	ErrInvalidDuration     = errors.New("durationMinutes must be between 5 and 480")
	ErrInvalidCoordinates  = errors.New("latitude must be within [-90, 90] and longitude within [-180, 180]")
	ErrInvalidRadius       = errors.New("radiusMeters must be between 100 and 5000")
)

const (
	MinSessionMinutes     = 5
	MaxSessionMinutes     = 480
	DefaultSessionMinutes = 120

	MinRadiusMeters     = 100
	MaxRadiusMeters     = 5000
	DefaultRadiusMeters = 500
)

type LocationRepository interface {
	FindActiveSession(ctx context.Context, userID, festivalID uuid.UUID, now time.Time) (domain.LocationSession, error)
	CreateSession(ctx context.Context, session domain.LocationSession) (domain.LocationSession, error)
	StopSession(ctx context.Context, sessionID, userID uuid.UUID) (domain.LocationSession, error)
	FindOwnedActiveSession(ctx context.Context, sessionID, userID uuid.UUID) (domain.LocationSession, error)
	AppendPoint(ctx context.Context, point domain.LocationPoint) error
	ExpireSessions(ctx context.Context, now time.Time) (int64, error)
	NearbyMembers(ctx context.Context, callerID, festivalID uuid.UUID, latitude, longitude, radiusMeters float64, groupID *uuid.UUID) ([]domain.NearbyMember, error)
}

type LocationUpdateInput struct {
	Latitude  float64
	Longitude float64
	Accuracy  *float64
	Timestamp time.Time
}

type LocationService struct {
	repo LocationRepository
}

func NewLocationService(repo LocationRepository) *LocationService {
	return &LocationService{
		repo: repo,
	}
}

// StartSession opens a live-sharing window. The duplicate-session check and
// the insert are separate round-trips, so two concurrent starts can both
// pass; sequential calls see exactly one conflict.
func (s *LocationService) StartSession(ctx context.Context, userID, festivalID uuid.UUID, durationMinutes int, initialLocation *LocationUpdateInput) (domain.LocationSession, error) {
	if durationMinutes == 0 {
		durationMinutes = DefaultSessionMinutes
	}
	if durationMinutes < MinSessionMinutes || durationMinutes > MaxSessionMinutes {
		return domain.LocationSession{}, ErrInvalidDuration
	}
	if initialLocation != nil {
		if err := validateCoordinates(initialLocation.Latitude, initialLocation.Longitude); err != nil {
			return domain.LocationSession{}, err
		}
	}

	now := time.Now()

	_, err := s.repo.FindActiveSession(ctx, userID, festivalID, now)
	if err == nil {
		return domain.LocationSession{}, ErrActiveSessionExists
	}
	if !errors.Is(err, ErrSessionNotFound) {
		return domain.LocationSession{}, fmt.Errorf("s.repo.FindActiveSession -> %w", err)
	}

	session, err := s.repo.CreateSession(ctx, domain.LocationSession{
		UserID:     userID,
		FestivalID: festivalID,
		IsActive:   true,
		StartedAt:  now,
		ExpiresAt:  now.Add(time.Duration(durationMinutes) * time.Minute),
	})
	if err != nil {
		return domain.LocationSession{}, fmt.Errorf("s.repo.CreateSession -> %w", err)
	}

	if initialLocation != nil {
		if err = s.UpdateLocation(ctx, session.ID, userID, *initialLocation); err != nil {
			return domain.LocationSession{}, fmt.Errorf("s.UpdateLocation -> %w", err)
		}
	}

	return session, nil
}

func (s *LocationService) StopSession(ctx context.Context, sessionID, userID uuid.UUID) (domain.LocationSession, error) {
	session, err := s.repo.StopSession(ctx, sessionID, userID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return domain.LocationSession{}, ErrSessionNotFound
		}

		return domain.LocationSession{}, fmt.Errorf("s.repo.StopSession -> %w", err)
	}

	return session, nil
}

// UpdateLocation appends a GPS sample to an owned, active session. Expiry is
// not extended by activity; sessions lapse on their original schedule.
func (s *LocationService) UpdateLocation(ctx context.Context, sessionID, userID uuid.UUID, input LocationUpdateInput) error {
	if err := validateCoordinates(input.Latitude, input.Longitude); err != nil {
		return err
	}

	session, err := s.repo.FindOwnedActiveSession(ctx, sessionID, userID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return ErrSessionNotFound
		}

		return fmt.Errorf("s.repo.FindOwnedActiveSession -> %w", err)
	}

	recordedAt := input.Timestamp
	if recordedAt.IsZero() {
		recordedAt = time.Now()
	}

	err = s.repo.AppendPoint(ctx, domain.LocationPoint{
		SessionID:  session.ID,
		Latitude:   input.Latitude,
		Longitude:  input.Longitude,
		Accuracy:   input.Accuracy,
		RecordedAt: recordedAt,
	})
	if err != nil {
		return fmt.Errorf("s.repo.AppendPoint -> %w", err)
	}

	return nil
}

// GetNearbyMembers finds group mates with active sessions inside the radius.
// The proximity search runs in the store and returns rows sorted by distance;
// the service does not re-sort.
func (s *LocationService) GetNearbyMembers(ctx context.Context, userID, festivalID uuid.UUID, latitude, longitude, radiusMeters float64, groupID *uuid.UUID) ([]domain.NearbyMember, error) {
	if err := validateCoordinates(latitude, longitude); err != nil {
		return nil, err
	}
	if radiusMeters == 0 {
		radiusMeters = DefaultRadiusMeters
	}
	if radiusMeters < MinRadiusMeters || radiusMeters > MaxRadiusMeters {
		return nil, ErrInvalidRadius
	}

	members, err := s.repo.NearbyMembers(ctx, userID, festivalID, latitude, longitude, radiusMeters, groupID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.NearbyMembers -> %w", err)
	}

	return members, nil
}

// ExpireOldSessions deactivates every session past its expiry. Idempotent;
// meant for the periodic sweeper, not request handling.
func (s *LocationService) ExpireOldSessions(ctx context.Context) error {
	expired, err := s.repo.ExpireSessions(ctx, time.Now())
	if err != nil {
		return fmt.Errorf("s.repo.ExpireSessions -> %w", err)
	}

	if expired > 0 {
		zap.L().Info("expired location sessions", zap.Int64("count", expired))
	}

	return nil
}

func validateCoordinates(latitude, longitude float64) error {
	if latitude < -90 || latitude > 90 || longitude < -180 || longitude > 180 {
		return ErrInvalidCoordinates
	}

	return nil
}
