package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignaguri/oktoberfest-attendance-sub000/internal/domain"
	"github.com/ignaguri/oktoberfest-attendance-sub000/internal/repository"
)

type fakeLocationRepo struct {
	sessions []domain.LocationSession
	points   []domain.LocationPoint
	nearby   []domain.NearbyMember

	nearbyCalls int
}

func (f *fakeLocationRepo) FindActiveSession(_ context.Context, userID, festivalID uuid.UUID, now time.Time) (domain.LocationSession, error) {
	for _, s := range f.sessions {
		if s.UserID == userID && s.FestivalID == festivalID && s.IsActive && s.ExpiresAt.After(now) {
			return s, nil
		}
	}

	return domain.LocationSession{}, repository.ErrSessionNotFound
}

func (f *fakeLocationRepo) CreateSession(_ context.Context, session domain.LocationSession) (domain.LocationSession, error) {
	session.ID = uuid.New()
	f.sessions = append(f.sessions, session)

	return session, nil
}

func (f *fakeLocationRepo) StopSession(_ context.Context, sessionID, userID uuid.UUID) (domain.LocationSession, error) {
	for i, s := range f.sessions {
		if s.ID == sessionID && s.UserID == userID && s.IsActive {
			f.sessions[i].IsActive = false

			return f.sessions[i], nil
		}
	}

	return domain.LocationSession{}, repository.ErrSessionNotFound
}

func (f *fakeLocationRepo) FindOwnedActiveSession(_ context.Context, sessionID, userID uuid.UUID) (domain.LocationSession, error) {
	for _, s := range f.sessions {
		if s.ID == sessionID && s.UserID == userID && s.IsActive {
			return s, nil
		}
	}

	return domain.LocationSession{}, repository.ErrSessionNotFound
}

func (f *fakeLocationRepo) AppendPoint(_ context.Context, point domain.LocationPoint) error {
	f.points = append(f.points, point)

	return nil
}

func (f *fakeLocationRepo) ExpireSessions(_ context.Context, now time.Time) (int64, error) {
	var expired int64
	for i, s := range f.sessions {
		if s.IsActive && !s.ExpiresAt.After(now) {
			f.sessions[i].IsActive = false
			expired++
		}
	}

	return expired, nil
}

func (f *fakeLocationRepo) NearbyMembers(_ context.Context, _, _ uuid.UUID, _, _, _ float64, _ *uuid.UUID) ([]domain.NearbyMember, error) {
	f.nearbyCalls++

	return f.nearby, nil
}

func TestStartSession_DurationBounds(t *testing.T) {
	tests := []struct {
		name            string
		durationMinutes int
		wantErr         error
		wantDuration    time.Duration
	}{
		{name: "zero falls back to default", durationMinutes: 0, wantDuration: 120 * time.Minute},
		{name: "minimum allowed", durationMinutes: 5, wantDuration: 5 * time.Minute},
		{name: "maximum allowed", durationMinutes: 480, wantDuration: 480 * time.Minute},
		{name: "below minimum", durationMinutes: 4, wantErr: ErrInvalidDuration},
		{name: "above maximum", durationMinutes: 481, wantErr: ErrInvalidDuration},
		{name: "negative", durationMinutes: -10, wantErr: ErrInvalidDuration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeLocationRepo{}
			svc := NewLocationService(repo)

			session, err := svc.StartSession(context.Background(), uuid.New(), uuid.New(), tt.durationMinutes, nil)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, repo.sessions)

				return
			}

			require.NoError(t, err)
			assert.True(t, session.IsActive)
			assert.WithinDuration(t, session.StartedAt.Add(tt.wantDuration), session.ExpiresAt, time.Second)
		})
	}
}

func TestStartSession_SecondStartConflicts(t *testing.T) {
	repo := &fakeLocationRepo{}
	svc := NewLocationService(repo)
	userID := uuid.New()
	festivalID := uuid.New()

	_, err := svc.StartSession(context.Background(), userID, festivalID, 60, nil)
	require.NoError(t, err)

	_, err = svc.StartSession(context.Background(), userID, festivalID, 60, nil)
	require.ErrorIs(t, err, ErrActiveSessionExists)
	assert.Len(t, repo.sessions, 1)
}

func TestStartSession_SameUserDifferentFestival(t *testing.T) {
	repo := &fakeLocationRepo{}
	svc := NewLocationService(repo)
	userID := uuid.New()

	_, err := svc.StartSession(context.Background(), userID, uuid.New(), 60, nil)
	require.NoError(t, err)

	_, err = svc.StartSession(context.Background(), userID, uuid.New(), 60, nil)
	require.NoError(t, err)
	assert.Len(t, repo.sessions, 2)
}

func TestStartSession_RecordsInitialLocation(t *testing.T) {
	repo := &fakeLocationRepo{}
	svc := NewLocationService(repo)

	_, err := svc.StartSession(context.Background(), uuid.New(), uuid.New(), 60, &LocationUpdateInput{
		Latitude:  48.1315,
		Longitude: 11.5497,
	})

	require.NoError(t, err)
	require.Len(t, repo.points, 1)
	assert.Equal(t, 48.1315, repo.points[0].Latitude)
	assert.Equal(t, 11.5497, repo.points[0].Longitude)
}

func TestUpdateLocation_CoordinateBounds(t *testing.T) {
	tests := []struct {
		name      string
		latitude  float64
		longitude float64
		wantErr   error
	}{
		{name: "valid munich", latitude: 48.1315, longitude: 11.5497},
		{name: "equator and prime meridian", latitude: 0, longitude: 0},
		{name: "latitude too high", latitude: 90.01, longitude: 0, wantErr: ErrInvalidCoordinates},
		{name: "latitude too low", latitude: -90.01, longitude: 0, wantErr: ErrInvalidCoordinates},
		{name: "longitude too high", latitude: 0, longitude: 180.01, wantErr: ErrInvalidCoordinates},
		{name: "longitude too low", latitude: 0, longitude: -180.01, wantErr: ErrInvalidCoordinates},
		{name: "poles are valid", latitude: 90, longitude: -180},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeLocationRepo{}
			svc := NewLocationService(repo)
			userID := uuid.New()

			session, err := svc.StartSession(context.Background(), userID, uuid.New(), 60, nil)
			require.NoError(t, err)

			err = svc.UpdateLocation(context.Background(), session.ID, userID, LocationUpdateInput{
				Latitude:  tt.latitude,
				Longitude: tt.longitude,
			})

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, repo.points)

				return
			}

			require.NoError(t, err)
			assert.Len(t, repo.points, 1)
		})
	}
}

func TestUpdateLocation_UnownedSession(t *testing.T) {
	repo := &fakeLocationRepo{}
	svc := NewLocationService(repo)

	session, err := svc.StartSession(context.Background(), uuid.New(), uuid.New(), 60, nil)
	require.NoError(t, err)

	// A different user cannot append to it.
	err = svc.UpdateLocation(context.Background(), session.ID, uuid.New(), LocationUpdateInput{
		Latitude:  48.13,
		Longitude: 11.55,
	})
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestStopSession(t *testing.T) {
	repo := &fakeLocationRepo{}
	svc := NewLocationService(repo)
	userID := uuid.New()

	session, err := svc.StartSession(context.Background(), userID, uuid.New(), 60, nil)
	require.NoError(t, err)

	stopped, err := svc.StopSession(context.Background(), session.ID, userID)
	require.NoError(t, err)
	assert.False(t, stopped.IsActive)

	// Stopping twice is a not-found, not an idempotent success.
	_, err = svc.StopSession(context.Background(), session.ID, userID)
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestGetNearbyMembers_RadiusBounds(t *testing.T) {
	tests := []struct {
		name         string
		radiusMeters float64
		wantErr      error
	}{
		{name: "zero falls back to default", radiusMeters: 0},
		{name: "minimum allowed", radiusMeters: 100},
		{name: "maximum allowed", radiusMeters: 5000},
		{name: "below minimum", radiusMeters: 99, wantErr: ErrInvalidRadius},
		{name: "above maximum", radiusMeters: 5001, wantErr: ErrInvalidRadius},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeLocationRepo{}
			svc := NewLocationService(repo)

			_, err := svc.GetNearbyMembers(context.Background(), uuid.New(), uuid.New(), 48.13, 11.55, tt.radiusMeters, nil)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Zero(t, repo.nearbyCalls)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, 1, repo.nearbyCalls)
		})
	}
}

func TestGetNearbyMembers_InvalidCoordinates(t *testing.T) {
	repo := &fakeLocationRepo{}
	svc := NewLocationService(repo)

	_, err := svc.GetNearbyMembers(context.Background(), uuid.New(), uuid.New(), 91, 11.55, 500, nil)
	require.ErrorIs(t, err, ErrInvalidCoordinates)
	assert.Zero(t, repo.nearbyCalls)
}

func TestExpireOldSessions(t *testing.T) {
	repo := &fakeLocationRepo{}
	svc := NewLocationService(repo)
	userID := uuid.New()
	festivalID := uuid.New()

	session, err := svc.StartSession(context.Background(), userID, festivalID, 60, nil)
	require.NoError(t, err)

	// Force the session past its expiry.
	for i := range repo.sessions {
		if repo.sessions[i].ID == session.ID {
			repo.sessions[i].ExpiresAt = time.Now().Add(-time.Minute)
		}
	}

	require.NoError(t, svc.ExpireOldSessions(context.Background()))

	// The slot is free again.
	_, err = svc.StartSession(context.Background(), userID, festivalID, 60, nil)
	require.NoError(t, err)
}
