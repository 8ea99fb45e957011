package dao

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrSessionNotFound = errors.New("location session not found")

type LocationSession struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index:idx_session_user_festival"`
	FestivalID uuid.UUID `gorm:"type:uuid;not null;index:idx_session_user_festival"`
	IsActive   bool      `gorm:"not null;default:true"`
	StartedAt  time.Time `gorm:"not null"`
	ExpiresAt  time.Time `gorm:"not null;index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type LocationPoint struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Session    LocationSession `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE"`
	Latitude   float64         `gorm:"not null"`
	Longitude  float64         `gorm:"not null"`
	Accuracy   *float64
	RecordedAt time.Time `gorm:"not null;index"`
	CreatedAt  time.Time
}

// NearbyMemberRow is one row of the proximity query result.
type NearbyMemberRow struct {
	UserID         uuid.UUID
	Name           string
	GroupID        uuid.UUID
	Latitude       float64
	Longitude      float64
	DistanceMeters float64
	LastSeenAt     time.Time
}

type LocationDAO struct {
	db *gorm.DB
}

func NewLocationDAO(db *gorm.DB) *LocationDAO {
	return &LocationDAO{
		db: db,
	}
}

// FindActiveSession returns the user's active-and-unexpired session at the
// festival, if one exists.
func (d *LocationDAO) FindActiveSession(ctx context.Context, userID, festivalID uuid.UUID, now time.Time) (LocationSession, error) {
	var session LocationSession
	err := d.db.WithContext(ctx).
		Where("user_id = ? AND festival_id = ? AND is_active = ? AND expires_at > ?",
			userID, festivalID, true, now).
		First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return LocationSession{}, ErrSessionNotFound
	}
	if err != nil {
		return LocationSession{}, err
	}

	return session, nil
}

func (d *LocationDAO) CreateSession(ctx context.Context, session LocationSession) (LocationSession, error) {
	if err := d.db.WithContext(ctx).Create(&session).Error; err != nil {
		return LocationSession{}, err
	}

	return session, nil
}

// StopSession flips isActive off iff the session belongs to userID.
func (d *LocationDAO) StopSession(ctx context.Context, sessionID, userID uuid.UUID) (LocationSession, error) {
	res := d.db.WithContext(ctx).Model(&LocationSession{}).
		Where("id = ? AND user_id = ?", sessionID, userID).
		Update("is_active", false)
	if res.Error != nil {
		return LocationSession{}, res.Error
	}
	if res.RowsAffected == 0 {
		return LocationSession{}, ErrSessionNotFound
	}

	var session LocationSession
	if err := d.db.WithContext(ctx).Where("id = ?", sessionID).First(&session).Error; err != nil {
		return LocationSession{}, err
	}

	return session, nil
}

// FindOwnedActiveSession fetches the session iff it belongs to userID and is
// still flagged active.
func (d *LocationDAO) FindOwnedActiveSession(ctx context.Context, sessionID, userID uuid.UUID) (LocationSession, error) {
	var session LocationSession
	err := d.db.WithContext(ctx).
		Where("id = ? AND user_id = ? AND is_active = ?", sessionID, userID, true).
		First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return LocationSession{}, ErrSessionNotFound
	}
	if err != nil {
		return LocationSession{}, err
	}

	return session, nil
}

// AppendPoint records a GPS sample and bumps the session's updated_at.
// The session's expiry is deliberately left untouched.
func (d *LocationDAO) AppendPoint(ctx context.Context, point LocationPoint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&point).Error; err != nil {
			return err
		}

		return tx.Model(&LocationSession{}).
			Where("id = ?", point.SessionID).
			Update("updated_at", time.Now()).Error
	})
}

// ExpireSessions deactivates every session past its expiry. Idempotent.
func (d *LocationDAO) ExpireSessions(ctx context.Context, now time.Time) (int64, error) {
	res := d.db.WithContext(ctx).Model(&LocationSession{}).
		Where("is_active = ? AND expires_at <= ?", true, now).
		Update("is_active", false)
	if res.Error != nil {
		return 0, res.Error
	}

	return res.RowsAffected, nil
}

// NearbyMembers runs the haversine proximity search over the latest point of
// each active session belonging to users who share a group with the caller at
// the festival. The caller's own session is excluded and rows come back
// sorted by distance ascending.
func (d *LocationDAO) NearbyMembers(ctx context.Context, callerID, festivalID uuid.UUID, latitude, longitude, radiusMeters float64, groupID *uuid.UUID) ([]NearbyMemberRow, error) {
	var rows []NearbyMemberRow
	err := d.db.WithContext(ctx).Raw(`
		SELECT * FROM (
			SELECT DISTINCT ON (ls.user_id, gm.group_id)
			       ls.user_id,
			       u.name,
			       gm.group_id,
			       lp.latitude,
			       lp.longitude,
			       lp.recorded_at AS last_seen_at,
			       2 * 6371000 * asin(sqrt(
			           pow(sin(radians(lp.latitude - @lat) / 2), 2) +
			           cos(radians(@lat)) * cos(radians(lp.latitude)) *
			           pow(sin(radians(lp.longitude - @lng) / 2), 2)
			       )) AS distance_meters
			FROM location_sessions ls
			JOIN LATERAL (
				SELECT latitude, longitude, recorded_at
				FROM location_points
				WHERE session_id = ls.id
				ORDER BY recorded_at DESC
				LIMIT 1
			) lp ON TRUE
			JOIN users u ON u.id = ls.user_id
			JOIN group_members gm ON gm.user_id = ls.user_id
			JOIN group_members caller ON caller.group_id = gm.group_id AND caller.user_id = @caller
			JOIN groups g ON g.id = gm.group_id AND g.festival_id = @festival
			WHERE ls.festival_id = @festival
			  AND ls.is_active = TRUE
			  AND ls.expires_at > NOW()
			  AND ls.user_id <> @caller
			  AND (@group::uuid IS NULL OR gm.group_id = @group)
		) nearby
		WHERE nearby.distance_meters <= @radius
		ORDER BY nearby.distance_meters ASC`,
		map[string]interface{}{
			"caller":   callerID,
			"festival": festivalID,
			"lat":      latitude,
			"lng":      longitude,
			"radius":   radiusMeters,
			"group":    groupID,
		}).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}
