package domain

import (
	"time"

	"github.com/google/uuid"
)

// LocationSession is a time-boxed live-sharing window for one user at one
// festival. Sessions are never reactivated; a new one is created instead.
type LocationSession struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"userId"`
	FestivalID uuid.UUID `json:"festivalId"`
	IsActive   bool      `json:"isActive"`
	StartedAt  time.Time `json:"startedAt"`
	ExpiresAt  time.Time `json:"expiresAt"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// LocationPoint is one GPS sample in a session's append-only series.
// The session's current location is its most recent point.
type LocationPoint struct {
	SessionID  uuid.UUID `json:"sessionId"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	Accuracy   *float64  `json:"accuracy,omitempty"`
	RecordedAt time.Time `json:"recordedAt"`
}

// NearbyMember is a group mate with an active session within the search
// radius, as returned by the proximity query (already distance-sorted).
type NearbyMember struct {
	UserID         uuid.UUID `json:"userId"`
	Name           string    `json:"name"`
	GroupID        uuid.UUID `json:"groupId"`
	Latitude       float64   `json:"latitude"`
	Longitude      float64   `json:"longitude"`
	DistanceMeters float64   `json:"distanceMeters"`
	LastSeenAt     time.Time `json:"lastSeenAt"`
}
