package response

import (
	"github.com/ignaguri/oktoberfest-attendance-sub000/internal/domain"
)

type LoginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

// Paginated is the list envelope shared by attendance and leaderboard
// endpoints. Total is the unpaginated size.
type Paginated[T any] struct {
	Data   []T   `json:"data"`
	Total  int64 `json:"total"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}

type DeleteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type SessionResponse struct {
	Session domain.LocationSession `json:"session"`
}

type StopSessionResponse struct {
	Success bool                   `json:"success"`
	Session domain.LocationSession `json:"session"`
}

type UpdateLocationResponse struct {
	Success bool `json:"success"`
}

type NearbyResponse struct {
	Members      []domain.NearbyMember `json:"members"`
	UserLocation Coordinates           `json:"userLocation"`
	RadiusMeters float64               `json:"radiusMeters"`
}

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
