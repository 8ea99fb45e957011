package request

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// LocationUpdate is one GPS sample. Coordinates are pointers so that a
// missing field is distinguishable from a genuine zero (the equator and the
// prime meridian are real places).
type LocationUpdate struct {
	Latitude  *float64   `json:"latitude"`
	Longitude *float64   `json:"longitude"`
	Accuracy  *float64   `json:"accuracy,omitempty"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

func (req *LocationUpdate) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Latitude, validation.NotNil),
		validation.Field(&req.Longitude, validation.NotNil),
	)
}

type StartSessionRequest struct {
	FestivalID      string          `json:"festivalId"`
	DurationMinutes int             `json:"durationMinutes,omitempty"`
	InitialLocation *LocationUpdate `json:"initialLocation,omitempty"`
}

func (req *StartSessionRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.FestivalID, validation.Required, is.UUID),
	)
	if err != nil {
		return err
	}

	if req.InitialLocation != nil {
		return req.InitialLocation.Validate()
	}

	return nil
}

type UpdateLocationRequest struct {
	Location LocationUpdate `json:"location"`
}

func (req *UpdateLocationRequest) Validate() error {
	return req.Location.Validate()
}
