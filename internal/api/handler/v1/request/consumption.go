package request

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// LogConsumptionRequest records one drink. Prices are integer cents; the date
// is the festival-local calendar day. Format and range checks beyond presence
// live in the service layer.
type LogConsumptionRequest struct {
	FestivalID     string     `json:"festivalId"`
	Date           string     `json:"date"`
	TentID         string     `json:"tentId,omitempty"`
	DrinkType      string     `json:"drinkType,omitempty"`
	DrinkName      string     `json:"drinkName,omitempty"`
	BasePriceCents *int       `json:"basePriceCents,omitempty"`
	PricePaidCents int        `json:"pricePaidCents"`
	VolumeML       *int       `json:"volumeMl,omitempty"`
	RecordedAt     *time.Time `json:"recordedAt,omitempty"`
	IdempotencyKey string     `json:"idempotencyKey,omitempty"`
}

func (req *LogConsumptionRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.FestivalID, validation.Required, is.UUID),
		validation.Field(&req.Date, validation.Required),
		validation.Field(&req.TentID, is.UUID),
		validation.Field(&req.PricePaidCents, validation.Required, validation.Min(0)),
		validation.Field(&req.VolumeML, validation.Min(1)),
	)
}
