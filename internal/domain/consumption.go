package domain

import (
	"time"

	"github.com/google/uuid"
)

type DrinkType string

const (
	DrinkBeer        DrinkType = "beer"
	DrinkRadler      DrinkType = "radler"
	DrinkAlcoholFree DrinkType = "alcohol_free"
	DrinkWine        DrinkType = "wine"
	DrinkSoftDrink   DrinkType = "soft_drink"
	DrinkOther       DrinkType = "other"
)

// FallbackPriceCents is the system-wide default applied when neither a
// tent-specific nor a festival-wide price is configured.
const FallbackPriceCents = 1620

// DefaultVolumeML is one Maß.
const DefaultVolumeML = 1000

func (d DrinkType) IsValid() bool {
	switch d {
	case DrinkBeer, DrinkRadler, DrinkAlcoholFree, DrinkWine, DrinkSoftDrink, DrinkOther:
		return true
	}

	return false
}

// CountsAsBeer reports whether the drink contributes to beerCount.
func (d DrinkType) CountsAsBeer() bool {
	return d == DrinkBeer || d == DrinkRadler
}

type Consumption struct {
	ID             uuid.UUID  `json:"id"`
	AttendanceID   uuid.UUID  `json:"attendanceId"`
	TentID         *uuid.UUID `json:"tentId,omitempty"`
	DrinkType      DrinkType  `json:"drinkType"`
	DrinkName      string     `json:"drinkName,omitempty"`
	BasePriceCents int        `json:"basePriceCents"`
	PricePaidCents int        `json:"pricePaidCents"`
	TipCents       int        `json:"tipCents"`
	VolumeML       int        `json:"volumeMl"`
	RecordedAt     time.Time  `json:"recordedAt"`
	IdempotencyKey string     `json:"idempotencyKey,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}
