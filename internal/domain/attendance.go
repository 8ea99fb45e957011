package domain

import (
	"time"

	"github.com/google/uuid"
)

// Attendance is one user's presence at a festival on one calendar date.
// There is at most one per (user, festival, date); it is created lazily on
// the first consumption of that day.
type Attendance struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"userId"`
	FestivalID uuid.UUID `json:"festivalId"`
	Date       string    `json:"date"` // YYYY-MM-DD
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// AttendanceTotals are aggregates over an attendance's consumptions,
// computed by the store, never by the service layer.
type AttendanceTotals struct {
	DrinkCount      int `json:"drinkCount"`
	BeerCount       int `json:"beerCount"`
	TotalSpentCents int `json:"totalSpentCents"`
	TotalTipCents   int `json:"totalTipCents"`
	AvgPriceCents   int `json:"avgPriceCents"`
}

type AttendanceWithTotals struct {
	Attendance
	AttendanceTotals
}
