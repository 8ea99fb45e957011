package domain

import "github.com/google/uuid"

// Wrapped is the year-in-review aggregate for one user at one festival.
type Wrapped struct {
	UserID          uuid.UUID `json:"userId"`
	FestivalID      uuid.UUID `json:"festivalId"`
	DaysAttended    int       `json:"daysAttended"`
	TotalDrinks     int       `json:"totalDrinks"`
	TotalBeers      int       `json:"totalBeers"`
	TotalSpentCents int       `json:"totalSpentCents"`
	TotalVolumeML   int       `json:"totalVolumeMl"`
	AvgDrinksPerDay float64   `json:"avgDrinksPerDay"`
	FavoriteTent    string    `json:"favoriteTent,omitempty"`
	PeakDay         string    `json:"peakDay,omitempty"` // YYYY-MM-DD with the most drinks
}
