package domain

import (
	"time"

	"github.com/google/uuid"
)

type Festival struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Tent struct {
	ID         uuid.UUID `json:"id"`
	FestivalID uuid.UUID `json:"festivalId"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"createdAt"`
}
