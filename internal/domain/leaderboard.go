package domain

import "github.com/google/uuid"

// WinningCriteria mirrors the integer codes of the store's winning_criteria
// lookup table. The codes are treated as stable.
type WinningCriteria int

const (
	CriteriaDaysAttended WinningCriteria = 1
	CriteriaTotalBeers   WinningCriteria = 2
	CriteriaAvgBeers     WinningCriteria = 3
)

var criteriaBySortKey = map[string]WinningCriteria{
	"days_attended": CriteriaDaysAttended,
	"total_beers":   CriteriaTotalBeers,
	"avg_beers":     CriteriaAvgBeers,
}

var sortKeyByCriteria = map[WinningCriteria]string{
	CriteriaDaysAttended: "days_attended",
	CriteriaTotalBeers:   "total_beers",
	CriteriaAvgBeers:     "avg_beers",
}

// CriteriaFromSortKey maps an API sortBy value to its criteria code.
// Unrecognized values default to total beers.
func CriteriaFromSortKey(sortBy string) WinningCriteria {
	if c, ok := criteriaBySortKey[sortBy]; ok {
		return c
	}

	return CriteriaTotalBeers
}

func (c WinningCriteria) SortKey() string {
	if k, ok := sortKeyByCriteria[c]; ok {
		return k
	}

	return sortKeyByCriteria[CriteriaTotalBeers]
}

type LeaderboardEntry struct {
	UserID       uuid.UUID `json:"userId"`
	Name         string    `json:"name"`
	DaysAttended int       `json:"daysAttended"`
	TotalBeers   int       `json:"totalBeers"`
	AvgBeers     float64   `json:"avgBeers"`
	Position     int       `json:"position"`
}
