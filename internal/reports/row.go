// Package reports maintains the rolling per-waiter, per-day statistics
// rows behind performance reports, and derives location totals from them.
package reports

import (
	"context"
	"errors"
	"math"
)

// ErrRowNotFound is returned by RowStore.Get when no row exists yet for
// the requested (waiter, date).
var ErrRowNotFound = errors.New("statistics row not found")

// HoursPerSlot is the working time credited for each distinct booking slot
// a waiter served on a day.
const HoursPerSlot = 1.5

// Row accumulates one waiter's statistics for one calendar date. The raw
// rating lists are retained because a later feedback correction may remove
// the current minimum, which can only be recovered by rescanning.
type Row struct {
	WaiterEmail     string    `json:"waiterEmail"`
	LocationID      string    `json:"locationId"`
	Date            string    `json:"date"`
	OrdersProcessed int       `json:"ordersProcessed"`
	WorkingHours    float64   `json:"workingHours"`
	Slots           []string  `json:"slots,omitempty"`
	ServiceRatings  []float64 `json:"serviceRatings,omitempty"`
	MinServiceRate  float64   `json:"minServiceRating"`
	CuisineRatings  []float64 `json:"cuisineRatings,omitempty"`
	MinCuisineRate  float64   `json:"minCuisineRating"`
	Revenue         float64   `json:"revenue"`
}

type RowStore interface {
	// Get returns the row for (waiterEmail, date), or a not-found error.
	Get(ctx context.Context, waiterEmail, date string) (*Row, error)
	Put(ctx context.Context, row *Row) error
	ListByWaiter(ctx context.Context, waiterEmail, fromDate, toDate string) ([]Row, error)
	ListByLocation(ctx context.Context, locationID, fromDate, toDate string) ([]Row, error)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func minOf(ratings []float64) float64 {
	if len(ratings) == 0 {
		return 0
	}
	min := ratings[0]
	for _, r := range ratings[1:] {
		if r < min {
			min = r
		}
	}
	return min
}

func avgOf(ratings []float64) float64 {
	if len(ratings) == 0 {
		return 0
	}
	var sum float64
	for _, r := range ratings {
		sum += r
	}
	return sum / float64(len(ratings))
}

// appendRating adds a rating and keeps the running minimum current. Zero
// ratings mean "not given" and are skipped.
func appendRating(ratings []float64, min, rating float64) ([]float64, float64) {
	if rating == 0 {
		return ratings, min
	}
	ratings = append(ratings, rating)
	if len(ratings) == 1 || rating < min {
		min = rating
	}
	return ratings, min
}

// replaceRating swaps one occurrence of old (matched after rounding to one
// decimal) for new. The minimum is rescanned only when the removed value
// held it or the new value undercuts it.
func replaceRating(ratings []float64, min, old, new float64) ([]float64, float64) {
	removed := false
	target := round1(old)
	for i, r := range ratings {
		if round1(r) == target {
			ratings = append(ratings[:i], ratings[i+1:]...)
			removed = true
			break
		}
	}
	if new != 0 {
		ratings = append(ratings, new)
	}
	if (removed && target == round1(min)) || (new != 0 && new < min) {
		min = minOf(ratings)
	}
	if len(ratings) == 0 {
		min = 0
	}
	return ratings, min
}
