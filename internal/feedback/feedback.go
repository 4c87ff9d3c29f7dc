// Package feedback handles post-visit reviews: one per reservation, with a
// service and a cuisine rating, feeding the reporting pipeline.
package feedback

import (
	"context"
	"strings"

	"greentasty-reservation-services/internal/booking"
)

type Feedback struct {
	ID             string  `json:"id"`
	ReservationID  string  `json:"reservationId"`
	LocationID     string  `json:"locationId"`
	WaiterEmail    string  `json:"waiterEmail"`
	Author         string  `json:"author"`
	ServiceRating  float64 `json:"serviceRating,omitempty"`
	ServiceComment string  `json:"serviceComment,omitempty"`
	CuisineRating  float64 `json:"cuisineRating,omitempty"`
	CuisineComment string  `json:"cuisineComment,omitempty"`
	Date           string  `json:"date"`
}

type Store interface {
	Get(ctx context.Context, id string) (*Feedback, error)
	ByReservation(ctx context.Context, reservationID string) (*Feedback, error)
	Create(ctx context.Context, f *Feedback) error
	Update(ctx context.Context, f *Feedback) error
}

// validateRatings rejects out-of-range ratings and comments that arrive
// without the rating they belong to. A zero rating means "not given".
func validateRatings(serviceRating, cuisineRating float64, serviceComment, cuisineComment string) error {
	for _, rating := range []float64{serviceRating, cuisineRating} {
		if rating != 0 && (rating < 1 || rating > 5) {
			return booking.Validation("ratings must be between 1 and 5")
		}
	}
	if strings.TrimSpace(serviceComment) != "" && serviceRating == 0 {
		return booking.Validation("a service comment requires a service rating")
	}
	if strings.TrimSpace(cuisineComment) != "" && cuisineRating == 0 {
		return booking.Validation("a cuisine comment requires a cuisine rating")
	}
	if serviceRating == 0 && cuisineRating == 0 {
		return booking.Validation("at least one rating is required")
	}
	return nil
}
