// Package events defines the messages published to the reporting pipeline
// and the publisher contract the rest of the service depends on.
package events

import "context"

// Routing keys on the topic exchange.
const (
	RouteReservationCompleted = "reservation.completed"
	RouteFeedbackPosted       = "feedback.posted"
	RouteFeedbackUpdated      = "feedback.updated"
)

// ReservationCompleted is the snapshot emitted when a reservation enters
// PENDING_REVIEW. It carries everything the statistics aggregator needs to
// credit the waiter's day: orders, hours and pre-order revenue.
type ReservationCompleted struct {
	ReservationID string         `json:"reservationId"`
	WaiterEmail   string         `json:"waiterEmail"`
	CustomerEmail string         `json:"customerEmail,omitempty"`
	VisitorID     string         `json:"visitorId,omitempty"`
	LocationID    string         `json:"locationId"`
	Date          string         `json:"date"`
	TimeSlot      string         `json:"timeSlot"`
	TableIDs      []string       `json:"tableIds"`
	GuestsNumber  int            `json:"guestsNumber"`
	PreOrder      map[string]int `json:"preOrder,omitempty"`
}

// FeedbackPosted carries a freshly submitted rating pair.
type FeedbackPosted struct {
	FeedbackID    string  `json:"feedbackId"`
	ReservationID string  `json:"reservationId"`
	WaiterEmail   string  `json:"waiterEmail"`
	LocationID    string  `json:"locationId"`
	Date          string  `json:"date"`
	ServiceRating float64 `json:"serviceRating"`
	CuisineRating float64 `json:"cuisineRating"`
}

// FeedbackUpdated drives the corrective statistics path: the old ratings
// are retracted and the new ones applied in their place.
type FeedbackUpdated struct {
	FeedbackID       string  `json:"feedbackId"`
	ReservationID    string  `json:"reservationId"`
	WaiterEmail      string  `json:"waiterEmail"`
	LocationID       string  `json:"locationId"`
	Date             string  `json:"date"`
	OldServiceRating float64 `json:"oldServiceRating"`
	OldCuisineRating float64 `json:"oldCuisineRating"`
	NewServiceRating float64 `json:"newServiceRating"`
	NewCuisineRating float64 `json:"newCuisineRating"`
}

// Publisher delivers events at-least-once; consumers must tolerate
// duplicates.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}
