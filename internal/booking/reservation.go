package booking

import "time"

// Reservation is the booking aggregate. Exactly one of CustomerEmail and
// VisitorID is set; WaiterEmail is always set once the booking is accepted.
// Reservations are never deleted, cancellation and completion are terminal
// statuses.
type Reservation struct {
	ID            string         `json:"id"`
	TableIDs      []string       `json:"tableIds"`
	LocationID    string         `json:"locationId"`
	Status        Status         `json:"status"`
	Date          string         `json:"date"`
	TimeSlot      Slot           `json:"timeSlot"`
	GuestsNumber  int            `json:"guestsNumber"`
	PreOrder      map[string]int `json:"preOrder"`
	PreOrderState string         `json:"preOrderState"`
	FeedbackID    string         `json:"feedbackId"`
	CustomerEmail string         `json:"customerEmail,omitempty"`
	VisitorID     string         `json:"visitorId,omitempty"`
	WaiterEmail   string         `json:"waiterEmail"`
}

// WalkIn reports whether the reservation was taken for an anonymous
// walk-in visitor rather than a registered customer.
func (r *Reservation) WalkIn() bool {
	return r.CustomerEmail == ""
}

// WeekdayIndex is the ISO day-of-week minus one (Monday = 0) for the
// reservation's calendar date. Waiter load counters are keyed by it.
func (r *Reservation) WeekdayIndex() (int, error) {
	day, err := time.Parse(DateLayout, r.Date)
	if err != nil {
		return 0, err
	}
	return WeekdayIndex(day), nil
}

func WeekdayIndex(day time.Time) int {
	// time.Weekday counts Sunday = 0; shift to ISO Monday = 0.
	return (int(day.Weekday()) + 6) % 7
}
