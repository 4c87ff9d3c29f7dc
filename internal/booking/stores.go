package booking

import "context"

// WaiterFilter narrows a waiter's reservation listing.
type WaiterFilter struct {
	Date    string
	Time    string
	TableID string
}

type ReservationStore interface {
	Get(ctx context.Context, id string) (*Reservation, error)
	Create(ctx context.Context, r *Reservation) error
	// Update persists the reservation but only while its stored status
	// still equals expected, so concurrent edits lose cleanly instead of
	// overwriting each other.
	Update(ctx context.Context, r *Reservation, expected Status) error
	// UpdateStatus conditionally moves id from one status to another.
	UpdateStatus(ctx context.Context, id string, from, to Status) error
	ListByCustomer(ctx context.Context, email string) ([]Reservation, error)
	ListByCustomerAndStatus(ctx context.Context, email string, status Status) ([]Reservation, error)
	ListByWaiter(ctx context.Context, email string, filter WaiterFilter) ([]Reservation, error)
	// ListOpen returns every reservation still in RESERVED or IN_PROGRESS.
	ListOpen(ctx context.Context) ([]Reservation, error)
}

type TableStore interface {
	// Reserve flips the slot to unavailable for every listed table, all or
	// nothing. A table/date without the slot yields ErrTimeSlotNotFound, a
	// slot already flipped yields ErrTableAlreadyReserved.
	Reserve(ctx context.Context, locationID, date string, slot Slot, tableIDs []string) error
	// Free flips the slot back to available for every listed table.
	Free(ctx context.Context, locationID, date string, slot Slot, tableIDs []string) error
	ByLocationDate(ctx context.Context, locationID, date string, minGuests int) ([]TableSlotRecord, error)
}

type WaiterStore interface {
	Load(ctx context.Context, email string) (*WaiterLoad, error)
	ByLocation(ctx context.Context, locationID string) ([]WaiterLoad, error)
	AdjustCustomerCount(ctx context.Context, email string, weekdayIndex, delta int) error
	// AdjustVisitorCount shifts the same-day walk-in counter and returns
	// the new value, used as the visitor ordinal for walk-in bookings.
	AdjustVisitorCount(ctx context.Context, email string, delta int) (int, error)
}

type LocationDirectory interface {
	ZoneOf(ctx context.Context, locationID string) (string, error)
	AddressOf(ctx context.Context, locationID string) (string, error)
}
