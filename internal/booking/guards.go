package booking

import "time"

// ModificationLead is how long before slot start edits, cancellations and
// pre-order submissions remain allowed.
const ModificationLead = 30 * time.Minute

// ValidateBookingTime rejects slots whose start is strictly before now in
// the location's zone.
func ValidateBookingTime(date string, slot Slot, now time.Time) error {
	start, err := slot.Start(date, now.Location())
	if err != nil {
		return Validation("invalid date or time slot")
	}
	if start.Before(now) {
		return InvalidTiming(ErrBookingInPast, "Booking a time in the past is not possible, pick a future slot")
	}
	return nil
}

// ValidateModificationTime rejects changes made inside the modification
// lead window of the reservation's own slot start.
func ValidateModificationTime(date string, slot Slot, now time.Time) error {
	start, err := slot.Start(date, now.Location())
	if err != nil {
		return Validation("invalid date or time slot")
	}
	if start.Sub(now) < ModificationLead {
		return InvalidTiming(ErrModificationWindowClosed,
			"Cancellation or modification is only allowed up to 30 minutes before the reservation start time")
	}
	return nil
}
