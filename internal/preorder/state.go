// Package preorder governs the dish cart attached to a reservation: its
// submission state machine and the quantity rules for cart edits.
package preorder

import "greentasty-reservation-services/internal/booking"

type State string

const (
	StateNone           State = ""
	StateUnsubmitted    State = "UNSUBMITTED"
	StateEditInProgress State = "EDIT_IN_PROGRESS"
	StateSubmitted      State = "SUBMITTED"
)

func ParseState(raw string) (State, bool) {
	switch State(raw) {
	case StateNone, StateUnsubmitted, StateEditInProgress, StateSubmitted:
		return State(raw), true
	}
	return StateNone, false
}

// ValidateTransition enforces the cart state machine. A submitted cart can
// only be reopened for editing or cleared; an open cart can only move
// forward to submission.
func ValidateTransition(from, to State) error {
	allowed := false
	switch from {
	case StateNone:
		allowed = to == StateNone || to == StateUnsubmitted
	case StateUnsubmitted:
		allowed = to == StateUnsubmitted || to == StateSubmitted
	case StateEditInProgress:
		allowed = to == StateEditInProgress || to == StateSubmitted
	case StateSubmitted:
		allowed = to == StateEditInProgress || to == StateNone
	}
	if !allowed {
		return booking.Conflict(booking.ErrPreOrderStateChange,
			"pre-order state cannot change from "+displayState(from)+" to "+displayState(to))
	}
	return nil
}

// GuardedTransition reports whether the modification-lead time guard
// applies to this transition. Only crossing the submission boundary, in
// either direction, is time-guarded.
func GuardedTransition(from, to State) bool {
	if from == StateUnsubmitted && to == StateSubmitted {
		return true
	}
	if from == StateSubmitted && to == StateEditInProgress {
		return true
	}
	return false
}

func displayState(s State) string {
	if s == StateNone {
		return "NONE"
	}
	return string(s)
}
