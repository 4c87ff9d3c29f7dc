package booking

type Status string

const (
	StatusNone          Status = "NONE"
	StatusReserved      Status = "RESERVED"
	StatusInProgress    Status = "IN_PROGRESS"
	StatusPendingReview Status = "PENDING_REVIEW"
	StatusFinished      Status = "FINISHED"
	StatusCancelled     Status = "CANCELLED"
)

func ParseStatus(raw string) (Status, bool) {
	switch Status(raw) {
	case StatusNone, StatusReserved, StatusInProgress, StatusPendingReview, StatusFinished, StatusCancelled:
		return Status(raw), true
	}
	return "", false
}

// Terminal statuses accept no further transitions or edits.
func (s Status) Terminal() bool {
	return s == StatusCancelled || s == StatusFinished
}

// CanCancel reports whether explicit cancellation is permitted from s.
func (s Status) CanCancel() bool {
	return s == StatusReserved || s == StatusInProgress
}
