package booking

import (
	"errors"
	"net/http"
)

type ErrorCode string

const (
	ErrReservationNotFound        ErrorCode = "RESERVATION_NOT_FOUND"
	ErrLocationNotFound           ErrorCode = "LOCATION_NOT_FOUND"
	ErrWaiterNotFound             ErrorCode = "WAITER_NOT_FOUND"
	ErrNoWaiterAvailable          ErrorCode = "NO_WAITER_AVAILABLE"
	ErrDishNotFound               ErrorCode = "DISH_NOT_FOUND"
	ErrTimeSlotNotFound           ErrorCode = "TIME_SLOT_NOT_FOUND"
	ErrTableAlreadyReserved       ErrorCode = "TABLE_ALREADY_RESERVED"
	ErrTableNotAvailable          ErrorCode = "TABLE_NOT_AVAILABLE"
	ErrAlreadyCancelledOrFinished ErrorCode = "RESERVATION_ALREADY_CANCELLED"
	ErrBookingInPast              ErrorCode = "BOOKING_IN_PAST"
	ErrModificationWindowClosed   ErrorCode = "MODIFICATION_WINDOW_CLOSED"
	ErrValidation                 ErrorCode = "VALIDATION_ERROR"
	ErrNotAuthorized              ErrorCode = "NOT_AUTHORIZED"
	ErrClientTypeUnknown          ErrorCode = "CLIENT_TYPE_UNKNOWN"
	ErrFeedbackAlreadyExists      ErrorCode = "FEEDBACK_ALREADY_EXISTS"
	ErrFeedbackNotFound           ErrorCode = "FEEDBACK_NOT_FOUND"
	ErrPreOrderStateChange        ErrorCode = "PRE_ORDER_STATE_CHANGE"
	ErrPreOrderQuantityLimit      ErrorCode = "PRE_ORDER_QUANTITY_LIMIT"
	ErrDishOnStop                 ErrorCode = "DISH_ON_STOP"
	ErrConflict                   ErrorCode = "CONFLICT"
)

type Error struct {
	Code       ErrorCode
	Message    string
	StatusCode int
}

func (e *Error) Error() string {
	return e.Message
}

func newError(code ErrorCode, message string, status int) *Error {
	return &Error{Code: code, Message: message, StatusCode: status}
}

func NotFound(code ErrorCode, message string) *Error {
	return newError(code, message, http.StatusNotFound)
}

func Conflict(code ErrorCode, message string) *Error {
	return newError(code, message, http.StatusConflict)
}

func InvalidTiming(code ErrorCode, message string) *Error {
	return newError(code, message, http.StatusBadRequest)
}

func Validation(message string) *Error {
	return newError(ErrValidation, message, http.StatusBadRequest)
}

func Unauthorized(message string) *Error {
	return newError(ErrNotAuthorized, message, http.StatusForbidden)
}

// IsCode reports whether err is a domain error carrying the given code.
func IsCode(err error, code ErrorCode) bool {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}
