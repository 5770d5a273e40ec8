package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidRole        = errors.New("invalid role")
	ErrSessionNotFound    = errors.New("session not found")
	ErrRoomNotFound       = errors.New("room not found")
	ErrBookingNotFound    = errors.New("booking not found")
	ErrDuplicateBooking   = errors.New("booking already exists")
	ErrInvalidStatus      = errors.New("invalid booking status")
	ErrComparisonFull     = errors.New("comparison already holds the maximum number of rooms")
	ErrPaymentInProgress  = errors.New("payment already in progress")
	ErrForbidden          = errors.New("access forbidden")
)

// ErrDuplicateIdempotencyKey means another booking was stored with the same key.
var ErrDuplicateIdempotencyKey = errors.New("idempotency key already used")

// MissingFieldError reports the first required field absent from a submission.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return "Campo requerido faltante: " + e.Field
}
