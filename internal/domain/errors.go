package domain

import "errors"

// Sentinel errors shared between repositories and services. Handlers map
// these to HTTP statuses at the boundary.
var (
	ErrDuplicateEmail  = errors.New("email already registered")
	ErrUserNotFound    = errors.New("user not found")
	ErrWrongPassword   = errors.New("incorrect password")
	ErrPermission      = errors.New("permission denied")
	ErrTripNotFound    = errors.New("trip not found")
	ErrEmptyField      = errors.New("required field is empty")
	ErrInvalidDate     = errors.New("invalid date")
	ErrDateOrder       = errors.New("end date must be after start date")
	ErrEmptyMessage    = errors.New("message content is required")
	ErrProviderFailure = errors.New("completion provider failure")
)
