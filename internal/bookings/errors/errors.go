package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	ErrInvalidID = errors.New("invalid booking ID format")

	// ErrDuplicate means a booking with the same (email, treatment,
	// appointment date) already exists; the unique index raises it
	// when two racing requests both pass the read-side check.
	ErrDuplicate = errors.New("duplicate booking for email, treatment and date")
)
