package errors

import "errors"

var (
	ErrNotFound = errors.New("passenger not found")

	ErrDuplicateBookingID = errors.New("booking id already exists")
)
