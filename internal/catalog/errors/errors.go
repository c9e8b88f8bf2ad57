package errors

import "errors"

var (
	ErrRead = errors.New("catalog file could not be read")

	ErrWrite = errors.New("catalog file could not be written")
)
