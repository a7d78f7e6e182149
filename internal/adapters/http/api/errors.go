package api

import "errors"

// Sentinel kinds for API errors.
var (
	ErrBadRequest = errors.New("bad request")
	ErrIDExists   = errors.New("a new company cannot already have an id")
	ErrIDNull     = errors.New("company id is required")
	ErrIDInvalid  = errors.New("company id does not match the path")
	ErrBadCreated = errors.New("created must be an RFC 3339 date-time")
)
