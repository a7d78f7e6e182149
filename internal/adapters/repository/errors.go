package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNotFound    = errors.New("entity not found")
	ErrIDExists    = errors.New("entity already has an id")
	ErrMissingID   = errors.New("entity id is required")
	ErrInvalidSort = errors.New("invalid sort")
)
