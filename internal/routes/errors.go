package routes

import "errors"

// Sentinel kinds for route table errors.
var (
	ErrDuplicatePath = errors.New("route path already registered")
	ErrInvalidPath   = errors.New("invalid route path")
	ErrNoFactory     = errors.New("route has no page factory")
)
