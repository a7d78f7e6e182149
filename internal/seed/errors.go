package seed

import "errors"

// Sentinel kinds for seeding errors.
var (
	ErrInvalidConfig    = errors.New("invalid seed config")
	ErrUnreachable      = errors.New("company API unreachable")
	ErrMissingCompanies = errors.New("created companies missing from listing")
	ErrAllCreatesFailed = errors.New("every create request failed")
)
