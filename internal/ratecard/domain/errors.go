package domain

import "errors"

var (
	// ErrRateNotFound means the (territory, medium, tier) combination is not
	// on the 2025 card. Callers must not substitute a default price.
	ErrRateNotFound = errors.New("rate_not_found")

	ErrInvalidTerritory = errors.New("invalid_territory")
	ErrInvalidMedium    = errors.New("invalid_medium")
	ErrInvalidTier      = errors.New("invalid_tier")
)
