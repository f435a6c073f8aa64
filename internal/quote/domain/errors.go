package domain

import "errors"

var (
	// ErrEmptyRequest is returned when the request carries no items.
	ErrEmptyRequest = errors.New("quote request has no items")

	// ErrInvalidDuration is returned when a per-30s item has a
	// non-positive duration.
	ErrInvalidDuration = errors.New("broadcast item requires a positive duration")

	// ErrCutDownTooLong is returned when a cut-down is not shorter than
	// the primary advertisement it derives from.
	ErrCutDownTooLong = errors.New("cut-down must be shorter than the primary advertisement")

	// ErrInconsistentQuote is returned when the assembled estimate fails
	// its arithmetic self-check.
	ErrInconsistentQuote = errors.New("quote totals are inconsistent")
)
