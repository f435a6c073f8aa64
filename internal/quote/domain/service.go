package domain

import "context"

// Service computes deterministic licence estimates from the 2025 rate card.
type Service interface {
	// Compute prices the request, applies the best single discount and
	// territory tax treatment, and returns a validated estimate.
	Compute(ctx context.Context, req LicenseRequest) (*Quote, error)
}
