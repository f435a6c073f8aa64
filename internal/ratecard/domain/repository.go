package domain

import "context"

// Repository reads the seeded 2025 rate card.
type Repository interface {
	// Lookup returns the entry for the combination or ErrRateNotFound.
	Lookup(ctx context.Context, territory Territory, medium Medium, tier Tier) (*RateEntry, error)

	// List returns all entries for a territory ordered by category and medium.
	List(ctx context.Context, territory Territory) ([]RateEntry, error)

	// Count returns the number of seeded entries.
	Count(ctx context.Context) (int64, error)
}
