package service

import (
	"github.com/irvrobbi/promusic/internal/quote/domain"
	ratecard "github.com/irvrobbi/promusic/internal/ratecard/domain"
)

// unitsFor resolves the billable unit count for an item against its rate
// entry. Per-30s tariffs bill ceil(duration/30) units with a one unit
// minimum, so a 15 second cut-down still bills a single unit. Every other
// unit type bills one unit per item.
func unitsFor(item domain.LineItem, unitType ratecard.UnitType) (int, error) {
	if unitType != ratecard.UnitPer30s {
		return 1, nil
	}
	if item.DurationSeconds <= 0 {
		return 0, domain.ErrInvalidDuration
	}
	return (item.DurationSeconds + 29) / 30, nil
}
