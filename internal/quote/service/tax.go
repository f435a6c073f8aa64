package service

import (
	"github.com/irvrobbi/promusic/internal/quote/domain"
	ratecard "github.com/irvrobbi/promusic/internal/ratecard/domain"
)

const (
	// nzGSTRate is additive: New Zealand card figures exclude GST.
	nzGSTRate = 0.15

	// processingFeeCentsPerMedium is the administration fee charged once
	// per distinct medium on the estimate.
	processingFeeCentsPerMedium = 1100
)

// computeGST returns the GST to add to the net amount. Australian card
// figures already include GST, so the reported amount is zero there.
func computeGST(territory ratecard.Territory, netCents int64) int64 {
	if territory == ratecard.TerritoryNewZealand {
		return percentOf(netCents, nzGSTRate)
	}
	return 0
}

// IncludedGSTCents extracts the GST component embedded in a GST-inclusive
// Australian amount, for display only.
func IncludedGSTCents(cents int64) int64 {
	return roundCents(float64(cents) / 11)
}

// processingFee charges the per-medium administration fee.
func processingFee(lines []domain.QuoteLine) int64 {
	seen := make(map[ratecard.Medium]struct{}, len(lines))
	for _, ln := range lines {
		seen[ln.Medium] = struct{}{}
	}
	return processingFeeCentsPerMedium * int64(len(seen))
}
