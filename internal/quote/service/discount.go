package service

import (
	"github.com/irvrobbi/promusic/internal/quote/domain"
)

// Discount labels as printed on estimates.
const (
	labelCutDown  = "Cut-Down Discount (15%)"
	labelCampaign = "Multiple Ads Discount"
	labelTag      = "Tag Ending Discount (50%)"
)

type discountCandidate struct {
	Label string
	Cents int64
}

// bestDiscount evaluates the three advertising discount families and returns
// the one yielding the lowest net amount. Exactly one family applies per
// quote; on a tie the earlier family in cut-down, campaign, tag order wins.
func bestDiscount(req domain.LicenseRequest, lines []domain.QuoteLine) (discountCandidate, error) {
	advGross := int64(0)
	for _, ln := range lines {
		if ln.Medium.IsAdvertising() {
			advGross += ln.GrossCents
		}
	}
	if advGross == 0 {
		return discountCandidate{}, nil
	}

	cutDown, err := cutDownDiscount(lines)
	if err != nil {
		return discountCandidate{}, err
	}

	candidates := []discountCandidate{
		cutDown,
		campaignDiscount(req, lines, advGross),
		tagEndingDiscount(lines),
	}

	best := discountCandidate{}
	for _, c := range candidates {
		if c.Cents > best.Cents {
			best = c
		}
	}
	return best, nil
}

// cutDownDiscount applies when a primary advertisement is licensed together
// with one or two shorter cut-down versions: 15% off the combined gross of
// the primary and its cut-downs. A cut-down running as long as the primary
// is rejected outright.
func cutDownDiscount(lines []domain.QuoteLine) (discountCandidate, error) {
	var primary *domain.QuoteLine
	var cutDowns []domain.QuoteLine
	for i := range lines {
		ln := lines[i]
		if !ln.Medium.IsAdvertising() {
			continue
		}
		switch {
		case ln.IsCutDown:
			cutDowns = append(cutDowns, ln)
		case ln.IsPrimary:
			if primary != nil {
				return discountCandidate{}, nil
			}
			primary = &lines[i]
		}
	}

	// Without an explicit flag, a sole full-length advertisement alongside
	// cut-downs is the primary.
	if primary == nil {
		for i := range lines {
			ln := lines[i]
			if !ln.Medium.IsAdvertising() || ln.IsCutDown || ln.IsTagVariant {
				continue
			}
			if primary != nil {
				return discountCandidate{}, nil
			}
			primary = &lines[i]
		}
	}

	if primary == nil || len(cutDowns) == 0 || len(cutDowns) > 2 {
		return discountCandidate{}, nil
	}

	combined := primary.GrossCents
	for _, cd := range cutDowns {
		if cd.DurationSeconds >= primary.DurationSeconds {
			return discountCandidate{}, domain.ErrCutDownTooLong
		}
		combined += cd.GrossCents
	}

	return discountCandidate{Label: labelCutDown, Cents: percentOf(combined, 0.15)}, nil
}

// campaignDiscount applies a volume band over the whole advertising gross:
// 20% for 4-6 advertisements, 25% for 7-9 and 30% for 10 or more. The
// request may declare the campaign size explicitly when the priced items are
// a sample of a larger buy.
func campaignDiscount(req domain.LicenseRequest, lines []domain.QuoteLine, advGross int64) discountCandidate {
	count := req.CampaignAdCount
	if count <= 0 {
		for _, ln := range lines {
			if ln.Medium.IsAdvertising() {
				count += ln.Count
			}
		}
	}

	var pct float64
	switch {
	case count >= 10:
		pct = 0.30
	case count >= 7:
		pct = 0.25
	case count >= 4:
		pct = 0.20
	default:
		return discountCandidate{}
	}

	return discountCandidate{Label: labelCampaign, Cents: percentOf(advGross, pct)}
}

// tagEndingDiscount applies when every advertising line is the same
// advertisement differing only in its tag ending: same medium, tier and
// duration, two or more versions, with the extra versions flagged as tag
// variants. Each version is then charged at half rate.
func tagEndingDiscount(lines []domain.QuoteLine) discountCandidate {
	var adv []domain.QuoteLine
	for _, ln := range lines {
		if ln.Medium.IsAdvertising() {
			adv = append(adv, ln)
		}
	}
	if len(adv) == 0 {
		return discountCandidate{}
	}

	first := adv[0]
	versions := 0
	tagged := false
	gross := int64(0)
	for _, ln := range adv {
		if ln.Medium != first.Medium || ln.Tier != first.Tier || ln.DurationSeconds != first.DurationSeconds {
			return discountCandidate{}
		}
		if ln.IsTagVariant {
			tagged = true
		}
		versions += ln.Count
		gross += ln.GrossCents
	}
	if versions < 2 || !tagged {
		return discountCandidate{}
	}

	perVersion := int64(first.Units) * first.RatePerUnit
	net := percentOf(perVersion, 0.5) * int64(versions)
	if net >= gross {
		return discountCandidate{}
	}
	return discountCandidate{Label: labelTag, Cents: gross - net}
}
