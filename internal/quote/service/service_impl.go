// Package service implements the deterministic quote engine.
package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/irvrobbi/promusic/internal/quote/domain"
	ratecard "github.com/irvrobbi/promusic/internal/ratecard/domain"
)

const broadcastClearanceNote = "Includes Online Clearance (AFD, AVD, APD)."

type service struct {
	rates ratecard.Repository
	log   *zap.Logger
}

// NewService builds the quote engine over the seeded rate card.
func NewService(rates ratecard.Repository, log *zap.Logger) domain.Service {
	return &service{rates: rates, log: log.Named("quote")}
}

func (s *service) Compute(ctx context.Context, req domain.LicenseRequest) (*domain.Quote, error) {
	if !req.Territory.Valid() {
		return nil, ratecard.ErrInvalidTerritory
	}
	if len(req.Items) == 0 {
		return nil, domain.ErrEmptyRequest
	}

	lines, gross, err := s.priceItems(ctx, req)
	if err != nil {
		return nil, err
	}

	discount, err := bestDiscount(req, lines)
	if err != nil {
		return nil, err
	}

	net := gross - discount.Cents
	gst := computeGST(req.Territory, net)
	fee := processingFee(lines)

	quote := &domain.Quote{
		Territory:          req.Territory,
		DiscountCents:      discount.Cents,
		DiscountLabel:      discount.Label,
		NetAmountCents:     net,
		GSTAmountCents:     gst,
		ProcessingFeeCents: fee,
		TotalAmountCents:   net + gst + fee,
		Currency:           req.Territory.Currency(),
		Lines:              lines,
	}
	s.summarize(quote)
	s.annotate(quote)

	if err := validate(quote); err != nil {
		s.log.Warn("quote failed self-check",
			zap.String("territory", string(quote.Territory)),
			zap.Int64("net_cents", quote.NetAmountCents),
			zap.Int64("rate_cents", quote.RatePerUnitCents),
			zap.Int("quantity", quote.Quantity),
		)
		return nil, err
	}

	s.log.Debug("quote computed",
		zap.String("territory", string(quote.Territory)),
		zap.String("category", quote.Category),
		zap.Int64("total_cents", quote.TotalAmountCents),
		zap.String("discount", quote.DiscountLabel),
	)
	return quote, nil
}

func (s *service) priceItems(ctx context.Context, req domain.LicenseRequest) ([]domain.QuoteLine, int64, error) {
	lines := make([]domain.QuoteLine, 0, len(req.Items))
	var gross int64
	for _, item := range req.Items {
		entry, err := s.rates.Lookup(ctx, req.Territory, item.Medium, item.Tier)
		if err != nil {
			return nil, 0, err
		}

		units, err := unitsFor(item, entry.UnitType)
		if err != nil {
			return nil, 0, err
		}

		count := item.EffectiveCount()
		lineGross := entry.UnitAmountCents * int64(units) * int64(count)
		lines = append(lines, domain.QuoteLine{
			Medium:          item.Medium,
			Tier:            item.Tier,
			SubCategory:     entry.SubCategory,
			UnitType:        entry.UnitType,
			Units:           units,
			Count:           count,
			RatePerUnit:     entry.UnitAmountCents,
			GrossCents:      lineGross,
			DurationSeconds: item.DurationSeconds,
			IsPrimary:       item.IsPrimary,
			IsCutDown:       item.IsCutDown,
			IsTagVariant:    item.IsTagVariant,
		})
		gross += lineGross
	}
	return lines, gross, nil
}

// summarize collapses the priced lines into the headline quantity, rate and
// category of the estimate. Heterogeneous line sets get an effective
// per-unit rate derived from the gross.
func (s *service) summarize(q *domain.Quote) {
	quantity := 0
	category := ""
	subCategory := ""
	unitType := ratecard.UnitType("")
	sharedRate := int64(-1)
	homogeneous := true

	for i, ln := range q.Lines {
		quantity += ln.Units * ln.Count
		if i == 0 {
			subCategory = ln.SubCategory
			unitType = ln.UnitType
			sharedRate = ln.RatePerUnit
			category = categoryFor(ln.Medium)
			continue
		}
		if ln.SubCategory != subCategory || ln.UnitType != unitType || ln.RatePerUnit != sharedRate {
			homogeneous = false
		}
		if categoryFor(ln.Medium) != category {
			category = "Mixed Media"
		}
	}

	q.Quantity = quantity
	q.Category = category
	q.UnitType = unitType
	if homogeneous {
		q.SubCategory = subCategory
		q.RatePerUnitCents = sharedRate
	} else {
		q.SubCategory = "Multiple Media"
		if quantity > 0 {
			q.RatePerUnitCents = roundCents(float64(q.GrossCents()) / float64(quantity))
		}
	}

	// A positive net with a zero headline rate would render a nonsense
	// estimate; rebuild the rate from the gross.
	if q.RatePerUnitCents == 0 && q.NetAmountCents > 0 && q.Quantity > 0 {
		q.RatePerUnitCents = roundCents(float64(q.GrossCents()) / float64(q.Quantity))
	}
}

func (s *service) annotate(q *domain.Quote) {
	for _, ln := range q.Lines {
		if ln.Medium.IsBroadcast() {
			q.Notes = append(q.Notes, broadcastClearanceNote)
			break
		}
	}
	if q.DiscountLabel != "" {
		q.Notes = append(q.Notes, q.DiscountLabel+" applied.")
	}
	if q.Territory == ratecard.TerritoryAustralia {
		q.Notes = append(q.Notes, "All amounts are inclusive of GST.")
	} else {
		q.Notes = append(q.Notes, "GST (15%) added to the subtotal.")
	}
}

// validate cross-checks the headline figures against the gross. The headline
// rate is rounded, so the tolerance widens with quantity: one cent of
// rounding per two units, with a one cent floor.
func validate(q *domain.Quote) error {
	if q.NetAmountCents < 0 || q.TotalAmountCents < 0 {
		return domain.ErrInconsistentQuote
	}
	if q.NetAmountCents == 0 && q.RatePerUnitCents == 0 {
		return nil
	}
	if q.Quantity == 0 {
		return domain.ErrInconsistentQuote
	}

	expected := q.RatePerUnitCents * int64(q.Quantity)
	diff := expected - q.GrossCents()
	if diff < 0 {
		diff = -diff
	}
	tolerance := int64(q.Quantity) / 2
	if tolerance < 1 {
		tolerance = 1
	}
	if diff > tolerance {
		return domain.ErrInconsistentQuote
	}
	return nil
}

func categoryFor(m ratecard.Medium) string {
	switch {
	case m.IsBroadcast():
		return "Advertising"
	case m.IsOnlineAdvertising():
		return "Online Advertising"
	case m == ratecard.MediumCorporateInformative, m == ratecard.MediumCorporateInformativeFlat,
		m == ratecard.MediumCorporatePromotional, m == ratecard.MediumCorporatePromotionalFlat:
		return "Corporate / Audio Visual"
	case m == ratecard.MediumFilmFestival, m == ratecard.MediumFilmFestivalFlat,
		m == ratecard.MediumFilmBudget1M, m == ratecard.MediumFilmBudget1MFlat,
		m == ratecard.MediumFilmBudget5M, m == ratecard.MediumFilmBudget5MFlat:
		return "Films"
	default:
		return "TV Programmes"
	}
}
