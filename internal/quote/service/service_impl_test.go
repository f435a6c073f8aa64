package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/irvrobbi/promusic/internal/quote/domain"
	ratecard "github.com/irvrobbi/promusic/internal/ratecard/domain"
	"github.com/irvrobbi/promusic/internal/ratecard/seed"
)

type rateKey struct {
	territory ratecard.Territory
	medium    ratecard.Medium
	tier      ratecard.Tier
}

// cardRepo serves the embedded 2025 card from memory.
type cardRepo struct {
	entries map[rateKey]ratecard.RateEntry
}

func newCardRepo() *cardRepo {
	repo := &cardRepo{entries: make(map[rateKey]ratecard.RateEntry)}
	for _, e := range seed.Card2025() {
		repo.entries[rateKey{e.Territory, e.Medium, e.Tier}] = e
	}
	return repo
}

func (r *cardRepo) Lookup(_ context.Context, territory ratecard.Territory, medium ratecard.Medium, tier ratecard.Tier) (*ratecard.RateEntry, error) {
	if !territory.Valid() {
		return nil, ratecard.ErrInvalidTerritory
	}
	entry, ok := r.entries[rateKey{territory, medium, tier}]
	if !ok {
		return nil, ratecard.ErrRateNotFound
	}
	return &entry, nil
}

func (r *cardRepo) List(_ context.Context, territory ratecard.Territory) ([]ratecard.RateEntry, error) {
	var out []ratecard.RateEntry
	for _, e := range r.entries {
		if e.Territory == territory {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *cardRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.entries)), nil
}

func newTestService(t *testing.T) domain.Service {
	t.Helper()
	return NewService(newCardRepo(), zap.NewNop())
}

func TestComputeSingleNationalTVSpot(t *testing.T) {
	svc := newTestService(t)

	quote, err := svc.Compute(context.Background(), domain.LicenseRequest{
		Territory: ratecard.TerritoryAustralia,
		Items: []domain.LineItem{
			{Medium: ratecard.MediumTVFreeToAir, Tier: ratecard.TierNational, DurationSeconds: 30, Count: 1},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(75020), quote.NetAmountCents)
	assert.Equal(t, int64(0), quote.DiscountCents)
	assert.Equal(t, int64(0), quote.GSTAmountCents)
	assert.Equal(t, int64(1100), quote.ProcessingFeeCents)
	assert.Equal(t, int64(76120), quote.TotalAmountCents)
	assert.Equal(t, "AUD", quote.Currency)
	assert.Equal(t, 1, quote.Quantity)
	assert.Equal(t, int64(75020), quote.RatePerUnitCents)
	assert.Equal(t, "Advertising", quote.Category)
	assert.Contains(t, quote.Notes, "Includes Online Clearance (AFD, AVD, APD).")
}

func TestComputeCutDownDiscountTV(t *testing.T) {
	svc := newTestService(t)

	quote, err := svc.Compute(context.Background(), domain.LicenseRequest{
		Territory: ratecard.TerritoryAustralia,
		Items: []domain.LineItem{
			{Medium: ratecard.MediumTVFreeToAir, Tier: ratecard.TierNational, DurationSeconds: 30, IsPrimary: true},
			{Medium: ratecard.MediumTVFreeToAir, Tier: ratecard.TierNational, DurationSeconds: 15, IsCutDown: true},
		},
	})
	require.NoError(t, err)

	// 75020 * 2 = 150040 gross, 15% = 22506 off.
	assert.Equal(t, int64(22506), quote.DiscountCents)
	assert.Equal(t, labelCutDown, quote.DiscountLabel)
	assert.Equal(t, int64(127534), quote.NetAmountCents)
	assert.Equal(t, int64(128634), quote.TotalAmountCents)
	assert.Equal(t, 2, quote.Quantity)
}

func TestComputeCutDownDiscountRadio(t *testing.T) {
	svc := newTestService(t)

	quote, err := svc.Compute(context.Background(), domain.LicenseRequest{
		Territory: ratecard.TerritoryAustralia,
		Items: []domain.LineItem{
			{Medium: ratecard.MediumRadioFreeToAir, Tier: ratecard.TierNational, DurationSeconds: 30},
			{Medium: ratecard.MediumRadioFreeToAir, Tier: ratecard.TierNational, DurationSeconds: 15, IsCutDown: true},
		},
	})
	require.NoError(t, err)

	// Primary inferred from the sole full-length spot. 70400 gross, 15% off.
	assert.Equal(t, int64(10560), quote.DiscountCents)
	assert.Equal(t, int64(59840), quote.NetAmountCents)
}

func TestComputeCutDownTooLong(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Compute(context.Background(), domain.LicenseRequest{
		Territory: ratecard.TerritoryAustralia,
		Items: []domain.LineItem{
			{Medium: ratecard.MediumTVFreeToAir, Tier: ratecard.TierNational, DurationSeconds: 30, IsPrimary: true},
			{Medium: ratecard.MediumTVFreeToAir, Tier: ratecard.TierNational, DurationSeconds: 45, IsCutDown: true},
		},
	})
	assert.ErrorIs(t, err, domain.ErrCutDownTooLong)
}

func TestComputeCampaignDiscountBands(t *testing.T) {
	svc := newTestService(t)

	cases := []struct {
		count    int
		discount int64
	}{
		{3, 0},
		{4, 28160},   // 20% of 140800
		{7, 61600},   // 25% of 246400
		{10, 105600}, // 30% of 352000
	}
	for _, tc := range cases {
		quote, err := svc.Compute(context.Background(), domain.LicenseRequest{
			Territory: ratecard.TerritoryAustralia,
			Items: []domain.LineItem{
				{Medium: ratecard.MediumRadioFreeToAir, Tier: ratecard.TierNational, DurationSeconds: 30, Count: tc.count},
			},
		})
		require.NoError(t, err, "count %d", tc.count)
		assert.Equal(t, tc.discount, quote.DiscountCents, "count %d", tc.count)
		if tc.discount > 0 {
			assert.Equal(t, labelCampaign, quote.DiscountLabel)
		}
	}
}

func TestComputeCampaignCountOverride(t *testing.T) {
	svc := newTestService(t)

	quote, err := svc.Compute(context.Background(), domain.LicenseRequest{
		Territory:       ratecard.TerritoryAustralia,
		CampaignAdCount: 8,
		Items: []domain.LineItem{
			{Medium: ratecard.MediumRadioFreeToAir, Tier: ratecard.TierNational, DurationSeconds: 30, Count: 2},
		},
	})
	require.NoError(t, err)

	// 25% band from the declared campaign size, applied to the priced gross.
	assert.Equal(t, int64(17600), quote.DiscountCents)
	assert.Equal(t, labelCampaign, quote.DiscountLabel)
}

func TestComputeTagEndingDiscount(t *testing.T) {
	svc := newTestService(t)

	quote, err := svc.Compute(context.Background(), domain.LicenseRequest{
		Territory: ratecard.TerritoryAustralia,
		Items: []domain.LineItem{
			{Medium: ratecard.MediumRadioFreeToAir, Tier: ratecard.TierNational, DurationSeconds: 30, IsPrimary: true},
			{Medium: ratecard.MediumRadioFreeToAir, Tier: ratecard.TierNational, DurationSeconds: 30, IsTagVariant: true},
		},
	})
	require.NoError(t, err)

	// Two versions at half rate: 17600 each against a 70400 gross.
	assert.Equal(t, labelTag, quote.DiscountLabel)
	assert.Equal(t, int64(35200), quote.DiscountCents)
	assert.Equal(t, int64(35200), quote.NetAmountCents)
}

func TestComputeBestDiscountWins(t *testing.T) {
	svc := newTestService(t)

	// Five spots: the 20% campaign band over the full 176000 gross beats
	// the 15% cut-down family on the same lines.
	quote, err := svc.Compute(context.Background(), domain.LicenseRequest{
		Territory: ratecard.TerritoryAustralia,
		Items: []domain.LineItem{
			{Medium: ratecard.MediumRadioFreeToAir, Tier: ratecard.TierNational, DurationSeconds: 30, Count: 4, IsPrimary: true},
			{Medium: ratecard.MediumRadioFreeToAir, Tier: ratecard.TierNational, DurationSeconds: 15, IsCutDown: true},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, labelCampaign, quote.DiscountLabel)
	assert.Equal(t, int64(35200*5), quote.GrossCents())
	assert.Equal(t, percentOf(35200*5, 0.20), quote.DiscountCents)
}

func TestComputeNZAddsGST(t *testing.T) {
	svc := newTestService(t)

	quote, err := svc.Compute(context.Background(), domain.LicenseRequest{
		Territory: ratecard.TerritoryNewZealand,
		Items: []domain.LineItem{
			{Medium: ratecard.MediumTVFreeToAir, Tier: ratecard.TierNational, DurationSeconds: 30},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(41600), quote.NetAmountCents)
	assert.Equal(t, int64(6240), quote.GSTAmountCents)
	assert.Equal(t, int64(1100), quote.ProcessingFeeCents)
	assert.Equal(t, int64(48940), quote.TotalAmountCents)
	assert.Equal(t, "NZD", quote.Currency)
}

func TestComputeProcessingFeePerDistinctMedium(t *testing.T) {
	svc := newTestService(t)

	quote, err := svc.Compute(context.Background(), domain.LicenseRequest{
		Territory: ratecard.TerritoryAustralia,
		Items: []domain.LineItem{
			{Medium: ratecard.MediumTVFreeToAir, Tier: ratecard.TierNational, DurationSeconds: 30},
			{Medium: ratecard.MediumRadioFreeToAir, Tier: ratecard.TierNational, DurationSeconds: 30},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(2200), quote.ProcessingFeeCents)
	assert.Equal(t, "Advertising", quote.Category)
	assert.Equal(t, "Multiple Media", quote.SubCategory)
}

func TestComputeFlatFeeIgnoresDuration(t *testing.T) {
	svc := newTestService(t)

	quote, err := svc.Compute(context.Background(), domain.LicenseRequest{
		Territory: ratecard.TerritoryAustralia,
		Items: []domain.LineItem{
			{Medium: ratecard.MediumCorporateInformativeFlat},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(50710), quote.NetAmountCents)
	assert.Equal(t, int64(0), quote.DiscountCents)
	assert.Equal(t, "Corporate / Audio Visual", quote.Category)
	assert.Equal(t, ratecard.UnitFlatFee, quote.UnitType)
}

func TestComputeOnlineTier(t *testing.T) {
	svc := newTestService(t)

	quote, err := svc.Compute(context.Background(), domain.LicenseRequest{
		Territory: ratecard.TerritoryNewZealand,
		Items: []domain.LineItem{
			{Medium: ratecard.MediumOnlineTier3, DurationSeconds: 60},
		},
	})
	require.NoError(t, err)

	// Per-30s tier: two units at 21500.
	assert.Equal(t, int64(43000), quote.NetAmountCents)
	assert.Equal(t, 2, quote.Quantity)
	assert.Equal(t, "Online Advertising", quote.Category)
	assert.NotContains(t, quote.Notes, "Includes Online Clearance (AFD, AVD, APD).")
}

func TestComputeValidationErrors(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Compute(ctx, domain.LicenseRequest{Territory: "UK", Items: []domain.LineItem{{Medium: ratecard.MediumCinema}}})
	assert.ErrorIs(t, err, ratecard.ErrInvalidTerritory)

	_, err = svc.Compute(ctx, domain.LicenseRequest{Territory: ratecard.TerritoryAustralia})
	assert.ErrorIs(t, err, domain.ErrEmptyRequest)

	_, err = svc.Compute(ctx, domain.LicenseRequest{
		Territory: ratecard.TerritoryAustralia,
		Items:     []domain.LineItem{{Medium: ratecard.MediumTVFreeToAir, Tier: ratecard.TierMetroLow, DurationSeconds: 30}},
	})
	assert.ErrorIs(t, err, ratecard.ErrRateNotFound)

	_, err = svc.Compute(ctx, domain.LicenseRequest{
		Territory: ratecard.TerritoryAustralia,
		Items:     []domain.LineItem{{Medium: ratecard.MediumCinema, Tier: ratecard.TierMetro}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidDuration)
}

func TestValidateTolerance(t *testing.T) {
	q := &domain.Quote{
		Quantity:         3,
		RatePerUnitCents: 100,
		NetAmountCents:   299,
	}
	assert.NoError(t, validate(q))

	q.NetAmountCents = 290
	assert.ErrorIs(t, validate(q), domain.ErrInconsistentQuote)

	zero := &domain.Quote{}
	assert.NoError(t, validate(zero))
}
