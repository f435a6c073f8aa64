// Package domain defines the quote request and estimate models.
package domain

import (
	ratecard "github.com/irvrobbi/promusic/internal/ratecard/domain"
)

// LineItem is one requested licence use. Broadcast advertising items carry a
// duration and are billed per 30-second unit; flat and per-track items ignore
// duration.
type LineItem struct {
	Medium          ratecard.Medium `json:"medium" binding:"required"`
	Tier            ratecard.Tier   `json:"tier"`
	DurationSeconds int             `json:"duration_seconds"`
	Count           int             `json:"count"`
	IsPrimary       bool            `json:"is_primary"`
	IsCutDown       bool            `json:"is_cut_down"`
	IsTagVariant    bool            `json:"is_tag_variant"`
}

// EffectiveCount returns the item count, defaulting to one.
func (li LineItem) EffectiveCount() int {
	if li.Count <= 0 {
		return 1
	}
	return li.Count
}

// LicenseRequest is the input to the quote engine.
type LicenseRequest struct {
	Territory ratecard.Territory `json:"territory" binding:"required"`
	Items     []LineItem         `json:"items" binding:"required"`

	// CampaignAdCount overrides the advertisement count used for the
	// campaign discount band when the items are a sample of a larger buy.
	CampaignAdCount int `json:"campaign_ad_count,omitempty"`
}

// QuoteLine is one priced item of the estimate, pre-discount.
type QuoteLine struct {
	Medium          ratecard.Medium   `json:"medium"`
	Tier            ratecard.Tier     `json:"tier"`
	SubCategory     string            `json:"sub_category"`
	UnitType        ratecard.UnitType `json:"unit_type"`
	Units           int               `json:"units"`
	Count           int               `json:"count"`
	RatePerUnit     int64             `json:"rate_per_unit_cents"`
	GrossCents      int64             `json:"gross_cents"`
	DurationSeconds int               `json:"duration_seconds,omitempty"`
	IsPrimary       bool              `json:"is_primary,omitempty"`
	IsCutDown       bool              `json:"is_cut_down,omitempty"`
	IsTagVariant    bool              `json:"is_tag_variant,omitempty"`
}

// Quote is a complete estimate. All amounts are cents in Currency.
type Quote struct {
	QuoteNumber string             `json:"quote_number,omitempty"`
	Territory   ratecard.Territory `json:"territory"`
	Category    string             `json:"category"`
	SubCategory string             `json:"sub_category"`
	UnitType    ratecard.UnitType  `json:"unit_type"`

	Quantity         int   `json:"quantity"`
	RatePerUnitCents int64 `json:"rate_per_unit_cents"`

	DiscountCents int64  `json:"discount_cents"`
	DiscountLabel string `json:"discount_label,omitempty"`

	NetAmountCents     int64 `json:"net_amount_cents"`
	GSTAmountCents     int64 `json:"gst_amount_cents"`
	ProcessingFeeCents int64 `json:"processing_fee_cents"`
	TotalAmountCents   int64 `json:"total_amount_cents"`

	Currency string      `json:"currency"`
	Notes    []string    `json:"notes,omitempty"`
	Lines    []QuoteLine `json:"lines"`
}

// GrossCents returns the pre-discount total across all lines.
func (q Quote) GrossCents() int64 {
	return q.NetAmountCents + q.DiscountCents
}
