// Package domain contains the 2025 production music rate card model.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Territory selects the rate card edition, currency and GST treatment.
type Territory string

const (
	TerritoryAustralia  Territory = "AU"
	TerritoryNewZealand Territory = "NZ"
)

// Valid reports whether the territory is a known rate card edition.
func (t Territory) Valid() bool {
	return t == TerritoryAustralia || t == TerritoryNewZealand
}

// Currency returns the ISO currency code for the territory.
func (t Territory) Currency() string {
	if t == TerritoryNewZealand {
		return "NZD"
	}
	return "AUD"
}

// DisplayName returns the long-form territory name used on estimates.
func (t Territory) DisplayName() string {
	if t == TerritoryNewZealand {
		return "New Zealand"
	}
	return "Australia"
}

// Medium identifies a licensing medium / tariff on the card.
type Medium string

const (
	MediumTVFreeToAir    Medium = "TV_FREE_TO_AIR"
	MediumTVPayTV        Medium = "TV_PAY_TV"
	MediumTVAll          Medium = "TV_ALL"
	MediumRadioFreeToAir Medium = "RADIO_FREE_TO_AIR"
	MediumRadioDigital   Medium = "RADIO_DIGITAL_ONLY"
	MediumCinema         Medium = "CINEMA"

	MediumOnlineTier1 Medium = "ONLINE_TIER_1"
	MediumOnlineTier2 Medium = "ONLINE_TIER_2"
	MediumOnlineTier3 Medium = "ONLINE_TIER_3"

	MediumCorporateInformative     Medium = "CORPORATE_INFORMATIVE"
	MediumCorporateInformativeFlat Medium = "CORPORATE_INFORMATIVE_FLAT"
	MediumCorporatePromotional     Medium = "CORPORATE_PROMOTIONAL"
	MediumCorporatePromotionalFlat Medium = "CORPORATE_PROMOTIONAL_FLAT"

	MediumFilmFestival     Medium = "FILM_FESTIVAL"
	MediumFilmFestivalFlat Medium = "FILM_FESTIVAL_FLAT"
	MediumFilmBudget1M     Medium = "FILM_BUDGET_1M"
	MediumFilmBudget1MFlat Medium = "FILM_BUDGET_1M_FLAT"
	MediumFilmBudget5M     Medium = "FILM_BUDGET_5M"
	MediumFilmBudget5MFlat Medium = "FILM_BUDGET_5M_FLAT"

	MediumTVProgramme      Medium = "TV_PROGRAMME"
	MediumTVProgrammeFlat  Medium = "TV_PROGRAMME_FLAT"
	MediumOnlineSeries     Medium = "ONLINE_SERIES"
	MediumOnlineSeriesFlat Medium = "ONLINE_SERIES_FLAT"
)

// Valid reports whether the medium exists on the 2025 card.
func (m Medium) Valid() bool {
	switch m {
	case MediumTVFreeToAir, MediumTVPayTV, MediumTVAll,
		MediumRadioFreeToAir, MediumRadioDigital, MediumCinema,
		MediumOnlineTier1, MediumOnlineTier2, MediumOnlineTier3,
		MediumCorporateInformative, MediumCorporateInformativeFlat,
		MediumCorporatePromotional, MediumCorporatePromotionalFlat,
		MediumFilmFestival, MediumFilmFestivalFlat,
		MediumFilmBudget1M, MediumFilmBudget1MFlat,
		MediumFilmBudget5M, MediumFilmBudget5MFlat,
		MediumTVProgramme, MediumTVProgrammeFlat,
		MediumOnlineSeries, MediumOnlineSeriesFlat:
		return true
	default:
		return false
	}
}

// IsBroadcast reports whether the medium is billed per 30-second unit of
// advertisement duration.
func (m Medium) IsBroadcast() bool {
	switch m {
	case MediumTVFreeToAir, MediumTVPayTV, MediumTVAll,
		MediumRadioFreeToAir, MediumRadioDigital, MediumCinema:
		return true
	default:
		return false
	}
}

// IsOnlineAdvertising reports whether the medium is a stand-alone online
// advertising tier.
func (m Medium) IsOnlineAdvertising() bool {
	switch m {
	case MediumOnlineTier1, MediumOnlineTier2, MediumOnlineTier3:
		return true
	default:
		return false
	}
}

// IsAdvertising reports whether the advertising discount families apply.
func (m Medium) IsAdvertising() bool {
	return m.IsBroadcast() || m.IsOnlineAdvertising()
}

// Tier is the broadcast-area tier. Granularity is territory dependent:
// Australia uses Regional/Metro/National, New Zealand splits Metro into
// low and high bands. TV programme rates use ANZ/World distribution tiers.
type Tier string

const (
	TierNone      Tier = ""
	TierRegional  Tier = "REGIONAL"
	TierMetro     Tier = "METRO"
	TierMetroLow  Tier = "METRO_LOW"
	TierMetroHigh Tier = "METRO_HIGH"
	TierNational  Tier = "NATIONAL"
	TierANZ       Tier = "ANZ"
	TierWorld     Tier = "WORLD"
)

// Valid reports whether the tier is a known broadcast-area or
// distribution tier. The empty tier is valid for untiered media.
func (t Tier) Valid() bool {
	switch t {
	case TierNone, TierRegional, TierMetro, TierMetroLow,
		TierMetroHigh, TierNational, TierANZ, TierWorld:
		return true
	default:
		return false
	}
}

// UnitType is the billing basis of a rate card entry.
type UnitType string

const (
	UnitPer30s     UnitType = "PER_30S"
	UnitPerTrack   UnitType = "PER_TRACK"
	UnitFlatFee    UnitType = "FLAT_FEE"
	UnitPerEpisode UnitType = "PER_EPISODE"
	UnitPerUnit    UnitType = "PER_UNIT"
)

// Label returns the display form used on estimates.
func (u UnitType) Label() string {
	switch u {
	case UnitPer30s:
		return "Per 30s"
	case UnitPerTrack:
		return "Per Track"
	case UnitFlatFee:
		return "Flat Fee"
	case UnitPerEpisode:
		return "Per Episode"
	case UnitPerUnit:
		return "Per Unit"
	default:
		return string(u)
	}
}

// RateEntry is one immutable line of the 2025 rate card. Amounts are minor
// currency units (cents) in the territory's local currency.
type RateEntry struct {
	ID              snowflake.ID   `json:"id" gorm:"primaryKey"`
	Territory       Territory      `json:"territory" gorm:"type:text;not null;uniqueIndex:ux_rate_lookup,priority:1"`
	Medium          Medium         `json:"medium" gorm:"type:text;not null;uniqueIndex:ux_rate_lookup,priority:2"`
	Tier            Tier           `json:"tier" gorm:"type:text;not null;default:'';uniqueIndex:ux_rate_lookup,priority:3"`
	Category        string         `json:"category" gorm:"type:text;not null"`
	SubCategory     string         `json:"sub_category" gorm:"type:text;not null"`
	UnitType        UnitType       `json:"unit_type" gorm:"type:text;not null"`
	UnitAmountCents int64          `json:"unit_amount_cents" gorm:"not null"`
	Currency        string         `json:"currency" gorm:"type:text;not null"`
	Metadata        datatypes.JSON `json:"metadata,omitempty" gorm:"type:json"`
	CreatedAt       time.Time      `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (RateEntry) TableName() string { return "rate_entries" }
