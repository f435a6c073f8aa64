// Package seed loads the embedded APRA AMCOS 2025 rate card.
package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/irvrobbi/promusic/internal/ratecard/domain"
)

// Ensure2025Card migrates the rate table and inserts the 2025 card if the
// table is empty. Re-running against a seeded database is a no-op.
func Ensure2025Card(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	if err := db.AutoMigrate(&domain.RateEntry{}); err != nil {
		return err
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&domain.RateEntry{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		now := time.Now().UTC()
		entries := Card2025()
		for i := range entries {
			entries[i].ID = node.Generate()
			entries[i].CreatedAt = now
		}
		return tx.CreateInBatches(entries, 100).Error
	})
}

// Card2025 returns the full 2025 rate card for both territories.
// Amounts are cents in the territory's local currency. Australian figures
// include GST; New Zealand figures exclude GST.
func Card2025() []domain.RateEntry {
	var entries []domain.RateEntry

	advertising := func(territory domain.Territory, medium domain.Medium, sub string, meta datatypes.JSON, byTier map[domain.Tier]int64) {
		for tier, cents := range byTier {
			entries = append(entries, domain.RateEntry{
				Territory:       territory,
				Medium:          medium,
				Tier:            tier,
				Category:        "Advertising",
				SubCategory:     sub,
				UnitType:        domain.UnitPer30s,
				UnitAmountCents: cents,
				Currency:        territory.Currency(),
				Metadata:        meta,
			})
		}
	}

	flat := func(territory domain.Territory, medium domain.Medium, tier domain.Tier, category, sub string, unitType domain.UnitType, cents int64, meta datatypes.JSON) {
		entries = append(entries, domain.RateEntry{
			Territory:       territory,
			Medium:          medium,
			Tier:            tier,
			Category:        category,
			SubCategory:     sub,
			UnitType:        unitType,
			UnitAmountCents: cents,
			Currency:        territory.Currency(),
			Metadata:        meta,
		})
	}

	arf := datatypes.JSON([]byte(`{"licence_code":"ARF"}`))
	broadcastNote := datatypes.JSON([]byte(`{"includes_online":"AFD, AVD, APD"}`))

	au := domain.TerritoryAustralia
	nz := domain.TerritoryNewZealand

	// Advertising, Australia: Regional / Metro / National.
	advertising(au, domain.MediumTVFreeToAir, "TV Free to Air", broadcastNote, map[domain.Tier]int64{
		domain.TierRegional: 13970, domain.TierMetro: 43450, domain.TierNational: 75020,
	})
	advertising(au, domain.MediumTVPayTV, "TV Pay TV", broadcastNote, map[domain.Tier]int64{
		domain.TierRegional: 12430, domain.TierMetro: 38390, domain.TierNational: 67210,
	})
	advertising(au, domain.MediumTVAll, "All TV (Free + Pay)", broadcastNote, map[domain.Tier]int64{
		domain.TierRegional: 20790, domain.TierMetro: 65450, domain.TierNational: 113850,
	})
	advertising(au, domain.MediumRadioFreeToAir, "Radio Free to Air (ARF)", arf, map[domain.Tier]int64{
		domain.TierRegional: 6600, domain.TierMetro: 20130, domain.TierNational: 35200,
	})
	advertising(au, domain.MediumRadioDigital, "Radio Digital Only", broadcastNote, map[domain.Tier]int64{
		domain.TierRegional: 4180, domain.TierMetro: 14190, domain.TierNational: 24420,
	})
	advertising(au, domain.MediumCinema, "Cinema", broadcastNote, map[domain.Tier]int64{
		domain.TierRegional: 7040, domain.TierMetro: 21450, domain.TierNational: 37510,
	})

	// Advertising, New Zealand: Regional / Metro Low / Metro High / National.
	advertising(nz, domain.MediumTVFreeToAir, "TV Free to Air", broadcastNote, map[domain.Tier]int64{
		domain.TierRegional: 7600, domain.TierMetroLow: 15800, domain.TierMetroHigh: 23700, domain.TierNational: 41600,
	})
	advertising(nz, domain.MediumTVPayTV, "TV Pay TV", broadcastNote, map[domain.Tier]int64{
		domain.TierRegional: 7300, domain.TierMetroLow: 14400, domain.TierMetroHigh: 21700, domain.TierNational: 37500,
	})
	advertising(nz, domain.MediumTVAll, "All TV (Free + Pay)", broadcastNote, map[domain.Tier]int64{
		domain.TierRegional: 11400, domain.TierMetroLow: 24400, domain.TierMetroHigh: 36200, domain.TierNational: 63200,
	})
	advertising(nz, domain.MediumRadioFreeToAir, "Radio Free to Air (ARF)", arf, map[domain.Tier]int64{
		domain.TierRegional: 4300, domain.TierMetroLow: 7800, domain.TierMetroHigh: 12200, domain.TierNational: 20400,
	})
	advertising(nz, domain.MediumRadioDigital, "Radio Digital Only", broadcastNote, map[domain.Tier]int64{
		domain.TierRegional: 3100, domain.TierMetroLow: 5600, domain.TierMetroHigh: 8200, domain.TierNational: 14300,
	})
	advertising(nz, domain.MediumCinema, "Cinema", broadcastNote, map[domain.Tier]int64{
		domain.TierRegional: 4300, domain.TierMetroLow: 7800, domain.TierMetroHigh: 12200, domain.TierNational: 20400,
	})

	// Online advertising tiers: stand-alone, online-only campaigns.
	tier1 := datatypes.JSON([]byte(`{"licence_code":"AFD","scope":"Free/organic social media for followers and subscribers only"}`))
	tier2 := datatypes.JSON([]byte(`{"licence_code":"AVD","scope":"Website, email, organic YouTube; includes Tier 1 rights"}`))
	tier3 := datatypes.JSON([]byte(`{"licence_code":"APD","scope":"Paid/sponsored placements, pre-roll, SVOD; includes Tiers 1-2 rights"}`))
	flat(au, domain.MediumOnlineTier1, domain.TierNone, "Online Advertising", "Tier 1 (AFD) Organic Social", domain.UnitPer30s, 10120, tier1)
	flat(nz, domain.MediumOnlineTier1, domain.TierNone, "Online Advertising", "Tier 1 (AFD) Organic Social", domain.UnitPer30s, 6800, tier1)
	flat(au, domain.MediumOnlineTier2, domain.TierNone, "Online Advertising", "Tier 2 (AVD) Corporate/Brand", domain.UnitPer30s, 19580, tier2)
	flat(nz, domain.MediumOnlineTier2, domain.TierNone, "Online Advertising", "Tier 2 (AVD) Corporate/Brand", domain.UnitPer30s, 12300, tier2)
	flat(au, domain.MediumOnlineTier3, domain.TierNone, "Online Advertising", "Tier 3 (APD) Paid Advertising", domain.UnitPer30s, 36080, tier3)
	flat(nz, domain.MediumOnlineTier3, domain.TierNone, "Online Advertising", "Tier 3 (APD) Paid Advertising", domain.UnitPer30s, 21500, tier3)

	// Corporate / audio visual.
	flat(au, domain.MediumCorporateInformative, domain.TierNone, "Corporate / Audio Visual", "Informative (Per Track)", domain.UnitPerTrack, 5610, nil)
	flat(nz, domain.MediumCorporateInformative, domain.TierNone, "Corporate / Audio Visual", "Informative (Per Track)", domain.UnitPerTrack, 3800, nil)
	flat(au, domain.MediumCorporateInformativeFlat, domain.TierNone, "Corporate / Audio Visual", "Informative (Flat Fee)", domain.UnitFlatFee, 50710, nil)
	flat(nz, domain.MediumCorporateInformativeFlat, domain.TierNone, "Corporate / Audio Visual", "Informative (Flat Fee)", domain.UnitFlatFee, 36300, nil)
	flat(au, domain.MediumCorporatePromotional, domain.TierNone, "Corporate / Audio Visual", "Promotional (Per Track)", domain.UnitPerTrack, 24530, nil)
	flat(nz, domain.MediumCorporatePromotional, domain.TierNone, "Corporate / Audio Visual", "Promotional (Per Track)", domain.UnitPerTrack, 15800, nil)
	flat(au, domain.MediumCorporatePromotionalFlat, domain.TierNone, "Corporate / Audio Visual", "Promotional (Flat Fee)", domain.UnitFlatFee, 127930, nil)
	flat(nz, domain.MediumCorporatePromotionalFlat, domain.TierNone, "Corporate / Audio Visual", "Promotional (Flat Fee)", domain.UnitFlatFee, 100600, nil)

	// Films, global rights.
	flat(au, domain.MediumFilmFestival, domain.TierNone, "Films", "Festivals Only (Per Unit)", domain.UnitPerUnit, 33000, nil)
	flat(nz, domain.MediumFilmFestival, domain.TierNone, "Films", "Festivals Only (Per Unit)", domain.UnitPerUnit, 10000, nil)
	flat(au, domain.MediumFilmFestivalFlat, domain.TierNone, "Films", "Festivals Only (Flat Fee)", domain.UnitFlatFee, 330000, nil)
	flat(nz, domain.MediumFilmFestivalFlat, domain.TierNone, "Films", "Festivals Only (Flat Fee)", domain.UnitFlatFee, 100000, nil)
	flat(au, domain.MediumFilmBudget1M, domain.TierNone, "Films", "Budget up to $1M (Per Unit)", domain.UnitPerUnit, 44000, nil)
	flat(nz, domain.MediumFilmBudget1M, domain.TierNone, "Films", "Budget up to $1M (Per Unit)", domain.UnitPerUnit, 17500, nil)
	flat(au, domain.MediumFilmBudget1MFlat, domain.TierNone, "Films", "Budget up to $1M (Flat Fee)", domain.UnitFlatFee, 550000, nil)
	flat(nz, domain.MediumFilmBudget1MFlat, domain.TierNone, "Films", "Budget up to $1M (Flat Fee)", domain.UnitFlatFee, 125000, nil)
	flat(au, domain.MediumFilmBudget5M, domain.TierNone, "Films", "Budget $1M-$5M (Per Unit)", domain.UnitPerUnit, 55000, nil)
	flat(nz, domain.MediumFilmBudget5M, domain.TierNone, "Films", "Budget $1M-$5M (Per Unit)", domain.UnitPerUnit, 25000, nil)
	flat(au, domain.MediumFilmBudget5MFlat, domain.TierNone, "Films", "Budget $1M-$5M (Flat Fee)", domain.UnitFlatFee, 770000, nil)
	flat(nz, domain.MediumFilmBudget5MFlat, domain.TierNone, "Films", "Budget $1M-$5M (Flat Fee)", domain.UnitFlatFee, 225000, nil)

	// TV programmes.
	flat(au, domain.MediumTVProgramme, domain.TierNational, "TV Programmes", "Free to Air (National Unit)", domain.UnitPerUnit, 4840, nil)
	flat(au, domain.MediumTVProgramme, domain.TierANZ, "TV Programmes", "Free to Air (ANZ Unit)", domain.UnitPerUnit, 5830, nil)
	flat(au, domain.MediumTVProgramme, domain.TierWorld, "TV Programmes", "Free to Air (World Unit)", domain.UnitPerUnit, 23980, nil)
	flat(nz, domain.MediumTVProgramme, domain.TierNational, "TV Programmes", "Free to Air (National Unit)", domain.UnitPerUnit, 3400, nil)
	flat(nz, domain.MediumTVProgramme, domain.TierMetro, "TV Programmes", "Free to Air (Metro Unit)", domain.UnitPerUnit, 3200, nil)
	flat(nz, domain.MediumTVProgramme, domain.TierWorld, "TV Programmes", "Free to Air (World Unit)", domain.UnitPerUnit, 21000, nil)
	flat(au, domain.MediumTVProgrammeFlat, domain.TierNone, "TV Programmes", "Free to Air (30min Flat)", domain.UnitFlatFee, 56100, nil)
	flat(nz, domain.MediumTVProgrammeFlat, domain.TierNone, "TV Programmes", "Free to Air (30min Flat)", domain.UnitFlatFee, 47500, nil)
	flat(au, domain.MediumOnlineSeries, domain.TierNone, "TV Programmes", "Online Series (Per Track)", domain.UnitPerTrack, 3850, nil)
	flat(nz, domain.MediumOnlineSeries, domain.TierNone, "TV Programmes", "Online Series (Per Track)", domain.UnitPerTrack, 2700, nil)
	flat(au, domain.MediumOnlineSeriesFlat, domain.TierNone, "TV Programmes", "Online Series (Flat Episode)", domain.UnitPerEpisode, 27830, nil)
	flat(nz, domain.MediumOnlineSeriesFlat, domain.TierNone, "TV Programmes", "Online Series (Flat Episode)", domain.UnitPerEpisode, 19000, nil)

	return entries
}
