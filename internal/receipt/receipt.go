package receipt

import (
	"fmt"
	"strings"
	"time"

	"github.com/gosimple/slug"

	"github.com/irvrobbi/promusic/internal/quote/domain"
	"github.com/irvrobbi/promusic/internal/quote/service"
	ratecard "github.com/irvrobbi/promusic/internal/ratecard/domain"
)

const (
	headerRule = "=========================================="
	lineRule   = "------------------------------------------"
)

// Render produces the plain-text estimate handed to the customer.
func Render(q *domain.Quote, issuedAt time.Time) string {
	var b strings.Builder
	territory := q.Territory

	b.WriteString(headerRule + "\n")
	b.WriteString("APRA AMCOS Production Music Quote Estimate (2025)\n")
	b.WriteString(headerRule + "\n")
	if q.QuoteNumber != "" {
		fmt.Fprintf(&b, "Quote No:     %s\n", q.QuoteNumber)
	}
	fmt.Fprintf(&b, "Date:         %s\n", issuedAt.Format("02 Jan 2006"))
	fmt.Fprintf(&b, "Territory:    %s\n", territory.DisplayName())
	fmt.Fprintf(&b, "Category:     %s\n", q.Category)
	fmt.Fprintf(&b, "Sub-Category: %s\n", q.SubCategory)
	b.WriteString(lineRule + "\n")

	fmt.Fprintf(&b, "Unit Type:      %s\n", q.UnitType.Label())
	fmt.Fprintf(&b, "Base Rate:      %s\n", FormatMoney(q.RatePerUnitCents, territory))
	fmt.Fprintf(&b, "Quantity:       %d\n", q.Quantity)
	fmt.Fprintf(&b, "Gross Estimate: %s\n", FormatMoney(q.GrossCents(), territory))
	if q.DiscountCents > 0 {
		fmt.Fprintf(&b, "Discount:       -%s (%s)\n", FormatMoney(q.DiscountCents, territory), q.DiscountLabel)
	}
	b.WriteString(lineRule + "\n")

	fmt.Fprintf(&b, "Subtotal:       %s\n", FormatMoney(q.NetAmountCents, territory))
	fmt.Fprintf(&b, "Processing Fee: %s\n", FormatMoney(q.ProcessingFeeCents, territory))
	if territory == ratecard.TerritoryNewZealand {
		fmt.Fprintf(&b, "GST (15%%):      %s\n", FormatMoney(q.GSTAmountCents, territory))
	} else {
		fmt.Fprintf(&b, "GST (Included): %s\n", FormatMoney(service.IncludedGSTCents(q.NetAmountCents), territory))
	}
	fmt.Fprintf(&b, "GRAND TOTAL ESTIMATE: %s\n", FormatMoney(q.TotalAmountCents, territory))
	b.WriteString(lineRule + "\n")

	if len(q.Notes) > 0 {
		b.WriteString("Notes:\n")
		for _, note := range q.Notes {
			fmt.Fprintf(&b, "- %s\n", note)
		}
		b.WriteString(lineRule + "\n")
	}

	b.WriteString("This is an estimate only, not a licence. Rates per the\n")
	b.WriteString("APRA AMCOS Production Music 2025 rate card.\n")
	b.WriteString("apraamcos.com.au | apraamcos.co.nz\n")
	return b.String()
}

// FileName builds a safe download name for the estimate, e.g.
// "APRA_Quote_tv-free-to-air_2026-09-01.txt".
func FileName(q *domain.Quote, issuedAt time.Time) string {
	ref := q.SubCategory
	if ref == "" {
		ref = q.Category
	}
	return fmt.Sprintf("APRA_Quote_%s_%s.txt", slug.Make(ref), issuedAt.Format("2006-01-02"))
}
