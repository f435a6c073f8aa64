// Package receipt renders quote estimates for customers.
package receipt

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	ratecard "github.com/irvrobbi/promusic/internal/ratecard/domain"
)

const DefaultQuoteNumberTemplate = "QTE-{YYYY}{MM}{DD}-{SEQ6}"

var seqPadRe = regexp.MustCompile(`\{SEQ(\d+)\}`)

// FormatQuoteNumber renders a human-readable quote number from a template,
// issue time and monotonic sequence. Deterministic, no side effects.
func FormatQuoteNumber(template string, issuedAt time.Time, seq int64) (string, error) {
	if template == "" {
		return "", fmt.Errorf("quote number template is empty")
	}
	if seq <= 0 {
		return "", fmt.Errorf("invalid quote sequence: %d", seq)
	}

	out := template
	out = strings.ReplaceAll(out, "{YYYY}", issuedAt.Format("2006"))
	out = strings.ReplaceAll(out, "{YY}", issuedAt.Format("06"))
	out = strings.ReplaceAll(out, "{MM}", issuedAt.Format("01"))
	out = strings.ReplaceAll(out, "{DD}", issuedAt.Format("02"))
	out = strings.ReplaceAll(out, "{SEQ}", strconv.FormatInt(seq, 10))

	out = seqPadRe.ReplaceAllStringFunc(out, func(m string) string {
		match := seqPadRe.FindStringSubmatch(m)
		if len(match) != 2 {
			return m
		}
		width, err := strconv.Atoi(match[1])
		if err != nil || width <= 0 {
			return m
		}
		return fmt.Sprintf("%0*d", width, seq)
	})

	if strings.Contains(out, "{") || strings.Contains(out, "}") {
		return "", fmt.Errorf("unresolved token in quote number format: %s", out)
	}
	return out, nil
}

var printers = map[ratecard.Territory]*message.Printer{
	ratecard.TerritoryAustralia:  message.NewPrinter(language.MustParse("en-AU")),
	ratecard.TerritoryNewZealand: message.NewPrinter(language.MustParse("en-NZ")),
}

// FormatMoney renders cents as a grouped decimal with the territory's
// currency code, e.g. "$1,500.40 AUD".
func FormatMoney(cents int64, territory ratecard.Territory) string {
	p, ok := printers[territory]
	if !ok {
		p = printers[ratecard.TerritoryAustralia]
	}

	negative := cents < 0
	if negative {
		cents = -cents
	}
	amount := p.Sprintf("%v", number.Decimal(float64(cents)/100,
		number.MinFractionDigits(2), number.MaxFractionDigits(2)))

	sign := ""
	if negative {
		sign = "-"
	}
	return fmt.Sprintf("%s$%s %s", sign, amount, territory.Currency())
}
