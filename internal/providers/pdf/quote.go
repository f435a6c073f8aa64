package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/irvrobbi/promusic/internal/quote/domain"
	"github.com/irvrobbi/promusic/internal/quote/service"
	ratecard "github.com/irvrobbi/promusic/internal/ratecard/domain"
	"github.com/irvrobbi/promusic/internal/receipt"
)

type marotoProvider struct{}

// New returns the maroto-backed estimate renderer.
func New() Provider {
	return &marotoProvider{}
}

func (p *marotoProvider) GenerateEstimate(ctx context.Context, quote *domain.Quote, issuedAt time.Time) (io.Reader, error) {
	if quote == nil {
		return nil, fmt.Errorf("quote is required for estimate PDF")
	}

	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)
	territory := quote.Territory

	m.AddRow(20,
		text.NewCol(12, "Production Music Quote Estimate (2025)", props.Text{
			Size:  18,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)

	meta := []string{
		"Date: " + issuedAt.Format("02 Jan 2006"),
		"Territory: " + territory.DisplayName(),
		"Category: " + quote.Category,
		"Sub-Category: " + quote.SubCategory,
	}
	if quote.QuoteNumber != "" {
		meta = append([]string{"Quote number: " + quote.QuoteNumber}, meta...)
	}
	metaCol := col.New(6)
	for i, line := range meta {
		metaCol.Add(text.New(line, props.Text{Top: float64(i * 4)}))
	}
	m.AddRow(30, metaCol, col.New(6))

	m.AddRow(10,
		text.NewCol(6, "Description", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Qty", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Unit price", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Amount", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)
	for _, ln := range quote.Lines {
		desc := ln.SubCategory
		if ln.DurationSeconds > 0 {
			desc = fmt.Sprintf("%s (%ds)", desc, ln.DurationSeconds)
		}
		m.AddRow(8,
			text.NewCol(6, desc, props.Text{Size: 9}),
			text.NewCol(2, fmt.Sprintf("%d", ln.Units*ln.Count), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, receipt.FormatMoney(ln.RatePerUnit, territory), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, receipt.FormatMoney(ln.GrossCents, territory), props.Text{Size: 9, Align: align.Right}),
		)
	}

	totals := [][2]string{
		{"Gross estimate", receipt.FormatMoney(quote.GrossCents(), territory)},
	}
	if quote.DiscountCents > 0 {
		totals = append(totals, [2]string{quote.DiscountLabel, receipt.FormatMoney(-quote.DiscountCents, territory)})
	}
	totals = append(totals,
		[2]string{"Subtotal", receipt.FormatMoney(quote.NetAmountCents, territory)},
		[2]string{"Processing fee", receipt.FormatMoney(quote.ProcessingFeeCents, territory)},
	)
	if territory == ratecard.TerritoryNewZealand {
		totals = append(totals, [2]string{"GST (15%)", receipt.FormatMoney(quote.GSTAmountCents, territory)})
	} else {
		totals = append(totals, [2]string{"GST (included)", receipt.FormatMoney(service.IncludedGSTCents(quote.NetAmountCents), territory)})
	}
	totals = append(totals, [2]string{"Grand total estimate", receipt.FormatMoney(quote.TotalAmountCents, territory)})

	for _, row := range totals {
		m.AddRow(7,
			col.New(6),
			text.NewCol(3, row[0], props.Text{Size: 9}),
			text.NewCol(3, row[1], props.Text{Size: 9, Align: align.Right}),
		)
	}

	if len(quote.Notes) > 0 {
		m.AddRow(6, text.NewCol(12, "Notes", props.Text{Style: fontstyle.Bold, Size: 9, Top: 2}))
		for _, note := range quote.Notes {
			m.AddRow(5, text.NewCol(12, "- "+note, props.Text{Size: 8}))
		}
	}

	m.AddRow(10,
		text.NewCol(12, "This is an estimate only, not a licence.", props.Text{Size: 8, Top: 4}),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(doc.GetBytes()), nil
}
