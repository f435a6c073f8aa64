// Package pdf renders quote estimates as PDF documents.
package pdf

import (
	"context"
	"io"
	"time"

	"github.com/irvrobbi/promusic/internal/quote/domain"
)

// Provider renders a customer-facing estimate document.
type Provider interface {
	GenerateEstimate(ctx context.Context, quote *domain.Quote, issuedAt time.Time) (io.Reader, error)
}
