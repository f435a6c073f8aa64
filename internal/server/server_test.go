package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/irvrobbi/promusic/internal/config"
	"github.com/irvrobbi/promusic/internal/metrics"
	"github.com/irvrobbi/promusic/internal/observability"
	"github.com/irvrobbi/promusic/internal/providers/pdf"
	quoteservice "github.com/irvrobbi/promusic/internal/quote/service"
	ratecarddomain "github.com/irvrobbi/promusic/internal/ratecard/domain"
	"github.com/irvrobbi/promusic/internal/ratecard/seed"
)

type rateKey struct {
	territory ratecarddomain.Territory
	medium    ratecarddomain.Medium
	tier      ratecarddomain.Tier
}

type memRates struct {
	entries map[rateKey]ratecarddomain.RateEntry
}

func newMemRates() *memRates {
	r := &memRates{entries: make(map[rateKey]ratecarddomain.RateEntry)}
	for _, e := range seed.Card2025() {
		r.entries[rateKey{e.Territory, e.Medium, e.Tier}] = e
	}
	return r
}

func (r *memRates) Lookup(_ context.Context, territory ratecarddomain.Territory, medium ratecarddomain.Medium, tier ratecarddomain.Tier) (*ratecarddomain.RateEntry, error) {
	if !territory.Valid() {
		return nil, ratecarddomain.ErrInvalidTerritory
	}
	entry, ok := r.entries[rateKey{territory, medium, tier}]
	if !ok {
		return nil, ratecarddomain.ErrRateNotFound
	}
	return &entry, nil
}

func (r *memRates) List(_ context.Context, territory ratecarddomain.Territory) ([]ratecarddomain.RateEntry, error) {
	if !territory.Valid() {
		return nil, ratecarddomain.ErrInvalidTerritory
	}
	var out []ratecarddomain.RateEntry
	for _, e := range r.entries {
		if e.Territory == territory {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memRates) Count(_ context.Context) (int64, error) {
	return int64(len(r.entries)), nil
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := zap.NewNop()
	rates := newMemRates()
	appMetrics := metrics.New()
	engine := NewEngine(observability.Config{}, appMetrics)

	return NewServer(ServerParams{
		Gin:         engine,
		Cfg:         config.Config{},
		QuoteSvc:    quoteservice.NewService(rates, log),
		Rates:       rates,
		PDFProvider: pdf.New(),
		AppMetrics:  appMetrics,
		Log:         log,
	})
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t)
	w := doJSON(t, s, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateQuote(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/v1/quotes", gin.H{
		"territory": "AU",
		"items": []gin.H{
			{"medium": "TV_FREE_TO_AIR", "tier": "NATIONAL", "duration_seconds": 30, "is_primary": true},
			{"medium": "TV_FREE_TO_AIR", "tier": "NATIONAL", "duration_seconds": 15, "is_cut_down": true},
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Quote struct {
			QuoteNumber      string `json:"quote_number"`
			NetAmountCents   int64  `json:"net_amount_cents"`
			DiscountCents    int64  `json:"discount_cents"`
			TotalAmountCents int64  `json:"total_amount_cents"`
			Currency         string `json:"currency"`
		} `json:"quote"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(22506), resp.Quote.DiscountCents)
	assert.Equal(t, int64(127534), resp.Quote.NetAmountCents)
	assert.Equal(t, int64(128634), resp.Quote.TotalAmountCents)
	assert.Equal(t, "AUD", resp.Quote.Currency)
	assert.Regexp(t, `^QTE-\d{8}-\d{6}$`, resp.Quote.QuoteNumber)
}

func TestCreateQuoteBadJSON(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/quotes", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "validation_error")
}

func TestCreateQuoteUnknownRate(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/v1/quotes", gin.H{
		"territory": "AU",
		"items": []gin.H{
			{"medium": "TV_FREE_TO_AIR", "tier": "METRO_LOW", "duration_seconds": 30},
		},
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "not_found")
}

func TestCreateQuoteCutDownTooLong(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/v1/quotes", gin.H{
		"territory": "AU",
		"items": []gin.H{
			{"medium": "TV_FREE_TO_AIR", "tier": "NATIONAL", "duration_seconds": 30, "is_primary": true},
			{"medium": "TV_FREE_TO_AIR", "tier": "NATIONAL", "duration_seconds": 45, "is_cut_down": true},
		},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "cut_down_too_long")
}

func TestCreateQuoteReceipt(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/v1/quotes/receipt", gin.H{
		"territory": "NZ",
		"items": []gin.H{
			{"medium": "TV_FREE_TO_AIR", "tier": "NATIONAL", "duration_seconds": 30},
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.Contains(t, w.Header().Get("Content-Disposition"), "APRA_Quote_")
	assert.Contains(t, w.Body.String(), "APRA AMCOS Production Music Quote Estimate (2025)")
	assert.Contains(t, w.Body.String(), "GST (15%)")
}

func TestCreateQuotePDF(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/v1/quotes/pdf", gin.H{
		"territory": "AU",
		"items": []gin.H{
			{"medium": "CORPORATE_INFORMATIVE", "count": 3},
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".pdf")
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))
}

func TestGetRateCard(t *testing.T) {
	s := newTestServer(t)

	w := doJSON(t, s, http.MethodGet, "/v1/ratecard?territory=NZ", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Territory string                     `json:"territory"`
		Currency  string                     `json:"currency"`
		Entries   []ratecarddomain.RateEntry `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "NZ", resp.Territory)
	assert.Equal(t, "NZD", resp.Currency)
	assert.NotEmpty(t, resp.Entries)

	w = doJSON(t, s, http.MethodGet, "/v1/ratecard?territory=UK", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Defaults to the Australian card.
	w = doJSON(t, s, http.MethodGet, "/v1/ratecard", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	w := doJSON(t, s, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
