package server

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	quotedomain "github.com/irvrobbi/promusic/internal/quote/domain"
	"github.com/irvrobbi/promusic/internal/receipt"
)

// QuoteRateLimit throttles quote computation per client address when the
// redis limiter is configured.
func (s *Server) QuoteRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.quoteLimiter.Enabled() {
			c.Next()
			return
		}

		res, err := s.quoteLimiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			// Redis being down must not take quoting down with it.
			s.log.Warn("quote rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}
		if !res.Allowed {
			s.appMetrics.RecordRateLimitDenied(c.FullPath())
			if res.RetryAfter > 0 {
				c.Header("Retry-After", strconv.Itoa(int(res.RetryAfter.Seconds())+1))
			}
			AbortWithError(c, ErrRateLimited)
			return
		}
		c.Next()
	}
}

func (s *Server) computeQuote(c *gin.Context) (*quotedomain.Quote, time.Time, bool) {
	var req quotedomain.LicenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return nil, time.Time{}, false
	}

	quote, err := s.quoteSvc.Compute(c.Request.Context(), req)
	if err != nil {
		s.appMetrics.RecordEngineError(validationErrorCode(err))
		AbortWithError(c, err)
		return nil, time.Time{}, false
	}

	issuedAt := time.Now().UTC()
	number, err := receipt.FormatQuoteNumber(receipt.DefaultQuoteNumberTemplate, issuedAt, s.nextQuoteSeq())
	if err == nil {
		quote.QuoteNumber = number
	}

	s.appMetrics.RecordQuoteComputed(string(quote.Territory), quote.Category)
	return quote, issuedAt, true
}

// CreateQuote computes an estimate and returns it as JSON.
func (s *Server) CreateQuote(c *gin.Context) {
	quote, _, ok := s.computeQuote(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"quote": quote})
}

// CreateQuoteReceipt computes an estimate and returns the plain-text
// customer receipt as a download.
func (s *Server) CreateQuoteReceipt(c *gin.Context) {
	quote, issuedAt, ok := s.computeQuote(c)
	if !ok {
		return
	}

	body := receipt.Render(quote, issuedAt)
	c.Header("Content-Disposition", `attachment; filename="`+receipt.FileName(quote, issuedAt)+`"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(body))
}

// CreateQuotePDF computes an estimate and returns it rendered as PDF.
func (s *Server) CreateQuotePDF(c *gin.Context) {
	quote, issuedAt, ok := s.computeQuote(c)
	if !ok {
		return
	}

	doc, err := s.pdfProvider.GenerateEstimate(c.Request.Context(), quote, issuedAt)
	if err != nil {
		s.log.Error("estimate pdf generation failed", zap.Error(err))
		AbortWithError(c, ErrInternal)
		return
	}

	payload, err := io.ReadAll(doc)
	if err != nil {
		AbortWithError(c, ErrInternal)
		return
	}

	name := receipt.FileName(quote, issuedAt)
	c.Header("Content-Disposition", `attachment; filename="`+name[:len(name)-len(".txt")]+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", payload)
}
