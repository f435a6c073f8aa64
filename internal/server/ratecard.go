package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	ratecarddomain "github.com/irvrobbi/promusic/internal/ratecard/domain"
)

// GetRateCard lists the seeded 2025 card for a territory.
func (s *Server) GetRateCard(c *gin.Context) {
	territory := ratecarddomain.Territory(strings.ToUpper(strings.TrimSpace(c.Query("territory"))))
	if territory == "" {
		territory = ratecarddomain.TerritoryAustralia
	}
	if !territory.Valid() {
		AbortWithError(c, ratecarddomain.ErrInvalidTerritory)
		return
	}

	entries, err := s.rates.List(c.Request.Context(), territory)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"territory": territory,
		"currency":  territory.Currency(),
		"entries":   entries,
	})
}
