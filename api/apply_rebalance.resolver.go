package api

import (
	"fmt"
	"strconv"

	"portfolioservice/internal/domain"
	"portfolioservice/internal/service"

	"github.com/gin-gonic/gin"
)

type applyRebalanceRequest struct {
	RebalanceID    string                 `json:"rebalanceId"`
	PortfolioID    int64                  `json:"portfolioId"`
	ExecutedTrades []domain.ExecutedTrade `json:"executedTrades"`
	PriceFrame     []domain.PriceRow      `json:"priceFrame"`
}

func (m ApiHandler) applyRebalance(c *gin.Context) {
	var requestBody applyRebalanceRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}

	err := m.RebalanceService.ApplyRebalance(c, service.ApplyRebalanceInput{
		RebalanceID:    requestBody.RebalanceID,
		PortfolioID:    requestBody.PortfolioID,
		ExecutedTrades: requestBody.ExecutedTrades,
		PriceFrame:     requestBody.PriceFrame,
	})
	if err != nil {
		returnErrorJson(fmt.Errorf("failed to apply rebalance: %w", err), c)
		return
	}

	c.JSON(200, map[string]string{
		"success": "true",
	})
}

func parseIDParam(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, domain.ValidationError{Reason: fmt.Sprintf("%s must be an integer", name)}
	}
	return id, nil
}
