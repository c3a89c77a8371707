package api

import (
	"time"

	"portfolioservice/internal/domain"
	"portfolioservice/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type createOrUpdatePortfolioRequest struct {
	UserDetails       domain.UserDetails                               `json:"userDetails"`
	RMDetails         domain.RMDetails                                 `json:"rmDetails"`
	Portfolio         map[domain.Category][]service.StockPositionInput `json:"portfolio"`
	TargetState       domain.TargetState                               `json:"targetState"`
	FreeCash          *decimal.Decimal                                 `json:"freeCash"`
	DriftThresholdAbs *decimal.Decimal                                 `json:"driftThresholdAbs"`
	CooldownDays      *int                                             `json:"cooldownDays"`
	TriggerMode       string                                           `json:"triggerMode"`
}

func (m ApiHandler) createOrUpdatePortfolio(c *gin.Context) {
	var requestBody createOrUpdatePortfolioRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}

	out, err := m.PortfolioService.CreateOrUpdate(service.CreateOrUpdateInput{
		UserDetails:       requestBody.UserDetails,
		RMDetails:         requestBody.RMDetails,
		Portfolio:         requestBody.Portfolio,
		TargetState:       requestBody.TargetState,
		FreeCash:          requestBody.FreeCash,
		DriftThresholdAbs: requestBody.DriftThresholdAbs,
		CooldownDays:      requestBody.CooldownDays,
		TriggerMode:       requestBody.TriggerMode,
	})
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, out)
}

func (m ApiHandler) getPortfolioByID(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	out, err := m.PortfolioService.GetByID(id)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, out)
}

func (m ApiHandler) getPortfolioByUserID(c *gin.Context) {
	out, err := m.PortfolioService.GetByUserID(c.Param("userId"))
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, out)
}

func (m ApiHandler) getPortfoliosByRmID(c *gin.Context) {
	out, err := m.PortfolioService.GetByRmID(c.Param("rmId"))
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, out)
}

func (m ApiHandler) getPortfolioDrift(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	resp, err := m.PortfolioService.GetByID(id)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	report := m.DriftService.Report(domain.Portfolio{
		ID:                resp.PortfolioID,
		FreeCash:          resp.FreeCash,
		CooldownDays:      resp.CooldownDays,
		DriftThresholdAbs: resp.DriftThresholdAbs,
		TriggerMode:       resp.TriggerMode,
		UpdatedOn:         resp.UpdatedOn,
		Holdings:          resp.Portfolio,
		TargetState:       resp.TargetState,
	}, time.Now().UTC())

	c.JSON(200, report)
}
