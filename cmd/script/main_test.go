package main

import (
	"testing"
	"time"

	"portfolioservice/internal/domain"
	"portfolioservice/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func Test_reportFromResponse(t *testing.T) {
	driftService := service.NewDriftService(nil)

	resp := &service.PortfolioResponse{
		PortfolioID: 5,
		Portfolio: domain.Holdings{
			domain.CategoryLargeCap: {
				{Ticker: "AAPL", PercentageOfPortfolio: decimal.NewFromInt(100)},
			},
		},
		TargetState: domain.TargetState{
			domain.CategoryLargeCap: decimal.NewFromInt(50),
			domain.CategoryBonds:    decimal.NewFromInt(50),
		},
		CooldownDays:      3,
		DriftThresholdAbs: decimal.RequireFromString("0.05"),
		UpdatedOn:         time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC),
	}

	t.Run("stale drifted portfolio reads as due", func(t *testing.T) {
		report := reportFromResponse(driftService, resp, time.Now().UTC())

		require.Equal(t, int64(5), report.PortfolioID)
		require.InDelta(t, 0.5, report.MaxAbsDrift, 1e-9)
		require.True(t, report.CooldownElapsed)
		require.True(t, report.DueForRebalance)
	})

	t.Run("cooldown measures against asOf, not the portfolio's own timestamp", func(t *testing.T) {
		report := reportFromResponse(driftService, resp, resp.UpdatedOn)

		require.False(t, report.CooldownElapsed)
		require.False(t, report.DueForRebalance)
	})
}
