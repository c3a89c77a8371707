package service

import (
	"context"
	"testing"
	"time"

	"portfolioservice/internal/domain"
	mock_repository "portfolioservice/internal/repository/mocks"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func Test_DriftReport(t *testing.T) {
	handler := driftServiceHandler{}

	portfolio := func() domain.Portfolio {
		return domain.Portfolio{
			ID: 5,
			Holdings: domain.Holdings{
				domain.CategoryLargeCap: {
					{Ticker: "AAPL", PercentageOfPortfolio: decimal.NewFromInt(50)},
				},
				domain.CategoryBonds: {
					{Ticker: "TLT", PercentageOfPortfolio: decimal.NewFromInt(50)},
				},
			},
			TargetState: domain.TargetState{
				domain.CategoryLargeCap: decimal.NewFromInt(40),
				domain.CategoryBonds:    decimal.NewFromInt(60),
			},
			CooldownDays:      3,
			DriftThresholdAbs: decimal.RequireFromString("0.05"),
			UpdatedOn:         time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		}
	}

	t.Run("measures drift per category", func(t *testing.T) {
		report := handler.Report(portfolio(), time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC))

		require.Equal(t, int64(5), report.PortfolioID)
		require.Len(t, report.Categories, 2)

		byCategory := map[domain.Category]CategoryDrift{}
		for _, cd := range report.Categories {
			byCategory[cd.Category] = cd
		}
		require.Equal(t, "0.1", byCategory[domain.CategoryLargeCap].Drift.String())
		require.Equal(t, "-0.1", byCategory[domain.CategoryBonds].Drift.String())
		require.InDelta(t, 0.1, report.MeanAbsDrift, 1e-9)
		require.InDelta(t, 0.1, report.MaxAbsDrift, 1e-9)
	})

	t.Run("due when cooldown elapsed and drift over threshold", func(t *testing.T) {
		report := handler.Report(portfolio(), time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC))
		require.True(t, report.CooldownElapsed)
		require.True(t, report.DueForRebalance)
	})

	t.Run("not due inside the cooldown window", func(t *testing.T) {
		report := handler.Report(portfolio(), time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))
		require.False(t, report.CooldownElapsed)
		require.False(t, report.DueForRebalance)
	})

	t.Run("not due when drift stays under the threshold", func(t *testing.T) {
		p := portfolio()
		p.DriftThresholdAbs = decimal.RequireFromString("0.25")

		report := handler.Report(p, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC))
		require.True(t, report.CooldownElapsed)
		require.False(t, report.DueForRebalance)
	})

	t.Run("ignores categories absent from both sides", func(t *testing.T) {
		report := handler.Report(portfolio(), time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC))
		for _, cd := range report.Categories {
			require.NotEqual(t, domain.CategoryGold, cd.Category)
		}
	})
}

func Test_ScanOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	portfolioRepository := mock_repository.NewMockPortfolioRepository(ctrl)
	handler := driftServiceHandler{PortfolioRepository: portfolioRepository}

	portfolioRepository.EXPECT().
		List().
		Return([]domain.Portfolio{
			{ID: 1, TriggerMode: domain.TriggerMode_Manual},
			{ID: 2, TriggerMode: domain.TriggerMode_Auto, DriftThresholdAbs: decimal.RequireFromString("0.05")},
		}, nil)

	require.NoError(t, handler.ScanOnce(context.Background()))
}
