package integration_tests

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"portfolioservice/internal/converter"
	"portfolioservice/internal/db/models/postgres/public/model"
	"portfolioservice/internal/db/models/postgres/public/table"
	"portfolioservice/internal/domain"
	"portfolioservice/internal/repository"
	"portfolioservice/internal/service"
	"portfolioservice/internal/util"

	"github.com/go-jet/jet/v2/postgres"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func setupDb(t *testing.T) *sql.DB {
	t.Helper()
	db, err := util.NewTestDb()
	require.NoError(t, err)
	if err := db.Ping(); err != nil {
		t.Skipf("test database unavailable: %v", err)
	}

	ddl, err := os.ReadFile("../schema/schema.sql")
	require.NoError(t, err)
	_, err = db.Exec(string(ddl))
	require.NoError(t, err)

	t.Cleanup(func() {
		_, _ = db.Exec("DELETE FROM portfolio_rebalance_applied")
		_, _ = db.Exec("DELETE FROM portfolios")
		db.Close()
	})
	return db
}

func seedPortfolio(t *testing.T, db *sql.DB, userID string) *domain.Portfolio {
	t.Helper()
	codec := converter.NewJSONCodec()
	portfolioRepository := repository.NewPortfolioRepository(db, codec)

	saved, err := portfolioRepository.Add(db, domain.Portfolio{
		FreeCash:          decimal.NewFromInt(500),
		CooldownDays:      3,
		DriftThresholdAbs: decimal.RequireFromString("0.05"),
		TriggerMode:       domain.TriggerMode_Manual,
		UserID:            userID,
		UserDetails:       domain.UserDetails{UserID: userID, FirstName: "Test", LastName: "User"},
		Holdings: domain.Holdings{
			domain.CategoryLargeCap: {
				{Ticker: "AAPL", Name: "Apple", Quantity: 10, AvgPrice: decimal.NewFromInt(100)},
			},
		},
		TargetState: domain.TargetState{
			domain.CategoryLargeCap: decimal.NewFromInt(100),
		},
	})
	require.NoError(t, err)
	return saved
}

func newRebalanceService(db *sql.DB) service.RebalanceService {
	codec := converter.NewJSONCodec()
	return service.NewRebalanceService(
		db,
		service.NewPortfolioLockService(10*time.Second),
		repository.NewPortfolioRepository(db, codec),
		repository.NewRebalanceAppliedRepository(),
		codec,
	)
}

func Test_ApplyRebalance_endToEnd(t *testing.T) {
	db := setupDb(t)
	seeded := seedPortfolio(t, db, "it-user-1")

	rebalanceService := newRebalanceService(db)
	codec := converter.NewJSONCodec()
	portfolioRepository := repository.NewPortfolioRepository(db, codec)

	input := service.ApplyRebalanceInput{
		RebalanceID: "rb-it-1",
		PortfolioID: seeded.ID,
		ExecutedTrades: []domain.ExecutedTrade{
			{Ticker: "AAPL", Side: domain.Side_Buy, Qty: 5, Reason: "rebalance"},
		},
		PriceFrame: []domain.PriceRow{
			{Symbol: "AAPL", Category: "LargeCap", Price: decimal.NewFromInt(110), Name: "Apple"},
		},
	}
	require.NoError(t, rebalanceService.ApplyRebalance(context.Background(), input))

	updated, err := portfolioRepository.Get(seeded.ID)
	require.NoError(t, err)
	require.Equal(t, "-50", updated.FreeCash.String())

	bucket := updated.Holdings[domain.CategoryLargeCap]
	require.Len(t, bucket, 1)
	require.Equal(t, 15, bucket[0].Quantity)
	require.True(t, bucket[0].AvgPrice.Equal(decimal.RequireFromString("103.33333333")))
	require.Equal(t, "1650.00", bucket[0].TotalAmount.StringFixed(2))
	require.Equal(t, "100.0000", bucket[0].PercentageOfPortfolio.StringFixed(4))

	witness := model.PortfolioRebalanceApplied{}
	err = table.PortfolioRebalanceApplied.
		SELECT(table.PortfolioRebalanceApplied.AllColumns).
		WHERE(table.PortfolioRebalanceApplied.PortfolioID.EQ(postgres.Int(seeded.ID))).
		Query(db, &witness)
	require.NoError(t, err)
	require.Equal(t, "rb-it-1", witness.RebalanceID)
	require.NotNil(t, witness.TradesJSON)
}

func Test_ApplyRebalance_idempotentReplay(t *testing.T) {
	db := setupDb(t)
	seeded := seedPortfolio(t, db, "it-user-2")

	rebalanceService := newRebalanceService(db)
	codec := converter.NewJSONCodec()
	portfolioRepository := repository.NewPortfolioRepository(db, codec)

	input := service.ApplyRebalanceInput{
		RebalanceID: "rb-it-2",
		PortfolioID: seeded.ID,
		ExecutedTrades: []domain.ExecutedTrade{
			{Ticker: "AAPL", Side: domain.Side_Buy, Qty: 5},
		},
		PriceFrame: []domain.PriceRow{
			{Symbol: "AAPL", Category: "LargeCap", Price: decimal.NewFromInt(110)},
		},
	}
	require.NoError(t, rebalanceService.ApplyRebalance(context.Background(), input))

	afterFirst, err := portfolioRepository.Get(seeded.ID)
	require.NoError(t, err)

	// same rebalanceId again: the batch must not apply twice
	require.NoError(t, rebalanceService.ApplyRebalance(context.Background(), input))

	afterSecond, err := portfolioRepository.Get(seeded.ID)
	require.NoError(t, err)
	require.True(t, afterFirst.FreeCash.Equal(afterSecond.FreeCash))

	decimalComparer := cmp.Comparer(func(x, y decimal.Decimal) bool {
		return x.Equal(y)
	})
	diff := cmp.Diff(
		afterFirst.Holdings,
		afterSecond.Holdings,
		decimalComparer,
		cmpopts.IgnoreFields(domain.StockPosition{}, "PositionDate"),
	)
	require.Empty(t, diff)
}

func Test_ApplyRebalance_sellDownToZero(t *testing.T) {
	db := setupDb(t)
	seeded := seedPortfolio(t, db, "it-user-3")

	rebalanceService := newRebalanceService(db)
	codec := converter.NewJSONCodec()
	portfolioRepository := repository.NewPortfolioRepository(db, codec)

	err := rebalanceService.ApplyRebalance(context.Background(), service.ApplyRebalanceInput{
		RebalanceID: "rb-it-3",
		PortfolioID: seeded.ID,
		ExecutedTrades: []domain.ExecutedTrade{
			{Ticker: "AAPL", Side: domain.Side_Sell, Qty: 10},
		},
		PriceFrame: []domain.PriceRow{
			{Symbol: "AAPL", Category: "LargeCap", Price: decimal.NewFromInt(120)},
		},
	})
	require.NoError(t, err)

	updated, err := portfolioRepository.Get(seeded.ID)
	require.NoError(t, err)
	require.Equal(t, "1700", updated.FreeCash.String())
	require.Empty(t, updated.Holdings[domain.CategoryLargeCap])
}

func Test_ApplyRebalance_failedSellLeavesStateUntouched(t *testing.T) {
	db := setupDb(t)
	seeded := seedPortfolio(t, db, "it-user-4")

	rebalanceService := newRebalanceService(db)
	codec := converter.NewJSONCodec()
	portfolioRepository := repository.NewPortfolioRepository(db, codec)

	err := rebalanceService.ApplyRebalance(context.Background(), service.ApplyRebalanceInput{
		RebalanceID: "rb-it-4",
		PortfolioID: seeded.ID,
		ExecutedTrades: []domain.ExecutedTrade{
			{Ticker: "AAPL", Side: domain.Side_Buy, Qty: 5},
			{Ticker: "AAPL", Side: domain.Side_Sell, Qty: 100},
		},
		PriceFrame: []domain.PriceRow{
			{Symbol: "AAPL", Category: "LargeCap", Price: decimal.NewFromInt(110)},
		},
	})
	var insufficient domain.InsufficientHoldingsError
	require.ErrorAs(t, err, &insufficient)

	updated, err := portfolioRepository.Get(seeded.ID)
	require.NoError(t, err)
	require.Equal(t, "500", updated.FreeCash.String())
	require.Equal(t, 10, updated.Holdings[domain.CategoryLargeCap][0].Quantity)

	// and no witness row either
	applied, err := repository.NewRebalanceAppliedRepository().Exists(db, seeded.ID, "rb-it-4")
	require.NoError(t, err)
	require.False(t, applied)
}
