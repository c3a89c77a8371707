package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"portfolioservice/internal/converter"
	"portfolioservice/internal/db/models/postgres/public/model"
	"portfolioservice/internal/domain"
	"portfolioservice/internal/logger"
	"portfolioservice/internal/repository"

	"github.com/shopspring/decimal"
)

type ApplyRebalanceInput struct {
	RebalanceID    string
	PortfolioID    int64
	ExecutedTrades []domain.ExecutedTrade
	PriceFrame     []domain.PriceRow
}

// RebalanceService applies a batch of executed trades to a portfolio exactly
// once. The batch is all-or-nothing: any failure mid-batch leaves persisted
// state untouched, so the caller may retry under the same rebalanceId.
type RebalanceService interface {
	ApplyRebalance(ctx context.Context, input ApplyRebalanceInput) error
}

type rebalanceServiceHandler struct {
	Db                  *sql.DB
	LockService         PortfolioLockService
	PortfolioRepository repository.PortfolioRepository
	AppliedRepository   repository.RebalanceAppliedRepository
	Codec               converter.Codec
}

func NewRebalanceService(
	db *sql.DB,
	lockService PortfolioLockService,
	portfolioRepository repository.PortfolioRepository,
	appliedRepository repository.RebalanceAppliedRepository,
	codec converter.Codec,
) RebalanceService {
	return rebalanceServiceHandler{
		Db:                  db,
		LockService:         lockService,
		PortfolioRepository: portfolioRepository,
		AppliedRepository:   appliedRepository,
		Codec:               codec,
	}
}

func (h rebalanceServiceHandler) ApplyRebalance(ctx context.Context, input ApplyRebalanceInput) error {
	if strings.TrimSpace(input.RebalanceID) == "" {
		return domain.ValidationError{Reason: "rebalanceId is required"}
	}
	if input.PortfolioID == 0 {
		return domain.ValidationError{Reason: "portfolioId is required"}
	}
	if len(input.ExecutedTrades) == 0 {
		return nil
	}
	if len(input.PriceFrame) == 0 {
		return domain.ValidationError{Reason: "priceFrame is required to update cash + totals"}
	}

	// fast idempotency check before taking the lock, so repeated deliveries
	// of an applied batch don't contend with live appliers
	applied, err := h.AppliedRepository.Exists(h.Db, input.PortfolioID, input.RebalanceID)
	if err != nil {
		return err
	}
	if applied {
		logger.FromContext(ctx).Infow("rebalance already applied",
			"portfolioId", input.PortfolioID,
			"rebalanceId", input.RebalanceID,
		)
		return nil
	}

	return h.LockService.WithExclusive(ctx, input.PortfolioID, func() error {
		return h.applyLocked(ctx, input)
	})
}

func (h rebalanceServiceHandler) applyLocked(ctx context.Context, input ApplyRebalanceInput) error {
	tx, err := h.Db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin rebalance tx: %w", err)
	}
	defer tx.Rollback()

	portfolio, err := h.PortfolioRepository.GetForUpdate(tx, input.PortfolioID)
	if err != nil {
		return err
	}

	// authoritative recheck under the lock; closes the race with a concurrent
	// applier that committed between the fast check and acquisition
	applied, err := h.AppliedRepository.Exists(tx, input.PortfolioID, input.RebalanceID)
	if err != nil {
		return err
	}
	if applied {
		return nil
	}

	prices := domain.BuildPriceIndex(input.PriceFrame)
	holdings := portfolio.Holdings.DeepCopy()

	freeCash, err := applyExecutedTrades(holdings, prices, portfolio.FreeCash, input.ExecutedTrades)
	if err != nil {
		return err
	}

	recomputeTotalsAndPercentages(holdings, prices)

	portfolio.Holdings = holdings
	portfolio.FreeCash = freeCash
	if _, err := h.PortfolioRepository.Update(tx, *portfolio); err != nil {
		return err
	}

	tradesJSON, err := h.Codec.Marshal(input.ExecutedTrades)
	if err != nil {
		return err
	}
	if _, err := h.AppliedRepository.Add(tx, model.PortfolioRebalanceApplied{
		PortfolioID: portfolio.ID,
		RebalanceID: input.RebalanceID,
		TradesJSON:  &tradesJSON,
	}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit rebalance: %w", err)
	}

	logger.FromContext(ctx).Infow("rebalance applied",
		"portfolioId", portfolio.ID,
		"rebalanceId", input.RebalanceID,
		"trades", len(input.ExecutedTrades),
	)
	return nil
}

// applyExecutedTrades walks the batch in input order, mutating holdings and
// returning the resulting cash balance. Order matters: repeated buys of the
// same ticker fold into a running quantity-weighted average price. The
// category comes from the price frame, never from an existing holding, so a
// reclassified ticker lands in its new bucket.
func applyExecutedTrades(
	holdings domain.Holdings,
	prices domain.PriceIndex,
	cash decimal.Decimal,
	trades []domain.ExecutedTrade,
) (decimal.Decimal, error) {
	for _, t := range trades {
		sym := strings.ToUpper(strings.TrimSpace(t.Ticker))
		if sym == "" || t.Qty <= 0 {
			continue
		}

		row, ok := prices.Lookup(sym)
		if !ok {
			return decimal.Zero, domain.MissingPriceError{Symbol: sym}
		}
		cat, err := domain.CategoryFromWire(row.Category)
		if err != nil {
			return decimal.Zero, err
		}

		bucket := holdings[cat]
		idx := domain.IndexOfTicker(bucket, sym)
		qty := decimal.NewFromInt(int64(t.Qty))

		switch t.Side {
		case domain.Side_Buy:
			cash = cash.Sub(row.Price.Mul(qty))

			if idx == -1 {
				name := row.Name
				if name == "" {
					name = sym
				}
				bucket = append(bucket, domain.StockPosition{
					Ticker:                sym,
					Name:                  name,
					Quantity:              t.Qty,
					AvgPrice:              row.Price,
					PercentageOfPortfolio: decimal.Zero,
					TotalAmount:           decimal.Zero,
					PositionDate:          time.Now().UTC(),
				})
			} else {
				cur := bucket[idx]
				newQty := cur.Quantity + t.Qty
				cur.AvgPrice = cur.AvgPrice.Mul(decimal.NewFromInt(int64(cur.Quantity))).
					Add(row.Price.Mul(qty)).
					DivRound(decimal.NewFromInt(int64(newQty)), 8)
				cur.Quantity = newQty
				cur.PositionDate = time.Now().UTC()
				bucket[idx] = cur
			}

		case domain.Side_Sell:
			if idx == -1 {
				return decimal.Zero, domain.InsufficientHoldingsError{Symbol: sym, Category: cat, Want: t.Qty}
			}
			cur := bucket[idx]
			if cur.Quantity < t.Qty {
				return decimal.Zero, domain.InsufficientHoldingsError{Symbol: sym, Category: cat, Held: cur.Quantity, Want: t.Qty}
			}

			cash = cash.Add(row.Price.Mul(qty))

			newQty := cur.Quantity - t.Qty
			if newQty == 0 {
				bucket = append(bucket[:idx], bucket[idx+1:]...)
			} else {
				// avgPrice unchanged on sell
				cur.Quantity = newQty
				cur.PositionDate = time.Now().UTC()
				bucket[idx] = cur
			}
		}

		holdings[cat] = bucket
	}

	return cash, nil
}

// recomputeTotalsAndPercentages refreshes every position's totalAmount (2dp)
// and percentageOfPortfolio (4dp, via an 8dp intermediate) from current
// prices. Positions without a price row keep their previous figures and do not
// count toward portfolio value. If total value is not positive, percentages
// are left as-is.
func recomputeTotalsAndPercentages(holdings domain.Holdings, prices domain.PriceIndex) {
	totalValue := decimal.Zero
	for _, bucket := range holdings {
		for _, sp := range bucket {
			row, ok := prices.Lookup(sp.Ticker)
			if !ok {
				continue
			}
			totalValue = totalValue.Add(row.Price.Mul(decimal.NewFromInt(int64(sp.Quantity))))
		}
	}

	if totalValue.LessThanOrEqual(decimal.Zero) {
		return
	}

	hundred := decimal.NewFromInt(100)
	for cat, bucket := range holdings {
		for i, sp := range bucket {
			row, ok := prices.Lookup(sp.Ticker)
			if !ok {
				continue
			}
			sp.TotalAmount = row.Price.Mul(decimal.NewFromInt(int64(sp.Quantity))).Round(2)
			sp.PercentageOfPortfolio = sp.TotalAmount.DivRound(totalValue, 8).Mul(hundred).Round(4)
			sp.PositionDate = time.Now().UTC()
			bucket[i] = sp
		}
		holdings[cat] = bucket
	}
}
