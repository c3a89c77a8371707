package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"portfolioservice/internal/domain"
	"portfolioservice/internal/logger"
	"portfolioservice/internal/service"

	"portfolioservice/cmd"

	"github.com/gocarina/gocsv"
	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

type priceRowCSV struct {
	Symbol   string `csv:"symbol"`
	Category string `csv:"category"`
	Price    string `csv:"price"`
	Name     string `csv:"name"`
}

type tradeCSV struct {
	Ticker string `csv:"ticker"`
	Side   string `csv:"side"`
	Qty    int    `csv:"qty"`
	Reason string `csv:"reason"`
}

func main() {
	root := &cobra.Command{
		Use:   "portfolioctl",
		Short: "ops helpers for the portfolio service",
	}
	root.AddCommand(newApplyCommand())
	root.AddCommand(newDriftCommand())

	if err := root.Execute(); err != nil {
		log.Fatal(err)
	}
}

func newApplyCommand() *cobra.Command {
	var (
		portfolioID int64
		rebalanceID string
		tradesPath  string
		pricesPath  string
	)

	command := &cobra.Command{
		Use:   "apply",
		Short: "apply a batch of executed trades from csv files",
		RunE: func(c *cobra.Command, args []string) error {
			trades, err := loadTrades(tradesPath)
			if err != nil {
				return err
			}
			priceFrame, err := loadPriceFrame(pricesPath)
			if err != nil {
				return err
			}

			apiHandler, err := cmd.InitializeDependencies()
			if err != nil {
				return err
			}
			defer cmd.CloseDependencies(apiHandler)

			ctx := context.WithValue(context.Background(), logger.ContextKey, logger.New())
			return apiHandler.RebalanceService.ApplyRebalance(ctx, service.ApplyRebalanceInput{
				RebalanceID:    rebalanceID,
				PortfolioID:    portfolioID,
				ExecutedTrades: trades,
				PriceFrame:     priceFrame,
			})
		},
	}

	command.Flags().Int64Var(&portfolioID, "portfolio-id", 0, "portfolio to apply against")
	command.Flags().StringVar(&rebalanceID, "rebalance-id", "", "unique id of the rebalance batch")
	command.Flags().StringVar(&tradesPath, "trades", "", "csv of executed trades (ticker,side,qty,reason)")
	command.Flags().StringVar(&pricesPath, "prices", "", "csv price frame (symbol,category,price,name)")

	return command
}

func newDriftCommand() *cobra.Command {
	var portfolioID int64

	command := &cobra.Command{
		Use:   "drift",
		Short: "print the drift report for one portfolio",
		RunE: func(c *cobra.Command, args []string) error {
			apiHandler, err := cmd.InitializeDependencies()
			if err != nil {
				return err
			}
			defer cmd.CloseDependencies(apiHandler)

			resp, err := apiHandler.PortfolioService.GetByID(portfolioID)
			if err != nil {
				return err
			}

			report := reportFromResponse(apiHandler.DriftService, resp, time.Now().UTC())

			out, err := json.MarshalIndent(report, "", "    ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}

	command.Flags().Int64Var(&portfolioID, "portfolio-id", 0, "portfolio to report on")

	return command
}

// reportFromResponse rebuilds the aggregate the drift engine wants from the
// read projection. asOf must be the current time, not a timestamp off the
// portfolio itself, or the cooldown window never elapses.
func reportFromResponse(driftService service.DriftService, resp *service.PortfolioResponse, asOf time.Time) service.DriftReport {
	return driftService.Report(domain.Portfolio{
		ID:                resp.PortfolioID,
		CooldownDays:      resp.CooldownDays,
		DriftThresholdAbs: resp.DriftThresholdAbs,
		TriggerMode:       resp.TriggerMode,
		UpdatedOn:         resp.UpdatedOn,
		Holdings:          resp.Portfolio,
		TargetState:       resp.TargetState,
	}, asOf)
}

func loadTrades(path string) ([]domain.ExecutedTrade, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open trades csv: %w", err)
	}
	defer f.Close()

	rows := []tradeCSV{}
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse trades csv: %w", err)
	}

	trades := make([]domain.ExecutedTrade, 0, len(rows))
	for _, row := range rows {
		trades = append(trades, domain.ExecutedTrade{
			Ticker: row.Ticker,
			Side:   domain.Side(row.Side),
			Qty:    row.Qty,
			Reason: row.Reason,
		})
	}
	return trades, nil
}

func loadPriceFrame(path string) ([]domain.PriceRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open prices csv: %w", err)
	}
	defer f.Close()

	rows := []priceRowCSV{}
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse prices csv: %w", err)
	}

	frame := make([]domain.PriceRow, 0, len(rows))
	for _, row := range rows {
		price, err := decimal.NewFromString(row.Price)
		if err != nil {
			return nil, fmt.Errorf("bad price %q for %s: %w", row.Price, row.Symbol, err)
		}
		frame = append(frame, domain.PriceRow{
			Symbol:   row.Symbol,
			Category: row.Category,
			Price:    price,
			Name:     row.Name,
		})
	}
	return frame, nil
}
