package service

import (
	"context"
	"fmt"
	"time"

	"portfolioservice/internal/domain"
	"portfolioservice/internal/logger"
	"portfolioservice/internal/repository"

	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"
)

type CategoryDrift struct {
	Category   domain.Category `json:"category"`
	CurrentPct decimal.Decimal `json:"currentPct"`
	TargetPct  decimal.Decimal `json:"targetPct"`
	// Drift is (currentPct - targetPct) / 100, the same scale as the
	// portfolio's driftThresholdAbs knob.
	Drift decimal.Decimal `json:"drift"`
}

type DriftReport struct {
	PortfolioID     int64           `json:"portfolioId"`
	Categories      []CategoryDrift `json:"categories"`
	MeanAbsDrift    float64         `json:"meanAbsDrift"`
	MaxAbsDrift     float64         `json:"maxAbsDrift"`
	CooldownElapsed bool            `json:"cooldownElapsed"`
	DueForRebalance bool            `json:"dueForRebalance"`
}

// DriftService reports how far each portfolio's current allocation sits from
// its target state. It only observes; generating rebalance orders is the
// execution process's job.
type DriftService interface {
	Report(p domain.Portfolio, asOf time.Time) DriftReport
	ScanOnce(ctx context.Context) error
}

type driftServiceHandler struct {
	PortfolioRepository repository.PortfolioRepository
}

func NewDriftService(portfolioRepository repository.PortfolioRepository) DriftService {
	return driftServiceHandler{PortfolioRepository: portfolioRepository}
}

func (h driftServiceHandler) Report(p domain.Portfolio, asOf time.Time) DriftReport {
	hundred := decimal.NewFromInt(100)

	categories := []CategoryDrift{}
	absDrifts := []float64{}
	for _, cat := range domain.Categories() {
		currentPct := decimal.Zero
		for _, sp := range p.Holdings[cat] {
			currentPct = currentPct.Add(sp.PercentageOfPortfolio)
		}
		targetPct := p.TargetState[cat]
		if currentPct.IsZero() && targetPct.IsZero() {
			continue
		}

		drift := currentPct.Sub(targetPct).Div(hundred)
		categories = append(categories, CategoryDrift{
			Category:   cat,
			CurrentPct: currentPct,
			TargetPct:  targetPct,
			Drift:      drift,
		})
		absDrifts = append(absDrifts, drift.Abs().InexactFloat64())
	}

	report := DriftReport{
		PortfolioID: p.ID,
		Categories:  categories,
	}
	if len(absDrifts) > 0 {
		report.MeanAbsDrift, _ = stats.Mean(absDrifts)
		report.MaxAbsDrift, _ = stats.Max(absDrifts)
	}

	cooldown := time.Duration(p.CooldownDays) * 24 * time.Hour
	report.CooldownElapsed = asOf.Sub(p.UpdatedOn) >= cooldown
	report.DueForRebalance = report.CooldownElapsed &&
		report.MaxAbsDrift > p.DriftThresholdAbs.InexactFloat64()

	return report
}

// ScanOnce evaluates every AUTO portfolio and logs the ones due for a
// rebalance. Driven by the cron schedule in the API process.
func (h driftServiceHandler) ScanOnce(ctx context.Context) error {
	portfolios, err := h.PortfolioRepository.List()
	if err != nil {
		return fmt.Errorf("drift scan failed to list portfolios: %w", err)
	}

	log := logger.FromContext(ctx)
	now := time.Now().UTC()
	due := 0
	for _, p := range portfolios {
		if p.TriggerMode != domain.TriggerMode_Auto {
			continue
		}
		report := h.Report(p, now)
		if !report.DueForRebalance {
			continue
		}
		due++
		log.Infow("portfolio due for rebalance",
			"portfolioId", p.ID,
			"maxAbsDrift", report.MaxAbsDrift,
			"threshold", p.DriftThresholdAbs.InexactFloat64(),
		)
	}

	log.Infow("drift scan complete", "portfolios", len(portfolios), "due", due)
	return nil
}
