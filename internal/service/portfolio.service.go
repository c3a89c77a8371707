package service

import (
	"database/sql"
	"errors"
	"time"

	"portfolioservice/internal/domain"
	"portfolioservice/internal/repository"

	"github.com/shopspring/decimal"
)

type StockPositionInput struct {
	Ticker   string          `json:"ticker"`
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	AvgPrice decimal.Decimal `json:"avgPrice"`
}

type CreateOrUpdateInput struct {
	UserDetails       domain.UserDetails
	RMDetails         domain.RMDetails
	Portfolio         map[domain.Category][]StockPositionInput
	TargetState       domain.TargetState
	FreeCash          *decimal.Decimal
	DriftThresholdAbs *decimal.Decimal
	CooldownDays      *int
	TriggerMode       string
}

// PortfolioResponse is the outward projection of a portfolio. PortfolioValue
// is summed fresh from the stored totals on every read.
type PortfolioResponse struct {
	PortfolioID       int64              `json:"portfolioId"`
	UserDetails       domain.UserDetails `json:"userDetails"`
	RMDetails         domain.RMDetails   `json:"rmDetails"`
	Portfolio         domain.Holdings    `json:"portfolio"`
	TargetState       domain.TargetState `json:"targetState"`
	PortfolioValue    decimal.Decimal    `json:"portfolioValue"`
	UpdatedOn         time.Time          `json:"updatedOn"`
	CreatedOn         time.Time          `json:"createdOn"`
	TriggerMode       domain.TriggerMode `json:"triggerMode"`
	FreeCash          decimal.Decimal    `json:"freeCash"`
	DriftThresholdAbs decimal.Decimal    `json:"driftThresholdAbs"`
	CooldownDays      int                `json:"cooldownDays"`
}

type PortfolioService interface {
	GetByID(id int64) (*PortfolioResponse, error)
	GetByUserID(userID string) (*PortfolioResponse, error)
	GetByRmID(rmID string) ([]PortfolioResponse, error)
	CreateOrUpdate(input CreateOrUpdateInput) (*PortfolioResponse, error)
}

type portfolioServiceHandler struct {
	Db                  *sql.DB
	PortfolioRepository repository.PortfolioRepository
}

func NewPortfolioService(db *sql.DB, portfolioRepository repository.PortfolioRepository) PortfolioService {
	return portfolioServiceHandler{
		Db:                  db,
		PortfolioRepository: portfolioRepository,
	}
}

func (h portfolioServiceHandler) GetByID(id int64) (*PortfolioResponse, error) {
	p, err := h.PortfolioRepository.Get(id)
	if err != nil {
		return nil, err
	}
	return toResponse(*p), nil
}

func (h portfolioServiceHandler) GetByUserID(userID string) (*PortfolioResponse, error) {
	p, err := h.PortfolioRepository.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	return toResponse(*p), nil
}

func (h portfolioServiceHandler) GetByRmID(rmID string) ([]PortfolioResponse, error) {
	portfolios, err := h.PortfolioRepository.ListByRmID(rmID)
	if err != nil {
		return nil, err
	}
	out := make([]PortfolioResponse, 0, len(portfolios))
	for _, p := range portfolios {
		out = append(out, *toResponse(p))
	}
	return out, nil
}

// CreateOrUpdate upserts the portfolio keyed by userId: totals are computed
// from the submitted cost basis, percentages applied, then the whole document
// is written. Knobs default to freeCash=0, cooldownDays=3,
// driftThresholdAbs=0.05, triggerMode=MANUAL when omitted.
func (h portfolioServiceHandler) CreateOrUpdate(input CreateOrUpdateInput) (*PortfolioResponse, error) {
	if input.UserDetails.UserID == "" {
		return nil, domain.ValidationError{Reason: "userDetails.userId is required"}
	}
	if len(input.Portfolio) == 0 {
		return nil, domain.ValidationError{Reason: "portfolio is required"}
	}
	if err := validateTargetStateSum(input.TargetState); err != nil {
		return nil, err
	}

	freeCash := decimal.Zero
	if input.FreeCash != nil {
		freeCash = *input.FreeCash
	}
	cooldownDays := 3
	if input.CooldownDays != nil {
		cooldownDays = *input.CooldownDays
	}
	driftThresholdAbs := decimal.NewFromFloat(0.05)
	if input.DriftThresholdAbs != nil {
		driftThresholdAbs = *input.DriftThresholdAbs
	}

	holdings := computeHoldings(input.Portfolio)
	portfolioValue := holdings.SumValue()
	applyPercentages(holdings, portfolioValue)

	entity := domain.Portfolio{
		FreeCash:          freeCash,
		CooldownDays:      cooldownDays,
		DriftThresholdAbs: driftThresholdAbs,
		TriggerMode:       domain.ParseTriggerMode(input.TriggerMode),
		UserID:            input.UserDetails.UserID,
		RmID:              input.RMDetails.RmID,
		UserDetails:       input.UserDetails,
		RMDetails:         input.RMDetails,
		Holdings:          holdings,
		TargetState:       input.TargetState,
	}

	existing, err := h.PortfolioRepository.GetByUserID(input.UserDetails.UserID)
	var saved *domain.Portfolio
	switch {
	case err == nil:
		entity.ID = existing.ID
		entity.CreatedOn = existing.CreatedOn
		saved, err = h.PortfolioRepository.Update(h.Db, entity)
	case isNotFound(err):
		saved, err = h.PortfolioRepository.Add(h.Db, entity)
	}
	if err != nil {
		return nil, err
	}

	return toResponse(*saved), nil
}

func validateTargetStateSum(targetState domain.TargetState) error {
	if len(targetState) == 0 {
		return domain.ValidationError{Reason: "targetState is required"}
	}
	sum := decimal.Zero
	for _, pct := range targetState {
		sum = sum.Add(pct)
	}
	tolerance := decimal.NewFromFloat(0.01)
	if sum.Sub(decimal.NewFromInt(100)).Abs().GreaterThan(tolerance) {
		return domain.ValidationError{Reason: "targetState must sum to 100"}
	}
	return nil
}

func computeHoldings(input map[domain.Category][]StockPositionInput) domain.Holdings {
	holdings := domain.Holdings{}
	for cat, positions := range input {
		bucket := make([]domain.StockPosition, 0, len(positions))
		for _, p := range positions {
			bucket = append(bucket, domain.StockPosition{
				Ticker:                p.Ticker,
				Name:                  p.Name,
				Quantity:              p.Quantity,
				AvgPrice:              p.AvgPrice,
				PercentageOfPortfolio: decimal.Zero,
				TotalAmount:           p.AvgPrice.Mul(decimal.NewFromInt(int64(p.Quantity))),
				PositionDate:          time.Now().UTC(),
			})
		}
		holdings[cat] = bucket
	}
	return holdings
}

func applyPercentages(holdings domain.Holdings, portfolioValue decimal.Decimal) {
	if portfolioValue.LessThanOrEqual(decimal.Zero) {
		return
	}
	hundred := decimal.NewFromInt(100)
	for cat, bucket := range holdings {
		for i, sp := range bucket {
			bucket[i].PercentageOfPortfolio = sp.TotalAmount.DivRound(portfolioValue, 8).Mul(hundred).Round(4)
		}
		holdings[cat] = bucket
	}
}

func isNotFound(err error) bool {
	var notFound domain.NotFoundError
	return errors.As(err, &notFound)
}

func toResponse(p domain.Portfolio) *PortfolioResponse {
	return &PortfolioResponse{
		PortfolioID:       p.ID,
		UserDetails:       p.UserDetails,
		RMDetails:         p.RMDetails,
		Portfolio:         p.Holdings,
		TargetState:       p.TargetState,
		PortfolioValue:    p.Holdings.SumValue(),
		UpdatedOn:         p.UpdatedOn,
		CreatedOn:         p.CreatedOn,
		TriggerMode:       p.TriggerMode,
		FreeCash:          p.FreeCash,
		DriftThresholdAbs: p.DriftThresholdAbs,
		CooldownDays:      p.CooldownDays,
	}
}
