package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type TriggerMode string

const (
	TriggerMode_Manual TriggerMode = "MANUAL"
	TriggerMode_Auto   TriggerMode = "AUTO"
)

// ParseTriggerMode falls back to MANUAL on anything unrecognized.
func ParseTriggerMode(v string) TriggerMode {
	if strings.EqualFold(v, string(TriggerMode_Auto)) {
		return TriggerMode_Auto
	}
	return TriggerMode_Manual
}

// StockPosition is one holding inside a category bucket. A ticker appears at
// most once per bucket; quantity never persists as zero (the position is
// removed instead).
type StockPosition struct {
	Ticker                string          `json:"ticker"`
	Name                  string          `json:"name"`
	Quantity              int             `json:"quantity"`
	AvgPrice              decimal.Decimal `json:"avgPrice"`
	PercentageOfPortfolio decimal.Decimal `json:"percentageOfPortfolio"`
	TotalAmount           decimal.Decimal `json:"totalAmount"`
	PositionDate          time.Time       `json:"-"`
}

// Holdings maps each category to its ordered positions.
type Holdings map[Category][]StockPosition

// TargetState maps category to its target percent of the portfolio (0-100).
type TargetState map[Category]decimal.Decimal

type UserDetails struct {
	UserID      string `json:"userId"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}

type RMDetails struct {
	RmID        string `json:"rmId"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}

// Portfolio is the in-memory aggregate the rebalance engine mutates. The
// persistence layer owns the stored row; appliers borrow a copy of it under
// the portfolio lock and write it back atomically at commit.
type Portfolio struct {
	ID                int64
	FreeCash          decimal.Decimal
	CooldownDays      int
	DriftThresholdAbs decimal.Decimal
	TriggerMode       TriggerMode
	UserID            string
	RmID              string
	CreatedOn         time.Time
	UpdatedOn         time.Time
	UserDetails       UserDetails
	RMDetails         RMDetails
	Holdings          Holdings
	TargetState       TargetState
}

// DeepCopy returns holdings with every bucket's slice copied, so trade
// application never aliases the loaded state.
func (h Holdings) DeepCopy() Holdings {
	out := Holdings{}
	for _, c := range Categories() {
		bucket := make([]StockPosition, len(h[c]))
		copy(bucket, h[c])
		out[c] = bucket
	}
	return out
}

// IndexOfTicker finds a ticker within a bucket, case-insensitively. Returns -1
// when absent.
func IndexOfTicker(bucket []StockPosition, symbol string) int {
	for i, sp := range bucket {
		if strings.EqualFold(sp.Ticker, symbol) {
			return i
		}
	}
	return -1
}

// SumValue adds up every position's totalAmount across all buckets.
func (h Holdings) SumValue() decimal.Decimal {
	total := decimal.Zero
	for _, bucket := range h {
		for _, sp := range bucket {
			total = total.Add(sp.TotalAmount)
		}
	}
	return total
}
