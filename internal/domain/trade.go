package domain

type Side string

const (
	Side_Buy  Side = "BUY"
	Side_Sell Side = "SELL"
)

// ExecutedTrade is a fill reported by the execution process. Trades with a
// blank ticker or non-positive qty are skipped, not rejected.
type ExecutedTrade struct {
	Ticker string `json:"ticker"`
	Side   Side   `json:"side"`
	Qty    int    `json:"qty"`
	Reason string `json:"reason"`
}
