package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// PriceRow is one symbol's entry in the price snapshot shipped with a
// rebalance request. Category here is the wire string, parsed lazily so a bad
// category only fails the batch if the symbol is actually traded.
type PriceRow struct {
	Symbol   string          `json:"symbol"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
	Name     string          `json:"name"`
}

// PriceIndex maps uppercased symbol to its price row.
type PriceIndex map[string]PriceRow

// BuildPriceIndex keys the frame by uppercased symbol. The first occurrence
// of a duplicate symbol wins.
func BuildPriceIndex(frame []PriceRow) PriceIndex {
	index := PriceIndex{}
	for _, row := range frame {
		key := strings.ToUpper(row.Symbol)
		if _, ok := index[key]; ok {
			continue
		}
		index[key] = row
	}
	return index
}

// Lookup returns the row for a symbol, case-insensitively.
func (p PriceIndex) Lookup(symbol string) (PriceRow, bool) {
	row, ok := p[strings.ToUpper(symbol)]
	return row, ok
}
