package domain

import (
	"fmt"
	"time"
)

// ValidationError means the request itself is malformed. Nothing was touched.
type ValidationError struct {
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid request: %s", e.Reason)
}

// NotFoundError means no portfolio matched the lookup key.
type NotFoundError struct {
	Key   string
	Value string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("portfolio not found for %s=%s", e.Key, e.Value)
}

// InvalidCategoryError means a price row carried an unknown category wire name.
type InvalidCategoryError struct {
	Value string
}

func (e InvalidCategoryError) Error() string {
	return fmt.Sprintf("unknown category: %s", e.Value)
}

// MissingPriceError means a traded symbol has no row in the price frame.
type MissingPriceError struct {
	Symbol string
}

func (e MissingPriceError) Error() string {
	return fmt.Sprintf("missing price for symbol=%s in priceFrame", e.Symbol)
}

// InsufficientHoldingsError means a sell exceeded the held quantity. The whole
// batch aborts; nothing is persisted.
type InsufficientHoldingsError struct {
	Symbol   string
	Category Category
	Held     int
	Want     int
}

func (e InsufficientHoldingsError) Error() string {
	if e.Held == 0 {
		return fmt.Sprintf("cannot SELL; no holding for %s in category %s", e.Symbol, e.Category)
	}
	return fmt.Sprintf("cannot SELL %d of %s; only %d available", e.Want, e.Symbol, e.Held)
}

// LockTimeoutError means the per-portfolio lock could not be acquired within
// the bounded wait. Safe to retry.
type LockTimeoutError struct {
	PortfolioID int64
	Waited      time.Duration
}

func (e LockTimeoutError) Error() string {
	return fmt.Sprintf("timed out after %s waiting for portfolio %d lock", e.Waited, e.PortfolioID)
}
