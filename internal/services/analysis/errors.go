package analysis

import (
	"errors"
	"fmt"
)

var (
	// ErrNoTickers is returned when a request carries no tickers.
	ErrNoTickers = errors.New("at least one ticker is required")

	// ErrTooManyTickers is returned when a request exceeds the comparison limit.
	ErrTooManyTickers = fmt.Errorf("at most %d tickers per comparison", MaxTickers)

	// ErrInsufficientOverlap is returned when compared series share no
	// trading dates.
	ErrInsufficientOverlap = errors.New("series share no common trading dates")
)

// FetchError wraps a market-data failure with the ticker and stage
// (prices, fundamentals, news) that failed. Any fetch failure aborts the
// whole comparison.
type FetchError struct {
	Ticker string
	Stage  string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s for %s: %v", e.Stage, e.Ticker, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
