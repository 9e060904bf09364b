// Package interfaces defines service contracts for stockdash
package interfaces

import (
	"context"
	"time"

	"github.com/bobmcallan/stockdash/internal/models"
)

// MarketDataClient provides access to a market-data provider. It must
// return either complete data or an error per call; retries, timeouts, and
// rate limiting are the implementation's concern, not the caller's.
type MarketDataClient interface {
	// GetEOD retrieves end-of-day price history, oldest bar first.
	GetEOD(ctx context.Context, ticker string, opts ...EODOption) (*models.PriceSeries, error)

	// GetFundamentals retrieves the raw fundamental figures for a ticker.
	GetFundamentals(ctx context.Context, ticker string) (models.RawFundamentals, error)

	// GetNews retrieves recent news for a ticker, most recent first.
	GetNews(ctx context.Context, ticker string, limit int) ([]models.NewsItem, error)
}

// EODOption configures EOD data requests
type EODOption func(*EODParams)

// EODParams holds EOD query parameters
type EODParams struct {
	From   time.Time
	To     time.Time
	Period string // d=daily, w=weekly, m=monthly
}

// WithDateRange sets the date range for EOD query. A zero From means no
// lower bound (full available history).
func WithDateRange(from, to time.Time) EODOption {
	return func(p *EODParams) {
		p.From = from
		p.To = to
	}
}

// WithPeriod sets the period for EOD query
func WithPeriod(period string) EODOption {
	return func(p *EODParams) {
		p.Period = period
	}
}
