package analysis

import (
	"fmt"
	"time"

	"github.com/bobmcallan/stockdash/internal/models"
)

// MaxTickers is the comparison cardinality limit.
const MaxTickers = 3

// ComparisonAssembler combines per-ticker metrics, the aligned series, and
// news into one result, enforcing the 1..MaxTickers cardinality and the
// caller's ticker order.
type ComparisonAssembler struct {
	now func() time.Time
}

// NewComparisonAssembler creates an assembler using wall-clock time.
func NewComparisonAssembler() *ComparisonAssembler {
	return &ComparisonAssembler{now: time.Now}
}

// ValidateTickers checks cardinality only. It is called before any market
// data is fetched so an invalid request never costs API calls.
func (ca *ComparisonAssembler) ValidateTickers(tickers []string) error {
	if len(tickers) == 0 {
		return ErrNoTickers
	}
	if len(tickers) > MaxTickers {
		return ErrTooManyTickers
	}
	return nil
}

// Assemble builds the comparison result. Metrics must cover every ticker;
// the aligned series must carry the same tickers in the same order.
func (ca *ComparisonAssembler) Assemble(
	tickers []string,
	timeframe models.Timeframe,
	metrics map[string]models.MetricSet,
	series *models.AlignedSeries,
	news map[string][]models.NewsItem,
) (*models.ComparisonResult, error) {
	if err := ca.ValidateTickers(tickers); err != nil {
		return nil, err
	}

	for _, ticker := range tickers {
		if _, ok := metrics[ticker]; !ok {
			return nil, fmt.Errorf("missing metrics for %s", ticker)
		}
	}

	if series != nil {
		if len(series.Tickers) != len(tickers) {
			return nil, fmt.Errorf("aligned series covers %d tickers, expected %d", len(series.Tickers), len(tickers))
		}
		for i, ticker := range tickers {
			if series.Tickers[i] != ticker {
				return nil, fmt.Errorf("aligned series order mismatch at %d: %s != %s", i, series.Tickers[i], ticker)
			}
		}
	}

	return &models.ComparisonResult{
		Tickers:     tickers,
		Timeframe:   timeframe,
		Metrics:     metrics,
		Series:      series,
		News:        news,
		GeneratedAt: ca.now().UTC(),
	}, nil
}
