package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/stockdash/internal/models"
)

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func seriesOf(ticker string, bars ...models.PriceBar) *models.PriceSeries {
	return &models.PriceSeries{Ticker: ticker, Bars: bars}
}

func bar(d int, close float64) models.PriceBar {
	return models.PriceBar{Date: day(d), Close: close}
}

func TestAlignSingleSeries(t *testing.T) {
	aligner := NewTimeSeriesAligner()

	aligned, err := aligner.Align([]*models.PriceSeries{
		seriesOf("AAPL", bar(1, 100), bar(2, 110), bar(3, 90)),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"AAPL"}, aligned.Tickers)
	assert.Equal(t, 3, aligned.Len())
	assert.Equal(t, []float64{0, 10, -10}, aligned.ChangePct["AAPL"])
}

func TestAlignIntersection(t *testing.T) {
	aligner := NewTimeSeriesAligner()

	// AAPL misses day 3, MSFT misses day 1; axis is days 2 and 4
	aligned, err := aligner.Align([]*models.PriceSeries{
		seriesOf("AAPL", bar(1, 95), bar(2, 100), bar(4, 120)),
		seriesOf("MSFT", bar(2, 200), bar(3, 210), bar(4, 220)),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"AAPL", "MSFT"}, aligned.Tickers)
	require.Equal(t, []time.Time{day(2), day(4)}, aligned.Dates)
	assert.Equal(t, []float64{0, 20}, aligned.ChangePct["AAPL"])
	assert.Equal(t, []float64{0, 10}, aligned.ChangePct["MSFT"])
}

func TestAlignFirstPointAlwaysZero(t *testing.T) {
	aligner := NewTimeSeriesAligner()

	aligned, err := aligner.Align([]*models.PriceSeries{
		seriesOf("A", bar(1, 37.5), bar(2, 41)),
		seriesOf("B", bar(1, 1200), bar(2, 1180)),
	})
	require.NoError(t, err)

	for _, ticker := range aligned.Tickers {
		pct, ok := aligned.SeriesFor(ticker)
		require.True(t, ok)
		require.NotEmpty(t, pct)
		assert.Zero(t, pct[0], "%s first point must be rebased to zero", ticker)
	}
}

func TestAlignExactPercentages(t *testing.T) {
	// difference-over-base form keeps clean inputs exact; 100 -> 110 must be
	// exactly 10, not 10.000000000000009
	aligned, err := NewTimeSeriesAligner().Align([]*models.PriceSeries{
		seriesOf("AAPL", bar(1, 100), bar(2, 110), bar(3, 90)),
	})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 10, -10}, aligned.ChangePct["AAPL"])
}

func TestAlignNoOverlap(t *testing.T) {
	aligner := NewTimeSeriesAligner()

	_, err := aligner.Align([]*models.PriceSeries{
		seriesOf("AAPL", bar(1, 100), bar(2, 110)),
		seriesOf("MSFT", bar(3, 200), bar(4, 210)),
	})
	assert.ErrorIs(t, err, ErrInsufficientOverlap)
}

func TestAlignEmptyInput(t *testing.T) {
	_, err := NewTimeSeriesAligner().Align(nil)
	assert.ErrorIs(t, err, ErrInsufficientOverlap)
}

func TestAlignZeroBasePrice(t *testing.T) {
	_, err := NewTimeSeriesAligner().Align([]*models.PriceSeries{
		seriesOf("BAD", bar(1, 0), bar(2, 10)),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "zero close")
}

func TestAlignPreservesInputOrder(t *testing.T) {
	aligned, err := NewTimeSeriesAligner().Align([]*models.PriceSeries{
		seriesOf("ZZZ", bar(1, 10), bar(2, 11)),
		seriesOf("AAA", bar(1, 20), bar(2, 22)),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"ZZZ", "AAA"}, aligned.Tickers)
}
