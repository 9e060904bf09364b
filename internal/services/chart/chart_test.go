package chart

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/stockdash/internal/models"
)

var pngMagic = []byte{0x89, 0x50, 0x4E, 0x47}

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func testAligned() *models.AlignedSeries {
	return &models.AlignedSeries{
		Tickers: []string{"AAPL", "MSFT"},
		Dates:   []time.Time{day(1), day(2), day(3)},
		ChangePct: map[string][]float64{
			"AAPL": {0, 5, 12},
			"MSFT": {0, -2, 3},
		},
	}
}

func TestRenderComparison(t *testing.T) {
	png, err := NewRenderer().RenderComparison(testAligned())
	require.NoError(t, err)
	require.Greater(t, len(png), len(pngMagic))
	assert.Equal(t, pngMagic, png[:len(pngMagic)])
}

func TestRenderComparisonTooFewPoints(t *testing.T) {
	renderer := NewRenderer()

	_, err := renderer.RenderComparison(nil)
	assert.Error(t, err)

	aligned := testAligned()
	aligned.Dates = aligned.Dates[:1]
	aligned.ChangePct["AAPL"] = aligned.ChangePct["AAPL"][:1]
	aligned.ChangePct["MSFT"] = aligned.ChangePct["MSFT"][:1]
	_, err = renderer.RenderComparison(aligned)
	assert.Error(t, err)
}

func TestRenderComparisonLengthMismatch(t *testing.T) {
	aligned := testAligned()
	aligned.ChangePct["MSFT"] = []float64{0}

	_, err := NewRenderer().RenderComparison(aligned)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "length mismatch")
}

func TestRenderPriceHistory(t *testing.T) {
	series := &models.PriceSeries{
		Ticker: "AAPL",
		Bars: []models.PriceBar{
			{Date: day(1), Close: 100},
			{Date: day(2), Close: 105},
			{Date: day(3), Close: 103},
		},
	}

	png, err := NewRenderer().RenderPriceHistory(series)
	require.NoError(t, err)
	assert.Equal(t, pngMagic, png[:len(pngMagic)])
}

func TestRenderPriceHistoryTooFewPoints(t *testing.T) {
	_, err := NewRenderer().RenderPriceHistory(&models.PriceSeries{Ticker: "AAPL"})
	assert.Error(t, err)
}
