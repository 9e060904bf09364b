package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeTicker(t *testing.T) {
	assert.Equal(t, "AAPL", NormalizeTicker(" aapl "))
	assert.Equal(t, "BHP.AX", NormalizeTicker("bhp.ax"))
	assert.Equal(t, "", NormalizeTicker("   "))
}

func TestPriceSeriesValidate(t *testing.T) {
	d := func(day int) time.Time { return time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC) }

	good := &PriceSeries{Ticker: "AAPL", Bars: []PriceBar{
		{Date: d(1)}, {Date: d(2)}, {Date: d(5)},
	}}
	assert.NoError(t, good.Validate())

	dup := &PriceSeries{Ticker: "AAPL", Bars: []PriceBar{
		{Date: d(1)}, {Date: d(1)},
	}}
	assert.Error(t, dup.Validate())

	assert.NoError(t, (&PriceSeries{Ticker: "AAPL"}).Validate())
}

func TestPriceSeriesLatest(t *testing.T) {
	s := &PriceSeries{Ticker: "AAPL", Bars: []PriceBar{
		{Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Close: 100},
		{Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Close: 105},
	}}

	latest, ok := s.Latest()
	require.True(t, ok)
	assert.Equal(t, 105.0, latest.Close)

	_, ok = (&PriceSeries{}).Latest()
	assert.False(t, ok)
}

func TestRawFundamentalsLookup(t *testing.T) {
	raw := RawFundamentals{KeyRevenueTTM: 0}

	v, ok := raw.Lookup(KeyRevenueTTM)
	assert.True(t, ok, "explicit zero is still present")
	assert.Zero(t, v)

	_, ok = raw.Lookup(KeyBeta)
	assert.False(t, ok)

	var nilRaw RawFundamentals
	_, ok = nilRaw.Lookup(KeyBeta)
	assert.False(t, ok)
}
