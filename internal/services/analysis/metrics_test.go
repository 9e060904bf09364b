package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/stockdash/internal/models"
)

func fullRaw() models.RawFundamentals {
	return models.RawFundamentals{
		models.KeyRevenueTTM:         391_035_000_000,
		models.KeyNetIncomeTTM:       93_736_000_000,
		models.KeyOperatingIncomeTTM: 123_216_000_000,
		models.KeyEBITDATTM:          134_661_000_000,
		models.KeyCashFromOpsTTM:     118_254_000_000,
		models.KeyCapExTTM:           -9_447_000_000,
		models.KeyReturnOnEquity:     1.474,
		models.KeyRevenueGrowthYoY:   0.061,
		models.KeyEarningsGrowthYoY:  -0.034,
		models.KeyCurrentPrice:       227.52,
		models.KeyMarketCap:          3_450_000_000_000,
		models.KeyHigh52Week:         237.23,
		models.KeyLow52Week:          164.08,
		models.KeyTrailingPE:         34.6,
		models.KeyForwardPE:          30.1,
		models.KeyPriceToSales:       8.8,
		models.KeyDividendYield:      0.0044,
		models.KeyPayoutRatio:        0.147,
		models.KeyBeta:               1.25,
	}
}

func mustValue(t *testing.T, set models.MetricSet, category models.MetricCategory, name string) float64 {
	t.Helper()
	m, ok := set.Get(category, name)
	require.True(t, ok, "metric %s/%s not in set", category, name)
	v, present := m.Value.Value()
	require.True(t, present, "metric %s/%s unavailable", category, name)
	return v
}

func mustUnavailable(t *testing.T, set models.MetricSet, category models.MetricCategory, name string) {
	t.Helper()
	m, ok := set.Get(category, name)
	require.True(t, ok, "metric %s/%s not in set", category, name)
	assert.False(t, m.Value.IsAvailable(), "metric %s/%s should be unavailable", category, name)
}

func TestComputeFullSchemaAlwaysReturned(t *testing.T) {
	computer := NewMetricComputer()

	for _, tc := range []struct {
		name string
		raw  models.RawFundamentals
	}{
		{"empty", models.RawFundamentals{}},
		{"nil", nil},
		{"full", fullRaw()},
	} {
		t.Run(tc.name, func(t *testing.T) {
			set := computer.Compute(tc.raw)
			require.Len(t, set, models.MetricSchemaSize())
			for i, def := range models.MetricSchema() {
				assert.Equal(t, def.Category, set[i].Category)
				assert.Equal(t, def.Name, set[i].Name)
				assert.Equal(t, def.Unit, set[i].Unit)
			}
		})
	}
}

func TestComputeEmptyInputAllUnavailable(t *testing.T) {
	set := NewMetricComputer().Compute(models.RawFundamentals{})
	for _, m := range set {
		assert.False(t, m.Value.IsAvailable(), "%s should be unavailable", m.Name)
	}
}

func TestComputeMargins(t *testing.T) {
	set := NewMetricComputer().Compute(fullRaw())

	assert.InDelta(t, 23.97, mustValue(t, set, models.CategoryProfitabilityMargins, models.MetricProfitMargin), 0.01)
	assert.InDelta(t, 31.51, mustValue(t, set, models.CategoryProfitabilityMargins, models.MetricOperatingMargin), 0.01)
	assert.InDelta(t, 34.44, mustValue(t, set, models.CategoryProfitabilityMargins, models.MetricEBITDAMargin), 0.01)
}

func TestComputeMarginsZeroRevenue(t *testing.T) {
	raw := models.RawFundamentals{
		models.KeyRevenueTTM:   0,
		models.KeyNetIncomeTTM: 100,
	}
	set := NewMetricComputer().Compute(raw)

	mustUnavailable(t, set, models.CategoryProfitabilityMargins, models.MetricProfitMargin)
	// revenue itself is a real zero and stays visible
	assert.Equal(t, 0.0, mustValue(t, set, models.CategoryIncomeStatement, models.MetricRevenue))
}

func TestComputeMarginsMissingRevenue(t *testing.T) {
	raw := models.RawFundamentals{models.KeyNetIncomeTTM: 100}
	set := NewMetricComputer().Compute(raw)
	mustUnavailable(t, set, models.CategoryProfitabilityMargins, models.MetricProfitMargin)
}

func TestComputeFreeCashFlow(t *testing.T) {
	set := NewMetricComputer().Compute(fullRaw())
	assert.InDelta(t, 108_807_000_000, mustValue(t, set, models.CategoryIncomeStatement, models.MetricFreeCashFlow), 1)

	// missing capex means no FCF, not FCF == CFO
	raw := models.RawFundamentals{models.KeyCashFromOpsTTM: 100}
	set = NewMetricComputer().Compute(raw)
	mustUnavailable(t, set, models.CategoryIncomeStatement, models.MetricFreeCashFlow)
}

func TestComputeDistanceFromHigh(t *testing.T) {
	set := NewMetricComputer().Compute(fullRaw())
	assert.InDelta(t, -4.09, mustValue(t, set, models.CategoryValuation, models.MetricDistFromHigh), 0.01)

	raw := models.RawFundamentals{
		models.KeyCurrentPrice: 100,
		models.KeyHigh52Week:   0,
	}
	set = NewMetricComputer().Compute(raw)
	mustUnavailable(t, set, models.CategoryValuation, models.MetricDistFromHigh)
}

func TestComputeFractionsBecomePercent(t *testing.T) {
	set := NewMetricComputer().Compute(fullRaw())

	assert.InDelta(t, 147.4, mustValue(t, set, models.CategoryProfitabilityMargins, models.MetricROE), 0.01)
	assert.InDelta(t, 6.1, mustValue(t, set, models.CategoryGrowth, models.MetricRevenueGrowth), 0.01)
	assert.InDelta(t, -3.4, mustValue(t, set, models.CategoryGrowth, models.MetricEarningsGrowth), 0.01)
	assert.InDelta(t, 0.44, mustValue(t, set, models.CategoryDividends, models.MetricDividendYield), 0.01)
	assert.InDelta(t, 14.7, mustValue(t, set, models.CategoryDividends, models.MetricPayoutRatio), 0.01)
}

func TestComputeZeroRatiosUnavailable(t *testing.T) {
	raw := models.RawFundamentals{
		models.KeyTrailingPE: 0,
		models.KeyBeta:       0,
		models.KeyMarketCap:  0,
	}
	set := NewMetricComputer().Compute(raw)

	mustUnavailable(t, set, models.CategoryValuation, models.MetricTrailingPE)
	mustUnavailable(t, set, models.CategoryRisk, models.MetricBeta)
	mustUnavailable(t, set, models.CategoryValuation, models.MetricMarketCap)
}
