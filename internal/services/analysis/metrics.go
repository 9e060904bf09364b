package analysis

import (
	"github.com/bobmcallan/stockdash/internal/models"
)

// MetricComputer derives the fixed metric set for one ticker from raw
// fundamentals. Missing source fields and zero denominators produce the
// unavailable sentinel, never an error and never a silent zero.
type MetricComputer struct{}

// NewMetricComputer creates a metric computer.
func NewMetricComputer() *MetricComputer {
	return &MetricComputer{}
}

// Compute maps raw fundamentals onto the full metric schema. The result
// always contains every schema entry in schema order, regardless of how
// sparse the input is.
func (mc *MetricComputer) Compute(raw models.RawFundamentals) models.MetricSet {
	values := map[string]models.MetricValue{
		models.MetricRevenue:         passthrough(raw, models.KeyRevenueTTM),
		models.MetricNetIncome:       passthrough(raw, models.KeyNetIncomeTTM),
		models.MetricOperatingIncome: passthrough(raw, models.KeyOperatingIncomeTTM),
		models.MetricEBITDA:          passthrough(raw, models.KeyEBITDATTM),
		models.MetricFreeCashFlow:    freeCashFlow(raw),

		models.MetricProfitMargin:    margin(raw, models.KeyNetIncomeTTM),
		models.MetricOperatingMargin: margin(raw, models.KeyOperatingIncomeTTM),
		models.MetricEBITDAMargin:    margin(raw, models.KeyEBITDATTM),
		models.MetricROE:             fractionAsPercent(raw, models.KeyReturnOnEquity),

		models.MetricRevenueGrowth:  fractionAsPercent(raw, models.KeyRevenueGrowthYoY),
		models.MetricEarningsGrowth: fractionAsPercent(raw, models.KeyEarningsGrowthYoY),

		models.MetricCurrentPrice: passthrough(raw, models.KeyCurrentPrice),
		models.MetricMarketCap:    nonZero(raw, models.KeyMarketCap),
		models.MetricHigh52Week:   nonZero(raw, models.KeyHigh52Week),
		models.MetricLow52Week:    nonZero(raw, models.KeyLow52Week),
		models.MetricDistFromHigh: distanceFromHigh(raw),
		models.MetricTrailingPE:   nonZero(raw, models.KeyTrailingPE),
		models.MetricForwardPE:    nonZero(raw, models.KeyForwardPE),
		models.MetricPriceToSales: nonZero(raw, models.KeyPriceToSales),

		models.MetricDividendYield: fractionAsPercent(raw, models.KeyDividendYield),
		models.MetricPayoutRatio:   fractionAsPercent(raw, models.KeyPayoutRatio),

		models.MetricBeta: nonZero(raw, models.KeyBeta),
	}

	set := make(models.MetricSet, 0, models.MetricSchemaSize())
	for _, def := range models.MetricSchema() {
		v, ok := values[def.Name]
		if !ok {
			v = models.Unavailable()
		}
		set = append(set, models.Metric{
			Category: def.Category,
			Name:     def.Name,
			Value:    v,
			Unit:     def.Unit,
		})
	}
	return set
}

// passthrough surfaces a raw field as-is when present.
func passthrough(raw models.RawFundamentals, key string) models.MetricValue {
	if v, ok := raw.Lookup(key); ok {
		return models.Present(v)
	}
	return models.Unavailable()
}

// nonZero surfaces a raw field when present and non-zero. Providers report
// zero for ratios they do not track, so zero means absent here.
func nonZero(raw models.RawFundamentals, key string) models.MetricValue {
	if v, ok := raw.Lookup(key); ok && v != 0 {
		return models.Present(v)
	}
	return models.Unavailable()
}

// fractionAsPercent converts a provider fraction (0.25) to a percentage (25).
func fractionAsPercent(raw models.RawFundamentals, key string) models.MetricValue {
	if v, ok := raw.Lookup(key); ok {
		return models.Present(v * 100)
	}
	return models.Unavailable()
}

// margin divides a statement item by revenue, as a percentage. Unavailable
// when either side is missing or revenue is zero.
func margin(raw models.RawFundamentals, numeratorKey string) models.MetricValue {
	num, ok := raw.Lookup(numeratorKey)
	if !ok {
		return models.Unavailable()
	}
	rev, ok := raw.Lookup(models.KeyRevenueTTM)
	if !ok || rev == 0 {
		return models.Unavailable()
	}
	return models.Present(num / rev * 100)
}

// freeCashFlow is cash from operations plus capital expenditures (capex is
// reported negative). Both components are required.
func freeCashFlow(raw models.RawFundamentals) models.MetricValue {
	cfo, ok := raw.Lookup(models.KeyCashFromOpsTTM)
	if !ok {
		return models.Unavailable()
	}
	capex, ok := raw.Lookup(models.KeyCapExTTM)
	if !ok {
		return models.Unavailable()
	}
	return models.Present(cfo + capex)
}

// distanceFromHigh is the percent gap between the current price and the
// 52-week high, zero or negative for a stock at or below its high.
func distanceFromHigh(raw models.RawFundamentals) models.MetricValue {
	price, ok := raw.Lookup(models.KeyCurrentPrice)
	if !ok {
		return models.Unavailable()
	}
	high, ok := raw.Lookup(models.KeyHigh52Week)
	if !ok || high == 0 {
		return models.Unavailable()
	}
	return models.Present((price - high) / high * 100)
}
