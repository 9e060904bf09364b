package models

import (
	"encoding/json"
	"fmt"
)

// MetricCategory is one of the six fixed metric groupings.
type MetricCategory string

const (
	CategoryIncomeStatement      MetricCategory = "income_statement"
	CategoryProfitabilityMargins MetricCategory = "profitability_margins"
	CategoryGrowth               MetricCategory = "growth"
	CategoryValuation            MetricCategory = "valuation"
	CategoryDividends            MetricCategory = "dividends"
	CategoryRisk                 MetricCategory = "risk"
)

// CategoryOrder is the presentation order of the six categories.
var CategoryOrder = []MetricCategory{
	CategoryIncomeStatement,
	CategoryProfitabilityMargins,
	CategoryGrowth,
	CategoryValuation,
	CategoryDividends,
	CategoryRisk,
}

// CategoryLabel returns the display heading for a category.
func CategoryLabel(c MetricCategory) string {
	switch c {
	case CategoryIncomeStatement:
		return "INCOME STATEMENT"
	case CategoryProfitabilityMargins:
		return "PROFITABILITY & MARGINS"
	case CategoryGrowth:
		return "GROWTH"
	case CategoryValuation:
		return "VALUATION"
	case CategoryDividends:
		return "DIVIDENDS"
	case CategoryRisk:
		return "RISK"
	default:
		return string(c)
	}
}

// Unit describes how a metric value should be rendered.
type Unit string

const (
	UnitCurrency Unit = "currency"
	UnitPercent  Unit = "percent"
	UnitRatio    Unit = "ratio"
	UnitCount    Unit = "count"
)

// Metric display names. Fixed per category; every ticker produces the same
// key set with unavailable sentinels where source data is missing.
const (
	MetricRevenue         = "Revenue (TTM)"
	MetricNetIncome       = "Net Income (TTM)"
	MetricOperatingIncome = "Operating Income (TTM)"
	MetricEBITDA          = "EBITDA (TTM)"
	MetricFreeCashFlow    = "Free Cash Flow (TTM)"
	MetricProfitMargin    = "Profit Margin"
	MetricOperatingMargin = "Operating Margin"
	MetricEBITDAMargin    = "EBITDA Margin"
	MetricROE             = "Return on Equity (ROE)"
	MetricRevenueGrowth   = "Revenue Growth (YoY)"
	MetricEarningsGrowth  = "Earnings Growth (YoY)"
	MetricCurrentPrice    = "Current Price"
	MetricMarketCap       = "Market Cap"
	MetricHigh52Week      = "52-Week High"
	MetricLow52Week       = "52-Week Low"
	MetricDistFromHigh    = "Distance from 52W High"
	MetricTrailingPE      = "P/E Ratio"
	MetricForwardPE       = "Forward P/E"
	MetricPriceToSales    = "Price to Sales (P/S)"
	MetricDividendYield   = "Dividend Yield"
	MetricPayoutRatio     = "Payout Ratio"
	MetricBeta            = "Beta"
)

// MetricDef fixes the position, identity, and unit of one schema entry.
type MetricDef struct {
	Category MetricCategory
	Name     string
	Unit     Unit
}

// metricSchema is the closed schema: every Compute output contains exactly
// these metrics in exactly this order.
var metricSchema = []MetricDef{
	{CategoryIncomeStatement, MetricRevenue, UnitCurrency},
	{CategoryIncomeStatement, MetricNetIncome, UnitCurrency},
	{CategoryIncomeStatement, MetricOperatingIncome, UnitCurrency},
	{CategoryIncomeStatement, MetricEBITDA, UnitCurrency},
	{CategoryIncomeStatement, MetricFreeCashFlow, UnitCurrency},
	{CategoryProfitabilityMargins, MetricProfitMargin, UnitPercent},
	{CategoryProfitabilityMargins, MetricOperatingMargin, UnitPercent},
	{CategoryProfitabilityMargins, MetricEBITDAMargin, UnitPercent},
	{CategoryProfitabilityMargins, MetricROE, UnitPercent},
	{CategoryGrowth, MetricRevenueGrowth, UnitPercent},
	{CategoryGrowth, MetricEarningsGrowth, UnitPercent},
	{CategoryValuation, MetricCurrentPrice, UnitCurrency},
	{CategoryValuation, MetricMarketCap, UnitCurrency},
	{CategoryValuation, MetricHigh52Week, UnitCurrency},
	{CategoryValuation, MetricLow52Week, UnitCurrency},
	{CategoryValuation, MetricDistFromHigh, UnitPercent},
	{CategoryValuation, MetricTrailingPE, UnitRatio},
	{CategoryValuation, MetricForwardPE, UnitRatio},
	{CategoryValuation, MetricPriceToSales, UnitRatio},
	{CategoryDividends, MetricDividendYield, UnitPercent},
	{CategoryDividends, MetricPayoutRatio, UnitPercent},
	{CategoryRisk, MetricBeta, UnitRatio},
}

// MetricSchema returns the full fixed schema in presentation order.
func MetricSchema() []MetricDef {
	out := make([]MetricDef, len(metricSchema))
	copy(out, metricSchema)
	return out
}

// MetricSchemaSize is the fixed number of metrics per ticker.
func MetricSchemaSize() int {
	return len(metricSchema)
}

// MetricValue is an explicit present-or-unavailable wrapper, so rendering
// code is forced to handle missing source data rather than mistaking it
// for zero.
type MetricValue struct {
	value   float64
	present bool
}

// Present wraps an available value.
func Present(v float64) MetricValue {
	return MetricValue{value: v, present: true}
}

// Unavailable is the sentinel for missing source data.
func Unavailable() MetricValue {
	return MetricValue{}
}

// Value returns the numeric value and whether it is available.
func (m MetricValue) Value() (float64, bool) {
	return m.value, m.present
}

// IsAvailable reports whether source data produced a value.
func (m MetricValue) IsAvailable() bool {
	return m.present
}

// unavailableJSON is the wire form of the sentinel.
const unavailableJSON = `"unavailable"`

// MarshalJSON emits the number when present, the string "unavailable"
// otherwise.
func (m MetricValue) MarshalJSON() ([]byte, error) {
	if !m.present {
		return []byte(unavailableJSON), nil
	}
	return json.Marshal(m.value)
}

// UnmarshalJSON accepts a number or the "unavailable" sentinel string.
func (m *MetricValue) UnmarshalJSON(data []byte) error {
	if string(data) == unavailableJSON || string(data) == "null" {
		*m = Unavailable()
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("metric value must be a number or %s: %w", unavailableJSON, err)
	}
	*m = Present(v)
	return nil
}

// Metric is one (category, name, value, unit) entry of a ticker's metric set.
type Metric struct {
	Category MetricCategory `json:"category"`
	Name     string         `json:"name"`
	Value    MetricValue    `json:"value"`
	Unit     Unit           `json:"unit"`
}

// MetricSet is a ticker's full metric set in fixed schema order. Length and
// (category, name) keys always match MetricSchema exactly.
type MetricSet []Metric

// Get returns the metric for (category, name), or false when the pair is
// not part of the schema.
func (s MetricSet) Get(category MetricCategory, name string) (Metric, bool) {
	for _, m := range s {
		if m.Category == category && m.Name == name {
			return m, true
		}
	}
	return Metric{}, false
}

// Category returns the metrics of one category in schema order.
func (s MetricSet) Category(category MetricCategory) []Metric {
	var out []Metric
	for _, m := range s {
		if m.Category == category {
			out = append(out, m)
		}
	}
	return out
}
