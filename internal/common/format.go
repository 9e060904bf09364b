package common

import (
	"fmt"
	"math"

	"github.com/bobmcallan/stockdash/internal/models"
)

// FormatMoney renders a dollar amount with T/B/M abbreviations for large
// values, e.g. "$1.25B", "-$340.00M", "$42,500" below one million.
func FormatMoney(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = math.Abs(v)
	}

	switch {
	case v >= 1e12:
		return fmt.Sprintf("%s$%.2fT", sign, v/1e12)
	case v >= 1e9:
		return fmt.Sprintf("%s$%.2fB", sign, v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("%s$%.2fM", sign, v/1e6)
	default:
		return fmt.Sprintf("%s$%.2f", sign, v)
	}
}

// FormatPct renders a percentage with two decimals, e.g. "12.34%".
func FormatPct(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}

// FormatSignedPct renders a percentage with an explicit sign, e.g. "+4.20%".
func FormatSignedPct(v float64) string {
	if v >= 0 {
		return fmt.Sprintf("+%.2f%%", v)
	}
	return fmt.Sprintf("%.2f%%", v)
}

// FormatRatio renders a dimensionless ratio with two decimals.
func FormatRatio(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// MetricNotAvailable is the display string for the unavailable sentinel.
const MetricNotAvailable = "N/A"

// FormatMetric renders a metric value for display according to its unit.
// Unavailable values render as N/A. Rounding happens here, never in the
// analysis pipeline.
func FormatMetric(m models.Metric) string {
	v, ok := m.Value.Value()
	if !ok {
		return MetricNotAvailable
	}
	switch m.Unit {
	case models.UnitCurrency:
		return FormatMoney(v)
	case models.UnitPercent:
		return FormatPct(v)
	case models.UnitRatio:
		return FormatRatio(v)
	case models.UnitCount:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
