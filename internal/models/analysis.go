package models

import (
	"time"
)

// AlignedSeries holds the percent-change series of 1-3 tickers on a shared
// timestamp axis. Every per-ticker sequence has the same length as Dates,
// with matching timestamps at each index; values are percent change relative
// to the first point on the common axis.
type AlignedSeries struct {
	Tickers   []string             `json:"tickers"` // caller-supplied order
	Dates     []time.Time          `json:"dates"`
	ChangePct map[string][]float64 `json:"change_pct"`
}

// Len returns the number of points on the common axis.
func (a *AlignedSeries) Len() int {
	return len(a.Dates)
}

// SeriesFor returns the percent-change sequence for ticker, or false when
// the ticker is not part of the alignment.
func (a *AlignedSeries) SeriesFor(ticker string) ([]float64, bool) {
	s, ok := a.ChangePct[ticker]
	return s, ok
}

// ComparisonResult is the presentation-ready output of one analysis request
// for 1-3 tickers. It is request-scoped: created fresh per request, owned by
// the caller, and discarded once the presenter has consumed it.
type ComparisonResult struct {
	Tickers     []string              `json:"tickers"` // caller-supplied order
	Timeframe   Timeframe             `json:"timeframe"`
	Metrics     map[string]MetricSet  `json:"metrics"`
	Series      *AlignedSeries        `json:"series"`
	News        map[string][]NewsItem `json:"news"`
	GeneratedAt time.Time             `json:"generated_at"`
}
