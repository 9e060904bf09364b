package analysis

import (
	"fmt"
	"sort"
	"time"

	"github.com/bobmcallan/stockdash/internal/models"
)

// TimeSeriesAligner puts multiple price histories on a shared date axis so
// they can be charted together. The axis is the intersection of trading
// dates: tickers on different exchanges trade on different calendars, and
// comparing percent changes only makes sense on dates where every series
// has a close.
type TimeSeriesAligner struct{}

// NewTimeSeriesAligner creates an aligner.
func NewTimeSeriesAligner() *TimeSeriesAligner {
	return &TimeSeriesAligner{}
}

// Align builds the common axis and rebases every series to percent change
// from its close on the first common date, so the first point of every
// series is exactly zero. Input order is preserved in the result. A single
// series aligns against its own axis. Returns ErrInsufficientOverlap when
// the series share no dates.
func (a *TimeSeriesAligner) Align(series []*models.PriceSeries) (*models.AlignedSeries, error) {
	if len(series) == 0 {
		return nil, ErrInsufficientOverlap
	}

	closeByDate := make([]map[int64]float64, len(series))
	for i, s := range series {
		m := make(map[int64]float64, len(s.Bars))
		for _, bar := range s.Bars {
			m[dayKey(bar.Date)] = bar.Close
		}
		closeByDate[i] = m
	}

	var common []int64
	for key := range closeByDate[0] {
		shared := true
		for _, m := range closeByDate[1:] {
			if _, ok := m[key]; !ok {
				shared = false
				break
			}
		}
		if shared {
			common = append(common, key)
		}
	}
	if len(common) == 0 {
		return nil, ErrInsufficientOverlap
	}
	sort.Slice(common, func(i, j int) bool { return common[i] < common[j] })

	aligned := &models.AlignedSeries{
		Tickers:   make([]string, 0, len(series)),
		Dates:     make([]time.Time, 0, len(common)),
		ChangePct: make(map[string][]float64, len(series)),
	}
	for _, key := range common {
		aligned.Dates = append(aligned.Dates, time.Unix(key, 0).UTC())
	}

	for i, s := range series {
		base := closeByDate[i][common[0]]
		if base == 0 {
			return nil, fmt.Errorf("%s: zero close on first common date, cannot rebase", s.Ticker)
		}
		pct := make([]float64, len(common))
		for j, key := range common {
			pct[j] = (closeByDate[i][key] - base) / base * 100
		}
		aligned.Tickers = append(aligned.Tickers, s.Ticker)
		aligned.ChangePct[s.Ticker] = pct
	}

	return aligned, nil
}

// dayKey collapses a bar timestamp to its UTC calendar day.
func dayKey(t time.Time) int64 {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix()
}
