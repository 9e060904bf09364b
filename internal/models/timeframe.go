package models

import (
	"fmt"
	"strings"
	"time"
)

// Timeframe is the lookback window for price history. Closed set; the core
// only passes it through to the data source and aligns on the returned
// series' own dates.
type Timeframe string

const (
	Timeframe1W  Timeframe = "1w"
	Timeframe1M  Timeframe = "1m"
	Timeframe3M  Timeframe = "3m"
	Timeframe6M  Timeframe = "6m"
	Timeframe1Y  Timeframe = "1y"
	Timeframe2Y  Timeframe = "2y"
	Timeframe5Y  Timeframe = "5y"
	TimeframeMax Timeframe = "max"
)

// DefaultTimeframe is used when a request omits the timeframe.
const DefaultTimeframe = Timeframe1Y

var timeframes = map[Timeframe]bool{
	Timeframe1W: true, Timeframe1M: true, Timeframe3M: true, Timeframe6M: true,
	Timeframe1Y: true, Timeframe2Y: true, Timeframe5Y: true, TimeframeMax: true,
}

// ParseTimeframe parses a timeframe string (case-insensitive). An empty
// string yields DefaultTimeframe.
func ParseTimeframe(s string) (Timeframe, error) {
	if strings.TrimSpace(s) == "" {
		return DefaultTimeframe, nil
	}
	tf := Timeframe(strings.ToLower(strings.TrimSpace(s)))
	if !timeframes[tf] {
		return "", fmt.Errorf("invalid timeframe %q (want one of 1w, 1m, 3m, 6m, 1y, 2y, 5y, max)", s)
	}
	return tf, nil
}

// Start returns the beginning of the lookback window relative to now.
// TimeframeMax returns the zero time, meaning no lower bound.
func (t Timeframe) Start(now time.Time) time.Time {
	switch t {
	case Timeframe1W:
		return now.AddDate(0, 0, -7)
	case Timeframe1M:
		return now.AddDate(0, -1, 0)
	case Timeframe3M:
		return now.AddDate(0, -3, 0)
	case Timeframe6M:
		return now.AddDate(0, -6, 0)
	case Timeframe1Y:
		return now.AddDate(-1, 0, 0)
	case Timeframe2Y:
		return now.AddDate(-2, 0, 0)
	case Timeframe5Y:
		return now.AddDate(-5, 0, 0)
	default:
		return time.Time{}
	}
}

func (t Timeframe) String() string {
	return string(t)
}
