// Package models defines data structures for stockdash
package models

import (
	"fmt"
	"strings"
	"time"
)

// NormalizeTicker canonicalizes a user-supplied symbol: trimmed, uppercase.
func NormalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}

// PriceBar represents a single day's price data
type PriceBar struct {
	Date     time.Time `json:"date"`
	Open     float64   `json:"open"`
	High     float64   `json:"high"`
	Low      float64   `json:"low"`
	Close    float64   `json:"close"`
	AdjClose float64   `json:"adjusted_close"`
	Volume   int64     `json:"volume"`
}

// PriceSeries is the chronological price history for one ticker over a
// timeframe. Bars are ordered oldest-first with strictly increasing dates.
type PriceSeries struct {
	Ticker string     `json:"ticker"`
	Bars   []PriceBar `json:"bars"`
}

// Validate checks the strictly-increasing-dates invariant.
func (s *PriceSeries) Validate() error {
	for i := 1; i < len(s.Bars); i++ {
		if !s.Bars[i].Date.After(s.Bars[i-1].Date) {
			return fmt.Errorf("price series %s: bar %d (%s) not after bar %d (%s)",
				s.Ticker, i, s.Bars[i].Date.Format("2006-01-02"),
				i-1, s.Bars[i-1].Date.Format("2006-01-02"))
		}
	}
	return nil
}

// Latest returns the most recent bar, or false when the series is empty.
func (s *PriceSeries) Latest() (PriceBar, bool) {
	if len(s.Bars) == 0 {
		return PriceBar{}, false
	}
	return s.Bars[len(s.Bars)-1], true
}

// Source keys for RawFundamentals. The market-data client populates these
// from whatever fields the provider returned; absent keys mean the provider
// had no value.
const (
	KeyRevenueTTM         = "revenue_ttm"
	KeyNetIncomeTTM       = "net_income_ttm"
	KeyOperatingIncomeTTM = "operating_income_ttm"
	KeyEBITDATTM          = "ebitda_ttm"
	KeyCashFromOpsTTM     = "cash_from_ops_ttm"
	KeyCapExTTM           = "capex_ttm"
	KeyReturnOnEquity     = "return_on_equity"
	KeyRevenueGrowthYoY   = "revenue_growth_yoy"
	KeyEarningsGrowthYoY  = "earnings_growth_yoy"
	KeyCurrentPrice       = "current_price"
	KeyMarketCap          = "market_cap"
	KeyHigh52Week         = "high_52week"
	KeyLow52Week          = "low_52week"
	KeyTrailingPE         = "trailing_pe"
	KeyForwardPE          = "forward_pe"
	KeyPriceToSales       = "price_to_sales"
	KeyDividendYield      = "dividend_yield"
	KeyPayoutRatio        = "payout_ratio"
	KeyBeta               = "beta"
)

// RawFundamentals maps source keys to raw numeric values for one ticker at
// fetch time. Missing keys are legal; the metric computer degrades them to
// the unavailable sentinel rather than failing.
type RawFundamentals map[string]float64

// Lookup returns the value for key and whether the source supplied it.
func (r RawFundamentals) Lookup(key string) (float64, bool) {
	if r == nil {
		return 0, false
	}
	v, ok := r[key]
	return v, ok
}

// Set records a value for key, allocating on first use.
func (r RawFundamentals) Set(key string, value float64) {
	r[key] = value
}

// NewsItem represents a news article for a ticker
type NewsItem struct {
	Title       string    `json:"title"`
	Publisher   string    `json:"publisher"`
	URL         string    `json:"url"`
	PublishedAt time.Time `json:"published_at"`
}
