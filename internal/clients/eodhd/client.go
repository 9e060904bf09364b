// Package eodhd provides a client for the EODHD API
package eodhd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/bobmcallan/stockdash/internal/common"
	"github.com/bobmcallan/stockdash/internal/interfaces"
	"github.com/bobmcallan/stockdash/internal/models"
)

// flexFloat64 handles JSON values that may be either a number or a string.
// Unparseable values ("N/A", "", non-numeric strings, NaN/Inf) are marked
// invalid rather than coerced to zero, so downstream presence checks treat
// them as absent.
type flexFloat64 float64

func (f *flexFloat64) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		if math.IsNaN(num) || math.IsInf(num, 0) {
			*f = flexFloat64(math.NaN())
			return nil
		}
		*f = flexFloat64(num)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		num, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(num) || math.IsInf(num, 0) {
			*f = flexFloat64(math.NaN())
			return nil
		}
		*f = flexFloat64(num)
		return nil
	}
	return fmt.Errorf("cannot unmarshal %s into float64", string(data))
}

// value returns the decoded number and whether the provider supplied a
// parseable one.
func (f *flexFloat64) value() (float64, bool) {
	if f == nil || math.IsNaN(float64(*f)) {
		return 0, false
	}
	return float64(*f), true
}

const (
	DefaultBaseURL   = "https://eodhd.com/api"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 10 // requests per second
)

// Client implements the MarketDataClient interface
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new EODHD client
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents an API error
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("EODHD API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// get performs a rate-limited GET request
func (c *Client) get(ctx context.Context, path string, params url.Values, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("api_token", c.apiKey)
	params.Set("fmt", "json")

	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	c.logger.Debug().Str("url", c.baseURL+path).Msg("EODHD API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Endpoint:   path,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// GetEOD retrieves end-of-day price data, oldest bar first with strictly
// increasing dates (duplicate dates from the provider are collapsed,
// keeping the last occurrence).
func (c *Client) GetEOD(ctx context.Context, ticker string, opts ...interfaces.EODOption) (*models.PriceSeries, error) {
	ticker = models.NormalizeTicker(ticker)

	params := &interfaces.EODParams{
		Period: "d",
	}

	for _, opt := range opts {
		opt(params)
	}

	urlParams := url.Values{}
	urlParams.Set("period", params.Period)
	urlParams.Set("order", "a") // ascending (oldest first)

	if !params.From.IsZero() {
		urlParams.Set("from", params.From.Format("2006-01-02"))
	}
	if !params.To.IsZero() {
		urlParams.Set("to", params.To.Format("2006-01-02"))
	}

	path := fmt.Sprintf("/eod/%s", ticker)

	var bars []eodBarResponse
	if err := c.get(ctx, path, urlParams, &bars); err != nil {
		return nil, err
	}

	series := &models.PriceSeries{
		Ticker: ticker,
		Bars:   make([]models.PriceBar, 0, len(bars)),
	}

	for _, bar := range bars {
		date, err := time.Parse("2006-01-02", bar.Date)
		if err != nil {
			continue
		}
		b := models.PriceBar{
			Date:     date,
			Open:     bar.Open,
			High:     bar.High,
			Low:      bar.Low,
			Close:    bar.Close,
			AdjClose: bar.AdjustedClose,
			Volume:   bar.Volume,
		}
		if n := len(series.Bars); n > 0 && !date.After(series.Bars[n-1].Date) {
			if date.Equal(series.Bars[n-1].Date) {
				series.Bars[n-1] = b
			}
			continue
		}
		series.Bars = append(series.Bars, b)
	}

	return series, nil
}

// eodBarResponse represents the API response for EOD data
type eodBarResponse struct {
	Date          string  `json:"date"`
	Open          float64 `json:"open"`
	High          float64 `json:"high"`
	Low           float64 `json:"low"`
	Close         float64 `json:"close"`
	AdjustedClose float64 `json:"adjusted_close"`
	Volume        int64   `json:"volume"`
}

// GetFundamentals retrieves fundamental data and maps it to the raw
// source-key form the metric computer consumes. Only fields the provider
// actually returned are set; absent fields stay absent rather than zero.
func (c *Client) GetFundamentals(ctx context.Context, ticker string) (models.RawFundamentals, error) {
	path := fmt.Sprintf("/fundamentals/%s", models.NormalizeTicker(ticker))

	var resp fundamentalsResponse
	if err := c.get(ctx, path, nil, &resp); err != nil {
		return nil, err
	}

	raw := models.RawFundamentals{}

	setIfPresent := func(key string, v *flexFloat64) {
		if n, ok := v.value(); ok {
			raw.Set(key, n)
		}
	}

	setIfPresent(models.KeyMarketCap, resp.Highlights.MarketCapitalization)
	setIfPresent(models.KeyReturnOnEquity, resp.Highlights.ReturnOnEquityTTM)
	setIfPresent(models.KeyRevenueGrowthYoY, resp.Highlights.QuarterlyRevenueGrowthYOY)
	setIfPresent(models.KeyEarningsGrowthYoY, resp.Highlights.QuarterlyEarningsGrowthYOY)
	setIfPresent(models.KeyDividendYield, resp.Highlights.DividendYield)
	setIfPresent(models.KeyTrailingPE, resp.Valuation.TrailingPE)
	setIfPresent(models.KeyForwardPE, resp.Valuation.ForwardPE)
	setIfPresent(models.KeyPriceToSales, resp.Valuation.PriceSalesTTM)
	setIfPresent(models.KeyHigh52Week, resp.Technicals.High52Week)
	setIfPresent(models.KeyLow52Week, resp.Technicals.Low52Week)
	setIfPresent(models.KeyBeta, resp.Technicals.Beta)
	setIfPresent(models.KeyPayoutRatio, resp.SplitsDividends.PayoutRatio)

	// Statement items come from the latest annual column, same approach as
	// the TTM-ish figures on the dashboard.
	if income := latestColumn(resp.Financials.IncomeStatement.Yearly); income != nil {
		setIfPresent(models.KeyRevenueTTM, income["totalRevenue"])
		setIfPresent(models.KeyNetIncomeTTM, income["netIncome"])
		setIfPresent(models.KeyOperatingIncomeTTM, income["operatingIncome"])
		setIfPresent(models.KeyEBITDATTM, income["ebitda"])
	}
	if cashflow := latestColumn(resp.Financials.CashFlow.Yearly); cashflow != nil {
		setIfPresent(models.KeyCashFromOpsTTM, cashflow["totalCashFromOperatingActivities"])
		setIfPresent(models.KeyCapExTTM, cashflow["capitalExpenditures"])
	}

	return raw, nil
}

// latestColumn picks the most recent statement column by date key
// ("2024-12-31" style keys sort lexically).
func latestColumn(yearly map[string]map[string]*flexFloat64) map[string]*flexFloat64 {
	if len(yearly) == 0 {
		return nil
	}
	dates := make([]string, 0, len(yearly))
	for d := range yearly {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return yearly[dates[len(dates)-1]]
}

// fundamentalsResponse represents the API response structure. Pointer
// fields distinguish absent from zero.
type fundamentalsResponse struct {
	General struct {
		Code     string `json:"Code"`
		Name     string `json:"Name"`
		Sector   string `json:"Sector"`
		Industry string `json:"Industry"`
	} `json:"General"`
	Highlights struct {
		MarketCapitalization       *flexFloat64 `json:"MarketCapitalization"`
		ReturnOnEquityTTM          *flexFloat64 `json:"ReturnOnEquityTTM"`
		QuarterlyRevenueGrowthYOY  *flexFloat64 `json:"QuarterlyRevenueGrowthYOY"`
		QuarterlyEarningsGrowthYOY *flexFloat64 `json:"QuarterlyEarningsGrowthYOY"`
		DividendYield              *flexFloat64 `json:"DividendYield"`
	} `json:"Highlights"`
	Valuation struct {
		TrailingPE    *flexFloat64 `json:"TrailingPE"`
		ForwardPE     *flexFloat64 `json:"ForwardPE"`
		PriceSalesTTM *flexFloat64 `json:"PriceSalesTTM"`
	} `json:"Valuation"`
	Technicals struct {
		Beta       *flexFloat64 `json:"Beta"`
		High52Week *flexFloat64 `json:"52WeekHigh"`
		Low52Week  *flexFloat64 `json:"52WeekLow"`
	} `json:"Technicals"`
	SplitsDividends struct {
		PayoutRatio *flexFloat64 `json:"PayoutRatio"`
	} `json:"SplitsDividends"`
	Financials struct {
		IncomeStatement statementSection `json:"Income_Statement"`
		CashFlow        statementSection `json:"Cash_Flow"`
	} `json:"Financials"`
}

type statementSection struct {
	Yearly map[string]map[string]*flexFloat64 `json:"yearly"`
}

// GetNews retrieves news for a ticker, most recent first
func (c *Client) GetNews(ctx context.Context, ticker string, limit int) ([]models.NewsItem, error) {
	path := "/news"

	params := url.Values{}
	params.Set("s", models.NormalizeTicker(ticker))
	params.Set("limit", strconv.Itoa(limit))

	var newsResp []newsResponse
	if err := c.get(ctx, path, params, &newsResp); err != nil {
		return nil, err
	}

	news := make([]models.NewsItem, 0, len(newsResp))
	for _, item := range newsResp {
		publishedAt, _ := time.Parse("2006-01-02T15:04:05+00:00", item.Date)
		news = append(news, models.NewsItem{
			Title:       item.Title,
			URL:         item.Link,
			Publisher:   item.Source,
			PublishedAt: publishedAt,
		})
	}

	sort.SliceStable(news, func(i, j int) bool {
		return news[i].PublishedAt.After(news[j].PublishedAt)
	})

	return news, nil
}

type newsResponse struct {
	Date   string `json:"date"`
	Title  string `json:"title"`
	Link   string `json:"link"`
	Source string `json:"source"`
}

// Ensure Client implements MarketDataClient
var _ interfaces.MarketDataClient = (*Client)(nil)
