// Package analysis turns raw market data into ticker comparisons: the
// fixed metric set per ticker, price histories aligned onto a common date
// axis, and recent headlines.
package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/bobmcallan/stockdash/internal/common"
	"github.com/bobmcallan/stockdash/internal/interfaces"
	"github.com/bobmcallan/stockdash/internal/models"
)

// Service implements the AnalysisService interface.
type Service struct {
	client    interfaces.MarketDataClient
	computer  *MetricComputer
	aligner   *TimeSeriesAligner
	assembler *ComparisonAssembler
	logger    *common.Logger
	newsLimit int
	now       func() time.Time
}

// ServiceOption configures the service.
type ServiceOption func(*Service)

// WithNewsLimit sets the default number of headlines per ticker.
func WithNewsLimit(limit int) ServiceOption {
	return func(s *Service) {
		if limit > 0 {
			s.newsLimit = limit
		}
	}
}

// WithClock overrides the clock, for tests.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates an analysis service.
func NewService(client interfaces.MarketDataClient, logger *common.Logger, opts ...ServiceOption) *Service {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	s := &Service{
		client:    client,
		computer:  NewMetricComputer(),
		aligner:   NewTimeSeriesAligner(),
		assembler: NewComparisonAssembler(),
		logger:    logger,
		newsLimit: 10,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Analyze fetches market data for each requested ticker and assembles the
// comparison. Tickers are validated before any network call; a fetch
// failure for any ticker aborts the whole request with a FetchError.
// Fetches run sequentially since the client is already rate limited.
func (s *Service) Analyze(ctx context.Context, req interfaces.AnalyzeRequest) (*models.ComparisonResult, error) {
	tickers, err := s.normalizeTickers(req.Tickers)
	if err != nil {
		return nil, err
	}

	timeframe := req.Timeframe
	if timeframe == "" {
		timeframe = models.DefaultTimeframe
	}

	newsLimit := req.NewsLimit
	if newsLimit <= 0 {
		newsLimit = s.newsLimit
	}

	s.logger.Info().
		Strs("tickers", tickers).
		Str("timeframe", timeframe.String()).
		Msg("Analyzing tickers")

	now := s.now()
	from := timeframe.Start(now)

	var eodOpts []interfaces.EODOption
	if !from.IsZero() {
		eodOpts = append(eodOpts, interfaces.WithDateRange(from, now))
	}

	series := make([]*models.PriceSeries, 0, len(tickers))
	metrics := make(map[string]models.MetricSet, len(tickers))
	news := make(map[string][]models.NewsItem, len(tickers))

	for _, ticker := range tickers {
		prices, err := s.client.GetEOD(ctx, ticker, eodOpts...)
		if err != nil {
			return nil, &FetchError{Ticker: ticker, Stage: "prices", Err: err}
		}
		if len(prices.Bars) == 0 {
			return nil, &FetchError{Ticker: ticker, Stage: "prices", Err: fmt.Errorf("no price history in range")}
		}

		fetched, err := s.client.GetFundamentals(ctx, ticker)
		if err != nil {
			return nil, &FetchError{Ticker: ticker, Stage: "fundamentals", Err: err}
		}
		// copy before injecting so a caching client's map is never mutated
		raw := make(models.RawFundamentals, len(fetched)+1)
		for k, v := range fetched {
			raw[k] = v
		}
		if _, ok := raw.Lookup(models.KeyCurrentPrice); !ok {
			if latest, ok := prices.Latest(); ok {
				raw.Set(models.KeyCurrentPrice, latest.Close)
			}
		}

		items, err := s.client.GetNews(ctx, ticker, newsLimit)
		if err != nil {
			return nil, &FetchError{Ticker: ticker, Stage: "news", Err: err}
		}
		if len(items) > newsLimit {
			items = items[:newsLimit]
		}

		series = append(series, prices)
		metrics[ticker] = s.computer.Compute(raw)
		news[ticker] = items
	}

	aligned, err := s.aligner.Align(series)
	if err != nil {
		return nil, err
	}

	result, err := s.assembler.Assemble(tickers, timeframe, metrics, aligned, news)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Strs("tickers", tickers).
		Int("axis_points", aligned.Len()).
		Msg("Analysis complete")

	return result, nil
}

// normalizeTickers uppercases, trims, drops blanks and duplicates while
// keeping the caller's order, then enforces cardinality.
func (s *Service) normalizeTickers(tickers []string) ([]string, error) {
	seen := make(map[string]bool, len(tickers))
	out := make([]string, 0, len(tickers))
	for _, t := range tickers {
		normalized := models.NormalizeTicker(t)
		if normalized == "" || seen[normalized] {
			continue
		}
		seen[normalized] = true
		out = append(out, normalized)
	}
	if err := s.assembler.ValidateTickers(out); err != nil {
		return nil, err
	}
	return out, nil
}

// Ensure Service implements AnalysisService
var _ interfaces.AnalysisService = (*Service)(nil)
