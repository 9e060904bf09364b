package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/bobmcallan/stockdash/internal/interfaces"
	"github.com/bobmcallan/stockdash/internal/models"
	"github.com/bobmcallan/stockdash/internal/services/analysis"
)

// analyzeRequest is the POST /api/analyze body.
type analyzeRequest struct {
	Tickers   []string `json:"tickers"`
	Timeframe string   `json:"timeframe"`
	NewsLimit int      `json:"news_limit"`
}

// parseAnalyzeRequest validates the body into a service request.
func parseAnalyzeRequest(w http.ResponseWriter, body analyzeRequest) (interfaces.AnalyzeRequest, bool) {
	timeframe, err := models.ParseTimeframe(body.Timeframe)
	if err != nil {
		WriteErrorWithCode(w, http.StatusBadRequest, err.Error(), "invalid_timeframe")
		return interfaces.AnalyzeRequest{}, false
	}
	return interfaces.AnalyzeRequest{
		Tickers:   body.Tickers,
		Timeframe: timeframe,
		NewsLimit: body.NewsLimit,
	}, true
}

// writeAnalysisError maps pipeline errors onto HTTP status codes.
func (s *Server) writeAnalysisError(w http.ResponseWriter, err error) {
	var fetchErr *analysis.FetchError
	switch {
	case errors.Is(err, analysis.ErrNoTickers):
		WriteErrorWithCode(w, http.StatusBadRequest, err.Error(), "no_tickers")
	case errors.Is(err, analysis.ErrTooManyTickers):
		WriteErrorWithCode(w, http.StatusBadRequest, err.Error(), "too_many_tickers")
	case errors.Is(err, analysis.ErrInsufficientOverlap):
		WriteErrorWithCode(w, http.StatusUnprocessableEntity, err.Error(), "insufficient_overlap")
	case errors.As(err, &fetchErr):
		s.logger.Error().Err(err).Str("ticker", fetchErr.Ticker).Str("stage", fetchErr.Stage).Msg("Market data fetch failed")
		WriteErrorWithCode(w, http.StatusBadGateway, err.Error(), "fetch_failed")
	default:
		s.logger.Error().Err(err).Msg("Analysis failed")
		WriteError(w, http.StatusInternalServerError, err.Error())
	}
}

// handleAnalyze handles POST /api/analyze.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var body analyzeRequest
	if !DecodeJSON(w, r, &body) {
		return
	}

	req, ok := parseAnalyzeRequest(w, body)
	if !ok {
		return
	}

	result, err := s.app.Analysis.Analyze(r.Context(), req)
	if err != nil {
		s.writeAnalysisError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, result)
}

// handleAnalyzeChart handles GET /api/analyze/chart?tickers=AAPL,MSFT&timeframe=1y.
func (s *Server) handleAnalyzeChart(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	req, ok := parseAnalyzeRequest(w, analyzeRequest{
		Tickers:   QueryTickers(r, "tickers"),
		Timeframe: r.URL.Query().Get("timeframe"),
	})
	if !ok {
		return
	}

	result, err := s.app.Analysis.Analyze(r.Context(), req)
	if err != nil {
		s.writeAnalysisError(w, err)
		return
	}

	png, err := s.app.Charts.RenderComparison(result.Series)
	if err != nil {
		s.logger.Error().Err(err).Msg("Chart render failed")
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// handleMarketChart handles GET /api/market/chart?ticker=AAPL&timeframe=1y.
// Returns a single ticker's closing-price history as a PNG.
func (s *Server) handleMarketChart(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	ticker := models.NormalizeTicker(r.URL.Query().Get("ticker"))
	if ticker == "" {
		WriteErrorWithCode(w, http.StatusBadRequest, "ticker query parameter is required", "no_ticker")
		return
	}

	timeframe, err := models.ParseTimeframe(r.URL.Query().Get("timeframe"))
	if err != nil {
		WriteErrorWithCode(w, http.StatusBadRequest, err.Error(), "invalid_timeframe")
		return
	}

	var eodOpts []interfaces.EODOption
	if from := timeframe.Start(time.Now()); !from.IsZero() {
		eodOpts = append(eodOpts, interfaces.WithDateRange(from, time.Now()))
	}

	series, err := s.app.MarketClient.GetEOD(r.Context(), ticker, eodOpts...)
	if err != nil {
		s.logger.Error().Err(err).Str("ticker", ticker).Msg("Market data fetch failed")
		WriteErrorWithCode(w, http.StatusBadGateway, err.Error(), "fetch_failed")
		return
	}

	png, err := s.app.Charts.RenderPriceHistory(series)
	if err != nil {
		s.logger.Error().Err(err).Msg("Chart render failed")
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// handleAnalyzeReport handles GET /api/analyze/report?tickers=AAPL,MSFT&timeframe=1y.
// Returns the comparison as a markdown document.
func (s *Server) handleAnalyzeReport(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	req, ok := parseAnalyzeRequest(w, analyzeRequest{
		Tickers:   QueryTickers(r, "tickers"),
		Timeframe: r.URL.Query().Get("timeframe"),
	})
	if !ok {
		return
	}

	result, err := s.app.Analysis.Analyze(r.Context(), req)
	if err != nil {
		s.writeAnalysisError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(formatComparisonMarkdown(result)))
}
