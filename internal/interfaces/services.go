package interfaces

import (
	"context"

	"github.com/bobmcallan/stockdash/internal/models"
)

// AnalyzeRequest describes one analysis request: 1-3 tickers over a shared
// timeframe. NewsLimit 0 means the configured default.
type AnalyzeRequest struct {
	Tickers   []string
	Timeframe models.Timeframe
	NewsLimit int
}

// AnalysisService runs the metric-derivation and comparison pipeline:
// fetch, compute, align, assemble. One request runs to completion before
// its result is handed back; results are request-scoped.
type AnalysisService interface {
	Analyze(ctx context.Context, req AnalyzeRequest) (*models.ComparisonResult, error)
}

// ChartRenderer renders presentation charts from analysis output.
type ChartRenderer interface {
	// RenderComparison renders the percent-change comparison chart as PNG.
	RenderComparison(aligned *models.AlignedSeries) ([]byte, error)

	// RenderPriceHistory renders a single ticker's price chart as PNG.
	RenderPriceHistory(series *models.PriceSeries) ([]byte, error)
}
