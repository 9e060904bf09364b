// Package chart renders comparison and price-history charts as PNG.
package chart

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/bobmcallan/stockdash/internal/interfaces"
	"github.com/bobmcallan/stockdash/internal/models"
)

// seriesPalette assigns each ticker a stable color by position.
var seriesPalette = []string{
	"2E86DE", // blue
	"E67E22", // orange
	"27AE60", // green
}

// Renderer implements the ChartRenderer interface.
type Renderer struct{}

// NewRenderer creates a chart renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// RenderComparison renders the aligned percent-change series as a PNG line
// chart, one line per ticker. Needs at least 2 axis points to draw a line.
func (r *Renderer) RenderComparison(aligned *models.AlignedSeries) ([]byte, error) {
	if aligned == nil || aligned.Len() < 2 {
		n := 0
		if aligned != nil {
			n = aligned.Len()
		}
		return nil, fmt.Errorf("need at least 2 data points, got %d", n)
	}

	series := make([]chart.Series, 0, len(aligned.Tickers))
	for i, ticker := range aligned.Tickers {
		pct, ok := aligned.SeriesFor(ticker)
		if !ok || len(pct) != aligned.Len() {
			return nil, fmt.Errorf("series length mismatch for %s", ticker)
		}
		series = append(series, chart.TimeSeries{
			Name: ticker,
			Style: chart.Style{
				StrokeColor: drawing.ColorFromHex(seriesPalette[i%len(seriesPalette)]),
				StrokeWidth: 2.5,
			},
			XValues: aligned.Dates,
			YValues: pct,
		})
	}

	// zero baseline so gains and losses read at a glance
	baseline := make([]float64, aligned.Len())
	series = append(series, chart.TimeSeries{
		Name: "",
		Style: chart.Style{
			StrokeColor:     drawing.ColorFromHex("9ca3af"),
			StrokeWidth:     1.0,
			StrokeDashArray: []float64{5.0, 3.0},
		},
		XValues: aligned.Dates,
		YValues: baseline,
	})

	graph := chart.Chart{
		Title:  fmt.Sprintf("Performance: %s", strings.Join(aligned.Tickers, " vs ")),
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			TickPosition:   chart.TickPositionBetweenTicks,
			ValueFormatter: dateFormatter(aligned.Dates),
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f%%", f)
				}
				return ""
			},
		},
		Series: series,
	}

	graph.Elements = []chart.Renderable{
		chart.LegendLeft(&graph),
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}

	return buf.Bytes(), nil
}

// RenderPriceHistory renders a single ticker's closing prices as a PNG
// line chart.
func (r *Renderer) RenderPriceHistory(series *models.PriceSeries) ([]byte, error) {
	if series == nil || len(series.Bars) < 2 {
		n := 0
		if series != nil {
			n = len(series.Bars)
		}
		return nil, fmt.Errorf("need at least 2 data points, got %d", n)
	}

	xValues := make([]time.Time, len(series.Bars))
	yValues := make([]float64, len(series.Bars))
	for i, bar := range series.Bars {
		xValues[i] = bar.Date
		yValues[i] = bar.Close
	}

	closeSeries := chart.TimeSeries{
		Name: series.Ticker,
		Style: chart.Style{
			StrokeColor: drawing.ColorFromHex(seriesPalette[0]),
			StrokeWidth: 2.5,
		},
		XValues: xValues,
		YValues: yValues,
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("%s Close", series.Ticker),
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			TickPosition:   chart.TickPositionBetweenTicks,
			ValueFormatter: dateFormatter(xValues),
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("$%.2f", f)
				}
				return ""
			},
		},
		Series: []chart.Series{closeSeries},
	}

	graph.Elements = []chart.Renderable{
		chart.LegendLeft(&graph),
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}

	return buf.Bytes(), nil
}

// dateFormatter picks a tick format based on the axis span: day-month for
// short windows, month-year beyond that.
func dateFormatter(dates []time.Time) chart.ValueFormatter {
	layout := "Jan 06"
	if len(dates) > 1 && dates[len(dates)-1].Sub(dates[0]) < 180*24*time.Hour {
		layout = "02 Jan"
	}
	return func(v interface{}) string {
		if t, ok := v.(float64); ok {
			return chart.TimeFromFloat64(t).Format(layout)
		}
		return ""
	}
}

// Ensure Renderer implements ChartRenderer
var _ interfaces.ChartRenderer = (*Renderer)(nil)
