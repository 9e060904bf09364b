package server

import (
	"fmt"
	"strings"

	"github.com/bobmcallan/stockdash/internal/common"
	"github.com/bobmcallan/stockdash/internal/models"
)

// formatComparisonMarkdown renders a comparison result as a markdown
// document: one table per metric category with a column per ticker, the
// timeframe performance, and recent headlines.
func formatComparisonMarkdown(result *models.ComparisonResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Stock Comparison: %s\n\n", strings.Join(result.Tickers, " vs "))
	fmt.Fprintf(&b, "Timeframe: %s | Generated: %s\n\n",
		result.Timeframe, result.GeneratedAt.Format("2006-01-02 15:04 UTC"))

	for _, category := range models.CategoryOrder {
		fmt.Fprintf(&b, "## %s\n\n", models.CategoryLabel(category))

		b.WriteString("| Metric |")
		for _, ticker := range result.Tickers {
			fmt.Fprintf(&b, " %s |", ticker)
		}
		b.WriteString("\n|---|")
		b.WriteString(strings.Repeat("---|", len(result.Tickers)))
		b.WriteString("\n")

		for _, def := range models.MetricSchema() {
			if def.Category != category {
				continue
			}
			fmt.Fprintf(&b, "| %s |", def.Name)
			for _, ticker := range result.Tickers {
				cell := common.MetricNotAvailable
				if m, ok := result.Metrics[ticker].Get(category, def.Name); ok {
					cell = common.FormatMetric(m)
				}
				fmt.Fprintf(&b, " %s |", cell)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if result.Series != nil && result.Series.Len() > 0 {
		fmt.Fprintf(&b, "## PERFORMANCE (%s)\n\n", result.Timeframe)
		for _, ticker := range result.Tickers {
			pct, ok := result.Series.SeriesFor(ticker)
			if !ok || len(pct) == 0 {
				continue
			}
			fmt.Fprintf(&b, "- %s: %s\n", ticker, common.FormatSignedPct(pct[len(pct)-1]))
		}
		b.WriteString("\n")
	}

	for _, ticker := range result.Tickers {
		items := result.News[ticker]
		if len(items) == 0 {
			continue
		}
		fmt.Fprintf(&b, "## NEWS: %s\n\n", ticker)
		for _, item := range items {
			fmt.Fprintf(&b, "- [%s](%s) (%s, %s)\n",
				item.Title, item.URL, item.Publisher, item.PublishedAt.Format("2006-01-02"))
		}
		b.WriteString("\n")
	}

	return b.String()
}
