package report

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/yuin/goldmark"

	"creator_forecast/pkg/core/scenario"
	"creator_forecast/pkg/models"
)

// BuildMarkdownSummary assembles the run summary as Markdown. The same text
// backs the terminal output's HTML artifact.
func BuildMarkdownSummary(label string, summary models.CashSummary, set *models.AnnualStatementSet, comparisons []scenario.Comparison) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Forecast Summary (%s)\n\n", label)

	b.WriteString("## Cash Position\n\n")
	fmt.Fprintf(&b, "- Starting cash: %.2f\n", summary.StartingCash)
	fmt.Fprintf(&b, "- Year 1 average burn rate: %.2f/month\n", summary.Year1BurnRate)
	fmt.Fprintf(&b, "- Month 12 closing balance: %.2f (runway %s months)\n",
		summary.Month12Closing, FormatRunway(summary.Month12Runway))
	if summary.FinancingGap > 0 {
		fmt.Fprintf(&b, "- **Financing gap: %.2f at month %d**\n", summary.FinancingGap, summary.FinancingGapMonth)
	} else {
		b.WriteString("- No financing gap: cash-positive throughout\n")
	}

	b.WriteString("\n## Annual Income Statement\n\n")
	b.WriteString("| Year | Revenue | Opex | EBITDA | Net Income |\n")
	b.WriteString("|------|---------|------|--------|------------|\n")
	for _, is := range set.Income {
		fmt.Fprintf(&b, "| %d | %.2f | %.2f | %.2f | %.2f |\n",
			is.Year, is.TotalRevenue, is.Opex, is.EBITDA, is.NetIncome)
	}

	fmt.Fprintf(&b, "\n- 3-year cumulative revenue: %.2f\n", set.KeyMetrics.CumulativeRevenue)
	fmt.Fprintf(&b, "- 3-year cumulative net income: %.2f\n", set.KeyMetrics.CumulativeNetIncome)
	fmt.Fprintf(&b, "- Final year ending cash: %.2f\n", set.KeyMetrics.FinalYearCash)

	if len(comparisons) > 0 {
		b.WriteString("\n## Scenarios\n\n")
		b.WriteString("| Scenario | Revenue Impact | Valuation Impact |\n")
		b.WriteString("|----------|----------------|------------------|\n")
		for _, cmp := range comparisons {
			fmt.Fprintf(&b, "| %s | %+.2f%% | %+.2f%% |\n", cmp.Name, cmp.RevenueDeltaPct, cmp.ValuationDeltaPct)
		}
	}

	return b.String()
}

// RenderHTML converts the Markdown summary to HTML.
func RenderHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return buf.String(), nil
}

// WriteHTMLSummary renders the Markdown summary and writes it to path.
func WriteHTMLSummary(path, markdown string) error {
	html, err := RenderHTML(markdown)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		return fmt.Errorf("failed to write summary %s: %w", path, err)
	}
	return nil
}
