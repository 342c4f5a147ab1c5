// Package report renders computed series for humans: aligned terminal tables
// and a Markdown/HTML run summary. It never recomputes anything; formatting
// stays out of the core on purpose so scenario re-runs can stay silent.
package report

import (
	"fmt"
	"io"
	"strings"

	"creator_forecast/pkg/core/assumption"
	"creator_forecast/pkg/core/cashflow"
	"creator_forecast/pkg/core/scenario"
	"creator_forecast/pkg/models"
)

const divider = 100

// FormatRunway renders the runway metric, mapping the zero-opex sentinel to
// "Unbounded" instead of a numeric overflow.
func FormatRunway(runway float64) string {
	if cashflow.UnboundedRunway(runway) {
		return "Unbounded"
	}
	return fmt.Sprintf("%.2f", runway)
}

// PrintAssumptions writes the full assumption dump grouped by category.
func PrintAssumptions(w io.Writer, as *assumption.AssumptionSet) {
	fmt.Fprintln(w, strings.Repeat("=", divider))
	fmt.Fprintf(w, "FORECAST ASSUMPTIONS (%s)\n", as.Label())
	fmt.Fprintln(w, strings.Repeat("=", divider))

	current := ""
	for _, entry := range as.Dump() {
		if entry.Category != current {
			current = entry.Category
			fmt.Fprintf(w, "\n[%s]\n", strings.ToUpper(current))
			fmt.Fprintln(w, strings.Repeat("-", divider/2))
		}
		fmt.Fprintf(w, "%-35s | %15.4f\n", entry.Parameter, entry.Value)
	}
	fmt.Fprintln(w)
}

// PrintRevenueBuild writes the first monthsShown rows of the revenue build.
func PrintRevenueBuild(w io.Writer, series []models.MonthlyRevenueRecord, monthsShown int) {
	if monthsShown > len(series) {
		monthsShown = len(series)
	}
	fmt.Fprintln(w, strings.Repeat("=", divider))
	fmt.Fprintf(w, "REVENUE BUILD - FIRST %d MONTHS\n", monthsShown)
	fmt.Fprintln(w, strings.Repeat("=", divider))
	fmt.Fprintf(w, "%5s | %12s | %14s | %11s | %14s | %14s\n",
		"Month", "Views", "Ad Revenue", "Subs", "Net Sub Rev", "Total Rev")
	fmt.Fprintln(w, strings.Repeat("-", divider))
	for _, rec := range series[:monthsShown] {
		fmt.Fprintf(w, "%5d | %12.0f | %14.2f | %11.1f | %14.2f | %14.2f\n",
			rec.Month, rec.Views, rec.GrossAdRevenue, rec.Subscribers, rec.NetSubRevenue, rec.TotalRevenue)
	}
	fmt.Fprintln(w)
}

// PrintCashBudget writes the first monthsShown rows of the cash budget plus
// the derived summary metrics.
func PrintCashBudget(w io.Writer, records []models.MonthlyCashRecord, summary models.CashSummary, monthsShown int) {
	if monthsShown > len(records) {
		monthsShown = len(records)
	}
	fmt.Fprintln(w, strings.Repeat("=", divider+30))
	fmt.Fprintf(w, "CASH BUDGET & RUNWAY - FIRST %d MONTHS\n", monthsShown)
	fmt.Fprintln(w, strings.Repeat("=", divider+30))
	fmt.Fprintf(w, "%5s | %13s | %11s | %11s | %11s | %13s | %10s | %11s | %11s\n",
		"Month", "Opening", "Inflow", "Outflow", "Net CF", "Closing", "Runway", "Ad Buffer", "Released")
	fmt.Fprintln(w, strings.Repeat("-", divider+30))
	for _, rec := range records[:monthsShown] {
		fmt.Fprintf(w, "%5d | %13.2f | %11.2f | %11.2f | %11.2f | %13.2f | %10s | %11.2f | %11.2f\n",
			rec.Month, rec.OpeningBalance, rec.RevenueInflow, rec.TotalOutflow, rec.NetCashFlow,
			rec.ClosingBalance, FormatRunway(rec.RunwayMonths), rec.AdBuffer, rec.ReleasedAd)
	}

	fmt.Fprintln(w, strings.Repeat("-", divider+30))
	fmt.Fprintf(w, "%-30s %15.2f\n", "Starting Cash:", summary.StartingCash)
	fmt.Fprintf(w, "%-30s %15.2f /month\n", "Year 1 Average Burn Rate:", summary.Year1BurnRate)
	fmt.Fprintf(w, "%-30s %15.2f\n", "Month 12 Closing Balance:", summary.Month12Closing)
	fmt.Fprintf(w, "%-30s %15s months\n", "Month 12 Runway:", FormatRunway(summary.Month12Runway))
	if summary.FinancingGap > 0 {
		fmt.Fprintf(w, "[WARNING] Financing gap of %.2f at month %d (valley of death)\n",
			summary.FinancingGap, summary.FinancingGapMonth)
	} else {
		fmt.Fprintln(w, "[OK] No financing gap: cash-positive throughout the projection")
	}
	fmt.Fprintln(w)
}

// PrintAnnualStatements writes the three yearly statements and key metrics.
func PrintAnnualStatements(w io.Writer, set *models.AnnualStatementSet) {
	fmt.Fprintln(w, strings.Repeat("=", divider))
	fmt.Fprintln(w, "ANNUAL INCOME STATEMENT")
	fmt.Fprintln(w, strings.Repeat("=", divider))
	fmt.Fprintf(w, "%6s | %13s | %13s | %12s | %12s | %12s | %12s\n",
		"Year", "Revenue", "Opex", "EBITDA", "Depn", "Tax", "Net Income")
	fmt.Fprintln(w, strings.Repeat("-", divider))
	for _, is := range set.Income {
		fmt.Fprintf(w, "%6d | %13.2f | %13.2f | %12.2f | %12.2f | %12.2f | %12.2f\n",
			is.Year, is.TotalRevenue, is.Opex, is.EBITDA, is.Depreciation, is.Tax, is.NetIncome)
	}

	fmt.Fprintln(w, "\n"+strings.Repeat("=", divider))
	fmt.Fprintln(w, "ANNUAL BALANCE SHEET")
	fmt.Fprintln(w, strings.Repeat("=", divider))
	fmt.Fprintf(w, "%6s | %13s | %13s | %13s | %13s | %13s\n",
		"Year", "Cash", "Net PPE", "Assets", "Equity", "Liabilities")
	fmt.Fprintln(w, strings.Repeat("-", divider))
	for _, bs := range set.Balance {
		fmt.Fprintf(w, "%6d | %13.2f | %13.2f | %13.2f | %13.2f | %13.2f\n",
			bs.Year, bs.Cash, bs.NetFixedAssets, bs.TotalAssets, bs.TotalEquity, bs.TotalLiabilities)
	}

	fmt.Fprintln(w, "\n"+strings.Repeat("=", divider))
	fmt.Fprintln(w, "ANNUAL CASH FLOW STATEMENT")
	fmt.Fprintln(w, strings.Repeat("=", divider))
	fmt.Fprintf(w, "%6s | %13s | %13s | %13s | %13s | %13s\n",
		"Year", "Net Income", "Operating", "Investing", "Financing", "Net Change")
	fmt.Fprintln(w, strings.Repeat("-", divider))
	for _, cf := range set.CashFlow {
		fmt.Fprintf(w, "%6d | %13.2f | %13.2f | %13.2f | %13.2f | %13.2f\n",
			cf.Year, cf.NetIncome, cf.OperatingCF, cf.InvestingCF, cf.FinancingCF, cf.NetChange)
	}

	fmt.Fprintln(w, "\n"+strings.Repeat("-", divider))
	fmt.Fprintf(w, "%-35s %15.2f\n", "3-Year Cumulative Revenue:", set.KeyMetrics.CumulativeRevenue)
	fmt.Fprintf(w, "%-35s %15.2f\n", "3-Year Cumulative Net Income:", set.KeyMetrics.CumulativeNetIncome)
	fmt.Fprintf(w, "%-35s %15.2f\n", "Final Year Ending Cash:", set.KeyMetrics.FinalYearCash)
	fmt.Fprintln(w)
}

// PrintScenario writes the baseline-vs-alternate comparison table.
func PrintScenario(w io.Writer, cmp *scenario.Comparison) {
	fmt.Fprintln(w, strings.Repeat("=", divider))
	fmt.Fprintf(w, "SCENARIO ANALYSIS: %s\n", cmp.Name)
	fmt.Fprintln(w, strings.Repeat("=", divider))
	fmt.Fprintf(w, "%-25s | %18s | %18s | %12s\n", "Metric", "Base Case", "Alternate", "Impact")
	fmt.Fprintln(w, strings.Repeat("-", divider))
	fmt.Fprintf(w, "%-25s | %18.2f | %18.2f | %+11.2f%%\n",
		fmt.Sprintf("Year %d Revenue", cmp.FinalYear), cmp.BaselineRevenue, cmp.AlternateRevenue, cmp.RevenueDeltaPct)
	fmt.Fprintf(w, "%-25s | %18.2f | %18.2f | %+11.2f%%\n",
		"Valuation", cmp.BaselineValuation, cmp.AlternateValuation, cmp.ValuationDeltaPct)
	fmt.Fprintln(w)
}
