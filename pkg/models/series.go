// Package models defines the shared series and statement types produced by the
// forecast pipeline. Core packages produce them, report/export/store consume them.
package models

// =============================================================================
// MONTHLY SERIES
// =============================================================================

// MonthlyRevenueRecord is one month of the revenue build.
// Records are immutable once computed and ordered by Month (1..N).
type MonthlyRevenueRecord struct {
	Month           int     `json:"month"`
	Views           float64 `json:"views"`
	GrossAdRevenue  float64 `json:"gross_ad_revenue"` // Zero while YPP is inactive
	Subscribers     float64 `json:"subscribers"`      // Expected value, not rounded
	GrossSubRevenue float64 `json:"gross_sub_revenue"`
	NetSubRevenue   float64 `json:"net_sub_revenue"` // After the 30% platform cut
	TotalRevenue    float64 `json:"total_revenue"`
}

// MonthlyCashRecord is one month of the cash budget. Each record depends on the
// prior month's closing balance and payout buffer, so the series is strictly
// ordered.
type MonthlyCashRecord struct {
	Month          int     `json:"month"`
	OpeningBalance float64 `json:"opening_balance"`
	RevenueInflow  float64 `json:"revenue_inflow"` // Net subscriptions + released ad revenue
	OpexOutflow    float64 `json:"opex_outflow"`
	CapexOutflow   float64 `json:"capex_outflow"` // Nonzero only in month 1
	TotalOutflow   float64 `json:"total_outflow"`
	NetCashFlow    float64 `json:"net_cash_flow"`
	ClosingBalance float64 `json:"closing_balance"`
	RunwayMonths   float64 `json:"runway_months"` // math.Inf(1) when opex is zero
	AdBuffer       float64 `json:"ad_buffer"`     // Unreleased ad revenue carried forward
	ReleasedAd     float64 `json:"released_ad"`   // Buffer paid out this month
}

// CashSummary holds the metrics derived once over the full cash series.
type CashSummary struct {
	StartingCash      float64 `json:"starting_cash"`
	Year1BurnRate     float64 `json:"year1_burn_rate"` // Mean of year-1 monthly outflows
	Month12Closing    float64 `json:"month12_closing"`
	Month12Runway     float64 `json:"month12_runway"`
	FinancingGap      float64 `json:"financing_gap"`       // Magnitude of the most negative closing balance, 0 if never negative
	FinancingGapMonth int     `json:"financing_gap_month"` // Month of the minimum closing balance
}

// =============================================================================
// ANNUAL STATEMENTS
// =============================================================================

// IncomeStatementYear is one year of the pro forma income statement.
type IncomeStatementYear struct {
	Year         int     `json:"year"`
	AdRevenue    float64 `json:"ad_revenue"`
	SubRevenue   float64 `json:"sub_revenue"`
	TotalRevenue float64 `json:"total_revenue"`
	Opex         float64 `json:"opex"`
	EBITDA       float64 `json:"ebitda"`
	Depreciation float64 `json:"depreciation"`
	EBIT         float64 `json:"ebit"`
	Tax          float64 `json:"tax"` // Zero when EBIT <= 0
	NetIncome    float64 `json:"net_income"`
}

// BalanceSheetYear is one year-end balance sheet. Liabilities is the balancing
// plug, so Assets = Liabilities + Equity holds by construction.
type BalanceSheetYear struct {
	Year             int     `json:"year"`
	Cash             float64 `json:"cash"` // Floored at zero; negative cash shows up in the plug
	NetFixedAssets   float64 `json:"net_fixed_assets"`
	TotalAssets      float64 `json:"total_assets"`
	TotalEquity      float64 `json:"total_equity"`
	TotalLiabilities float64 `json:"total_liabilities"` // Plug; may be negative
}

// CashFlowYear is one year of the indirect-method cash flow statement.
type CashFlowYear struct {
	Year         int     `json:"year"`
	NetIncome    float64 `json:"net_income"`
	Depreciation float64 `json:"depreciation"`
	OperatingCF  float64 `json:"operating_cf"`
	InvestingCF  float64 `json:"investing_cf"` // -capex in year 1 only
	FinancingCF  float64 `json:"financing_cf"` // +starting cash in year 1 only
	NetChange    float64 `json:"net_change"`
}

// AnnualStatementSet bundles the three parallel yearly statements.
// Derived from the monthly series; never mutated after construction.
type AnnualStatementSet struct {
	Income     []IncomeStatementYear `json:"income"`
	Balance    []BalanceSheetYear    `json:"balance"`
	CashFlow   []CashFlowYear        `json:"cash_flow"`
	KeyMetrics KeyMetrics            `json:"key_metrics"`
}

// KeyMetrics summarizes the statement set for reporting.
type KeyMetrics struct {
	CumulativeRevenue   float64 `json:"cumulative_revenue"`
	CumulativeNetIncome float64 `json:"cumulative_net_income"`
	FinalYearCash       float64 `json:"final_year_cash"`
}
