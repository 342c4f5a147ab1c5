// Package export persists a run's output artifacts: a multi-sheet XLSX
// workbook and a PNG chart image. Export failures are boundary errors; the
// computed series remain valid when a write fails.
package export

import (
	"fmt"
	"math"

	"github.com/xuri/excelize/v2"

	"creator_forecast/pkg/core/assumption"
	"creator_forecast/pkg/models"
)

const (
	sheetAssumptions = "Assumptions"
	sheetRevenue     = "Revenue_Build"
	sheetCash        = "Cash_Budget"
	sheetAnnual      = "Annual_Pro_Forma"

	// The workbook shows the first year of the monthly series for clarity;
	// the annual sheets carry the full horizon.
	monthlyRowsShown = 12
)

// WriteWorkbook writes the workbook: one sheet per statement category plus an
// assumptions dump.
func WriteWorkbook(path string, as *assumption.AssumptionSet, revSeries []models.MonthlyRevenueRecord, cashSeries []models.MonthlyCashRecord, set *models.AnnualStatementSet) error {
	f := excelize.NewFile()
	defer f.Close()

	var err error
	setRow := func(sheet, cell string, values []interface{}) {
		if err != nil {
			return
		}
		err = f.SetSheetRow(sheet, cell, &values)
	}

	// Sheet 1: Assumptions (category, parameter, value triples)
	if renameErr := f.SetSheetName("Sheet1", sheetAssumptions); renameErr != nil {
		return fmt.Errorf("failed to create assumptions sheet: %w", renameErr)
	}
	setRow(sheetAssumptions, "A1", []interface{}{"Category", "Parameter", "Value"})
	for i, entry := range as.Dump() {
		setRow(sheetAssumptions, fmt.Sprintf("A%d", i+2), []interface{}{entry.Category, entry.Parameter, entry.Value})
	}

	// Sheet 2: Revenue build
	if _, sheetErr := f.NewSheet(sheetRevenue); sheetErr != nil {
		return fmt.Errorf("failed to create revenue sheet: %w", sheetErr)
	}
	setRow(sheetRevenue, "A1", []interface{}{
		"Month", "Views", "Gross Ad Revenue", "Subscribers", "Gross Sub Revenue", "Net Sub Revenue", "Total Revenue"})
	for i, rec := range capSeries(revSeries) {
		setRow(sheetRevenue, fmt.Sprintf("A%d", i+2), []interface{}{
			rec.Month, rec.Views, rec.GrossAdRevenue, rec.Subscribers, rec.GrossSubRevenue, rec.NetSubRevenue, rec.TotalRevenue})
	}

	// Sheet 3: Cash budget
	if _, sheetErr := f.NewSheet(sheetCash); sheetErr != nil {
		return fmt.Errorf("failed to create cash sheet: %w", sheetErr)
	}
	setRow(sheetCash, "A1", []interface{}{
		"Month", "Opening", "Inflow", "Opex", "Capex", "Total Outflow", "Net Cash Flow", "Closing", "Runway", "Ad Buffer", "Released Ad"})
	for i, rec := range capCash(cashSeries) {
		setRow(sheetCash, fmt.Sprintf("A%d", i+2), []interface{}{
			rec.Month, rec.OpeningBalance, rec.RevenueInflow, rec.OpexOutflow, rec.CapexOutflow,
			rec.TotalOutflow, rec.NetCashFlow, rec.ClosingBalance, runwayCell(rec.RunwayMonths), rec.AdBuffer, rec.ReleasedAd})
	}

	// Sheet 4: Annual pro forma, three stacked blocks
	if _, sheetErr := f.NewSheet(sheetAnnual); sheetErr != nil {
		return fmt.Errorf("failed to create annual sheet: %w", sheetErr)
	}
	row := 1
	setRow(sheetAnnual, fmt.Sprintf("A%d", row), []interface{}{
		"Year", "Ad Revenue", "Sub Revenue", "Total Revenue", "Opex", "EBITDA", "Depreciation", "EBIT", "Tax", "Net Income"})
	for _, is := range set.Income {
		row++
		setRow(sheetAnnual, fmt.Sprintf("A%d", row), []interface{}{
			is.Year, is.AdRevenue, is.SubRevenue, is.TotalRevenue, is.Opex, is.EBITDA, is.Depreciation, is.EBIT, is.Tax, is.NetIncome})
	}

	row += 3
	setRow(sheetAnnual, fmt.Sprintf("A%d", row), []interface{}{
		"Year", "Cash", "Net Fixed Assets", "Total Assets", "Total Equity", "Total Liabilities"})
	for _, bs := range set.Balance {
		row++
		setRow(sheetAnnual, fmt.Sprintf("A%d", row), []interface{}{
			bs.Year, bs.Cash, bs.NetFixedAssets, bs.TotalAssets, bs.TotalEquity, bs.TotalLiabilities})
	}

	row += 3
	setRow(sheetAnnual, fmt.Sprintf("A%d", row), []interface{}{
		"Year", "Net Income", "Depreciation", "Operating CF", "Investing CF", "Financing CF", "Net Change"})
	for _, cf := range set.CashFlow {
		row++
		setRow(sheetAnnual, fmt.Sprintf("A%d", row), []interface{}{
			cf.Year, cf.NetIncome, cf.Depreciation, cf.OperatingCF, cf.InvestingCF, cf.FinancingCF, cf.NetChange})
	}

	if err != nil {
		return fmt.Errorf("failed to populate workbook: %w", err)
	}
	if saveErr := f.SaveAs(path); saveErr != nil {
		return fmt.Errorf("failed to write workbook %s: %w", path, saveErr)
	}
	return nil
}

// runwayCell keeps the unbounded sentinel out of the spreadsheet as a raw
// infinity, which XLSX cannot represent.
func runwayCell(runway float64) interface{} {
	if math.IsInf(runway, 1) {
		return "Unbounded"
	}
	return runway
}

func capSeries(series []models.MonthlyRevenueRecord) []models.MonthlyRevenueRecord {
	if len(series) > monthlyRowsShown {
		return series[:monthlyRowsShown]
	}
	return series
}

func capCash(series []models.MonthlyCashRecord) []models.MonthlyCashRecord {
	if len(series) > monthlyRowsShown {
		return series[:monthlyRowsShown]
	}
	return series
}
