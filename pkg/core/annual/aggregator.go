// Package annual rolls the monthly revenue and cash series into yearly
// pro forma statements: income statement, balance sheet, cash flow statement.
// Years carry no cross-year state beyond the cumulative totals computed here.
package annual

import (
	"fmt"
	"math"

	"creator_forecast/pkg/core/assumption"
	"creator_forecast/pkg/models"
)

// Fixed accounting policy of the model.
const (
	DepreciationRate = 0.20 // Straight-line, of capex per year
	TaxRate          = 0.25 // On positive EBIT only; no tax benefit on losses
)

// Params holds the aggregation inputs.
type Params struct {
	Capex            float64
	StartingCash     float64
	DepreciationRate float64
	TaxRate          float64
}

// FromAssumptions extracts the aggregation parameters with the fixed policy
// rates applied.
func FromAssumptions(as *assumption.AssumptionSet) (Params, error) {
	capex, err := as.Value(assumption.CatCapex, assumption.ParamGearInvestment)
	if err != nil {
		return Params{}, err
	}
	startingCash, err := as.Value(assumption.CatFinancing, assumption.ParamStartingCash)
	if err != nil {
		return Params{}, err
	}
	return Params{
		Capex:            capex,
		StartingCash:     startingCash,
		DepreciationRate: DepreciationRate,
		TaxRate:          TaxRate,
	}, nil
}

// Aggregate partitions the monthly series into consecutive 12-month buckets
// (year y = months [(y-1)*12+1, y*12]) and produces the three parallel yearly
// statements.
//
// Balance sheet mechanics:
//   - Cash is floored at zero: negative cash is not shown as a negative asset.
//   - Accumulated depreciation cannot drive net book value below zero.
//   - Liabilities is the plug (assets - equity), so A = L + E holds by
//     construction. A negative plug represents an implied financing surplus.
func Aggregate(revSeries []models.MonthlyRevenueRecord, cashSeries []models.MonthlyCashRecord, p Params) (*models.AnnualStatementSet, error) {
	if len(revSeries) != len(cashSeries) {
		return nil, fmt.Errorf("revenue and cash series lengths differ: %d vs %d", len(revSeries), len(cashSeries))
	}
	if len(revSeries) == 0 || len(revSeries)%12 != 0 {
		return nil, fmt.Errorf("series length must be a positive multiple of 12, got %d", len(revSeries))
	}

	years := len(revSeries) / 12
	annualDepn := p.Capex * p.DepreciationRate

	set := &models.AnnualStatementSet{
		Income:   make([]models.IncomeStatementYear, 0, years),
		Balance:  make([]models.BalanceSheetYear, 0, years),
		CashFlow: make([]models.CashFlowYear, 0, years),
	}

	var cumulativeNI float64
	for y := 1; y <= years; y++ {
		start := (y - 1) * 12
		end := y * 12

		var adRev, subRev, opex float64
		for _, rec := range revSeries[start:end] {
			adRev += rec.GrossAdRevenue
			subRev += rec.NetSubRevenue
		}
		for _, rec := range cashSeries[start:end] {
			opex += rec.OpexOutflow
		}
		yearEndClosing := cashSeries[end-1].ClosingBalance

		// ----- Income statement -----
		totalRev := adRev + subRev
		ebitda := totalRev - opex
		ebit := ebitda - annualDepn
		tax := 0.0
		if ebit > 0 {
			tax = ebit * p.TaxRate
		}
		netIncome := ebit - tax
		cumulativeNI += netIncome

		set.Income = append(set.Income, models.IncomeStatementYear{
			Year:         y,
			AdRevenue:    adRev,
			SubRevenue:   subRev,
			TotalRevenue: totalRev,
			Opex:         opex,
			EBITDA:       ebitda,
			Depreciation: annualDepn,
			EBIT:         ebit,
			Tax:          tax,
			NetIncome:    netIncome,
		})

		// ----- Balance sheet -----
		cash := math.Max(0, yearEndClosing)
		accumulatedDepn := math.Min(annualDepn*float64(y), p.Capex)
		netFixed := p.Capex - accumulatedDepn
		totalAssets := cash + netFixed
		totalEquity := p.StartingCash + cumulativeNI
		totalLiabilities := totalAssets - totalEquity // Plug

		set.Balance = append(set.Balance, models.BalanceSheetYear{
			Year:             y,
			Cash:             cash,
			NetFixedAssets:   netFixed,
			TotalAssets:      totalAssets,
			TotalEquity:      totalEquity,
			TotalLiabilities: totalLiabilities,
		})

		// ----- Cash flow statement (indirect) -----
		operatingCF := netIncome + annualDepn
		investingCF := 0.0
		financingCF := 0.0
		if y == 1 {
			investingCF = -p.Capex
			financingCF = p.StartingCash
		}

		set.CashFlow = append(set.CashFlow, models.CashFlowYear{
			Year:         y,
			NetIncome:    netIncome,
			Depreciation: annualDepn,
			OperatingCF:  operatingCF,
			InvestingCF:  investingCF,
			FinancingCF:  financingCF,
			NetChange:    operatingCF + investingCF + financingCF,
		})
	}

	var cumulativeRevenue float64
	for _, is := range set.Income {
		cumulativeRevenue += is.TotalRevenue
	}
	set.KeyMetrics = models.KeyMetrics{
		CumulativeRevenue:   cumulativeRevenue,
		CumulativeNetIncome: cumulativeNI,
		FinalYearCash:       set.Balance[years-1].Cash,
	}
	return set, nil
}
