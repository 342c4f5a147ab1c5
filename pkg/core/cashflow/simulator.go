// Package cashflow simulates the monthly cash budget over a revenue series.
// The loop is strictly sequential: each month's opening balance is the prior
// month's closing balance and the ad-payout buffer persists across months.
// This is a data dependency, never parallelize it.
package cashflow

import (
	"fmt"
	"math"

	"creator_forecast/pkg/core/assumption"
	"creator_forecast/pkg/models"
)

// Params holds the cost, timing and financing inputs for the simulation.
type Params struct {
	MonthlyOpex      float64 // Sum of all operating cost line items
	Capex            float64 // One-time, month 1
	PaymentThreshold float64 // Minimum accumulated ad revenue before payout
	StartingCash     float64
}

// FromAssumptions extracts the simulation parameters, failing fast on any
// missing key.
func FromAssumptions(as *assumption.AssumptionSet) (Params, error) {
	capex, err := as.Value(assumption.CatCapex, assumption.ParamGearInvestment)
	if err != nil {
		return Params{}, err
	}
	threshold, err := as.Value(assumption.CatTiming, assumption.ParamPaymentThreshold)
	if err != nil {
		return Params{}, err
	}
	startingCash, err := as.Value(assumption.CatFinancing, assumption.ParamStartingCash)
	if err != nil {
		return Params{}, err
	}
	return Params{
		MonthlyOpex:      as.MonthlyOpex(),
		Capex:            capex,
		PaymentThreshold: threshold,
		StartingCash:     startingCash,
	}, nil
}

// UnboundedRunway reports whether a runway value is the zero-opex sentinel.
// Renderers must print it as "Unbounded", never as a number.
func UnboundedRunway(runway float64) bool {
	return math.IsInf(runway, 1)
}

// Simulate produces one MonthlyCashRecord per input month.
//
// Per-month mechanics:
//  1. opening = prior closing (starting cash for month 1)
//  2. Buffer gross ad revenue; release the FULL buffer the month the
//     accumulated total crosses the payment threshold. The buffer only moves
//     in months with nonzero gross ad revenue: the policy is tied to YPP
//     eligibility, not a generic accumulate-every-month rule.
//  3. inflow = net subscription revenue + released ad revenue
//  4. outflow = monthly opex + capex (month 1 only)
//  5. closing = opening + inflow - outflow
//  6. runway = closing / monthly opex (unbounded sentinel when opex is zero)
func Simulate(series []models.MonthlyRevenueRecord, p Params) ([]models.MonthlyCashRecord, error) {
	if len(series) == 0 {
		return nil, fmt.Errorf("revenue series is empty")
	}

	records := make([]models.MonthlyCashRecord, 0, len(series))
	opening := p.StartingCash
	adBuffer := 0.0

	for _, rev := range series {
		released := 0.0
		if rev.GrossAdRevenue > 0 {
			adBuffer += rev.GrossAdRevenue
			if adBuffer >= p.PaymentThreshold {
				released = adBuffer
				adBuffer = 0
			}
		}

		inflow := rev.NetSubRevenue + released

		capexOut := 0.0
		if rev.Month == 1 {
			capexOut = p.Capex
		}
		outflow := p.MonthlyOpex + capexOut

		net := inflow - outflow
		closing := opening + net

		runway := math.Inf(1)
		if p.MonthlyOpex > 0 {
			runway = closing / p.MonthlyOpex
		}

		records = append(records, models.MonthlyCashRecord{
			Month:          rev.Month,
			OpeningBalance: opening,
			RevenueInflow:  inflow,
			OpexOutflow:    p.MonthlyOpex,
			CapexOutflow:   capexOut,
			TotalOutflow:   outflow,
			NetCashFlow:    net,
			ClosingBalance: closing,
			RunwayMonths:   runway,
			AdBuffer:       adBuffer,
			ReleasedAd:     released,
		})
		opening = closing
	}
	return records, nil
}

// Summarize computes the series-level metrics consumed by reporting: year-1
// average burn rate and the financing gap (the "valley of death" -- the most
// negative closing balance and the month it occurs).
func Summarize(records []models.MonthlyCashRecord, p Params) models.CashSummary {
	summary := models.CashSummary{StartingCash: p.StartingCash}
	if len(records) == 0 {
		return summary
	}

	var year1Outflows float64
	var year1Months int
	minClosing := records[0].ClosingBalance
	minMonth := records[0].Month

	for _, rec := range records {
		if rec.Month <= 12 {
			year1Outflows += rec.TotalOutflow
			year1Months++
		}
		if rec.ClosingBalance < minClosing {
			minClosing = rec.ClosingBalance
			minMonth = rec.Month
		}
		if rec.Month == 12 {
			summary.Month12Closing = rec.ClosingBalance
			summary.Month12Runway = rec.RunwayMonths
		}
	}

	if year1Months > 0 {
		summary.Year1BurnRate = year1Outflows / float64(year1Months)
	}
	summary.FinancingGapMonth = minMonth
	if minClosing < 0 {
		summary.FinancingGap = math.Abs(minClosing)
	}
	return summary
}
