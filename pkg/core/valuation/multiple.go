// Package valuation derives an enterprise valuation from the projected
// revenue series using a revenue multiple.
package valuation

import (
	"fmt"

	"creator_forecast/pkg/models"
)

// DefaultRevenueMultiple is the SaaS/AI-standard multiple applied to the
// final projected year's revenue.
const DefaultRevenueMultiple = 4.0

// AnnualRevenueForYear sums total revenue over the 12-month bucket of the
// given year (year 3 = months 25-36).
func AnnualRevenueForYear(series []models.MonthlyRevenueRecord, year int) (float64, error) {
	if year < 1 {
		return 0, fmt.Errorf("year must be positive, got %d", year)
	}
	start := (year - 1) * 12
	end := year * 12
	if end > len(series) {
		return 0, fmt.Errorf("series has %d months, year %d needs %d", len(series), year, end)
	}
	var total float64
	for _, rec := range series[start:end] {
		total += rec.TotalRevenue
	}
	return total, nil
}

// EnterpriseValue applies the revenue multiple.
//
// FORMULA: EV = AnnualRevenue × Multiple
func EnterpriseValue(annualRevenue, multiple float64) float64 {
	return annualRevenue * multiple
}

// PercentDelta returns the percentage change from baseline to alternate.
// A zero baseline yields zero rather than a division blow-up.
func PercentDelta(baseline, alternate float64) float64 {
	if baseline == 0 {
		return 0
	}
	return (alternate - baseline) / baseline * 100
}
