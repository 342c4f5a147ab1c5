// Package revenue builds the monthly revenue series from an AssumptionSet.
// All functions are pure: same inputs, bit-identical series.
package revenue

import (
	"fmt"
	"math"

	"creator_forecast/pkg/core/assumption"
	"creator_forecast/pkg/models"
)

// PlatformCut is the platform's fixed share of gross subscription revenue.
const PlatformCut = 0.30

// Params holds the revenue drivers pulled from an AssumptionSet.
type Params struct {
	InitialViews    float64
	GrowthRate      float64 // Month-on-month, compound
	RPM             float64 // Revenue per 1000 views
	MembershipPrice float64
	ConversionRate  float64
	YPPDelayMonths  float64 // Months before ad eligibility
}

// FromAssumptions extracts the revenue parameters, failing fast on any
// missing key.
func FromAssumptions(as *assumption.AssumptionSet) (Params, error) {
	var p Params
	var err error

	read := func(dst *float64, cat, name string) {
		if err != nil {
			return
		}
		*dst, err = as.Value(cat, name)
	}

	read(&p.InitialViews, assumption.CatRevenueDrivers, assumption.ParamInitialViews)
	read(&p.GrowthRate, assumption.CatRevenueDrivers, assumption.ParamGrowthRate)
	read(&p.RPM, assumption.CatRevenueDrivers, assumption.ParamRPM)
	read(&p.MembershipPrice, assumption.CatRevenueDrivers, assumption.ParamMembershipPrice)
	read(&p.ConversionRate, assumption.CatRevenueDrivers, assumption.ParamConversionRate)
	read(&p.YPPDelayMonths, assumption.CatTiming, assumption.ParamYPPDelayMonths)
	if err != nil {
		return Params{}, err
	}
	return p, nil
}

// MonthlyViews calculates views for a given month.
//
// FORMULA: Views_m = InitialViews × (1 + g)^(m-1)
//
// Compound month-on-month growth, no seasonality. Views_1 = InitialViews
// exactly.
func MonthlyViews(initialViews, growthRate float64, month int) float64 {
	return initialViews * math.Pow(1+growthRate, float64(month-1))
}

// GrossAdRevenue calculates ad revenue for a month's views.
//
// FORMULA: AdRev_m = 0                    if m <= YPP delay
//          AdRev_m = (Views_m / 1000) × RPM  otherwise
//
// Eligibility is a hard cutoff: no partial-month proration.
func GrossAdRevenue(views, rpm float64, month int, yppDelay float64) float64 {
	if float64(month) <= yppDelay {
		return 0
	}
	return (views / 1000) * rpm
}

// Project produces one MonthlyRevenueRecord per month, 1..months.
//
// Subscribers are an expected-value count (views × conversion), deliberately
// not rounded. Net subscription revenue applies the fixed platform cut.
// Valid (non-negative) inputs cannot fail.
func Project(as *assumption.AssumptionSet, months int) ([]models.MonthlyRevenueRecord, error) {
	if months <= 0 {
		return nil, fmt.Errorf("month count must be positive, got %d", months)
	}
	p, err := FromAssumptions(as)
	if err != nil {
		return nil, err
	}

	series := make([]models.MonthlyRevenueRecord, 0, months)
	for m := 1; m <= months; m++ {
		views := MonthlyViews(p.InitialViews, p.GrowthRate, m)
		grossAd := GrossAdRevenue(views, p.RPM, m, p.YPPDelayMonths)

		subscribers := views * p.ConversionRate
		grossSub := subscribers * p.MembershipPrice
		netSub := grossSub * (1 - PlatformCut)

		series = append(series, models.MonthlyRevenueRecord{
			Month:           m,
			Views:           views,
			GrossAdRevenue:  grossAd,
			Subscribers:     subscribers,
			GrossSubRevenue: grossSub,
			NetSubRevenue:   netSub,
			TotalRevenue:    grossAd + netSub,
		})
	}
	return series, nil
}
