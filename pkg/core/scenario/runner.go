// Package scenario re-runs the projection pipeline under perturbed
// assumptions and compares the outcome against the baseline. A run derives
// its own AssumptionSet; the baseline is never mutated.
package scenario

import (
	"fmt"

	"creator_forecast/pkg/core/annual"
	"creator_forecast/pkg/core/assumption"
	"creator_forecast/pkg/core/cashflow"
	"creator_forecast/pkg/core/revenue"
	"creator_forecast/pkg/core/valuation"
	"creator_forecast/pkg/models"
)

// Override names one leaf value to change in the derived set.
type Override struct {
	Category  string  `json:"category"`
	Parameter string  `json:"parameter"`
	Value     float64 `json:"value"`
}

// Definition is a named scenario: a label plus one or more overrides.
type Definition struct {
	Name      string     `json:"name"`
	Overrides []Override `json:"overrides"`
}

// DefaultDownside is the founder-pain scenario: membership conversion halved.
func DefaultDownside() Definition {
	return Definition{
		Name: "founder_pain",
		Overrides: []Override{
			{Category: assumption.CatRevenueDrivers, Parameter: assumption.ParamConversionRate, Value: 0.001},
		},
	}
}

// Comparison pairs the baseline outcome with a perturbed one. Purely derived,
// read-only.
type Comparison struct {
	Name               string                     `json:"name"`
	FinalYear          int                        `json:"final_year"`
	BaselineRevenue    float64                    `json:"baseline_revenue"` // Final projected year
	BaselineValuation  float64                    `json:"baseline_valuation"`
	AlternateRevenue   float64                    `json:"alternate_revenue"`
	AlternateValuation float64                    `json:"alternate_valuation"`
	RevenueDeltaPct    float64                    `json:"revenue_delta_pct"`
	ValuationDeltaPct  float64                    `json:"valuation_delta_pct"`
	BaselineAnnual     *models.AnnualStatementSet `json:"baseline_annual"`
	AlternateAnnual    *models.AnnualStatementSet `json:"alternate_annual"`
}

// Runner drives scenario re-runs against a fixed baseline.
type Runner struct {
	baseline *assumption.AssumptionSet
	months   int
	multiple float64

	baselineRevenue float64
	baselineAnnual  *models.AnnualStatementSet
}

// NewRunner computes the baseline once and reuses it for every scenario.
func NewRunner(baseline *assumption.AssumptionSet, multiple float64) (*Runner, error) {
	months, err := baseline.DurationMonths()
	if err != nil {
		return nil, err
	}
	revSeries, statements, err := runPipeline(baseline, months)
	if err != nil {
		return nil, fmt.Errorf("baseline run failed: %w", err)
	}
	finalYearRev, err := valuation.AnnualRevenueForYear(revSeries, months/12)
	if err != nil {
		return nil, err
	}
	return &Runner{
		baseline:        baseline,
		months:          months,
		multiple:        multiple,
		baselineRevenue: finalYearRev,
		baselineAnnual:  statements,
	}, nil
}

// Run derives an AssumptionSet with the definition's overrides applied,
// re-runs projection, simulation and aggregation, and compares valuations.
func (r *Runner) Run(def Definition) (*Comparison, error) {
	if len(def.Overrides) == 0 {
		return nil, fmt.Errorf("scenario '%s' has no overrides", def.Name)
	}

	derived := r.baseline
	for _, o := range def.Overrides {
		next, err := derived.WithOverride(def.Name, o.Category, o.Parameter, o.Value)
		if err != nil {
			return nil, fmt.Errorf("scenario '%s': %w", def.Name, err)
		}
		derived = next
	}
	if err := derived.Validate(); err != nil {
		return nil, fmt.Errorf("scenario '%s': %w", def.Name, err)
	}

	revSeries, statements, err := runPipeline(derived, r.months)
	if err != nil {
		return nil, fmt.Errorf("scenario '%s' run failed: %w", def.Name, err)
	}

	finalYear := r.months / 12
	altRevenue, err := valuation.AnnualRevenueForYear(revSeries, finalYear)
	if err != nil {
		return nil, err
	}

	baseVal := valuation.EnterpriseValue(r.baselineRevenue, r.multiple)
	altVal := valuation.EnterpriseValue(altRevenue, r.multiple)

	return &Comparison{
		Name:               def.Name,
		FinalYear:          finalYear,
		BaselineRevenue:    r.baselineRevenue,
		BaselineValuation:  baseVal,
		AlternateRevenue:   altRevenue,
		AlternateValuation: altVal,
		RevenueDeltaPct:    valuation.PercentDelta(r.baselineRevenue, altRevenue),
		ValuationDeltaPct:  valuation.PercentDelta(baseVal, altVal),
		BaselineAnnual:     r.baselineAnnual,
		AlternateAnnual:    statements,
	}, nil
}

// runPipeline executes the pure computation stages with no reporting side
// effects, so scenario re-runs never print as a byproduct of computing.
func runPipeline(as *assumption.AssumptionSet, months int) ([]models.MonthlyRevenueRecord, *models.AnnualStatementSet, error) {
	revSeries, err := revenue.Project(as, months)
	if err != nil {
		return nil, nil, err
	}
	cfParams, err := cashflow.FromAssumptions(as)
	if err != nil {
		return nil, nil, err
	}
	cashSeries, err := cashflow.Simulate(revSeries, cfParams)
	if err != nil {
		return nil, nil, err
	}
	annParams, err := annual.FromAssumptions(as)
	if err != nil {
		return nil, nil, err
	}
	statements, err := annual.Aggregate(revSeries, cashSeries, annParams)
	if err != nil {
		return nil, nil, err
	}
	return revSeries, statements, nil
}
