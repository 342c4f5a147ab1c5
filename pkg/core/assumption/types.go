// Package assumption implements the immutable AssumptionSet driving the
// forecast. Parameters are grouped by category; a scenario run derives a copy
// with overridden leaves and never mutates the original.
package assumption

import (
	"fmt"
	"math"
	"sort"
)

// =============================================================================
// CATEGORY / PARAMETER KEYS
// =============================================================================

const (
	CatRevenueDrivers = "revenue_drivers"
	CatOperatingCosts = "operational_costs_monthly"
	CatCapex          = "capex"
	CatTiming         = "timing_logic"
	CatFinancing      = "financing"
	CatProjection     = "projection"
)

const (
	ParamInitialViews    = "initial_monthly_views"
	ParamGrowthRate      = "mom_growth_rate"
	ParamRPM             = "ai_niche_rpm"
	ParamMembershipPrice = "membership_price"
	ParamConversionRate  = "membership_conversion_rate"

	ParamEditor     = "freelance_editor"
	ParamWriter     = "scriptwriter"
	ParamAISoftware = "ai_software_suite"

	ParamGearInvestment = "gear_investment"

	ParamYPPDelayMonths   = "ypp_activation_delay_months"
	ParamPaymentThreshold = "payment_threshold"

	ParamStartingCash = "starting_cash"

	ParamDurationYears = "duration_years"
)

// rateParams are validated as fractions in [0,1]; everything else numeric must
// be non-negative.
var rateParams = map[string]bool{
	ParamGrowthRate:     true,
	ParamConversionRate: true,
}

// =============================================================================
// ASSUMPTION SET
// =============================================================================

// Entry is one (category, parameter, value) triple from a set dump, used for
// the assumptions table and the workbook's Assumptions sheet.
type Entry struct {
	Category  string
	Parameter string
	Value     float64
}

// AssumptionSet is an immutable mapping of category -> parameter -> value.
// All constructors deep-copy their input; readers never see internal maps.
type AssumptionSet struct {
	label  string
	values map[string]map[string]float64
}

// New creates an AssumptionSet from raw values. The input is deep-copied.
func New(label string, values map[string]map[string]float64) *AssumptionSet {
	return &AssumptionSet{label: label, values: deepCopy(values)}
}

// Default returns the baseline set for the model. Created once at startup;
// variants require explicit derivation via WithOverride.
func Default() *AssumptionSet {
	return New("base", map[string]map[string]float64{
		CatRevenueDrivers: {
			ParamInitialViews:    5_000,
			ParamGrowthRate:      0.15,
			ParamRPM:             250,
			ParamMembershipPrice: 299,
			ParamConversionRate:  0.002,
		},
		CatOperatingCosts: {
			ParamEditor:     15_000,
			ParamWriter:     10_000,
			ParamAISoftware: 4_500,
		},
		CatCapex: {
			ParamGearInvestment: 150_000,
		},
		CatTiming: {
			ParamYPPDelayMonths:   6,
			ParamPaymentThreshold: 8_600,
		},
		CatFinancing: {
			ParamStartingCash: 200_000,
		},
		CatProjection: {
			ParamDurationYears: 3,
		},
	})
}

// Label identifies the set ("base", "downside", ...).
func (as *AssumptionSet) Label() string { return as.label }

// Value retrieves a single parameter. Missing keys are configuration errors
// and identify the offending category.parameter.
func (as *AssumptionSet) Value(category, parameter string) (float64, error) {
	params, ok := as.values[category]
	if !ok {
		return 0, fmt.Errorf("assumption category '%s' not found", category)
	}
	v, ok := params[parameter]
	if !ok {
		return 0, fmt.Errorf("assumption '%s.%s' not found", category, parameter)
	}
	return v, nil
}

// WithOverride derives a new set with exactly the given leaf changed.
// The receiver is never modified. Overriding an unknown key is an error so a
// typo cannot silently produce a baseline re-run.
func (as *AssumptionSet) WithOverride(label, category, parameter string, value float64) (*AssumptionSet, error) {
	if _, err := as.Value(category, parameter); err != nil {
		return nil, fmt.Errorf("cannot override: %w", err)
	}
	derived := deepCopy(as.values)
	derived[category][parameter] = value
	return &AssumptionSet{label: label, values: derived}, nil
}

// MonthlyOpex sums every line item in the operating-costs category.
func (as *AssumptionSet) MonthlyOpex() float64 {
	var total float64
	for _, v := range as.values[CatOperatingCosts] {
		total += v
	}
	return total
}

// DurationMonths converts the projection horizon to a month count.
func (as *AssumptionSet) DurationMonths() (int, error) {
	years, err := as.Value(CatProjection, ParamDurationYears)
	if err != nil {
		return 0, err
	}
	return int(years) * 12, nil
}

// Dump returns every (category, parameter, value) triple in deterministic
// order for printing and export.
func (as *AssumptionSet) Dump() []Entry {
	var entries []Entry
	for _, cat := range sortedKeys(as.values) {
		params := as.values[cat]
		names := make([]string, 0, len(params))
		for name := range params {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			entries = append(entries, Entry{Category: cat, Parameter: name, Value: params[name]})
		}
	}
	return entries
}

// Validate enforces the set invariants: rates are fractions in [0,1], money
// and volume values are non-negative, and the projection duration is a
// positive whole number of years.
func (as *AssumptionSet) Validate() error {
	for _, cat := range sortedKeys(as.values) {
		for name, v := range as.values[cat] {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("assumption '%s.%s' is not a finite number", cat, name)
			}
			if rateParams[name] {
				if v < 0 || v > 1 {
					return fmt.Errorf("assumption '%s.%s' must be a fraction in [0,1], got %v", cat, name, v)
				}
				continue
			}
			if v < 0 {
				return fmt.Errorf("assumption '%s.%s' must be non-negative, got %v", cat, name, v)
			}
		}
	}
	years, err := as.Value(CatProjection, ParamDurationYears)
	if err != nil {
		return err
	}
	if years < 1 || years != math.Trunc(years) {
		return fmt.Errorf("assumption '%s.%s' must be a positive integer, got %v", CatProjection, ParamDurationYears, years)
	}
	return nil
}

func deepCopy(src map[string]map[string]float64) map[string]map[string]float64 {
	dst := make(map[string]map[string]float64, len(src))
	for cat, params := range src {
		inner := make(map[string]float64, len(params))
		for name, v := range params {
			inner[name] = v
		}
		dst[cat] = inner
	}
	return dst
}

func sortedKeys(m map[string]map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
