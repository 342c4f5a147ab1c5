package scenario

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"creator_forecast/pkg/core/assumption"
	"creator_forecast/pkg/core/valuation"
)

func TestRunDownsideScenario(t *testing.T) {
	runner, err := NewRunner(assumption.Default(), valuation.DefaultRevenueMultiple)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cmp, err := runner.Run(DefaultDownside())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cmp.Name != "founder_pain" {
		t.Errorf("expected name 'founder_pain', got '%s'", cmp.Name)
	}
	if cmp.FinalYear != 3 {
		t.Errorf("expected final year 3, got %d", cmp.FinalYear)
	}

	// Halving conversion cuts subscription revenue but leaves ad revenue
	// untouched, so revenue falls without halving outright.
	if cmp.AlternateRevenue >= cmp.BaselineRevenue {
		t.Errorf("downside revenue %v should be below baseline %v", cmp.AlternateRevenue, cmp.BaselineRevenue)
	}
	if cmp.RevenueDeltaPct >= 0 || cmp.RevenueDeltaPct <= -50 {
		t.Errorf("expected revenue delta in (-50, 0), got %v", cmp.RevenueDeltaPct)
	}

	// Valuation is a fixed multiple of revenue, so the deltas match.
	if math.Abs(cmp.RevenueDeltaPct-cmp.ValuationDeltaPct) > 1e-9 {
		t.Errorf("valuation delta %v should equal revenue delta %v", cmp.ValuationDeltaPct, cmp.RevenueDeltaPct)
	}
	if math.Abs(cmp.AlternateValuation-cmp.AlternateRevenue*4) > 0.01 {
		t.Errorf("expected valuation 4x revenue, got %v vs %v", cmp.AlternateValuation, cmp.AlternateRevenue*4)
	}

	if cmp.BaselineAnnual == nil || cmp.AlternateAnnual == nil {
		t.Fatal("comparison must carry both annual statement sets")
	}
}

func TestRunDoesNotMutateBaseline(t *testing.T) {
	baseline := assumption.Default()
	runner, err := NewRunner(baseline, valuation.DefaultRevenueMultiple)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := runner.Run(DefaultDownside()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rate, _ := baseline.Value(assumption.CatRevenueDrivers, assumption.ParamConversionRate)
	if rate != 0.002 {
		t.Errorf("baseline conversion rate mutated by scenario run: got %v", rate)
	}
}

func TestRunRejectsEmptyOverrides(t *testing.T) {
	runner, _ := NewRunner(assumption.Default(), valuation.DefaultRevenueMultiple)

	if _, err := runner.Run(Definition{Name: "empty"}); err == nil {
		t.Fatal("expected error for scenario without overrides, got nil")
	}
}

func TestRunRejectsUnknownOverrideKey(t *testing.T) {
	runner, _ := NewRunner(assumption.Default(), valuation.DefaultRevenueMultiple)

	def := Definition{
		Name:      "typo",
		Overrides: []Override{{Category: "revenue_drivers", Parameter: "made_up", Value: 1}},
	}
	if _, err := runner.Run(def); err == nil {
		t.Fatal("expected error for unknown override key, got nil")
	}
}

func TestRunRejectsInvalidDerivedSet(t *testing.T) {
	runner, _ := NewRunner(assumption.Default(), valuation.DefaultRevenueMultiple)

	def := Definition{
		Name:      "bad_rate",
		Overrides: []Override{{Category: assumption.CatRevenueDrivers, Parameter: assumption.ParamGrowthRate, Value: 2.0}},
	}
	if _, err := runner.Run(def); err == nil {
		t.Fatal("expected validation error for out-of-range growth, got nil")
	}
}

func TestLoadDefinitions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scenarios.hjson")
	content := `{
  scenarios: [
    {
      // conversion halves
      name: founder_pain
      overrides: [
        {category: "revenue_drivers", parameter: "membership_conversion_rate", value: 0.001}
      ]
    }
    {
      name: slow_growth
      overrides: [
        {category: "revenue_drivers", parameter: "mom_growth_rate", value: 0.10}
      ]
    }
  ]
}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}

	defs, err := LoadDefinitions(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(defs) != 2 {
		t.Fatalf("expected 2 scenarios, got %d", len(defs))
	}
	if defs[0].Name != "founder_pain" || defs[1].Name != "slow_growth" {
		t.Errorf("scenario names wrong: %+v", defs)
	}
	if defs[1].Overrides[0].Value != 0.10 {
		t.Errorf("expected override value 0.10, got %v", defs[1].Overrides[0].Value)
	}
}

func TestLoadDefinitionsRejectsEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.hjson")
	if err := os.WriteFile(path, []byte("{scenarios: []}"), 0o644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	if _, err := LoadDefinitions(path); err == nil {
		t.Fatal("expected error for empty scenario list, got nil")
	}
}
