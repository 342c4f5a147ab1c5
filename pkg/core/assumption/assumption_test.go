package assumption

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultValues(t *testing.T) {
	as := Default()

	views, err := as.Value(CatRevenueDrivers, ParamInitialViews)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if views != 5000 {
		t.Errorf("expected initial views 5000, got %v", views)
	}

	threshold, _ := as.Value(CatTiming, ParamPaymentThreshold)
	if threshold != 8600 {
		t.Errorf("expected payment threshold 8600, got %v", threshold)
	}
}

func TestValueNotFound(t *testing.T) {
	as := Default()

	if _, err := as.Value(CatRevenueDrivers, "nonexistent"); err == nil {
		t.Fatal("expected error for missing parameter, got nil")
	}
	if _, err := as.Value("nonexistent", ParamInitialViews); err == nil {
		t.Fatal("expected error for missing category, got nil")
	}
}

func TestMonthlyOpex(t *testing.T) {
	as := Default()

	// 15,000 + 10,000 + 4,500
	if opex := as.MonthlyOpex(); opex != 29500 {
		t.Errorf("expected monthly opex 29500, got %v", opex)
	}
}

func TestDurationMonths(t *testing.T) {
	as := Default()

	months, err := as.DurationMonths()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if months != 36 {
		t.Errorf("expected 36 months, got %d", months)
	}
}

func TestWithOverrideDoesNotMutateBase(t *testing.T) {
	base := Default()

	derived, err := base.WithOverride("downside", CatRevenueDrivers, ParamConversionRate, 0.001)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	baseRate, _ := base.Value(CatRevenueDrivers, ParamConversionRate)
	if baseRate != 0.002 {
		t.Errorf("base conversion rate mutated: got %v", baseRate)
	}
	derivedRate, _ := derived.Value(CatRevenueDrivers, ParamConversionRate)
	if derivedRate != 0.001 {
		t.Errorf("expected derived conversion rate 0.001, got %v", derivedRate)
	}
	if derived.Label() != "downside" {
		t.Errorf("expected label 'downside', got '%s'", derived.Label())
	}
}

func TestWithOverrideUnknownKey(t *testing.T) {
	base := Default()

	if _, err := base.WithOverride("x", CatRevenueDrivers, "typo_param", 1.0); err == nil {
		t.Fatal("expected error overriding unknown parameter, got nil")
	}
}

func TestValidateRejectsOutOfRangeRate(t *testing.T) {
	as, err := Default().WithOverride("bad", CatRevenueDrivers, ParamGrowthRate, 1.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := as.Validate(); err == nil {
		t.Fatal("expected validation error for growth rate > 1, got nil")
	}
}

func TestValidateRejectsNegativeMoney(t *testing.T) {
	as, _ := Default().WithOverride("bad", CatCapex, ParamGearInvestment, -1)
	if err := as.Validate(); err == nil {
		t.Fatal("expected validation error for negative capex, got nil")
	}
}

func TestValidateRejectsFractionalDuration(t *testing.T) {
	as, _ := Default().WithOverride("bad", CatProjection, ParamDurationYears, 2.5)
	if err := as.Validate(); err == nil {
		t.Fatal("expected validation error for fractional duration, got nil")
	}
}

func TestValidateRejectsNaN(t *testing.T) {
	as, _ := Default().WithOverride("bad", CatRevenueDrivers, ParamRPM, math.NaN())
	if err := as.Validate(); err == nil {
		t.Fatal("expected validation error for NaN, got nil")
	}
}

func TestDumpIsDeterministic(t *testing.T) {
	as := Default()

	first := as.Dump()
	second := as.Dump()

	if len(first) != 13 {
		t.Fatalf("expected 13 entries, got %d", len(first))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("dump order not deterministic at index %d: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestMergeUnknownKeyFails(t *testing.T) {
	_, err := Merge(Default(), map[string]map[string]float64{
		"revenue_drivers": {"made_up": 1},
	})
	if err == nil {
		t.Fatal("expected error for unknown override key, got nil")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "assumptions.yaml")
	content := "revenue_drivers:\n  mom_growth_rate: 0.10\ntiming_logic:\n  ypp_activation_delay_months: 4\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}

	as, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	growth, _ := as.Value(CatRevenueDrivers, ParamGrowthRate)
	if growth != 0.10 {
		t.Errorf("expected overridden growth 0.10, got %v", growth)
	}
	delay, _ := as.Value(CatTiming, ParamYPPDelayMonths)
	if delay != 4 {
		t.Errorf("expected overridden delay 4, got %v", delay)
	}
	// Untouched defaults survive the merge
	rpm, _ := as.Value(CatRevenueDrivers, ParamRPM)
	if rpm != 250 {
		t.Errorf("expected default rpm 250, got %v", rpm)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile("/nonexistent/assumptions.yaml"); err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
}
