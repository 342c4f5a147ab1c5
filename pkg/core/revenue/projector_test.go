package revenue

import (
	"math"
	"testing"

	"creator_forecast/pkg/core/assumption"
)

const tolerance = 0.01

func TestProjectMonthOne(t *testing.T) {
	series, err := Project(assumption.Default(), 36)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(series) != 36 {
		t.Fatalf("expected 36 records, got %d", len(series))
	}

	m1 := series[0]
	// Month 1: views = 5000 exactly, still inside the YPP delay.
	if m1.Views != 5000 {
		t.Errorf("expected month 1 views 5000, got %v", m1.Views)
	}
	if m1.GrossAdRevenue != 0 {
		t.Errorf("expected month 1 ad revenue 0, got %v", m1.GrossAdRevenue)
	}
	// Subscribers = 5000 * 0.002 = 10, gross = 10 * 299 = 2990, net = 2093
	if math.Abs(m1.Subscribers-10) > tolerance {
		t.Errorf("expected 10 subscribers, got %v", m1.Subscribers)
	}
	if math.Abs(m1.GrossSubRevenue-2990) > tolerance {
		t.Errorf("expected gross subscription 2990, got %v", m1.GrossSubRevenue)
	}
	if math.Abs(m1.NetSubRevenue-2093) > tolerance {
		t.Errorf("expected net subscription 2093, got %v", m1.NetSubRevenue)
	}
	if math.Abs(m1.TotalRevenue-2093) > tolerance {
		t.Errorf("expected total revenue 2093, got %v", m1.TotalRevenue)
	}
}

func TestCompoundGrowthChain(t *testing.T) {
	series, err := Project(assumption.Default(), 36)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// views(m+1) = views(m) * 1.15 for every month (relative tolerance:
	// the series is computed via pow, the check via repeated products)
	for i := 0; i < len(series)-1; i++ {
		expected := series[i].Views * 1.15
		if math.Abs(series[i+1].Views-expected) > 1e-9*expected {
			t.Fatalf("month %d: expected views %v, got %v", i+2, expected, series[i+1].Views)
		}
	}
}

func TestYPPActivationBoundary(t *testing.T) {
	series, err := Project(assumption.Default(), 12)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Months 1-6 inside the delay: zero ad revenue
	for m := 1; m <= 6; m++ {
		if series[m-1].GrossAdRevenue != 0 {
			t.Errorf("month %d: expected 0 ad revenue inside YPP delay, got %v", m, series[m-1].GrossAdRevenue)
		}
	}

	// Month 7 is the first eligible month: (views/1000) * rpm
	m7 := series[6]
	expected := (m7.Views / 1000) * 250
	if math.Abs(m7.GrossAdRevenue-expected) > tolerance {
		t.Errorf("month 7: expected ad revenue %v, got %v", expected, m7.GrossAdRevenue)
	}
	if m7.GrossAdRevenue <= 0 {
		t.Error("month 7 ad revenue should be positive")
	}
}

func TestPlatformCutIsFixed(t *testing.T) {
	series, err := Project(assumption.Default(), 36)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, rec := range series {
		expected := rec.GrossSubRevenue * 0.70
		if math.Abs(rec.NetSubRevenue-expected) > 1e-9 {
			t.Fatalf("month %d: net subscription %v is not 70%% of gross %v", rec.Month, rec.NetSubRevenue, rec.GrossSubRevenue)
		}
	}
}

func TestProjectIsIdempotent(t *testing.T) {
	as := assumption.Default()

	first, err := Project(as, 36)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Project(as, 36)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("month %d: runs differ: %+v vs %+v", i+1, first[i], second[i])
		}
	}
}

func TestProjectRejectsNonPositiveMonths(t *testing.T) {
	if _, err := Project(assumption.Default(), 0); err == nil {
		t.Fatal("expected error for zero months, got nil")
	}
}

func TestFromAssumptionsMissingKey(t *testing.T) {
	as := assumption.New("partial", map[string]map[string]float64{
		assumption.CatRevenueDrivers: {assumption.ParamInitialViews: 5000},
	})
	if _, err := FromAssumptions(as); err == nil {
		t.Fatal("expected error for incomplete assumption set, got nil")
	}
}
