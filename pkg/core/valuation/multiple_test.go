package valuation

import (
	"math"
	"testing"

	"creator_forecast/pkg/models"
)

func flatSeries(months int, monthly float64) []models.MonthlyRevenueRecord {
	series := make([]models.MonthlyRevenueRecord, months)
	for i := range series {
		series[i] = models.MonthlyRevenueRecord{Month: i + 1, TotalRevenue: monthly}
	}
	return series
}

func TestAnnualRevenueForYear(t *testing.T) {
	series := flatSeries(36, 1000)

	y3, err := AnnualRevenueForYear(series, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if y3 != 12000 {
		t.Errorf("expected 12000, got %v", y3)
	}
}

func TestAnnualRevenueForYearOutOfRange(t *testing.T) {
	series := flatSeries(24, 1000)

	if _, err := AnnualRevenueForYear(series, 3); err == nil {
		t.Fatal("expected error for year beyond series, got nil")
	}
	if _, err := AnnualRevenueForYear(series, 0); err == nil {
		t.Fatal("expected error for year 0, got nil")
	}
}

func TestEnterpriseValue(t *testing.T) {
	if ev := EnterpriseValue(250000, DefaultRevenueMultiple); ev != 1000000 {
		t.Errorf("expected EV 1000000, got %v", ev)
	}
}

func TestPercentDelta(t *testing.T) {
	if d := PercentDelta(200, 100); math.Abs(d-(-50)) > 1e-9 {
		t.Errorf("expected -50%%, got %v", d)
	}
	if d := PercentDelta(0, 100); d != 0 {
		t.Errorf("expected 0 for zero baseline, got %v", d)
	}
}
