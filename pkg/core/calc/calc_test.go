package calc

import (
	"math"
	"testing"

	"finmodel/pkg/models"
)

func sampleResult() *models.ExtractionResult {
	r := models.NewExtractionResult("test")
	r.CompanyName = "Test Co"
	r.FiscalYears = []int{2021, 2022, 2023}
	set := func(m models.Metric, vals ...float64) {
		s := make(models.Series, len(vals))
		for i, v := range vals {
			s[i] = models.Float64Ptr(v)
		}
		r.Metrics[m] = s
	}
	set(models.MetricRevenue, 1000, 1100, 1210)
	set(models.MetricEBITDA, 250, 286, 327)
	set(models.MetricNetIncome, 100, 121, 145)
	set(models.MetricTotalAssets, 2000, 2100, 2200)
	return r
}

func TestRatios(t *testing.T) {
	ratios := Ratios(sampleResult())
	if len(ratios) != 3 {
		t.Fatalf("got %d ratio years, want 3", len(ratios))
	}

	y := ratios[0]
	if y.Year != 2021 {
		t.Errorf("first year = %d, want 2021", y.Year)
	}
	if math.Abs(y.EBITDAMargin-0.25) > 1e-9 {
		t.Errorf("ebitda margin = %v, want 0.25", y.EBITDAMargin)
	}
	if math.Abs(y.NetMargin-0.10) > 1e-9 {
		t.Errorf("net margin = %v, want 0.10", y.NetMargin)
	}
	// Gross profit was never extracted: NaN, not zero.
	if !math.IsNaN(y.GrossMargin) {
		t.Errorf("gross margin = %v, want NaN for missing input", y.GrossMargin)
	}
	if math.Abs(y.ReturnOnAssets-0.05) > 1e-9 {
		t.Errorf("roa = %v, want 0.05", y.ReturnOnAssets)
	}
}

func TestCommonSize(t *testing.T) {
	cs := CommonSize(sampleResult(), 2021)

	if v, ok := cs[models.MetricEBITDA]; !ok || math.Abs(v-0.25) > 1e-9 {
		t.Errorf("common-size ebitda = %v, want 0.25", v)
	}
	if _, ok := cs[models.MetricCOGS]; ok {
		t.Error("cogs was never extracted, should not appear")
	}
}

func TestYoY(t *testing.T) {
	tests := []struct {
		name           string
		current, prior float64
		want           float64
	}{
		{"Positive growth", 110, 100, 10},
		{"Decline", 90, 100, -10},
		{"Flat", 100, 100, 0},
		{"Zero both", 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := YoY(tt.current, tt.prior); got != tt.want {
				t.Errorf("YoY(%v, %v) = %v, want %v", tt.current, tt.prior, got, tt.want)
			}
		})
	}
	if !math.IsInf(YoY(10, 0), 1) {
		t.Error("growth from zero should be +Inf")
	}
}

func TestMetricGrowth(t *testing.T) {
	summary, err := MetricGrowth(sampleResult(), models.MetricRevenue)
	if err != nil {
		t.Fatalf("MetricGrowth failed: %v", err)
	}
	if summary.StartYear != 2021 || summary.EndYear != 2023 {
		t.Errorf("span = %d-%d, want 2021-2023", summary.StartYear, summary.EndYear)
	}
	// 1000 -> 1210 over 2 years is 10% CAGR.
	if math.Abs(summary.CAGRPct-10) > 1e-6 {
		t.Errorf("cagr = %v, want 10", summary.CAGRPct)
	}
	if math.Abs(summary.LatestYoY-10) > 1e-6 {
		t.Errorf("latest yoy = %v, want 10", summary.LatestYoY)
	}
}

func TestMetricGrowthInsufficientData(t *testing.T) {
	r := models.NewExtractionResult("thin")
	r.FiscalYears = []int{2023}
	r.Metrics[models.MetricRevenue] = models.Series{models.Float64Ptr(100)}

	if _, err := MetricGrowth(r, models.MetricRevenue); err == nil {
		t.Fatal("expected error for a single populated year")
	}
}
