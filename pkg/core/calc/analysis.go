// Package calc provides deterministic financial analysis over the canonical
// schema: margin and ratio computation, common-size statements, and growth
// measures. Everything here is pure arithmetic on an ExtractionResult.
package calc

import (
	"math"

	"finmodel/pkg/models"
)

// YearRatios holds derived ratios for one fiscal year. A NaN entry means an
// input was missing; callers should test with math.IsNaN before display.
type YearRatios struct {
	Year           int
	GrossMargin    float64
	EBITDAMargin   float64
	EBITMargin     float64
	NetMargin      float64
	CapexIntensity float64 // |capex| / revenue
	ReturnOnAssets float64
	DebtToEquity   float64
}

// Ratios derives per-year ratios from an extraction result. Years without a
// revenue value are skipped entirely; other missing inputs surface as NaN in
// the individual ratio.
func Ratios(r *models.ExtractionResult) []YearRatios {
	var out []YearRatios
	for _, year := range r.FiscalYears {
		rev := r.ValueAt(models.MetricRevenue, year)
		if rev == nil || *rev == 0 {
			continue
		}

		yr := YearRatios{Year: year}
		yr.GrossMargin = overRevenue(r, models.MetricGrossProfit, year, *rev)
		yr.EBITDAMargin = overRevenue(r, models.MetricEBITDA, year, *rev)
		yr.EBITMargin = overRevenue(r, models.MetricEBIT, year, *rev)
		yr.NetMargin = overRevenue(r, models.MetricNetIncome, year, *rev)

		if capex := r.ValueAt(models.MetricCapex, year); capex != nil {
			yr.CapexIntensity = math.Abs(*capex) / *rev
		} else {
			yr.CapexIntensity = math.NaN()
		}

		yr.ReturnOnAssets = ratioOf(r, models.MetricNetIncome, models.MetricTotalAssets, year)
		yr.DebtToEquity = ratioOf(r, models.MetricTotalDebt, models.MetricTotalEquity, year)

		out = append(out, yr)
	}
	return out
}

func overRevenue(r *models.ExtractionResult, m models.Metric, year int, revenue float64) float64 {
	v := r.ValueAt(m, year)
	if v == nil {
		return math.NaN()
	}
	return *v / revenue
}

func ratioOf(r *models.ExtractionResult, num, den models.Metric, year int) float64 {
	n := r.ValueAt(num, year)
	d := r.ValueAt(den, year)
	if n == nil || d == nil || *d == 0 {
		return math.NaN()
	}
	return *n / *d
}

// CommonSize expresses each metric as a share of its statement base for one
// fiscal year: income-statement items over revenue, balance-sheet items over
// total assets. Metrics whose base is missing are omitted.
func CommonSize(r *models.ExtractionResult, year int) map[models.Metric]float64 {
	out := make(map[models.Metric]float64)

	if rev := r.ValueAt(models.MetricRevenue, year); rev != nil && *rev != 0 {
		for _, m := range []models.Metric{
			models.MetricCOGS, models.MetricGrossProfit, models.MetricSGA,
			models.MetricRnD, models.MetricEBITDA, models.MetricDA,
			models.MetricEBIT, models.MetricNetIncome,
		} {
			if v := r.ValueAt(m, year); v != nil {
				out[m] = *v / *rev
			}
		}
	}

	if assets := r.ValueAt(models.MetricTotalAssets, year); assets != nil && *assets != 0 {
		for _, m := range []models.Metric{
			models.MetricCash, models.MetricTotalLiabilities,
			models.MetricTotalEquity, models.MetricTotalDebt,
		} {
			if v := r.ValueAt(m, year); v != nil {
				out[m] = *v / *assets
			}
		}
	}

	return out
}
