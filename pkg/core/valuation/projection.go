package valuation

import (
	"fmt"

	"finmodel/pkg/models"
)

// Drivers are the operating assumptions a projection is built on, expressed
// as ratios of revenue except for the growth and tax rates.
type Drivers struct {
	RevenueGrowth   float64
	EBITDAMargin    float64
	DAPctRevenue    float64
	CapexPctRevenue float64
	NWCPctRevenue   float64 // change in NWC as a share of revenue
	TaxRate         float64
}

// ProjectedYear is one fully-derived forecast year.
type ProjectedYear struct {
	Year      int
	Revenue   float64
	EBITDA    float64
	DA        float64
	EBIT      float64
	NOPAT     float64
	Capex     float64
	ChangeNWC float64
	UFCF      float64 // NOPAT + D&A - Capex - ΔNWC
}

// Project rolls the drivers forward from a base revenue for n years,
// starting the year after baseYear.
func Project(baseYear int, baseRevenue float64, d Drivers, n int) []ProjectedYear {
	out := make([]ProjectedYear, 0, n)
	revenue := baseRevenue
	for i := 1; i <= n; i++ {
		revenue *= 1 + d.RevenueGrowth

		ebitda := revenue * d.EBITDAMargin
		da := revenue * d.DAPctRevenue
		ebit := ebitda - da
		nopat := ebit * (1 - d.TaxRate)
		capex := revenue * d.CapexPctRevenue
		nwc := revenue * d.NWCPctRevenue

		out = append(out, ProjectedYear{
			Year:      baseYear + i,
			Revenue:   revenue,
			EBITDA:    ebitda,
			DA:        da,
			EBIT:      ebit,
			NOPAT:     nopat,
			Capex:     capex,
			ChangeNWC: nwc,
			UFCF:      nopat + da - capex - nwc,
		})
	}
	return out
}

// DeriveDrivers estimates a driver set from an extraction result's
// historical series: average year-over-year revenue growth, average margins
// and ratios over the years where both numerator and denominator exist.
// Metrics the source did not supply fall back to conservative defaults, so a
// thin extraction still yields a usable projection.
func DeriveDrivers(r *models.ExtractionResult, taxRate float64) (Drivers, error) {
	revenue := r.SeriesFor(models.MetricRevenue)
	if len(revenue) == 0 {
		return Drivers{}, fmt.Errorf("valuation: cannot derive drivers without a revenue series")
	}

	d := Drivers{
		RevenueGrowth:   0.03,
		EBITDAMargin:    0.20,
		DAPctRevenue:    0.04,
		CapexPctRevenue: 0.04,
		NWCPctRevenue:   0.01,
		TaxRate:         taxRate,
	}

	// Average YoY revenue growth over adjacent populated years.
	var growthSum float64
	var growthN int
	for i := 1; i < len(revenue); i++ {
		if revenue[i] == nil || revenue[i-1] == nil || *revenue[i-1] == 0 {
			continue
		}
		growthSum += *revenue[i] / *revenue[i-1] - 1
		growthN++
	}
	if growthN > 0 {
		d.RevenueGrowth = growthSum / float64(growthN)
	}

	if m, ok := avgRatio(r.SeriesFor(models.MetricEBITDA), revenue); ok {
		d.EBITDAMargin = m
	}
	if m, ok := avgRatio(r.SeriesFor(models.MetricDA), revenue); ok {
		d.DAPctRevenue = m
	}
	if m, ok := avgRatio(r.SeriesFor(models.MetricCapex), revenue); ok {
		// Capex is often reported as an outflow; drivers use magnitudes.
		if m < 0 {
			m = -m
		}
		d.CapexPctRevenue = m
	}
	if m, ok := avgRatio(r.SeriesFor(models.MetricNWC), revenue); ok {
		d.NWCPctRevenue = m
	}

	return d, nil
}

// avgRatio averages num[i]/den[i] over indices where both are present and
// the denominator is nonzero.
func avgRatio(num, den models.Series) (float64, bool) {
	var sum float64
	var n int
	for i := 0; i < len(num) && i < len(den); i++ {
		if num[i] == nil || den[i] == nil || *den[i] == 0 {
			continue
		}
		sum += *num[i] / *den[i]
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}
