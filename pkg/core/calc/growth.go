package calc

import (
	"fmt"
	"math"

	"finmodel/pkg/models"
)

// YoY returns the year-over-year percentage change: (current-prior)/prior*100.
func YoY(current, prior float64) float64 {
	if prior == 0 {
		if current == 0 {
			return 0
		}
		return math.Inf(1)
	}
	return (current - prior) / prior * 100
}

// CAGR returns the compound annual growth rate as a percentage.
func CAGR(startValue, endValue float64, years int) float64 {
	if startValue <= 0 || years <= 0 {
		return 0
	}
	return (math.Pow(endValue/startValue, 1.0/float64(years)) - 1) * 100
}

// GrowthSummary describes one metric's growth over the extracted history.
type GrowthSummary struct {
	Metric    models.Metric
	StartYear int
	EndYear   int
	CAGRPct   float64
	LatestYoY float64
}

// MetricGrowth computes CAGR over the full populated span of a metric's
// series plus the latest year-over-year change.
func MetricGrowth(r *models.ExtractionResult, m models.Metric) (*GrowthSummary, error) {
	series := r.SeriesFor(m)
	first, last := -1, -1
	for i, v := range series {
		if v == nil {
			continue
		}
		if first == -1 {
			first = i
		}
		last = i
	}
	if first == -1 || first == last {
		return nil, fmt.Errorf("calc: metric %s has fewer than two populated years", m)
	}

	startYear := r.FiscalYears[first]
	endYear := r.FiscalYears[last]

	summary := &GrowthSummary{
		Metric:    m,
		StartYear: startYear,
		EndYear:   endYear,
		CAGRPct:   CAGR(*series[first], *series[last], endYear-startYear),
	}

	if last > 0 && series[last-1] != nil {
		summary.LatestYoY = YoY(*series[last], *series[last-1])
	}
	return summary, nil
}
