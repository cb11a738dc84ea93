// Package models defines the standardized financial schema that all data
// sources (spreadsheets, SEC EDGAR, scraped statements) are normalized into.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Metric is a canonical financial line-item name. Every source label variant
// is mapped onto one of these before any downstream calculation sees it.
type Metric string

const (
	MetricRevenue           Metric = "revenue"
	MetricCOGS              Metric = "cogs"
	MetricGrossProfit       Metric = "gross_profit"
	MetricSGA               Metric = "sgna"
	MetricRnD               Metric = "rnd"
	MetricEBITDA            Metric = "ebitda"
	MetricDA                Metric = "da"
	MetricEBIT              Metric = "ebit"
	MetricInterestExpense   Metric = "interest_expense"
	MetricTaxExpense        Metric = "tax_expense"
	MetricNetIncome         Metric = "net_income"
	MetricCapex             Metric = "capex"
	MetricNWC               Metric = "nwc"
	MetricOperatingCashFlow Metric = "operating_cash_flow"
	MetricTotalAssets       Metric = "total_assets"
	MetricTotalLiabilities  Metric = "total_liabilities"
	MetricTotalEquity       Metric = "total_equity"
	MetricCash              Metric = "cash_and_equivalents"
	MetricTotalDebt         Metric = "total_debt"
	MetricSharesOutstanding Metric = "shares_outstanding"
)

// CanonicalMetrics is the full enumeration in declaration order. The order is
// load-bearing: the fuzzy matcher breaks score ties in favor of the
// earlier-declared metric, so this must stay an ordered slice, not a set.
var CanonicalMetrics = []Metric{
	MetricRevenue,
	MetricCOGS,
	MetricGrossProfit,
	MetricSGA,
	MetricRnD,
	MetricEBITDA,
	MetricDA,
	MetricEBIT,
	MetricInterestExpense,
	MetricTaxExpense,
	MetricNetIncome,
	MetricCapex,
	MetricNWC,
	MetricOperatingCashFlow,
	MetricTotalAssets,
	MetricTotalLiabilities,
	MetricTotalEquity,
	MetricCash,
	MetricTotalDebt,
	MetricSharesOutstanding,
}

// MetricTier classifies how much a metric contributes to the completeness
// score of an extraction.
type MetricTier int

const (
	TierOptional  MetricTier = 1 // weight x1
	TierStandard  MetricTier = 2 // weight x2
	TierImportant MetricTier = 3 // weight x3
)

// TierOf returns the completeness tier for a canonical metric.
func TierOf(m Metric) MetricTier {
	switch m {
	case MetricRevenue, MetricEBITDA, MetricEBIT, MetricNetIncome:
		return TierImportant
	case MetricCOGS, MetricTotalAssets, MetricOperatingCashFlow:
		return TierStandard
	default:
		return TierOptional
	}
}

// Series is an ordered list of values, one per fiscal year of the parent
// result. A nil entry means the value was absent in the source, which is
// distinct from zero.
type Series []*float64

// ExtractionResult is the standardized record produced by one extraction run
// over one source (workbook, API response, or scraped page). It is immutable
// after construction.
type ExtractionResult struct {
	ID          string            `json:"id"`
	CompanyName string            `json:"company_name"`
	Source      string            `json:"source"`
	FiscalYears []int             `json:"fiscal_years"`
	Metrics     map[Metric]Series `json:"metrics"`

	// Completeness is an advisory data-quality score in [0,1]. It never
	// blocks the result from being returned.
	Completeness float64   `json:"completeness"`
	ExtractedAt  time.Time `json:"extracted_at"`
}

// NewExtractionResult allocates a result shell with a fresh run ID.
func NewExtractionResult(source string) *ExtractionResult {
	return &ExtractionResult{
		ID:          uuid.NewString(),
		Source:      source,
		Metrics:     make(map[Metric]Series),
		ExtractedAt: time.Now().UTC(),
	}
}

// SeriesFor returns the value series for a metric, or nil if the metric was
// never matched in the source.
func (r *ExtractionResult) SeriesFor(m Metric) Series {
	return r.Metrics[m]
}

// HasMetric reports whether at least one non-nil value exists for the metric.
func (r *ExtractionResult) HasMetric(m Metric) bool {
	for _, v := range r.Metrics[m] {
		if v != nil {
			return true
		}
	}
	return false
}

// ValueAt returns the value for (metric, year), or nil when the year is not
// covered or the value is absent.
func (r *ExtractionResult) ValueAt(m Metric, year int) *float64 {
	series, ok := r.Metrics[m]
	if !ok {
		return nil
	}
	for i, y := range r.FiscalYears {
		if y == year && i < len(series) {
			return series[i]
		}
	}
	return nil
}

// LatestValue returns the most recent non-nil value for the metric, scanning
// the fiscal years from newest to oldest.
func (r *ExtractionResult) LatestValue(m Metric) (float64, int, bool) {
	series, ok := r.Metrics[m]
	if !ok {
		return 0, 0, false
	}
	for i := len(r.FiscalYears) - 1; i >= 0; i-- {
		if i < len(series) && series[i] != nil {
			return *series[i], r.FiscalYears[i], true
		}
	}
	return 0, 0, false
}

// Float64Ptr is a convenience for building Series literals.
func Float64Ptr(f float64) *float64 { return &f }
