// Package report renders run summaries: a Markdown digest of an extraction
// and any valuations run against it, plus an HTML rendering for sharing.
package report

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/yuin/goldmark"

	"finmodel/pkg/core/calc"
	"finmodel/pkg/core/valuation"
	"finmodel/pkg/models"
)

// Report accumulates sections and renders them as one document.
type Report struct {
	sections []string
}

// New starts a report.
func New() *Report {
	return &Report{}
}

// AddExtraction appends the extraction summary: source, coverage, and a
// metric-by-year table.
func (r *Report) AddExtraction(res *models.ExtractionResult) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", res.CompanyName)
	fmt.Fprintf(&sb, "- **Source:** %s\n", res.Source)
	fmt.Fprintf(&sb, "- **Fiscal years:** %s\n", yearRange(res.FiscalYears))
	fmt.Fprintf(&sb, "- **Completeness:** %.0f%%\n", res.Completeness*100)
	fmt.Fprintf(&sb, "- **Extracted:** %s\n\n", res.ExtractedAt.Format("2006-01-02 15:04 MST"))

	sb.WriteString("## Extracted Financials\n\n")
	sb.WriteString("| Metric |")
	for _, year := range res.FiscalYears {
		fmt.Fprintf(&sb, " %d |", year)
	}
	sb.WriteString("\n|---|")
	for range res.FiscalYears {
		sb.WriteString("---|")
	}
	sb.WriteString("\n")

	for _, metric := range models.CanonicalMetrics {
		series, ok := res.Metrics[metric]
		if !ok {
			continue
		}
		fmt.Fprintf(&sb, "| %s |", metric)
		for i := range res.FiscalYears {
			if i < len(series) && series[i] != nil {
				fmt.Fprintf(&sb, " %s |", formatValue(*series[i]))
			} else {
				sb.WriteString(" — |")
			}
		}
		sb.WriteString("\n")
	}

	r.sections = append(r.sections, sb.String())
}

// AddAnalysis appends margin, ratio and growth sections when the underlying
// data supports them.
func (r *Report) AddAnalysis(res *models.ExtractionResult) {
	ratios := calc.Ratios(res)
	if len(ratios) > 0 {
		var sb strings.Builder
		sb.WriteString("## Margins & Ratios\n\n")
		sb.WriteString("| Year | Gross | EBITDA | EBIT | Net | Capex/Rev | D/E |\n")
		sb.WriteString("|---|---|---|---|---|---|---|\n")
		for _, yr := range ratios {
			fmt.Fprintf(&sb, "| %d | %s | %s | %s | %s | %s | %s |\n",
				yr.Year, pct(yr.GrossMargin), pct(yr.EBITDAMargin), pct(yr.EBITMargin),
				pct(yr.NetMargin), pct(yr.CapexIntensity), ratio(yr.DebtToEquity))
		}
		r.sections = append(r.sections, sb.String())
	}

	var growth []string
	for _, metric := range []models.Metric{models.MetricRevenue, models.MetricEBITDA, models.MetricNetIncome} {
		g, err := calc.MetricGrowth(res, metric)
		if err != nil {
			continue
		}
		growth = append(growth, fmt.Sprintf("| %s | %d–%d | %.1f%% | %.1f%% |",
			g.Metric, g.StartYear, g.EndYear, g.CAGRPct, g.LatestYoY))
	}
	if len(growth) > 0 {
		var sb strings.Builder
		sb.WriteString("## Growth\n\n")
		sb.WriteString("| Metric | Span | CAGR | Latest YoY |\n|---|---|---|---|\n")
		sb.WriteString(strings.Join(growth, "\n"))
		sb.WriteString("\n")
		r.sections = append(r.sections, sb.String())
	}
}

// AddDCF appends a DCF summary section.
func (r *Report) AddDCF(in valuation.DCFInput, out valuation.DCFResult) {
	var sb strings.Builder
	sb.WriteString("## DCF Valuation\n\n")
	fmt.Fprintf(&sb, "- **WACC:** %.2f%%\n", in.WACC*100)
	fmt.Fprintf(&sb, "- **Terminal growth:** %.2f%%\n", in.TerminalGrowth*100)
	fmt.Fprintf(&sb, "- **PV of explicit FCF:** %s\n", formatValue(out.PVFCF))
	fmt.Fprintf(&sb, "- **PV of terminal value:** %s\n", formatValue(out.PVTerminal))
	fmt.Fprintf(&sb, "- **Enterprise value:** %s\n", formatValue(out.EnterpriseValue))
	fmt.Fprintf(&sb, "- **Equity value:** %s\n", formatValue(out.EquityValue))
	if in.SharesOutstanding > 0 {
		fmt.Fprintf(&sb, "- **Implied share price:** %.2f\n", out.SharePrice)
	}
	r.sections = append(r.sections, sb.String())
}

// AddLBO appends an LBO ability-to-pay section.
func (r *Report) AddLBO(in valuation.LBOInput, out valuation.LBOResult) {
	var sb strings.Builder
	sb.WriteString("## LBO Ability-to-Pay\n\n")
	fmt.Fprintf(&sb, "- **Entry leverage:** %.1fx (%s of debt)\n", in.LeverageRatio, formatValue(out.DebtRaised))
	fmt.Fprintf(&sb, "- **Debt at exit:** %s\n", formatValue(out.EndingDebt))
	fmt.Fprintf(&sb, "- **Exit enterprise value:** %s (%.1fx)\n", formatValue(out.ExitEnterpriseValue), in.ExitMultiple)
	fmt.Fprintf(&sb, "- **Max entry equity at %.0f%% IRR:** %s\n", in.TargetIRR*100, formatValue(out.RequiredEntryEquity))
	fmt.Fprintf(&sb, "- **Max entry enterprise value:** %s\n", formatValue(out.MaxEntryEV))
	fmt.Fprintf(&sb, "- **Implied entry multiple:** %.1fx\n", out.ImpliedEntryMultiple)
	r.sections = append(r.sections, sb.String())
}

// Markdown returns the assembled document.
func (r *Report) Markdown() string {
	return strings.Join(r.sections, "\n")
}

// HTML renders the assembled document with goldmark.
func (r *Report) HTML() (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(r.Markdown()), &buf); err != nil {
		return "", fmt.Errorf("report: render html: %w", err)
	}
	return buf.String(), nil
}

func yearRange(years []int) string {
	if len(years) == 0 {
		return "none detected"
	}
	return fmt.Sprintf("%d–%d", years[0], years[len(years)-1])
}

func formatValue(v float64) string {
	switch {
	case math.Abs(v) >= 1e9:
		return fmt.Sprintf("%.2fB", v/1e9)
	case math.Abs(v) >= 1e6:
		return fmt.Sprintf("%.1fM", v/1e6)
	default:
		return fmt.Sprintf("%.1f", v)
	}
}

func pct(v float64) string {
	if math.IsNaN(v) {
		return "—"
	}
	return fmt.Sprintf("%.1f%%", v*100)
}

func ratio(v float64) string {
	if math.IsNaN(v) {
		return "—"
	}
	return fmt.Sprintf("%.2fx", v)
}
