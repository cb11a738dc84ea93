package report

import (
	"strings"
	"testing"
	"time"

	"finmodel/pkg/core/valuation"
	"finmodel/pkg/models"
)

func sampleResult() *models.ExtractionResult {
	r := models.NewExtractionResult("acme_financials.xlsx")
	r.CompanyName = "Acme Corp"
	r.FiscalYears = []int{2021, 2022, 2023}
	r.Metrics[models.MetricRevenue] = models.Series{
		models.Float64Ptr(1200), models.Float64Ptr(1350), models.Float64Ptr(1520),
	}
	r.Metrics[models.MetricEBITDA] = models.Series{
		models.Float64Ptr(360), models.Float64Ptr(414), models.Float64Ptr(485),
	}
	r.Completeness = 0.25
	r.ExtractedAt = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	return r
}

func TestExtractionSection(t *testing.T) {
	rep := New()
	rep.AddExtraction(sampleResult())
	md := rep.Markdown()

	for _, want := range []string{"# Acme Corp", "2021–2023", "25%", "| revenue |", "| ebitda |"} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
	// Metrics never extracted stay out of the table.
	if strings.Contains(md, "| total_assets |") {
		t.Error("absent metric should not appear in the table")
	}
}

func TestAnalysisSection(t *testing.T) {
	rep := New()
	rep.AddAnalysis(sampleResult())
	md := rep.Markdown()

	if !strings.Contains(md, "## Margins & Ratios") {
		t.Fatalf("missing ratio section:\n%s", md)
	}
	// EBITDA margin 360/1200 = 30%.
	if !strings.Contains(md, "30.0%") {
		t.Errorf("expected 30.0%% EBITDA margin in:\n%s", md)
	}
	// Missing gross profit surfaces as a dash, not a number.
	if !strings.Contains(md, "—") {
		t.Error("missing inputs should render as dashes")
	}
	if !strings.Contains(md, "## Growth") {
		t.Errorf("missing growth section:\n%s", md)
	}
}

func TestValuationSections(t *testing.T) {
	rep := New()
	rep.AddDCF(
		valuation.DCFInput{WACC: 0.10, TerminalGrowth: 0.025, SharesOutstanding: 80},
		valuation.DCFResult{EnterpriseValue: 1000, EquityValue: 800, SharePrice: 10},
	)
	rep.AddLBO(
		valuation.LBOInput{LeverageRatio: 4, ExitMultiple: 8, TargetIRR: 0.20},
		valuation.LBOResult{DebtRaised: 400, MaxEntryEV: 900, ImpliedEntryMultiple: 7.5},
	)
	md := rep.Markdown()

	if !strings.Contains(md, "## DCF Valuation") || !strings.Contains(md, "## LBO Ability-to-Pay") {
		t.Fatalf("missing valuation sections:\n%s", md)
	}
	if !strings.Contains(md, "10.00%") {
		t.Error("WACC not rendered")
	}
	if !strings.Contains(md, "7.5x") {
		t.Error("implied entry multiple not rendered")
	}
}

func TestHTMLRendering(t *testing.T) {
	rep := New()
	rep.AddExtraction(sampleResult())

	html, err := rep.HTML()
	if err != nil {
		t.Fatalf("HTML failed: %v", err)
	}
	if !strings.Contains(html, "<h1") || !strings.Contains(html, "Acme Corp") {
		t.Errorf("unexpected html output:\n%s", html)
	}
}
