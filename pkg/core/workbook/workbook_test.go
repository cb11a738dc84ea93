package workbook

import (
	"os"
	"path/filepath"
	"testing"

	"finmodel/pkg/core/extract"
)

func TestBuildDCFSheetFormulas(t *testing.T) {
	f := NewValuationWorkbook()
	in := DCFSheetInput{
		CompanyName:       "Acme Inc",
		Years:             []int{2024, 2025, 2026},
		UFCF:              []float64{100, 110, 120},
		WACC:              0.09,
		TerminalGrowth:    0.025,
		NetDebt:           500,
		SharesOutstanding: 80,
	}
	if err := BuildDCFSheet(f, in); err != nil {
		t.Fatalf("BuildDCFSheet failed: %v", err)
	}

	// Derived cells must be formulas, never precomputed values.
	formula, err := f.GetCellFormula("DCF", "C10")
	if err != nil || formula == "" {
		t.Fatalf("discount factor C10 should hold a formula, got %q (err %v)", formula, err)
	}
	formula, _ = f.GetCellFormula("DCF", "B16")
	if formula != "B13+B15" {
		t.Errorf("enterprise value formula = %q, want B13+B15", formula)
	}
	formula, _ = f.GetCellFormula("DCF", "B18")
	if formula != "B17/$B$6" {
		t.Errorf("share price formula = %q, want B17/$B$6", formula)
	}

	// Assumptions stay raw inputs.
	if formula, _ := f.GetCellFormula("DCF", "B3"); formula != "" {
		t.Errorf("WACC cell should be a value, found formula %q", formula)
	}
}

func TestBuildDCFSheetRejectsMismatchedSeries(t *testing.T) {
	f := NewValuationWorkbook()
	err := BuildDCFSheet(f, DCFSheetInput{Years: []int{2024}, UFCF: []float64{1, 2}})
	if err == nil {
		t.Fatal("expected error for mismatched years/ufcf lengths")
	}
}

func TestBuildLBOSheetFormulas(t *testing.T) {
	f := NewValuationWorkbook()
	in := LBOSheetInput{
		CompanyName:   "Acme Inc",
		EntryEBITDA:   400,
		LeverageRatio: 5.0,
		InterestRate:  0.08,
		TaxRate:       0.25,
		ExitMultiple:  9.0,
		TargetIRR:     0.20,
		Years:         []int{2024, 2025, 2026, 2027, 2028},
		EBITDA:        []float64{400, 420, 441, 463, 486},
		Capex:         []float64{40, 42, 44, 46, 48},
		ChangeNWC:     []float64{10, 10, 11, 11, 12},
	}
	if err := BuildLBOSheet(f, in); err != nil {
		t.Fatalf("BuildLBOSheet failed: %v", err)
	}

	formula, _ := f.GetCellFormula("LBO", "B10")
	if formula != "$B$3*$B$4" {
		t.Errorf("debt raised formula = %q, want $B$3*$B$4", formula)
	}
	// Year two beginning debt chains off year one ending debt.
	formula, _ = f.GetCellFormula("LBO", "D16")
	if formula != "C20" {
		t.Errorf("beginning debt formula = %q, want C20", formula)
	}
	formula, _ = f.GetCellFormula("LBO", "B24")
	if formula != "B23/POWER(1+$B$8,5)" {
		t.Errorf("entry equity formula = %q", formula)
	}
}

func TestReadXLSXRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "statements.xlsx")

	f := NewValuationWorkbook()
	f.SetSheetName("Sheet1", "Income Statement")
	f.SetCellValue("Income Statement", "B1", 2022)
	f.SetCellValue("Income Statement", "C1", 2023)
	f.SetCellValue("Income Statement", "A2", "Revenue")
	f.SetCellValue("Income Statement", "B2", 1000)
	f.SetCellValue("Income Statement", "C2", 1100)
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs failed: %v", err)
	}
	f.Close()

	tables, err := ReadXLSX(path)
	if err != nil {
		t.Fatalf("ReadXLSX failed: %v", err)
	}
	if len(tables) != 1 || tables[0].Name != "Income Statement" {
		t.Fatalf("tables = %v, want one income statement sheet", tables)
	}

	cell := tables[0].At(0, 1)
	if cell.Kind != extract.CellNumber || cell.Number != 2022 {
		t.Errorf("cell (0,1) = %+v, want number 2022", cell)
	}
	cell = tables[0].At(1, 0)
	if cell.Kind != extract.CellText || cell.Text != "Revenue" {
		t.Errorf("cell (1,0) = %+v, want text Revenue", cell)
	}
}

func TestReadCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "income_statement.csv")
	data := ",2022,2023\nRevenue,\"1,000\",1100\nEBITDA,300,330\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	table, err := ReadCSV(path)
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}
	if table.Name != "income_statement" {
		t.Errorf("table name = %q", table.Name)
	}
	cell := table.At(1, 1)
	if cell.Kind != extract.CellNumber || cell.Number != 1000 {
		t.Errorf("cell (1,1) = %+v, want number 1000 (comma stripped)", cell)
	}
	if table.At(0, 0).Kind != extract.CellEmpty {
		t.Errorf("cell (0,0) should be empty")
	}
}

func TestReadSourceUnsupported(t *testing.T) {
	if _, err := ReadSource("statements.pdf"); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}
