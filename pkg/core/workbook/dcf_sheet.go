package workbook

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// DCFSheetInput carries everything the DCF sheet needs. UFCF values are the
// only hardcoded series; every downstream number is a formula.
type DCFSheetInput struct {
	CompanyName       string
	Years             []int
	UFCF              []float64 // unlevered free cash flow per projection year
	WACC              float64
	TerminalGrowth    float64
	NetDebt           float64
	SharesOutstanding float64
}

// Fixed cell addresses of the assumption block, referenced absolutely from
// the formula rows.
const (
	dcfCellWACC     = "$B$3"
	dcfCellGrowth   = "$B$4"
	dcfCellNetDebt  = "$B$5"
	dcfCellShares   = "$B$6"
	dcfFirstDataCol = 3 // column C
	dcfYearRow      = 8
	dcfUFCFRow      = 9
	dcfDiscountRow  = 10
	dcfPVRow        = 11
)

// BuildDCFSheet renders a two-stage DCF model onto a "DCF" sheet: per-year
// discounting of unlevered free cash flow plus a Gordon-growth terminal
// value, all wired as formulas against the assumption cells.
func BuildDCFSheet(f *excelize.File, in DCFSheetInput) error {
	if len(in.Years) == 0 || len(in.Years) != len(in.UFCF) {
		return fmt.Errorf("workbook: dcf needs matching years and ufcf series, got %d/%d",
			len(in.Years), len(in.UFCF))
	}

	const sheet = "DCF"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	if err := setHeader(f, sheet, in.CompanyName+" — Discounted Cash Flow"); err != nil {
		return err
	}

	// Assumption block.
	assumptions := []struct {
		label string
		cell  string
		value float64
	}{
		{"WACC", "B3", in.WACC},
		{"Terminal Growth", "B4", in.TerminalGrowth},
		{"Net Debt", "B5", in.NetDebt},
		{"Shares Outstanding", "B6", in.SharesOutstanding},
	}
	for i, a := range assumptions {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", 3+i), a.label)
		if err := f.SetCellValue(sheet, a.cell, a.value); err != nil {
			return err
		}
	}

	// Projection grid.
	f.SetCellValue(sheet, fmt.Sprintf("A%d", dcfUFCFRow), "Unlevered FCF")
	f.SetCellValue(sheet, fmt.Sprintf("A%d", dcfDiscountRow), "Discount Factor")
	f.SetCellValue(sheet, fmt.Sprintf("A%d", dcfPVRow), "PV of FCF")

	for k, year := range in.Years {
		col := dcfFirstDataCol + k
		f.SetCellValue(sheet, cellName(col, dcfYearRow), year)
		f.SetCellValue(sheet, cellName(col, dcfUFCFRow), in.UFCF[k])

		discount := fmt.Sprintf("1/POWER(1+%s,%d)", dcfCellWACC, k+1)
		if err := f.SetCellFormula(sheet, cellName(col, dcfDiscountRow), discount); err != nil {
			return err
		}
		pv := fmt.Sprintf("%s*%s", cellName(col, dcfUFCFRow), cellName(col, dcfDiscountRow))
		if err := f.SetCellFormula(sheet, cellName(col, dcfPVRow), pv); err != nil {
			return err
		}
	}

	lastCol := dcfFirstDataCol + len(in.Years) - 1
	lastUFCF := cellName(lastCol, dcfUFCFRow)
	lastDiscount := cellName(lastCol, dcfDiscountRow)

	summary := []struct {
		label   string
		formula string
	}{
		{"Sum PV of FCF", fmt.Sprintf("SUM(%s:%s)",
			cellName(dcfFirstDataCol, dcfPVRow), cellName(lastCol, dcfPVRow))},
		{"Terminal Value", fmt.Sprintf("%s*(1+%s)/(%s-%s)",
			lastUFCF, dcfCellGrowth, dcfCellWACC, dcfCellGrowth)},
		{"PV of Terminal Value", "B14*" + lastDiscount},
		{"Enterprise Value", "B13+B15"},
		{"Equity Value", "B16-" + dcfCellNetDebt},
		{"Implied Share Price", "B17/" + dcfCellShares},
	}
	for i, s := range summary {
		row := 13 + i
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), s.label)
		if err := f.SetCellFormula(sheet, fmt.Sprintf("B%d", row), s.formula); err != nil {
			return err
		}
	}

	return nil
}
