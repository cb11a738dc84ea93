package workbook

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// LBOSheetInput parameterizes the ability-to-pay model. Projected series are
// entered as positive costs; the debt schedule formulas apply the signs.
type LBOSheetInput struct {
	CompanyName   string
	EntryEBITDA   float64
	LeverageRatio float64 // Debt / EBITDA at entry
	InterestRate  float64
	TaxRate       float64
	ExitMultiple  float64
	TargetIRR     float64
	Years         []int
	EBITDA        []float64
	Capex         []float64
	ChangeNWC     []float64
}

const (
	lboCellEBITDA   = "$B$3"
	lboCellLeverage = "$B$4"
	lboCellRate     = "$B$5"
	lboCellTax      = "$B$6"
	lboCellExit     = "$B$7"
	lboCellIRR      = "$B$8"
	lboCellDebt     = "$B$10"
	lboFirstDataCol = 3 // column C
	lboYearRow      = 12
	lboEBITDARow    = 13
	lboCapexRow     = 14
	lboNWCRow       = 15
	lboBegDebtRow   = 16
	lboInterestRow  = 17
	lboTaxRow       = 18
	lboFCFRow       = 19
	lboEndDebtRow   = 20
)

// BuildLBOSheet renders a cash-sweep LBO onto an "LBO" sheet: entry debt
// sized off EBITDA leverage, a year-by-year debt paydown waterfall, and the
// maximum entry valuation a sponsor can pay while clearing the target IRR.
func BuildLBOSheet(f *excelize.File, in LBOSheetInput) error {
	n := len(in.Years)
	if n == 0 || len(in.EBITDA) != n || len(in.Capex) != n || len(in.ChangeNWC) != n {
		return fmt.Errorf("workbook: lbo needs equal-length years, ebitda, capex and nwc series")
	}

	const sheet = "LBO"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	if err := setHeader(f, sheet, in.CompanyName+" — Leveraged Buyout (Ability to Pay)"); err != nil {
		return err
	}

	assumptions := []struct {
		label string
		value float64
	}{
		{"Entry EBITDA", in.EntryEBITDA},
		{"Leverage (Debt / EBITDA)", in.LeverageRatio},
		{"Interest Rate", in.InterestRate},
		{"Tax Rate", in.TaxRate},
		{"Exit Multiple", in.ExitMultiple},
		{"Target IRR", in.TargetIRR},
	}
	for i, a := range assumptions {
		row := 3 + i
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), a.label)
		if err := f.SetCellValue(sheet, fmt.Sprintf("B%d", row), a.value); err != nil {
			return err
		}
	}

	f.SetCellValue(sheet, "A10", "Debt Raised")
	if err := f.SetCellFormula(sheet, "B10", lboCellEBITDA+"*"+lboCellLeverage); err != nil {
		return err
	}

	rowLabels := map[int]string{
		lboEBITDARow:   "EBITDA",
		lboCapexRow:    "Capex",
		lboNWCRow:      "Change in NWC",
		lboBegDebtRow:  "Beginning Debt",
		lboInterestRow: "Interest",
		lboTaxRow:      "Taxes",
		lboFCFRow:      "Free Cash Flow",
		lboEndDebtRow:  "Ending Debt",
	}
	for row, label := range rowLabels {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), label)
	}

	for k, year := range in.Years {
		col := lboFirstDataCol + k
		f.SetCellValue(sheet, cellName(col, lboYearRow), year)
		f.SetCellValue(sheet, cellName(col, lboEBITDARow), in.EBITDA[k])
		f.SetCellValue(sheet, cellName(col, lboCapexRow), in.Capex[k])
		f.SetCellValue(sheet, cellName(col, lboNWCRow), in.ChangeNWC[k])

		// Beginning debt: entry debt in year one, prior ending debt after.
		begDebt := lboCellDebt
		if k > 0 {
			begDebt = cellName(col-1, lboEndDebtRow)
		}
		if err := f.SetCellFormula(sheet, cellName(col, lboBegDebtRow), begDebt); err != nil {
			return err
		}

		formulas := map[int]string{
			lboInterestRow: fmt.Sprintf("%s*%s", cellName(col, lboBegDebtRow), lboCellRate),
			lboTaxRow: fmt.Sprintf("MAX(0,(%s-%s)*%s)",
				cellName(col, lboEBITDARow), cellName(col, lboInterestRow), lboCellTax),
			lboFCFRow: fmt.Sprintf("%s-%s-%s-%s-%s",
				cellName(col, lboEBITDARow), cellName(col, lboInterestRow),
				cellName(col, lboTaxRow), cellName(col, lboCapexRow), cellName(col, lboNWCRow)),
			lboEndDebtRow: fmt.Sprintf("MAX(0,%s-%s)",
				cellName(col, lboBegDebtRow), cellName(col, lboFCFRow)),
		}
		for row, formula := range formulas {
			if err := f.SetCellFormula(sheet, cellName(col, row), formula); err != nil {
				return err
			}
		}
	}

	lastCol := lboFirstDataCol + n - 1
	summary := []struct {
		label   string
		formula string
	}{
		{"Exit Enterprise Value", fmt.Sprintf("%s*%s", cellName(lastCol, lboEBITDARow), lboCellExit)},
		{"Exit Equity", "B22-" + cellName(lastCol, lboEndDebtRow)},
		{"Max Entry Equity", fmt.Sprintf("B23/POWER(1+%s,%d)", lboCellIRR, n)},
		{"Max Entry EV", "B24+" + lboCellDebt},
		{"Implied Entry Multiple", "B25/" + lboCellEBITDA},
	}
	for i, s := range summary {
		row := 22 + i
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), s.label)
		if err := f.SetCellFormula(sheet, fmt.Sprintf("B%d", row), s.formula); err != nil {
			return err
		}
	}

	return nil
}
