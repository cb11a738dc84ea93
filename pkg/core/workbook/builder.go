package workbook

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Derived cells in rendered sheets are Excel formulas referencing the
// assumption cells, so a practitioner can change an input in the workbook and
// watch the valuation reprice without re-running the toolkit.

// cellName converts 1-based (col, row) to an A1 reference, panicking only on
// programmer error (coordinates are always small and positive here).
func cellName(col, row int) string {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		panic(fmt.Sprintf("workbook: bad coordinates (%d,%d): %v", col, row, err))
	}
	return name
}

// NewValuationWorkbook creates an empty workbook ready for model sheets.
func NewValuationWorkbook() *excelize.File {
	return excelize.NewFile()
}

// setHeader writes the title row and applies nothing fancier; styling is a
// presentation concern left to the practitioner.
func setHeader(f *excelize.File, sheet, title string) error {
	return f.SetCellValue(sheet, "A1", title)
}
