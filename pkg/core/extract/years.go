package extract

import (
	"strconv"
	"strings"
)

// Bounds of the year scan window. Sources whose headers sit beyond this
// window are not supported and degrade to a zero-year extraction.
const (
	yearScanRows = 100
	yearScanCols = 30
)

// Fiscal years outside this range are treated as stray numbers (page
// numbers, phone fragments) rather than year headers.
const (
	minFiscalYear = 1990
	maxFiscalYear = 2050
)

// maxYearGap is the largest allowed gap between consecutive detected years.
// Longer jumps mark the run as a false positive.
const maxYearGap = 5

// Orientation describes where the fiscal years live in a table.
type Orientation int

const (
	// YearsInColumns: years run across one header row (the common layout).
	YearsInColumns Orientation = iota
	// YearsInRows: years run down one header column.
	YearsInRows
)

// YearLayout describes the detected fiscal-year axis of a table.
type YearLayout struct {
	Orientation Orientation
	// AxisIndex is the row index holding the years for YearsInColumns, or
	// the column index for YearsInRows.
	AxisIndex int
	// Years in source order, aligned with Offsets.
	Years []int
	// Offsets are the column indices (YearsInColumns) or row indices
	// (YearsInRows) of each year cell.
	Offsets []int
}

// DetectYearLayout locates the fiscal-year axis of a table and its
// orientation. It scans a bounded window, collects the longest contiguous
// gap-compliant run of year candidates per row and per column, and picks the
// axis with the longer run. Ties prefer years-in-columns. Returns nil when
// no axis yields at least two valid years; that is a soft outcome, not an
// error.
func DetectYearLayout(t *RawTable) *YearLayout {
	rows := t.RowCount()
	if rows > yearScanRows {
		rows = yearScanRows
	}
	cols := t.ColCount()
	if cols > yearScanCols {
		cols = yearScanCols
	}

	var best *YearLayout
	bestLen := 1 // require at least 2 years

	for r := 0; r < rows; r++ {
		years, offsets := bestYearRun(cols, func(c int) (int, bool) {
			return parseYearCell(t.At(r, c))
		})
		if len(years) > bestLen {
			bestLen = len(years)
			best = &YearLayout{Orientation: YearsInColumns, AxisIndex: r, Years: years, Offsets: offsets}
		}
	}

	for c := 0; c < cols; c++ {
		years, offsets := bestYearRun(rows, func(r int) (int, bool) {
			return parseYearCell(t.At(r, c))
		})
		// Strictly longer: ties prefer the row-wise layout found above.
		if len(years) > bestLen {
			bestLen = len(years)
			best = &YearLayout{Orientation: YearsInRows, AxisIndex: c, Years: years, Offsets: offsets}
		}
	}

	return best
}

// bestYearRun walks n cells along one axis and returns the longest
// contiguous run of year candidates whose consecutive gaps stay within
// maxYearGap. A gap violation or a repeated year ends the run.
func bestYearRun(n int, at func(i int) (int, bool)) (years []int, offsets []int) {
	var curYears, bestYears []int
	var curOffs, bestOffs []int

	flush := func() {
		if len(curYears) > len(bestYears) {
			bestYears = append([]int(nil), curYears...)
			bestOffs = append([]int(nil), curOffs...)
		}
		curYears = curYears[:0]
		curOffs = curOffs[:0]
	}

	for i := 0; i < n; i++ {
		year, ok := at(i)
		if !ok {
			flush()
			continue
		}
		if len(curYears) > 0 {
			gap := year - curYears[len(curYears)-1]
			if gap < 0 {
				gap = -gap
			}
			if gap == 0 || gap > maxYearGap {
				flush()
			}
		}
		curYears = append(curYears, year)
		curOffs = append(curOffs, i)
	}
	flush()

	return bestYears, bestOffs
}

// parseYearCell reports whether a cell holds a fiscal-year integer.
// Numeric cells must be whole numbers; text cells may carry an "FY" prefix
// ("FY2023", "FY 2023") but are otherwise parsed strictly.
func parseYearCell(c Cell) (int, bool) {
	switch c.Kind {
	case CellNumber:
		y := int(c.Number)
		if float64(y) == c.Number && y >= minFiscalYear && y <= maxFiscalYear {
			return y, true
		}
	case CellText:
		s := strings.TrimSpace(c.Text)
		s = strings.TrimPrefix(strings.TrimPrefix(s, "FY"), "fy")
		s = strings.TrimSpace(s)
		y, err := strconv.Atoi(s)
		if err == nil && y >= minFiscalYear && y <= maxFiscalYear {
			return y, true
		}
	}
	return 0, false
}
