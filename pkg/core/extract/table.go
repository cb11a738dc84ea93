// Package extract implements layout-agnostic extraction of financial data
// from tabular sources. Given a grid of labeled values with no known cell
// layout, it locates a company name, the fiscal-year axis, and a set of
// canonical financial metrics using keyword search, numeric-pattern
// detection, and approximate string matching.
package extract

// CellKind discriminates the three value shapes a source cell can hold.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellText
	CellNumber
)

// Cell is one value in a RawTable.
type Cell struct {
	Kind   CellKind
	Text   string
	Number float64
}

// TextCell builds a text cell.
func TextCell(s string) Cell { return Cell{Kind: CellText, Text: s} }

// NumberCell builds a numeric cell.
func NumberCell(f float64) Cell { return Cell{Kind: CellNumber, Number: f} }

// RawTable is an ordered 2-D grid of cell values with a display name,
// typically one sheet of a workbook. It is read-only to the extractor.
type RawTable struct {
	Name  string
	cells [][]Cell
}

// NewRawTable wraps a grid of cells. Rows may be ragged; out-of-range access
// reads as empty.
func NewRawTable(name string, cells [][]Cell) *RawTable {
	return &RawTable{Name: name, cells: cells}
}

// RowCount returns the number of rows in the grid.
func (t *RawTable) RowCount() int { return len(t.cells) }

// ColCount returns the widest row length in the grid.
func (t *RawTable) ColCount() int {
	max := 0
	for _, row := range t.cells {
		if len(row) > max {
			max = len(row)
		}
	}
	return max
}

// At returns the cell at (row, col). Coordinates outside the grid read as
// empty cells, which keeps scan loops free of bounds checks.
func (t *RawTable) At(row, col int) Cell {
	if row < 0 || row >= len(t.cells) {
		return Cell{}
	}
	r := t.cells[row]
	if col < 0 || col >= len(r) {
		return Cell{}
	}
	return r[col]
}
