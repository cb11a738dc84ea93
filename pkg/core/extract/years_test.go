package extract

import "testing"

func yearRow(name string, years ...float64) *RawTable {
	row := []Cell{TextCell("Line Item")}
	for _, y := range years {
		row = append(row, NumberCell(y))
	}
	return NewRawTable(name, [][]Cell{row})
}

func TestDetectYearLayoutRowWise(t *testing.T) {
	table := yearRow("Income Statement", 2021, 2022, 2023)

	layout := DetectYearLayout(table)
	if layout == nil {
		t.Fatal("expected a layout, got nil")
	}
	if layout.Orientation != YearsInColumns {
		t.Errorf("orientation = %v, want YearsInColumns", layout.Orientation)
	}
	if layout.AxisIndex != 0 {
		t.Errorf("axis index = %d, want 0", layout.AxisIndex)
	}
	wantYears := []int{2021, 2022, 2023}
	if len(layout.Years) != len(wantYears) {
		t.Fatalf("years = %v, want %v", layout.Years, wantYears)
	}
	for i, y := range wantYears {
		if layout.Years[i] != y {
			t.Errorf("years[%d] = %d, want %d", i, layout.Years[i], y)
		}
	}
}

func TestDetectYearLayoutColumnWise(t *testing.T) {
	table := NewRawTable("Financials", [][]Cell{
		{TextCell("Year"), TextCell("Revenue"), TextCell("EBITDA")},
		{NumberCell(2020), NumberCell(900), NumberCell(250)},
		{NumberCell(2021), NumberCell(1000), NumberCell(280)},
		{NumberCell(2022), NumberCell(1100), NumberCell(310)},
	})

	layout := DetectYearLayout(table)
	if layout == nil {
		t.Fatal("expected a layout, got nil")
	}
	if layout.Orientation != YearsInRows {
		t.Errorf("orientation = %v, want YearsInRows", layout.Orientation)
	}
	if layout.AxisIndex != 0 {
		t.Errorf("axis index = %d, want 0", layout.AxisIndex)
	}
	if len(layout.Years) != 3 || layout.Years[0] != 2020 {
		t.Errorf("years = %v, want [2020 2021 2022]", layout.Years)
	}
}

// Any pair of consecutive detected years must stay within the maximum gap;
// a longer jump splits the run and must not survive detection.
func TestDetectYearLayoutRejectsWideGaps(t *testing.T) {
	table := yearRow("Income Statement", 1999, 2008)

	if layout := DetectYearLayout(table); layout != nil {
		t.Errorf("expected nil layout for a 9-year gap, got years %v", layout.Years)
	}
}

func TestDetectYearLayoutAcceptsMaxGap(t *testing.T) {
	table := yearRow("Income Statement", 2018, 2023)

	layout := DetectYearLayout(table)
	if layout == nil {
		t.Fatal("expected a layout for a 5-year gap")
	}
	if len(layout.Years) != 2 {
		t.Errorf("years = %v, want two entries", layout.Years)
	}
}

// Stray numbers (page numbers, phone fragments) outside the fiscal range
// are not years.
func TestDetectYearLayoutIgnoresStrayNumbers(t *testing.T) {
	table := yearRow("Notes Detail", 555, 1234, 42)

	if layout := DetectYearLayout(table); layout != nil {
		t.Errorf("expected nil layout, got %v", layout.Years)
	}
}

func TestDetectYearLayoutSingleYearInsufficient(t *testing.T) {
	table := yearRow("Income Statement", 2023)

	if layout := DetectYearLayout(table); layout != nil {
		t.Errorf("one year should not form a layout, got %v", layout.Years)
	}
}

func TestParseYearCellTextVariants(t *testing.T) {
	tests := []struct {
		cell Cell
		want int
		ok   bool
	}{
		{TextCell("2023"), 2023, true},
		{TextCell("FY2023"), 2023, true},
		{TextCell("FY 2023"), 2023, true},
		{TextCell("2023E"), 0, false},
		{NumberCell(2023), 2023, true},
		{NumberCell(2023.5), 0, false},
		{NumberCell(1989), 0, false},
		{NumberCell(2051), 0, false},
		{TextCell("Revenue"), 0, false},
	}
	for _, tt := range tests {
		got, ok := parseYearCell(tt.cell)
		if got != tt.want || ok != tt.ok {
			t.Errorf("parseYearCell(%+v) = (%d, %v), want (%d, %v)", tt.cell, got, ok, tt.want, tt.ok)
		}
	}
}
