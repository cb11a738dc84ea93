// Package workbook bridges spreadsheet files and the extraction pipeline:
// it reads .xlsx and .csv sources into raw tables, and renders valuation
// models back out as Excel workbooks whose derived cells are formulas, not
// precomputed constants.
package workbook

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"finmodel/pkg/core/extract"
)

// ReadSource loads a spreadsheet file into raw tables, dispatching on the
// file extension. One table per sheet for .xlsx; a single table for .csv.
func ReadSource(path string) ([]*extract.RawTable, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return ReadXLSX(path)
	case ".csv":
		table, err := ReadCSV(path)
		if err != nil {
			return nil, err
		}
		return []*extract.RawTable{table}, nil
	default:
		return nil, fmt.Errorf("workbook: unsupported source type %q", filepath.Ext(path))
	}
}

// ReadXLSX materializes every sheet of an Excel file into a RawTable,
// preserving sheet order.
func ReadXLSX(path string) ([]*extract.RawTable, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("workbook: open %s: %w", path, err)
	}
	defer f.Close()

	var tables []*extract.RawTable
	for _, sheetName := range f.GetSheetList() {
		rows, err := f.GetRows(sheetName)
		if err != nil {
			// Unreadable sheet: keep going with the rest of the book.
			continue
		}
		tables = append(tables, extract.NewRawTable(sheetName, typedCells(rows)))
	}
	return tables, nil
}

// ReadCSV loads a CSV file as a single table named after the file.
func ReadCSV(path string) (*extract.RawTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("workbook: open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // ragged rows are fine
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("workbook: parse %s: %w", path, err)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return extract.NewRawTable(name, typedCells(records)), nil
}

// typedCells converts string cell values into typed extractor cells:
// parseable numbers become number cells, everything else stays text.
func typedCells(rows [][]string) [][]extract.Cell {
	cells := make([][]extract.Cell, len(rows))
	for r, row := range rows {
		cells[r] = make([]extract.Cell, len(row))
		for c, raw := range row {
			trimmed := strings.TrimSpace(raw)
			if trimmed == "" {
				continue // zero value is the empty cell
			}
			if v, err := strconv.ParseFloat(strings.ReplaceAll(trimmed, ",", ""), 64); err == nil {
				cells[r][c] = extract.NumberCell(v)
			} else {
				cells[r][c] = extract.TextCell(trimmed)
			}
		}
	}
	return cells
}
