// Package testutil builds spreadsheet fixtures for tests that exercise
// the reader and the full pipeline.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// LI-6800 export layout the reader expects: variable names at row 15,
// units at row 16, data from row 17.
const (
	headerRow    = 15
	unitsRow     = 16
	dataStartRow = 17
)

// WriteWorkbook writes a gas-exchange workbook with the given header row
// and data rows into dir and returns its path. Cell values may be any
// type excelize accepts; nil leaves the cell empty.
func WriteWorkbook(t *testing.T, dir, name string, header []string, rows [][]any) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	for i, h := range header {
		setCell(t, f, sheet, i+1, headerRow, h)
	}
	for i := range header {
		setCell(t, f, sheet, i+1, unitsRow, "unit")
	}
	for r, row := range rows {
		for c, v := range row {
			if v == nil {
				continue
			}
			setCell(t, f, sheet, c+1, dataStartRow+r, v)
		}
	}

	path := filepath.Join(dir, name)
	require.NoError(t, f.SaveAs(path))
	return path
}

// WriteGasExchangeFile writes a minimal three-column export (obs, A, gsw)
// from numeric triples.
func WriteGasExchangeFile(t *testing.T, dir, name string, rows [][3]float64) string {
	t.Helper()

	data := make([][]any, len(rows))
	for i, r := range rows {
		data[i] = []any{r[0], r[1], r[2]}
	}
	return WriteWorkbook(t, dir, name, []string{"obs", "A", "gsw"}, data)
}

func setCell(t *testing.T, f *excelize.File, sheet string, col, row int, v any) {
	t.Helper()
	cell, err := excelize.CoordinatesToCellName(col, row)
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue(sheet, cell, v))
}
