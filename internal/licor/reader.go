// Package licor discovers and reads Li-COR gas-exchange spreadsheet
// exports. The reader assumes the LI-6800 workbook layout: a variable-name
// header row at a fixed position, a units row directly below it, and data
// rows from a fixed offset down.
package licor

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"licorplot/pkg/domain"
)

// LI-6800 export layout, 1-based rows. The units row between the header
// and the data carries no values and is skipped.
const (
	HeaderRow    = 15
	UnitsRow     = 16
	DataStartRow = 17
)

// Header names of the columns the pipeline consumes.
const (
	ColObs = "obs"
	ColA   = "A"
	ColGsw = "gsw"
)

// ErrMissingColumn marks a workbook whose header row lacks one of the
// required columns. Wrapped errors name the column and file.
var ErrMissingColumn = errors.New("missing expected column")

var spreadsheetExts = map[string]bool{
	".xlsx": true,
	".xlsm": true,
}

// Discover lists the spreadsheet files in dir whose base name contains
// keyword as a case-sensitive substring. The result is sorted so group
// membership never depends on directory enumeration order. An empty
// result is not an error: a keyword matching no files contributes no rows.
func Discover(dir, keyword string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasPrefix(name, "~$") { // Excel lock files
			continue
		}
		if !spreadsheetExts[strings.ToLower(filepath.Ext(name))] {
			continue
		}
		if !strings.Contains(name, keyword) {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}
	sort.Strings(files)
	return files, nil
}

// ReadFile extracts the observation index, assimilation rate, and stomatal
// conductance columns from one export. Columns are located by name within
// the fixed header row; an unreadable workbook or a missing required
// column is a hard failure. Cells that do not parse as numbers become NaN
// and are filtered downstream. The workbook is closed before returning.
func ReadFile(path string, logger *slog.Logger) ([]domain.Raw, error) {
	if logger == nil {
		logger = slog.Default()
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("%s: workbook has no sheets", path)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q of %s: %w", sheet, path, err)
	}
	if len(rows) < HeaderRow {
		return nil, fmt.Errorf("%s: no header row at row %d", path, HeaderRow)
	}

	cols, err := mapColumns(rows[HeaderRow-1])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	var data []domain.Raw
	if len(rows) > DataStartRow-1 {
		for _, row := range rows[DataStartRow-1:] {
			data = append(data, domain.Raw{
				Obs: cellFloat(row, cols[ColObs]),
				A:   cellFloat(row, cols[ColA]),
				Gsw: cellFloat(row, cols[ColGsw]),
			})
		}
	}

	logger.Debug("read gas-exchange export",
		slog.String("file", filepath.Base(path)),
		slog.String("sheet", sheet),
		slog.Int("rows", len(data)),
	)
	return data, nil
}

// mapColumns locates the required columns by header name.
func mapColumns(header []string) (map[string]int, error) {
	cols := make(map[string]int, 3)
	for i, name := range header {
		name = strings.TrimSpace(name)
		switch name {
		case ColObs, ColA, ColGsw:
			if _, dup := cols[name]; !dup {
				cols[name] = i
			}
		}
	}
	for _, name := range []string{ColObs, ColA, ColGsw} {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, name)
		}
	}
	return cols, nil
}

// cellFloat parses one cell, returning NaN for short rows, blanks, and
// anything that is not a number.
func cellFloat(row []string, col int) float64 {
	if col >= len(row) {
		return math.NaN()
	}
	s := strings.TrimSpace(row[col])
	if s == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
