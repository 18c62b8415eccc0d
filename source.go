package feedbackcards

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadTable loads the table at path, choosing the reader by extension.
// Supported inputs are .xlsx workbooks and .csv files.
func ReadTable(path string) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return ReadXLSX(path)
	case ".csv":
		return ReadCSV(path)
	default:
		return nil, fmt.Errorf("unsupported input %s: want .xlsx or .csv", path)
	}
}

// ReadCSV loads a comma-separated table whose first row names the columns.
func ReadCSV(path string) (*Table, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer fp.Close()

	r := csv.NewReader(fp)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return tableFromRows(path, rows)
}

// ReadXLSX loads the first sheet of a workbook whose first row names the
// columns. Cell values arrive already formatted as strings.
func ReadXLSX(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return tableFromRows(path, rows)
}

// tableFromRows builds a Table from raw string rows. The first row is the
// header; data rows are padded to the header width and extra cells dropped.
func tableFromRows(path string, rows [][]string) (*Table, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("input %s has no header row", path)
	}
	header := rows[0]
	if len(header) == 0 {
		return nil, fmt.Errorf("input %s has an empty header row", path)
	}
	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = strings.TrimSpace(h)
	}
	t := &Table{Columns: columns, Rows: make([][]Cell, 0, len(rows)-1)}
	for _, row := range rows[1:] {
		cells := make([]Cell, len(columns))
		for i := range columns {
			if i < len(row) {
				cells[i] = NewCell(row[i])
			}
		}
		t.Rows = append(t.Rows, cells)
	}
	return t, nil
}
