package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrNoData is returned for inputs without a header and at least one row.
var ErrNoData = errors.New("no data rows")

// table is a header row and the data rows below it.
type table struct {
	header []string
	rows   [][]string
}

// cell returns row r column c, or "" past the end of a short row.
func (t *table) cell(r, c int) string {
	if c < len(t.rows[r]) {
		return strings.TrimSpace(t.rows[r][c])
	}
	return ""
}

// readTable loads path as CSV or, for .xlsx files, the named sheet (the
// first sheet when sheet is empty).
func readTable(path, sheet string) (*table, error) {
	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		rows, err = readSheet(path, sheet)
	case ".csv", ".txt":
		rows, err = readCSV(path)
	default:
		return nil, fmt.Errorf("unsupported input %s: want .csv or .xlsx", path)
	}
	if err != nil {
		return nil, err
	}
	rows = dropBlank(rows)
	if len(rows) < 2 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoData)
	}
	return &table{header: rows[0], rows: rows[1:]}, nil
}

func readSheet(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	if sheet == "" {
		list := f.GetSheetList()
		if len(list) == 0 {
			return nil, fmt.Errorf("%s: %w", path, ErrNoData)
		}
		sheet = list[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.Comment = '#'
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return rows, nil
}

func dropBlank(rows [][]string) [][]string {
	out := rows[:0]
	for _, row := range rows {
		for _, c := range row {
			if strings.TrimSpace(c) != "" {
				out = append(out, row)
				break
			}
		}
	}
	return out
}
