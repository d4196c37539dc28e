// Package store holds the workbook-backed record collections. Each record
// kind lives in one xlsx file which is the source of truth: it is read once
// at open time and rewritten fully after every mutation.
package store

import (
	"errors"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"
)

// ErrStaleSelection reports a positional index that no longer exists in the
// collection, e.g. after another session deleted rows. Recoverable: the
// caller re-prompts selection instead of failing the session.
var ErrStaleSelection = errors.New("store: selected record no longer exists")

// sheetName is the single sheet every record workbook uses.
const sheetName = "Sheet1"

// loadWorkbook reads all rows of the first sheet into column-keyed maps and
// returns the effective column order: the on-disk header order with any
// missing mandatory column appended. A column set that is a superset of the
// mandatory list loads as-is; missing mandatory columns are back-filled with
// empty values, never a load failure.
func loadWorkbook(path string, mandatory []string) ([]string, []map[string]string, error) {
	wb, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return append([]string(nil), mandatory...), nil, nil
	}
	rows, err := wb.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("store: read %s: %w", path, err)
	}
	if len(rows) == 0 {
		return append([]string(nil), mandatory...), nil, nil
	}

	columns := append([]string(nil), rows[0]...)
	present := make(map[string]bool, len(columns))
	for _, c := range columns {
		present[c] = true
	}
	for _, c := range mandatory {
		if !present[c] {
			columns = append(columns, c)
		}
	}

	records := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(map[string]string, len(columns))
		for i, col := range rows[0] {
			if i < len(row) {
				rec[col] = row[i]
			}
		}
		records = append(records, rec)
	}
	return columns, records, nil
}

// saveWorkbook rewrites the whole workbook: header row plus one row per
// record, cells in column order.
func saveWorkbook(path string, columns []string, records []map[string]string) error {
	wb := excelize.NewFile()
	defer wb.Close()
	wb.SetSheetName(wb.GetSheetName(0), sheetName)

	header := append([]string(nil), columns...)
	if err := wb.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("store: write header: %w", err)
	}
	for i, rec := range records {
		row := make([]string, len(columns))
		for j, col := range columns {
			row[j] = rec[col]
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := wb.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("store: write row %d: %w", i, err)
		}
	}
	if err := wb.SaveAs(path); err != nil {
		return fmt.Errorf("store: save %s: %w", path, err)
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
