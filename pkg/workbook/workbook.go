// Package workbook adapts an xlsx file into the canonical row store. Sheets
// carry a header row followed by data rows; callers address data rows by
// their 1-based sheet row number so updates land in place.
package workbook

import (
	"fmt"
	"os"
	"sync"

	"github.com/xuri/excelize/v2"
)

// Row maps column headers to cell values.
type Row map[string]string

// headerRow is the sheet row holding column names; data starts right below.
const headerRow = 1

// FirstDataRow is the sheet row number of the first data row.
const FirstDataRow = headerRow + 1

// Workbook wraps one xlsx file. Mutations persist immediately; the mutex
// keeps concurrent readers off a file mid-save while the store gate
// serializes writers across operations.
type Workbook struct {
	mu   sync.RWMutex
	path string
	file *excelize.File
}

// Open loads the workbook at path, creating an empty one if the file does
// not exist yet.
func Open(path string) (*Workbook, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("open workbook %s: %w", path, err)
		}
		file = excelize.NewFile()
		if err := file.SaveAs(path); err != nil {
			return nil, fmt.Errorf("create workbook %s: %w", path, err)
		}
	}
	return &Workbook{path: path, file: file}, nil
}

// Close releases the underlying file handle.
func (w *Workbook) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.file.Close()
}

// EnsureSheet creates the sheet with the given header row when it is missing.
func (w *Workbook) EnsureSheet(sheet string, columns []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	index, err := w.file.GetSheetIndex(sheet)
	if err != nil {
		return err
	}
	if index >= 0 {
		return nil
	}
	if _, err := w.file.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheet, err)
	}
	if err := w.writeHeader(sheet, columns); err != nil {
		return err
	}
	return w.save()
}

// Headers returns the sheet's column names, empty when the sheet is blank.
func (w *Workbook) Headers(sheet string) ([]string, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	raw, err := w.file.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	if len(raw) == 0 {
		return nil, nil
	}
	return raw[0], nil
}

// Rows returns all data rows in sheet order. The row at slice position i
// lives at sheet row i+FirstDataRow, so callers can write back in place.
func (w *Workbook) Rows(sheet string) ([]Row, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	raw, err := w.file.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	if len(raw) <= headerRow {
		return nil, nil
	}
	headers := raw[0]
	rows := make([]Row, 0, len(raw)-headerRow)
	for _, cells := range raw[headerRow:] {
		row := make(Row, len(headers))
		for i, header := range headers {
			if header == "" {
				continue
			}
			if i < len(cells) {
				row[header] = cells[i]
			} else {
				row[header] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Append writes a new data row at the bottom of the sheet. A blank sheet
// first receives the given header row, mirroring how the original store
// seeded sheets on first write.
func (w *Workbook) Append(sheet string, columns []string, row Row) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	index, err := w.file.GetSheetIndex(sheet)
	if err != nil {
		return err
	}
	if index < 0 {
		if _, err := w.file.NewSheet(sheet); err != nil {
			return fmt.Errorf("create sheet %s: %w", sheet, err)
		}
	}
	raw, err := w.file.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	headers := columns
	if len(raw) == 0 {
		if err := w.writeHeader(sheet, headers); err != nil {
			return err
		}
	} else {
		headers = raw[0]
	}
	target := len(raw) + 1
	if target == headerRow {
		target = FirstDataRow
	}
	if err := w.writeRow(sheet, target, headers, row); err != nil {
		return err
	}
	return w.save()
}

// UpdateRow overwrites the data row at the given sheet row number.
func (w *Workbook) UpdateRow(sheet string, rowIndex int, row Row) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if rowIndex < FirstDataRow {
		return fmt.Errorf("row %d of sheet %s is not a data row", rowIndex, sheet)
	}
	raw, err := w.file.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	if len(raw) == 0 {
		return fmt.Errorf("sheet %s has no header row", sheet)
	}
	if err := w.writeRow(sheet, rowIndex, raw[0], row); err != nil {
		return err
	}
	return w.save()
}

// DeleteRow removes the data row at the given sheet row number, shifting the
// rows below it up.
func (w *Workbook) DeleteRow(sheet string, rowIndex int) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if rowIndex < FirstDataRow {
		return fmt.Errorf("row %d of sheet %s is not a data row", rowIndex, sheet)
	}
	if err := w.file.RemoveRow(sheet, rowIndex); err != nil {
		return fmt.Errorf("delete row %d of sheet %s: %w", rowIndex, sheet, err)
	}
	return w.save()
}

// ReplaceAll rewrites the sheet with a fresh header row and the given rows.
func (w *Workbook) ReplaceAll(sheet string, columns []string, rows []Row) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	index, err := w.file.GetSheetIndex(sheet)
	if err != nil {
		return err
	}
	if index >= 0 {
		if err := w.file.DeleteSheet(sheet); err != nil {
			return fmt.Errorf("clear sheet %s: %w", sheet, err)
		}
	}
	if _, err := w.file.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheet, err)
	}
	if err := w.writeHeader(sheet, columns); err != nil {
		return err
	}
	for i, row := range rows {
		if err := w.writeRow(sheet, FirstDataRow+i, columns, row); err != nil {
			return err
		}
	}
	return w.save()
}

func (w *Workbook) writeHeader(sheet string, columns []string) error {
	for i, name := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, headerRow)
		if err != nil {
			return err
		}
		if err := w.file.SetCellStr(sheet, cell, name); err != nil {
			return fmt.Errorf("write header of sheet %s: %w", sheet, err)
		}
	}
	return nil
}

func (w *Workbook) writeRow(sheet string, rowIndex int, headers []string, row Row) error {
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, rowIndex)
		if err != nil {
			return err
		}
		if err := w.file.SetCellStr(sheet, cell, row[header]); err != nil {
			return fmt.Errorf("write row %d of sheet %s: %w", rowIndex, sheet, err)
		}
	}
	return nil
}

func (w *Workbook) save() error {
	if err := w.file.SaveAs(w.path); err != nil {
		return fmt.Errorf("save workbook %s: %w", w.path, err)
	}
	return nil
}
