package parser

import (
	"bytes"
	"fmt"

	"github.com/spf13/cast"
	"github.com/xuri/excelize/v2"
)

// ReadOptions configures how cell values are read.
type ReadOptions struct {
	// Formulas returns formula cells as their formula text prefixed with
	// "=" instead of the value cached in the file.
	Formulas bool
}

// Reader opens workbooks with excelize.
type Reader struct {
	opts ReadOptions
}

// NewReader creates a Reader.
func NewReader(opts ReadOptions) *Reader {
	return &Reader{opts: opts}
}

const probeSheet = "Sheet1"

// Probe checks that excelize can write and read back a workbook.
func (r *Reader) Probe() error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetCellValue(probeSheet, "A1", "probe"); err != nil {
		return fmt.Errorf("write probe cell: %w", err)
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		return fmt.Errorf("write probe workbook: %w", err)
	}

	g, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		return fmt.Errorf("read probe workbook: %w", err)
	}
	defer g.Close()

	v, err := g.GetCellValue(probeSheet, "A1")
	if err != nil {
		return fmt.Errorf("read probe cell: %w", err)
	}
	if v != "probe" {
		return fmt.Errorf("probe cell read back as %q", v)
	}
	return nil
}

// Open opens the workbook at path for reading.
func (r *Reader) Open(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}

	wb := &Workbook{
		f:          f,
		formulas:   r.opts.Formulas,
		dateStyles: make(map[int]bool),
	}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		wb.date1904 = *props.Date1904
	}
	return wb, nil
}

// Workbook is an opened workbook that yields typed cell values.
type Workbook struct {
	f          *excelize.File
	formulas   bool
	date1904   bool
	dateStyles map[int]bool
}

// SheetNames returns the sheet names in workbook order.
func (w *Workbook) SheetNames() []string {
	return w.f.GetSheetList()
}

// HasSheet reports whether a sheet with exactly this name exists.
func (w *Workbook) HasSheet(name string) bool {
	for _, sheet := range w.f.GetSheetList() {
		if sheet == name {
			return true
		}
	}
	return false
}

// SheetRows reads every row of a sheet. Each row holds the typed values of
// its cells up to the last non-empty one.
func (w *Workbook) SheetRows(sheet string) ([][]interface{}, error) {
	rows, err := w.f.Rows(sheet)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result [][]interface{}
	for rowNum := 1; rows.Next(); rowNum++ {
		raw, err := rows.Columns(excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}

		values := make([]interface{}, len(raw))
		for colIdx, s := range raw {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowNum)
			if err != nil {
				return nil, err
			}
			if values[colIdx], err = w.cellValue(sheet, cell, s); err != nil {
				return nil, fmt.Errorf("cell %s: %w", cell, err)
			}
		}
		result = append(result, values)
	}
	if err := rows.Error(); err != nil {
		return nil, err
	}
	return result, nil
}

// Close releases the workbook.
func (w *Workbook) Close() error {
	return w.f.Close()
}

func (w *Workbook) cellValue(sheet, cell, raw string) (interface{}, error) {
	if w.formulas {
		formula, err := w.f.GetCellFormula(sheet, cell)
		if err != nil {
			return nil, err
		}
		if formula != "" {
			return "=" + formula, nil
		}
	}
	if raw == "" {
		return nil, nil
	}

	typ, err := w.f.GetCellType(sheet, cell)
	if err != nil {
		return nil, err
	}
	switch typ {
	case excelize.CellTypeBool:
		return cast.ToBoolE(raw)
	case excelize.CellTypeDate:
		return parseISOTime(raw)
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString,
		excelize.CellTypeFormula, excelize.CellTypeError:
		return raw, nil
	}

	isDate, err := w.isDateCell(sheet, cell)
	if err != nil {
		return nil, err
	}
	if isDate {
		return parseDate(raw, w.date1904)
	}
	return parseValue(raw), nil
}

func (w *Workbook) isDateCell(sheet, cell string) (bool, error) {
	styleID, err := w.f.GetCellStyle(sheet, cell)
	if err != nil {
		return false, err
	}
	if isDate, ok := w.dateStyles[styleID]; ok {
		return isDate, nil
	}

	style, err := w.f.GetStyle(styleID)
	if err != nil {
		return false, err
	}
	isDate := isDateFormat(style.NumFmt, style.CustomNumFmt)
	w.dateStyles[styleID] = isDate
	return isDate, nil
}
