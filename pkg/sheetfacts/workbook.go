package sheetfacts

import "github.com/ukaji3/sheetfacts-go/pkg/sheetfacts/parser"

// Workbook is a read-only view of an opened spreadsheet.
type Workbook interface {
	// SheetNames returns the sheet names in workbook order.
	SheetNames() []string
	// HasSheet reports whether a sheet with exactly this name exists.
	HasSheet(name string) bool
	// SheetRows returns the typed cell values of every row of a sheet.
	SheetRows(name string) ([][]interface{}, error)
	Close() error
}

// Reader opens workbooks.
type Reader interface {
	// Probe checks that the reader works at all.
	Probe() error
	Open(path string) (Workbook, error)
}

// NewExcelizeReader returns the default Reader, backed by excelize.
func NewExcelizeReader(opts parser.ReadOptions) Reader {
	return excelizeReader{r: parser.NewReader(opts)}
}

type excelizeReader struct {
	r *parser.Reader
}

func (x excelizeReader) Probe() error {
	return x.r.Probe()
}

func (x excelizeReader) Open(path string) (Workbook, error) {
	wb, err := x.r.Open(path)
	if err != nil {
		return nil, err
	}
	return wb, nil
}
