// Package sheetfacts converts spreadsheet sheets into Ansible facts.
package sheetfacts

// Options configures a single extraction.
type Options struct {
	// Sheets restricts extraction to the named sheets, in this order.
	// If empty, every sheet is extracted in workbook order.
	Sheets []string
}

// DefaultOptions returns options that extract every sheet.
func DefaultOptions() Options {
	return Options{}
}

// AllSheets reports whether every sheet of the workbook is extracted.
func (o Options) AllSheets() bool {
	return len(o.Sheets) == 0
}
