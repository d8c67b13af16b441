package sheetfacts

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/ukaji3/sheetfacts-go/pkg/sheetfacts/models"
	"github.com/ukaji3/sheetfacts-go/pkg/sheetfacts/parser"
)

// SheetKeyPrefix marks result set keys as sheet-derived.
const SheetKeyPrefix = "sheet_"

// MessageDone is the message of a successful Run.
const MessageDone = "Done"

// SheetKey returns the result set key for a sheet.
func SheetKey(name string) string {
	return SheetKeyPrefix + name
}

// Extractor converts workbooks into facts.
type Extractor struct {
	reader Reader
	logger zerolog.Logger
}

// NewExtractor probes reader and returns an Extractor using it. A nil or
// failing reader is reported as ErrMissingDependency.
func NewExtractor(reader Reader, logger zerolog.Logger) (*Extractor, error) {
	if reader == nil {
		return nil, fmt.Errorf("%w: no workbook reader", ErrMissingDependency)
	}
	if err := reader.Probe(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMissingDependency, err)
	}
	return &Extractor{reader: reader, logger: logger}, nil
}

// Extract reads the workbook at path and returns its sheets as facts.
// It returns either the complete result set or an error, never a partial one.
func (e *Extractor) Extract(path string, opts Options) (*models.Facts, error) {
	wb, err := e.reader.Open(path)
	if err != nil {
		return nil, &InputError{Path: path, Err: err}
	}
	defer wb.Close()

	sheets, err := selectSheets(wb, opts)
	if err != nil {
		return nil, err
	}

	result := models.NewResultSet()
	for _, name := range sheets {
		rows, err := wb.SheetRows(name)
		if err != nil {
			return nil, NewSheetError(name, ComponentRows, fmt.Errorf("%w: %w", ErrMalformedSheet, err))
		}

		records := parser.BuildRecords(rows)
		result.Set(SheetKey(name), records)
		e.logger.Debug().
			Str("src", path).
			Str("sheet", name).
			Int("records", len(records)).
			Msg("sheet extracted")
	}

	return &models.Facts{AnsibleFacts: result}, nil
}

// selectSheets returns the sheets to extract. Requested names are all
// checked before any sheet is read.
func selectSheets(wb Workbook, opts Options) ([]string, error) {
	if opts.AllSheets() {
		return wb.SheetNames(), nil
	}
	for _, name := range opts.Sheets {
		if !wb.HasSheet(name) {
			return nil, NewSheetError(name, ComponentLookup, ErrSheetNotFound)
		}
	}
	return opts.Sheets, nil
}

// Status is the exit status of a Run.
type Status int

const (
	StatusOK     Status = 0
	StatusFailed Status = 1
)

// Result is the outcome of a Run.
type Result struct {
	Status Status
	// Message is MessageDone on success and the diagnostic on failure.
	Message string
	// Facts is nil on failure.
	Facts *models.Facts
	Kind  Kind
	Err   error
}

// Run extracts path and folds the outcome into a Result.
func (e *Extractor) Run(path string, opts Options) Result {
	facts, err := e.Extract(path, opts)
	if err != nil {
		kind := Classify(err)
		e.logger.Warn().
			Err(err).
			Str("src", path).
			Str("kind", string(kind)).
			Msg("extraction failed")
		return Result{
			Status:  StatusFailed,
			Message: err.Error(),
			Kind:    kind,
			Err:     err,
		}
	}
	return Result{
		Status:  StatusOK,
		Message: MessageDone,
		Facts:   facts,
	}
}
