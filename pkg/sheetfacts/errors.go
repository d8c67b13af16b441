package sheetfacts

import (
	"errors"
	"fmt"
)

// ErrInputUnavailable indicates the input file cannot be opened as a workbook.
var ErrInputUnavailable = errors.New("IOError on input file")

// ErrSheetNotFound indicates a requested sheet does not exist in the workbook.
var ErrSheetNotFound = errors.New("sheet not found")

// ErrMissingDependency indicates the workbook reader is not usable.
var ErrMissingDependency = errors.New("missing required library")

// ErrMalformedSheet indicates a sheet's rows or cells could not be read.
var ErrMalformedSheet = errors.New("malformed sheet")

// Kind classifies extraction failures.
type Kind string

// Failure kinds, one per sentinel error.
const (
	KindInputUnavailable  Kind = "InputUnavailable"
	KindSheetNotFound     Kind = "SheetNotFound"
	KindMissingDependency Kind = "MissingDependency"
	KindMalformedSheet    Kind = "MalformedSheet"
	KindUnknown           Kind = "Unknown"
)

// Classify maps an error to its Kind. It returns "" for a nil error.
func Classify(err error) Kind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingDependency):
		return KindMissingDependency
	case errors.Is(err, ErrInputUnavailable):
		return KindInputUnavailable
	case errors.Is(err, ErrSheetNotFound):
		return KindSheetNotFound
	case errors.Is(err, ErrMalformedSheet):
		return KindMalformedSheet
	}
	return KindUnknown
}

// InputError reports a workbook that could not be opened.
type InputError struct {
	Path string
	Err  error
}

func (e *InputError) Error() string {
	return ErrInputUnavailable.Error() + ": " + e.Path
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// Is makes every InputError match ErrInputUnavailable.
func (e *InputError) Is(target error) bool {
	return target == ErrInputUnavailable
}

// Components reported by SheetError.
const (
	ComponentLookup = "lookup"
	ComponentRows   = "rows"
)

// SheetError represents an error while extracting one sheet.
type SheetError struct {
	SheetName string
	Component string
	Err       error
}

func (e *SheetError) Error() string {
	return fmt.Sprintf("sheet %q (%s): %v", e.SheetName, e.Component, e.Err)
}

func (e *SheetError) Unwrap() error {
	return e.Err
}

// NewSheetError creates a new SheetError.
func NewSheetError(sheetName, component string, err error) *SheetError {
	return &SheetError{
		SheetName: sheetName,
		Component: component,
		Err:       err,
	}
}
