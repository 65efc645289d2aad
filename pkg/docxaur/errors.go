package docxaur

import (
	"fmt"
)

// UnsupportedLocatorError indicates an image locator whose scheme is outside
// the accepted set (http URL, https URL, root-relative path).
type UnsupportedLocatorError struct {
	Locator string
}

func (e *UnsupportedLocatorError) Error() string {
	return fmt.Sprintf("unsupported image locator %q: expected http(s) URL or root-relative path", e.Locator)
}

// NewUnsupportedLocatorError creates a new unsupported-locator error
func NewUnsupportedLocatorError(locator string) error {
	return &UnsupportedLocatorError{Locator: locator}
}

// ResourceFetchError indicates a non-success outcome while fetching an
// image resource. It aborts the whole document assembly.
type ResourceFetchError struct {
	Locator string
	Status  string
	Cause   error
}

func (e *ResourceFetchError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("fetching %q failed: %s", e.Locator, e.Status)
	}
	return fmt.Sprintf("fetching %q failed: %v", e.Locator, e.Cause)
}

func (e *ResourceFetchError) Unwrap() error {
	return e.Cause
}

// NewResourceFetchError creates a new resource-fetch error
func NewResourceFetchError(locator, status string, cause error) error {
	return &ResourceFetchError{Locator: locator, Status: status, Cause: cause}
}

// InvalidDimensionError indicates a dimension string that could not be
// parsed while strict dimension handling is enabled.
type InvalidDimensionError struct {
	Input string
}

func (e *InvalidDimensionError) Error() string {
	return fmt.Sprintf("invalid dimension %q", e.Input)
}

// NewInvalidDimensionError creates a new invalid-dimension error
func NewInvalidDimensionError(input string) error {
	return &InvalidDimensionError{Input: input}
}

// MergeContinuityError indicates a vertical-merge continuation cell
// (rowspan 0) placed in a column with no open merge origin above it.
type MergeContinuityError struct {
	Row    int
	Column int
}

func (e *MergeContinuityError) Error() string {
	return fmt.Sprintf("row %d: continuation cell in column %d has no open vertical merge above it", e.Row, e.Column)
}

// NewMergeContinuityError creates a new merge-continuity error
func NewMergeContinuityError(row, column int) error {
	return &MergeContinuityError{Row: row, Column: column}
}

// RowShapeError indicates a row whose cells do not cover the declared
// column grid exactly, counting horizontal spans.
type RowShapeError struct {
	Row     int
	Covered int
	Columns int
}

func (e *RowShapeError) Error() string {
	return fmt.Sprintf("row %d covers %d grid columns, table declares %d", e.Row, e.Covered, e.Columns)
}

// NewRowShapeError creates a new row-shape error
func NewRowShapeError(row, covered, columns int) error {
	return &RowShapeError{Row: row, Covered: covered, Columns: columns}
}

// PartWriteError indicates an archive I/O failure while writing a package part.
type PartWriteError struct {
	Part  string
	Cause error
}

func (e *PartWriteError) Error() string {
	return fmt.Sprintf("writing part %q failed: %v", e.Part, e.Cause)
}

func (e *PartWriteError) Unwrap() error {
	return e.Cause
}

// NewPartWriteError creates a new part-write error
func NewPartWriteError(part string, cause error) error {
	return &PartWriteError{Part: part, Cause: cause}
}

// IsUnsupportedLocatorError checks if an error is an unsupported-locator error
func IsUnsupportedLocatorError(err error) bool {
	_, ok := err.(*UnsupportedLocatorError)
	return ok
}

// IsResourceFetchError checks if an error is a resource-fetch error
func IsResourceFetchError(err error) bool {
	_, ok := err.(*ResourceFetchError)
	return ok
}

// IsInvalidDimensionError checks if an error is an invalid-dimension error
func IsInvalidDimensionError(err error) bool {
	_, ok := err.(*InvalidDimensionError)
	return ok
}

// IsMergeContinuityError checks if an error is a merge-continuity error
func IsMergeContinuityError(err error) bool {
	_, ok := err.(*MergeContinuityError)
	return ok
}
