// Package tabular reads delimited text files row by row and exposes row,
// column and dimension views without loading the file as a matrix.
package tabular

import "fmt"

// FileReadError represents an error opening or reading a table file.
type FileReadError struct {
	Message string
	Cause   error
}

func (e *FileReadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *FileReadError) Unwrap() error {
	return e.Cause
}

// ShortRowError is returned when a column is requested from a row that has
// fewer fields than the column index.
type ShortRowError struct {
	Row    int
	Col    int
	Fields int
}

func (e *ShortRowError) Error() string {
	return fmt.Sprintf("row %d has %d fields, column %d requested", e.Row, e.Fields, e.Col)
}

// FieldCountError is returned by Normalize when a row has more fields than
// the first row.
type FieldCountError struct {
	Row      int
	Expected int
	Actual   int
}

func (e *FieldCountError) Error() string {
	return fmt.Sprintf("expected %d fields in row %d, saw %d", e.Expected, e.Row, e.Actual)
}
