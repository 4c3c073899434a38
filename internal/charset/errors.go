// Package charset detects text file encodings and converts files between them.
package charset

import "fmt"

// UnknownEncodingError is returned for an encoding name with no codec.
type UnknownEncodingError struct {
	Name string
}

func (e *UnknownEncodingError) Error() string {
	return fmt.Sprintf("unknown encoding %q", e.Name)
}

// ConversionError represents a failure while re-encoding a file.
type ConversionError struct {
	From    string
	To      string
	Message string
	Cause   error
}

func (e *ConversionError) Error() string {
	msg := fmt.Sprintf("convert %s to %s: %s", e.From, e.To, e.Message)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *ConversionError) Unwrap() error {
	return e.Cause
}
