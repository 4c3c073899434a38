package validation

import (
	"strings"

	"github.com/jonathan/tabcheck/internal/catalog"
)

// Axis selects rows or columns.
type Axis string

const (
	AxisRow Axis = "row"
	AxisCol Axis = "col"
)

var sampleNoun = catalog.R(compCommon, "sample")

// ParseAxis accepts "row", "1", "col", "column" or "2".
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "row", "1", "行":
		return AxisRow, nil
	case "col", "column", "2", "列":
		return AxisCol, nil
	}
	return "", &ConfigError{Option: "axis", Value: s, Message: "want row or col"}
}

func (a Axis) orRow() Axis {
	if a == "" {
		return AxisRow
	}
	return a
}

func (a Axis) label() catalog.Ref {
	if a == AxisCol {
		return catalog.R(compCommon, "col")
	}
	return catalog.R(compCommon, "row")
}
