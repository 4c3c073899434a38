package validation

import (
	"encoding/json"
	"fmt"
)

// SelectMode picks how a Selection resolves.
type SelectMode int

const (
	// SelectList targets the listed indices.
	SelectList SelectMode = iota
	// SelectAll targets every row or column.
	SelectAll
	// SelectSkipFirst targets every row or column but the first.
	SelectSkipFirst
)

// Selection chooses target rows or columns by 1-based index.
type Selection struct {
	Mode    SelectMode
	Indices []int
}

// All selects every row or column.
func All() Selection { return Selection{Mode: SelectAll} }

// SkipFirst selects every row or column except the first.
func SkipFirst() Selection { return Selection{Mode: SelectSkipFirst} }

// Only selects the given indices.
func Only(indices ...int) Selection { return Selection{Indices: indices} }

// Resolve expands the selection for a table with n rows or columns.
func (s Selection) Resolve(n int) []int {
	var out []int
	switch s.Mode {
	case SelectAll:
		for i := 1; i <= n; i++ {
			out = append(out, i)
		}
	case SelectSkipFirst:
		for i := 2; i <= n; i++ {
			out = append(out, i)
		}
	default:
		out = append(out, s.Indices...)
	}
	return out
}

// MarshalJSON encodes "all", "skip-first" or a list of indices.
func (s Selection) MarshalJSON() ([]byte, error) {
	switch s.Mode {
	case SelectAll:
		return json.Marshal("all")
	case SelectSkipFirst:
		return json.Marshal("skip-first")
	}
	if s.Indices == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.Indices)
}

// UnmarshalJSON accepts "all", "skip-first", an index or a list of indices.
func (s *Selection) UnmarshalJSON(data []byte) error {
	var word string
	if err := json.Unmarshal(data, &word); err == nil {
		switch word {
		case "all":
			*s = All()
		case "skip-first":
			*s = SkipFirst()
		default:
			return &ConfigError{Option: "selection", Value: word, Message: `want "all", "skip-first" or indices`}
		}
		return nil
	}
	var one int
	if err := json.Unmarshal(data, &one); err == nil {
		*s = Only(one)
		return nil
	}
	var many []int
	if err := json.Unmarshal(data, &many); err != nil {
		return &ConfigError{Option: "selection", Value: string(data), Cause: err}
	}
	for _, i := range many {
		if i < 1 {
			return &ConfigError{Option: "selection", Value: fmt.Sprint(i), Message: "indices start at 1"}
		}
	}
	*s = Only(many...)
	return nil
}
