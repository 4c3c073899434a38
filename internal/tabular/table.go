package tabular

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultSep is the default field separator.
const DefaultSep = "\t"

// NA is the canonical token that missing-data markers are normalized to.
const NA = "NA"

const (
	maxLineSize = 16 * 1024 * 1024
	bom         = "\uFEFF"
)

// Table is a delimited text file. Rows are numbered from 1 and count only
// non-blank lines; whitespace-only lines are skipped. A leading byte order
// mark is ignored.
type Table struct {
	Path string
	Sep  string
}

// Open describes the delimited file at path. The file is read lazily.
func Open(path, sep string) *Table {
	if sep == "" {
		sep = DefaultSep
	}
	return &Table{Path: path, Sep: sep}
}

// Name returns the base name of the file.
func (t *Table) Name() string {
	return filepath.Base(t.Path)
}

// ReadOptions controls how cells are cleaned when rows are extracted.
type ReadOptions struct {
	// KeepSpace disables trimming whitespace around every cell.
	KeepSpace bool
	// FillNA replaces missing-data markers with NA.
	FillNA bool
	// NAMarkers lists the missing-data markers used by FillNA.
	NAMarkers []string
}

func (o ReadOptions) clean(cells []string) []string {
	var markers map[string]bool
	if o.FillNA {
		markers = make(map[string]bool, len(o.NAMarkers))
		for _, m := range o.NAMarkers {
			markers[m] = true
		}
	}
	for i, c := range cells {
		if !o.KeepSpace {
			c = strings.TrimSpace(c)
		}
		if markers[c] {
			c = NA
		}
		cells[i] = c
	}
	return cells
}

// Lines calls fn for every non-blank line with its row number. Returning
// false from fn stops the scan.
func (t *Table) Lines(fn func(row int, line string) bool) error {
	f, err := os.Open(t.Path)
	if err != nil {
		return &FileReadError{Message: fmt.Sprintf("failed to open %s", t.Path), Cause: err}
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	row := 0
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if row == 0 {
			line = strings.TrimPrefix(line, bom)
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		row++
		if !fn(row, line) {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return &FileReadError{Message: fmt.Sprintf("failed to read %s", t.Path), Cause: err}
	}
	return nil
}

// Line returns the raw text of row n.
func (t *Table) Line(n int) (string, bool, error) {
	var out string
	found := false
	err := t.Lines(func(row int, line string) bool {
		if row == n {
			out, found = line, true
			return false
		}
		return true
	})
	return out, found, err
}

// Row returns the cells of row n. The boolean is false when the file has
// fewer than n rows.
func (t *Table) Row(n int, opts ReadOptions) ([]string, bool, error) {
	line, found, err := t.Line(n)
	if err != nil || !found {
		return nil, false, err
	}
	return opts.clean(strings.Split(line, t.Sep)), true, nil
}

// Col returns column n of every row. A row with fewer than n fields yields
// a ShortRowError.
func (t *Table) Col(n int, opts ReadOptions) ([]string, error) {
	var out []string
	var short error
	err := t.Lines(func(row int, line string) bool {
		cells := strings.Split(line, t.Sep)
		if n < 1 || n > len(cells) {
			short = &ShortRowError{Row: row, Col: n, Fields: len(cells)}
			return false
		}
		out = append(out, opts.clean(cells[n-1:n])[0])
		return true
	})
	if err != nil {
		return nil, err
	}
	if short != nil {
		return nil, short
	}
	return out, nil
}

// Dimensions holds the row and column counts of a table. Cols is the field
// count of the last row, so a short header row does not narrow the table.
type Dimensions struct {
	Rows int
	Cols int
}

// Dimensions counts rows and the fields of the last row in one pass.
func (t *Table) Dimensions() (Dimensions, error) {
	var d Dimensions
	err := t.Lines(func(row int, line string) bool {
		d.Rows = row
		d.Cols = strings.Count(line, t.Sep) + 1
		return true
	})
	return d, err
}

// RowCount returns the number of non-blank lines.
func (t *Table) RowCount() (int, error) {
	d, err := t.Dimensions()
	return d.Rows, err
}

// ColCount returns the field count of the last row.
func (t *Table) ColCount() (int, error) {
	d, err := t.Dimensions()
	return d.Cols, err
}

// Span selects positions Start..End of a row or column, 1-based and
// inclusive. A zero End extends the span to the length of the expected values.
type Span struct {
	Start int
	End   int
}

// Resolve returns the half-open slice bounds of the span for n expected values.
// An End below Start yields hi < lo; Matches treats that as an empty span.
func (s Span) Resolve(n int) (lo, hi int) {
	start := s.Start
	if start < 1 {
		start = 1
	}
	end := s.End
	if end <= 0 {
		end = start - 1 + n
	}
	return start - 1, end
}

// Matches reports whether actual, restricted to span when non-nil, equals
// expected exactly.
func Matches(actual, expected []string, span *Span) bool {
	if span != nil {
		lo, hi := span.Resolve(len(expected))
		if lo > len(actual) {
			return len(expected) == 0
		}
		actual = actual[lo:max(lo, min(hi, len(actual)))]
	}
	if len(actual) != len(expected) {
		return false
	}
	for i := range actual {
		if actual[i] != expected[i] {
			return false
		}
	}
	return true
}
