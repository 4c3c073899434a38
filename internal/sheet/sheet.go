// Package sheet converts spreadsheet workbooks to delimited text.
package sheet

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Options controls ToText.
type Options struct {
	// Sheet is the 1-based sheet index. Zero selects the first sheet.
	Sheet int
	// Sep is the output field separator, tab by default.
	Sep string
	// NAValues are cell values treated as missing.
	NAValues []string
	// NARep replaces missing values in the output.
	NARep string
}

// DefaultOutput is the path ToText writes to when none is given: the input
// path with its extension replaced by .txt.
func DefaultOutput(in string) string {
	return strings.TrimSuffix(in, filepath.Ext(in)) + ".txt"
}

// ToText writes one sheet of the workbook at in as delimited text. Rows are
// padded to the width of the widest row. It returns the output path.
func ToText(in, out string, opts Options) (string, error) {
	if out == "" {
		out = DefaultOutput(in)
	}
	if opts.Sep == "" {
		opts.Sep = "\t"
	}
	if opts.Sheet <= 0 {
		opts.Sheet = 1
	}

	book, err := excelize.OpenFile(in)
	if err != nil {
		return "", fmt.Errorf("failed to open workbook %s: %w", in, err)
	}
	defer func() { _ = book.Close() }()

	sheets := book.GetSheetList()
	if opts.Sheet > len(sheets) {
		return "", fmt.Errorf("workbook %s has %d sheets, sheet %d requested", in, len(sheets), opts.Sheet)
	}
	rows, err := book.GetRows(sheets[opts.Sheet-1])
	if err != nil {
		return "", fmt.Errorf("failed to read sheet %s: %w", sheets[opts.Sheet-1], err)
	}

	width := 0
	for _, row := range rows {
		width = max(width, len(row))
	}
	na := make(map[string]bool, len(opts.NAValues))
	for _, v := range opts.NAValues {
		na[v] = true
	}

	f, err := os.Create(out)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", out, err)
	}
	w := bufio.NewWriter(f)
	for _, row := range rows {
		cells := make([]string, width)
		copy(cells, row)
		for i, c := range cells {
			if na[c] {
				cells[i] = opts.NARep
			}
		}
		_, _ = w.WriteString(strings.Join(cells, opts.Sep))
		_ = w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("failed to write %s: %w", out, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", out, err)
	}
	return out, nil
}
