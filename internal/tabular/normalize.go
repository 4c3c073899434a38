package tabular

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// NormalizeOptions controls Normalize.
type NormalizeOptions struct {
	// KeepSpace disables trimming whitespace around every cell.
	KeepSpace bool
}

// Normalize writes a working copy of the table to dst with the byte order
// mark and blank lines removed and cells trimmed. Rows shorter than the
// first row are padded with empty cells; a longer row fails with a
// FieldCountError. When dst is the source file it is replaced through a
// temporary file in the same directory.
func (t *Table) Normalize(dst string, opts NormalizeOptions) (*Table, error) {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return nil, &FileReadError{Message: fmt.Sprintf("failed to create %s", filepath.Dir(dst)), Cause: err}
	}
	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".*")
	if err != nil {
		return nil, &FileReadError{Message: "failed to create working copy", Cause: err}
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	w := bufio.NewWriter(tmp)
	width := 0
	var fieldErr error
	readErr := t.Lines(func(row int, line string) bool {
		cells := strings.Split(line, t.Sep)
		if row == 1 {
			width = len(cells)
		}
		if len(cells) > width {
			fieldErr = &FieldCountError{Row: row, Expected: width, Actual: len(cells)}
			return false
		}
		for len(cells) < width {
			cells = append(cells, "")
		}
		if !opts.KeepSpace {
			for i := range cells {
				cells[i] = strings.TrimSpace(cells[i])
			}
		}
		_, _ = w.WriteString(strings.Join(cells, t.Sep))
		_ = w.WriteByte('\n')
		return true
	})
	flushErr := w.Flush()
	closeErr := tmp.Close()
	switch {
	case readErr != nil:
		return nil, readErr
	case fieldErr != nil:
		return nil, fieldErr
	case flushErr != nil:
		return nil, &FileReadError{Message: "failed to write working copy", Cause: flushErr}
	case closeErr != nil:
		return nil, &FileReadError{Message: "failed to write working copy", Cause: closeErr}
	}
	if err := os.Rename(tmpPath, dst); err != nil {
		return nil, &FileReadError{Message: fmt.Sprintf("failed to replace %s", dst), Cause: err}
	}
	return &Table{Path: dst, Sep: t.Sep}, nil
}
