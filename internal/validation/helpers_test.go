package validation

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jonathan/tabcheck/internal/catalog"
)

// newTestContext returns a quiet English context over the embedded catalog.
func newTestContext(t *testing.T) Context {
	t.Helper()
	ctx, err := NewContext(catalog.MustDefault(), WithLanguage(catalog.LangEN), WithQuiet(true))
	require.NoError(t, err)
	return ctx
}

// writeTable writes rows joined by sep, one per line, and returns the path.
func writeTable(t *testing.T, dir, name, sep string, rows ...[]string) string {
	t.Helper()
	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = strings.Join(row, sep)
	}
	return writeText(t, dir, name, strings.Join(lines, "\n")+"\n")
}

func writeText(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// fixedDetector reports the same encoding for every file.
type fixedDetector string

func (d fixedDetector) Detect(string) (string, error) {
	return string(d), nil
}
