package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/tabcheck/internal/types"
)

func TestPrintReport_Passed(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintReport(&types.Report{File: "/data/expr.txt", Passed: true})
	output := buf.String()

	assert.Contains(t, output, "✅ expr.txt")
	assert.NotContains(t, output, "/data")
	assert.Equal(t, 3, strings.Count(output, "\n"))
}

func TestPrintReport_Failed(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintReport(&types.Report{
		File:  "expr.txt",
		Stage: "dimensions",
		Messages: []types.Message{
			{Kind: "structural", Check: "file.row_count", Text: "input expr.txt has the wrong number of rows"},
		},
	})
	output := buf.String()

	assert.Contains(t, output, "❌ expr.txt")
	assert.Contains(t, output, "Stopped at: dimensions")
	assert.Contains(t, output, "Found 1 problems")
	assert.Contains(t, output, "file.row_count")
}

func TestPrintReport_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintReport(nil)

	assert.Empty(t, buf.String())
}

func TestPrintReport_ManyMessages(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	var msgs []types.Message
	for i := 0; i < 8; i++ {
		msgs = append(msgs, types.Message{Check: fmt.Sprintf("str.check_%d", i), Text: "bad"})
	}
	p.PrintReport(&types.Report{File: "a.txt", Messages: msgs})
	output := buf.String()

	assert.Contains(t, output, "str.check_4")
	assert.NotContains(t, output, "str.check_5")
	assert.Contains(t, output, "... and 3 more")
}

func TestPrintReport_TruncatesByRune(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintReport(&types.Report{
		File:     "a.txt",
		Messages: []types.Message{{Check: "list.duplicates", Text: strings.Repeat("重复", 40)}},
	})

	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		assert.True(t, strings.HasSuffix(line, "│") || strings.HasSuffix(line, "┐") ||
			strings.HasSuffix(line, "┤") || strings.HasSuffix(line, "┘"), "line %q", line)
	}
	assert.Contains(t, buf.String(), "...")
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	reports := &types.Reports{
		RunID:   "550e8400-e29b-41d4-a716-446655440000",
		Profile: "expression",
		Reports: []types.Report{
			{File: "a.txt", Passed: true},
			{File: "dir/b.txt"},
		},
	}
	reports.Tally()
	p.PrintSummary(reports)
	output := buf.String()

	assert.Contains(t, output, "BATCH SUMMARY")
	assert.Contains(t, output, "550e8400")
	assert.Contains(t, output, "Profile:  expression")
	assert.Contains(t, output, "Files:    2")
	assert.Contains(t, output, "Failed:   1")
	assert.Contains(t, output, "• b.txt")
	assert.NotContains(t, output, "• a.txt")
}

func TestPrintSummary_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintSummary(nil)
	assert.Empty(t, buf.String())
}

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.LevelInfo, "json", &buf)

	logger.Debug("hidden")
	logger.Info("checked", slog.String("file", "a.txt"))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "checked", record["msg"])
	assert.Equal(t, "a.txt", record["file"])
}

func TestNewLogger_Text(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.LevelDebug, "text", &buf)

	logger.Debug("stage", slog.String("name", "structure"))

	assert.Contains(t, buf.String(), "msg=stage")
	assert.Contains(t, buf.String(), "name=structure")
}

func TestDiscard(t *testing.T) {
	assert.False(t, Discard().Enabled(context.Background(), slog.LevelError))
}
