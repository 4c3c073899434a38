package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/tabcheck/internal/schemas"
	"github.com/jonathan/tabcheck/internal/types"
)

func TestContentCommand_Passes(t *testing.T) {
	dir := t.TempDir()
	input := writeTable(t, dir, "expr.txt", "gene\ts1\ts2", "g1\t1\t2", "g2\t3\t4")
	out := t.TempDir()

	stdout, err := run(t, "content", input, "--out-dir", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "expr.txt passed")
	assert.FileExists(t, filepath.Join(out, "expr.txt"))
}

func TestContentCommand_DefaultWorkingCopy(t *testing.T) {
	dir := t.TempDir()
	input := writeTable(t, dir, "expr.txt", "gene\ts1", "g1\t1")

	_, err := run(t, "content", input)
	require.NoError(t, err)
	assert.FileExists(t, input+".checked")
}

func TestContentCommand_WrongRowCount(t *testing.T) {
	dir := t.TempDir()
	input := writeTable(t, dir, "expr.txt", "gene\ts1\ts2", "g1\t1\t2")

	stdout, err := run(t, "content", input, "--out-dir", t.TempDir(), "--rows", "5")
	require.ErrorIs(t, err, errChecksFailed)
	assert.Contains(t, stdout, "has the wrong number of rows")
	assert.Contains(t, stdout, "expr.txt failed with 1 error(s)")
}

func TestContentCommand_MinMaxColumns(t *testing.T) {
	dir := t.TempDir()
	input := writeTable(t, dir, "expr.txt", "gene\ts1\ts2", "g1\t1\t2")

	_, err := run(t, "content", input, "--out-dir", t.TempDir(), "--min-cols", "2", "--max-cols", "3")
	require.NoError(t, err)

	stdout, err := run(t, "content", input, "--out-dir", t.TempDir(), "--max-cols", "2")
	require.ErrorIs(t, err, errChecksFailed)
	assert.Contains(t, stdout, "column count is out of range")
}

func TestContentCommand_DuplicateGenesWithReport(t *testing.T) {
	dir := t.TempDir()
	input := writeTable(t, dir, "expr.txt", "gene\ts1", "g1\t1", "g1\t2")
	reportPath := filepath.Join(t.TempDir(), "out", "report.json")
	logPath := filepath.Join(t.TempDir(), "error.log")

	stdout, err := run(t, "content", input, "--out-dir", t.TempDir(), "--report", reportPath, "--error-log", logPath)
	require.ErrorIs(t, err, errChecksFailed)
	assert.Contains(t, stdout, `"g1"`)

	require.NoError(t, schemas.ValidateFile(schemas.Report, reportPath))
	data, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	var reports types.Reports
	require.NoError(t, json.Unmarshal(data, &reports))
	assert.Equal(t, 1, reports.Total)
	assert.Equal(t, 1, reports.Failed)
	assert.Equal(t, "EN", reports.Language)
	require.Len(t, reports.Reports[0].Messages, 1)
	assert.Equal(t, "file.col_detail", reports.Reports[0].Messages[0].Check)

	logData, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(logData), "The run failed with the following errors:")
	assert.Contains(t, string(logData), ">>> ")
}

func TestContentCommand_Profile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "expr.csv")
	require.NoError(t, os.WriteFile(input, []byte("gene,s1,s2\ng1,1,x\n"), 0644))
	profile := filepath.Join(dir, "profile.json")
	require.NoError(t, os.WriteFile(profile, []byte(`{
		"name": "matrix",
		"sep": ",",
		"content": {
			"cols": {"exact": 3},
			"row_type": {"targets": "skip-first"},
			"value_type": "float",
			"drop_first": true
		}
	}`), 0644))

	stdout, err := run(t, "--profile", profile, "content", input, "--out-dir", t.TempDir())
	require.ErrorIs(t, err, errChecksFailed)
	assert.Contains(t, stdout, "non-numeric value: x")
	assert.Contains(t, stdout, "expr.csv failed with 1 error(s)")
}

func TestContentCommand_SepFlagOverridesProfile(t *testing.T) {
	dir := t.TempDir()
	input := writeTable(t, dir, "expr.txt", "gene\ts1\ts2", "g1\t1\t2")
	profile := filepath.Join(dir, "profile.json")
	require.NoError(t, os.WriteFile(profile, []byte(`{"sep": ",", "content": {"cols": {"exact": 3}}}`), 0644))

	_, err := run(t, "--profile", profile, "content", input, "--out-dir", t.TempDir())
	require.ErrorIs(t, err, errChecksFailed)

	_, err = run(t, "--profile", profile, "--sep", `\t`, "content", input, "--out-dir", t.TempDir())
	require.NoError(t, err)
}

func TestContentCommand_MissingInput(t *testing.T) {
	_, err := run(t, "content", filepath.Join(t.TempDir(), "absent.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "input file not found")
}

func TestContentCommand_ChineseMessages(t *testing.T) {
	dir := t.TempDir()
	input := writeTable(t, dir, "expr.txt", "gene\ts1", "g1\t1", "g1\t2")

	stdout, _, err := execute(t, "--lang", "CN", "--quiet", "content", input, "--out-dir", t.TempDir())
	require.ErrorIs(t, err, errChecksFailed)
	assert.Contains(t, stdout, "存在重复")
	assert.Contains(t, stdout, "检查未通过")
}

func TestContentCommand_Prefix(t *testing.T) {
	dir := t.TempDir()
	input := writeTable(t, dir, "expr.txt", "gene\ts1", "g1\t1", "g1\t2")

	stdout, err := run(t, "--prefix", "[expr] ", "content", input, "--out-dir", t.TempDir())
	require.ErrorIs(t, err, errChecksFailed)
	assert.Contains(t, stdout, "[expr] ")
}

func TestContentCommand_BadValueType(t *testing.T) {
	dir := t.TempDir()
	input := writeTable(t, dir, "expr.txt", "gene\ts1", "g1\t1")

	_, err := run(t, "content", input, "--value-type", "complex")
	require.Error(t, err)
	assert.NotErrorIs(t, err, errChecksFailed)
}
