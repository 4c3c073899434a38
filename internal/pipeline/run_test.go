package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/tabcheck/internal/catalog"
	"github.com/jonathan/tabcheck/internal/schemas"
	"github.com/jonathan/tabcheck/internal/validation"
)

type stubDetector string

func (d stubDetector) Detect(string) (string, error) {
	return string(d), nil
}

func newTestContext(t *testing.T) validation.Context {
	t.Helper()
	ctx, err := validation.NewContext(catalog.MustDefault(),
		validation.WithLanguage(catalog.LangEN), validation.WithQuiet(true))
	require.NoError(t, err)
	return ctx
}

func writeFile(t *testing.T, dir, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644))
	return path
}

func testOptions(t *testing.T, files ...string) Options {
	t.Helper()
	return Options{
		Files:   files,
		Sep:     "\t",
		Context: newTestContext(t),
		Base:    validation.BaseOptions{Detector: stubDetector("UTF-8"), NoConvert: true},
		Content: validation.DefaultContentOptions(t.TempDir()),
		Workers: 2,
	}
}

func TestRun_MixedResults(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.txt", "id\ta\tb", "g1\t1\t2", "g2\t3\t4")
	short := writeFile(t, dir, "short.txt", "id\ta\tb", "g1\t1\t2")
	missing := filepath.Join(dir, "missing.txt")
	other := writeFile(t, dir, "other.txt", "id\tx\ty", "g1\t5\t6", "g2\t7\t8")

	opts := testOptions(t, good, short, missing, other)
	three := 3
	opts.Content.Rows = validation.DimensionRule{Exact: &three}

	var mu sync.Mutex
	var seen []int
	opts.OnProgress = func(e ProgressEvent) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, e.Index)
		assert.Equal(t, 4, e.Total)
		assert.NotEmpty(t, e.RunID)
	}

	result, err := Run(context.Background(), opts)
	require.NoError(t, err)

	require.Len(t, result.Reports, 4)
	assert.ElementsMatch(t, []int{0, 1, 2, 3}, seen)
	assert.Equal(t, 4, result.Total)
	assert.Equal(t, 2, result.Failed)
	assert.Equal(t, "EN", result.Language)

	assert.Equal(t, good, result.Reports[0].File)
	assert.True(t, result.Reports[0].Passed)
	assert.Equal(t, filepath.Join(opts.Content.OutDir, "good.txt"), result.Reports[0].Output)

	assert.False(t, result.Reports[1].Passed)
	assert.Equal(t, validation.StageDimensions, result.Reports[1].Stage)
	require.Len(t, result.Reports[1].Messages, 1)
	assert.Equal(t, "file.row_count", result.Reports[1].Messages[0].Check)
	assert.Equal(t, "structural", result.Reports[1].Messages[0].Kind)

	assert.False(t, result.Reports[2].Passed)
	assert.Equal(t, StageBase, result.Reports[2].Stage)
	require.Len(t, result.Reports[2].Messages, 1)
	assert.Equal(t, "file.not_exist", result.Reports[2].Messages[0].Check)

	assert.True(t, result.Reports[3].Passed)
}

func TestRun_ReportMatchesSchema(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.txt", "id\ta", "g1\t1")
	bad := writeFile(t, dir, "bad.csv", "id\ta", "g1\t1")

	result, err := Run(context.Background(), testOptions(t, good, bad))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, "file.suffix", result.Reports[1].Messages[0].Check)

	data, err := EncodeReports(result)
	require.NoError(t, err)
	assert.NoError(t, schemas.Validate(schemas.Report, data))

	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, WriteReports(path, result))
	assert.FileExists(t, path)
}

func TestRun_BaseOnly(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "dup.txt", "id\ta", "g1\t1", "g1\t1")

	opts := testOptions(t, path)
	opts.SkipContent = true
	result, err := Run(context.Background(), opts)
	require.NoError(t, err)
	assert.True(t, result.Passed())
	assert.Empty(t, result.Reports[0].Output)
}

func TestRun_ContentOnly(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "dup.txt", "id\ta", "g1\t1", "g1\t2")

	opts := testOptions(t, path)
	opts.SkipBase = true
	result, err := Run(context.Background(), opts)
	require.NoError(t, err)
	require.False(t, result.Passed())
	assert.Equal(t, "file.col_detail", result.Reports[0].Messages[0].Check)
	assert.Equal(t, "content", result.Reports[0].Messages[0].Kind)
	assert.Contains(t, result.Reports[0].Messages[0].Text, `"g1"`)
}

func TestRun_ConvertedOutput(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "gbk.txt", "id\ta", "g1\t1")

	opts := testOptions(t, path)
	opts.Base = validation.BaseOptions{Detector: stubDetector("GBK")}
	opts.SkipContent = true
	result, err := Run(context.Background(), opts)
	require.NoError(t, err)
	require.True(t, result.Passed(), "%v", result.Reports[0].Messages)
	assert.Equal(t, path+".convert", result.Reports[0].Output)
	assert.FileExists(t, path+".convert")
}

func TestRun_RepeatedPathConvertedOnce(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "gbk.txt", "id\ta", "g1\t1")
	again := filepath.Join(dir, ".", "gbk.txt")

	opts := testOptions(t, path, again, path)
	opts.Base = validation.BaseOptions{Detector: stubDetector("GBK")}
	opts.SkipContent = true
	result, err := Run(context.Background(), opts)
	require.NoError(t, err)
	require.Len(t, result.Reports, 1)
	assert.Equal(t, 1, result.Total)
	assert.Equal(t, path, result.Reports[0].File)
	assert.Equal(t, path+".convert", result.Reports[0].Output)
}

func TestRun_DefaultWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.txt", "id\ta", "g1\t1")

	opts := testOptions(t, path)
	opts.Content.OutDir = ""
	opts.Workers = 0
	result, err := Run(context.Background(), opts)
	require.NoError(t, err)
	require.True(t, result.Passed())

	out := result.Reports[0].Output
	require.NotEmpty(t, out)
	assert.NotEqual(t, path, out)
	assert.FileExists(t, out)
	t.Cleanup(func() { _ = os.RemoveAll(filepath.Dir(out)) })
}

func TestRun_Cancelled(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.txt", "id\ta", "g1\t1")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, testOptions(t, path))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWorkingNames(t *testing.T) {
	names := workingNames([]string{"a/x.txt", "b/x.txt", "c/y.txt"})
	assert.Equal(t, []string{"1_x.txt", "2_x.txt", "y.txt"}, names)
}

func TestUniqueFiles(t *testing.T) {
	files := uniqueFiles([]string{"a/x.txt", "b/x.txt", "a/./x.txt", "a/x.txt"})
	assert.Equal(t, []string{"a/x.txt", "b/x.txt"}, files)
}

func TestMessages(t *testing.T) {
	ctx := newTestContext(t)
	issues := validation.Issues{ctx.NewIssue(validation.KindStructural, "file", "empty", nil)}

	msgs := Messages(ctx, issues)
	require.Len(t, msgs, 1)
	assert.Equal(t, "structural", msgs[0].Kind)
	assert.Equal(t, "file.empty", msgs[0].Check)
	assert.NotEmpty(t, msgs[0].Text)

	assert.Empty(t, Messages(ctx, nil))
}
