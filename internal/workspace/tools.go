// Package workspace manages the result directory tree of a pipeline step.
package workspace

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/jonathan/tabcheck/internal/catalog"
	"github.com/jonathan/tabcheck/internal/validation"
)

const compTool = "tool"

// Result tree layout below the output directory.
const (
	TmpDir      = "tmp"
	ResultDir   = "cloud_result"
	ErrorDir    = "cloud_error"
	SVGDir      = "cloud_svg"
	AnalysisDir = "analysis"
	DefaultZip  = "result.zip"
)

const logLinePrefix = ">>> "

// Tools runs workspace operations, reporting failures as issues rendered in
// the context language.
type Tools struct {
	ctx validation.Context
}

// New builds a Tools.
func New(ctx validation.Context) *Tools {
	return &Tools{ctx: ctx}
}

func cleanPath(path string) string {
	path = strings.TrimSpace(path)
	if len(path) > 1 {
		path = strings.TrimRight(path, `/\`)
	}
	return filepath.Clean(path)
}

func (t *Tools) issue(key string, fields validation.Fields) *validation.Issue {
	return t.ctx.NewIssue(validation.KindStructural, compTool, key, fields)
}

// DeleteAll removes everything inside path, and path itself when
// includeSelf is set.
func (t *Tools) DeleteAll(path string, includeSelf bool) *validation.Issue {
	t.ctx.Trace(compTool, "delete_all")
	path = cleanPath(path)
	if includeSelf {
		if err := os.RemoveAll(path); err != nil {
			return t.fail("delete", path, err)
		}
		return nil
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return t.fail("delete", path, err)
	}
	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(path, e.Name())); err != nil {
			return t.fail("delete", path, err)
		}
	}
	return nil
}

// fail logs err and returns the "<op>_failed" message naming path.
func (t *Tools) fail(op, path string, err error) *validation.Issue {
	t.ctx.Log().Error("workspace operation failed", "op", op, "path", path, "error", err)
	return t.issue(op+"_failed", validation.Fields{"Path": path})
}

// MakeDir creates path. An existing directory is emptied when clean is set.
func (t *Tools) MakeDir(path string, clean bool) *validation.Issue {
	t.ctx.Trace(compTool, "make_dir")
	path = cleanPath(path)
	if _, err := os.Stat(path); err == nil {
		if clean {
			return t.DeleteAll(path, false)
		}
		return nil
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return t.fail("mkdir", path, err)
	}
	return nil
}

// CopyFile copies in into dir as name, or under its own name when name is
// empty. Copying a file onto itself is refused.
func (t *Tools) CopyFile(in, dir, name string) *validation.Issue {
	t.ctx.Trace(compTool, "copy_file")
	in, _ = filepath.Abs(in)
	if info, err := os.Stat(in); err != nil || !info.Mode().IsRegular() {
		return t.issue("copy_not_file", validation.Fields{"Path": in})
	}
	if name == "" {
		name = filepath.Base(in)
	}
	dst, _ := filepath.Abs(filepath.Join(dir, filepath.Base(name)))
	if dst == in {
		return t.issue("copy_same", validation.Fields{"Path": in})
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return t.fail("copy", dst, err)
	}
	if err := copyFile(in, dst); err != nil {
		return t.fail("copy", dst, err)
	}
	return nil
}

func copyFile(src, dst string) (err error) {
	r, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = r.Close() }()
	w, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := w.Close(); err == nil {
			err = cerr
		}
	}()
	_, err = io.Copy(w, r)
	return err
}

// MakeResultTree creates tmp/{cloud_result,cloud_error,cloud_svg} under
// path plus the named analysis directories (analysis when none are given).
// Existing directories are emptied when clean is set.
func (t *Tools) MakeResultTree(path string, clean bool, extra ...string) *validation.Issue {
	t.ctx.Trace(compTool, "make_result_tree")
	root, err := filepath.Abs(cleanPath(path))
	if err != nil {
		return t.fail("result_tree", path, err)
	}
	if len(extra) == 0 {
		extra = []string{AnalysisDir}
	}
	dirs := []string{filepath.Join(root, TmpDir)}
	for _, d := range append([]string{ResultDir, ErrorDir, SVGDir}, extra...) {
		dirs = append(dirs, filepath.Join(root, TmpDir, d))
	}
	for _, d := range dirs {
		if issue := t.MakeDir(d, clean); issue != nil {
			return issue
		}
	}
	return nil
}

// CheckDirItems checks that path holds the expected entries and, when
// checkEmpty is set, that none of them is an empty file. A nil expected
// list checks every entry of path.
func (t *Tools) CheckDirItems(path string, expected []string, checkEmpty bool) *validation.Issue {
	t.ctx.Trace(compTool, "check_dir_items")
	path = cleanPath(path)
	entries, err := os.ReadDir(path)
	if err != nil {
		return t.fail("dir_check", path, err)
	}
	present := make(map[string]bool, len(entries))
	for _, e := range entries {
		present[e.Name()] = true
	}
	if expected == nil {
		for _, e := range entries {
			expected = append(expected, e.Name())
		}
	}

	var missing, empty []string
	found := 0
	for _, name := range expected {
		if !present[name] {
			missing = append(missing, name)
			continue
		}
		found++
		if checkEmpty {
			info, err := os.Stat(filepath.Join(path, name))
			if err == nil && info.Mode().IsRegular() && info.Size() == 0 {
				empty = append(empty, name)
			}
		}
	}

	switch {
	case found == 0:
		return t.issue("no_result", nil)
	case len(missing) > 0 && len(empty) > 0:
		return t.issue("incomplete_empty", validation.Fields{"Missing": missing, "Empty": empty})
	case len(missing) > 0:
		return t.issue("incomplete", validation.Fields{"Missing": missing})
	case len(empty) > 0:
		return t.issue("empty_files", validation.Fields{"Empty": empty})
	}
	return nil
}

// ResultOptions controls MakeResult.
type ResultOptions struct {
	// Items are the entries of the source directory to pack; nil packs all.
	Items []string
	// Zip names the archive, result.zip by default.
	Zip string
	// JSON names a result file copied to cloud_svg instead of being packed.
	JSON string
}

// MakeResult zips items of path into path/<zip>, copies the archive into
// outDir/tmp/cloud_result and, when set, copies the JSON file into
// outDir/tmp/cloud_svg. Every failing step is reported.
func (t *Tools) MakeResult(path, outDir string, opts ResultOptions) validation.Issues {
	t.ctx.Trace(compTool, "make_result")
	root, err := filepath.Abs(cleanPath(path))
	if err != nil {
		return validation.Issues{t.fail("make_result", path, err)}
	}
	zipName := filepath.Base(opts.Zip)
	if opts.Zip == "" {
		zipName = DefaultZip
	}
	items := opts.Items
	if items == nil {
		entries, err := os.ReadDir(root)
		if err != nil {
			return validation.Issues{t.fail("make_result", root, err)}
		}
		for _, e := range entries {
			if e.Name() != zipName {
				items = append(items, e.Name())
			}
		}
	}
	jsonName := filepath.Base(opts.JSON)
	if opts.JSON != "" {
		items = slices.DeleteFunc(slices.Clone(items), func(item string) bool { return item == jsonName })
	}

	var issues validation.Issues
	archive := filepath.Join(root, zipName)
	if err := Zip(root, items, archive); err != nil {
		issues.Add(t.fail("zip", archive, err))
	}
	if err := copyFile(archive, filepath.Join(outDir, TmpDir, ResultDir, zipName)); err != nil {
		issues.Add(t.fail("copy_result", archive, err))
	}
	if opts.JSON != "" {
		src := filepath.Join(root, jsonName)
		if err := copyFile(src, filepath.Join(outDir, TmpDir, SVGDir, jsonName)); err != nil {
			issues.Add(t.fail("copy_json", src, err))
		}
	}
	return issues
}

// WriteLog writes one ">>> "-prefixed line per message to file, after the
// catalog log header when header is set.
func (t *Tools) WriteLog(lines []string, file string, header bool) error {
	t.ctx.Trace(compTool, "write_log")
	var b strings.Builder
	if header {
		b.WriteString(t.ctx.Text(catalogRef("log_header")))
	}
	for _, line := range lines {
		b.WriteString(logLinePrefix + line + "\n")
	}
	if err := os.WriteFile(file, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write log %s: %w", file, err)
	}
	return nil
}

// WriteDefaultLog writes the generic failure log used when a step fails
// without specific messages.
func (t *Tools) WriteDefaultLog(file string) error {
	return t.WriteLog([]string{t.ctx.Text(catalogRef("default_log"))}, file, true)
}

func catalogRef(key string) catalog.Ref {
	return catalog.R(compTool, key)
}
