package validation

import (
	"errors"
	"path/filepath"
	"slices"

	"github.com/jonathan/tabcheck/internal/catalog"
	"github.com/jonathan/tabcheck/internal/tabular"
)

// DimensionRule bounds a row or column count. Exact wins over the range;
// with neither set the count is not checked. A range missing one bound
// defaults to at least 1 and no upper limit. A Max of zero also means no
// upper limit; profiles reject it.
type DimensionRule struct {
	Exact *int `json:"exact,omitempty"`
	Min   *int `json:"min,omitempty"`
	Max   *int `json:"max,omitempty"`
}

func (d DimensionRule) rule() (LengthRule, bool) {
	if d.Exact != nil {
		return Exactly(*d.Exact), true
	}
	if d.Min == nil && d.Max == nil {
		return LengthRule{}, false
	}
	r := AtLeast(1)
	if d.Min != nil {
		r.Min = *d.Min
	}
	if d.Max != nil {
		r.Max = *d.Max
	}
	return r, true
}

// LineContentRule configures the per-row or per-column content checks.
type LineContentRule struct {
	Enabled    bool        `json:"enabled"`
	Targets    Selection   `json:"targets"`
	Length     *LengthRule `json:"length,omitempty"`
	Duplicates bool        `json:"duplicates"`
	Banned     bool        `json:"banned"`
	Missing    bool        `json:"missing"`
}

// TypeRule configures type coercion of rows or columns and the numeric
// checks run on the coerced values.
type TypeRule struct {
	Enabled    bool      `json:"enabled"`
	Targets    Selection `json:"targets"`
	Range      *Range    `json:"range,omitempty"`
	BanNumbers bool      `json:"ban_numbers"`
}

// ContentOptions configures CheckContent.
type ContentOptions struct {
	// OutDir receives the preprocessed working copy.
	OutDir string
	// NewName names the working copy; empty keeps the input name.
	NewName string
	// Preprocess removes blank lines and trims cells into a working copy
	// before any check runs.
	Preprocess bool
	// KeepSpace disables cell trimming during preprocessing.
	KeepSpace bool
	// Read controls how cells are cleaned when extracted.
	Read tabular.ReadOptions

	CheckSeparators     bool
	CheckHeader         bool
	CheckDuplicateLines bool

	Rows DimensionRule
	Cols DimensionRule

	RowContent LineContentRule
	ColContent LineContentRule
	BanList    []string
	NAMarkers  []string

	RowFixed *FixedContent
	ColFixed *FixedContent

	RowType    TypeRule
	ColType    TypeRule
	ValueType  ValueType
	DropFirst  bool
	BanNumbers []float64

	RowStandardize bool
	ColStandardize bool
	// StandardizeTargets restricts standardization checks; nil checks every
	// row or column that coerced to numbers.
	StandardizeTargets *Selection

	Relation *Relation
}

// DefaultContentOptions mirrors the defaults of the command line: first row
// and column content checks with missing-value detection, float coercion.
func DefaultContentOptions(outDir string) ContentOptions {
	return ContentOptions{
		OutDir:     outDir,
		Preprocess: true,
		RowContent: LineContentRule{Enabled: true, Targets: Only(1), Duplicates: true, Banned: true, Missing: true},
		ColContent: LineContentRule{Enabled: true, Targets: Only(1), Duplicates: true, Banned: true, Missing: true},
		ValueType:  TypeFloat,
	}
}

// ContentResult is the outcome of CheckContent.
type ContentResult struct {
	// Path is the file the checks ran on: the working copy when
	// preprocessing ran.
	Path   string
	Issues Issues
	// Stage names the stage that stopped the run, if any.
	Stage string
}

// OK reports whether every requested check passed.
func (r ContentResult) OK() bool {
	return r.Issues.OK()
}

// Stage names.
const (
	StagePreprocess = "preprocess"
	StageStructure  = "structure"
	StageDimensions = "dimensions"
)

// CheckContent runs the staged content checks. Preprocessing failures stop
// the run at once. Separator, header and duplicate-line failures stop it
// before dimensions are checked, and dimension failures stop it before any
// content check. Every later check runs and accumulates.
func (f *File) CheckContent(opts ContentOptions) ContentResult {
	f.ctx.Trace(compFile, "check_content")
	work := f
	if opts.Preprocess {
		var issue *Issue
		work, issue = f.preprocess(opts)
		if issue != nil {
			return ContentResult{Path: f.Path(), Issues: Issues{issue}, Stage: StagePreprocess}
		}
	}
	work.read = opts.Read
	res := ContentResult{Path: work.Path()}

	dims, err := work.table.Dimensions()
	if err != nil {
		res.Issues.Add(f.ctx.Fault(compFile, "check_content", err))
		res.Stage = StageStructure
		return res
	}

	res.Issues.Extend(work.structureIssues(opts, dims))
	if !res.OK() {
		res.Stage = StageStructure
		return res
	}

	res.Issues.Extend(work.dimensionIssues(opts))
	if !res.OK() {
		res.Stage = StageDimensions
		return res
	}

	res.Issues.Extend(work.lineContentIssues(AxisRow, opts.RowContent, dims.Rows, opts))
	res.Issues.Extend(work.lineContentIssues(AxisCol, opts.ColContent, dims.Cols, opts))
	if opts.RowFixed != nil {
		res.Issues.Add(work.fixedIssue(AxisRow, opts.RowFixed))
	}
	if opts.ColFixed != nil {
		res.Issues.Add(work.fixedIssue(AxisCol, opts.ColFixed))
	}

	rowNums, rowIssues := work.typeIssues(AxisRow, opts.RowType, dims.Rows, opts)
	res.Issues.Extend(rowIssues)
	colNums, colIssues := work.typeIssues(AxisCol, opts.ColType, dims.Cols, opts)
	res.Issues.Extend(colIssues)
	if opts.RowStandardize {
		res.Issues.Extend(work.standardizeIssues(AxisRow, rowNums, opts.StandardizeTargets, dims.Rows))
	}
	if opts.ColStandardize {
		res.Issues.Extend(work.standardizeIssues(AxisCol, colNums, opts.StandardizeTargets, dims.Cols))
	}

	if opts.Relation != nil {
		res.Issues.Add(work.relationIssue(dims, opts.Relation))
	}
	return res
}

func (f *File) preprocess(opts ContentOptions) (*File, *Issue) {
	name := f.Name()
	if opts.NewName != "" {
		name = filepath.Base(opts.NewName)
	}
	dst, err := filepath.Abs(filepath.Join(opts.OutDir, name))
	if err != nil {
		return nil, f.ctx.Fault(compFile, "preprocess", err)
	}
	out, err := f.table.Normalize(dst, tabular.NormalizeOptions{KeepSpace: opts.KeepSpace})
	if err != nil {
		var fieldErr *tabular.FieldCountError
		if errors.As(err, &fieldErr) {
			return nil, f.issue(KindStructural, "field_count", Fields{
				"Expected": fieldErr.Expected,
				"Actual":   fieldErr.Actual,
				"Row":      fieldErr.Row,
				"Sep":      sepLabel(f.table.Sep),
			})
		}
		return nil, f.ctx.Fault(compFile, "preprocess", err)
	}
	return &File{ctx: f.ctx, table: out, read: f.read}, nil
}

func (f *File) structureIssues(opts ContentOptions, dims tabular.Dimensions) Issues {
	var issues Issues
	if opts.CheckSeparators {
		err := f.table.Lines(func(row int, line string) bool {
			if problems := separatorProblems(line, f.table.Sep); len(problems) > 0 {
				issues.Add(f.issue(KindStructural, "sep_row", Fields{"Row": row, "Problems": problems}))
			}
			return true
		})
		if err != nil {
			issues.Add(f.ctx.Fault(compFile, "line_sep", err))
		}
	}
	if opts.CheckHeader {
		header, ok, err := f.table.Row(1, opts.Read)
		switch {
		case err != nil:
			issues.Add(f.ctx.Fault(compFile, "header", err))
		case ok && len(header) < dims.Cols:
			issues.Add(f.issue(KindStructural, "header_short", Fields{"Actual": len(header), "Expected": dims.Cols}))
		}
	}
	if opts.CheckDuplicateLines {
		issues.Add(f.DuplicateLines())
	}
	return issues
}

// dimensionIssues counts rows by the first column and columns by the first row.
func (f *File) dimensionIssues(opts ContentOptions) Issues {
	var issues Issues
	if rule, ok := opts.Rows.rule(); ok {
		col, issue := f.extract(AxisCol, 1)
		if issue != nil {
			return Issues{issue}
		}
		if detail := NewList(f.ctx.Bare(), col, WithNounRef(catalog.R(compCommon, "row"))).Length(rule); detail != nil {
			key := "row_range"
			if rule.Exact != nil {
				key = "row_count"
			}
			issues.Add(f.issue(KindStructural, key, Fields{"Detail": detail}))
		}
	}
	if rule, ok := opts.Cols.rule(); ok {
		row, issue := f.extract(AxisRow, 1)
		if issue != nil {
			return append(issues, issue)
		}
		if detail := NewList(f.ctx.Bare(), row, WithNounRef(catalog.R(compCommon, "col"))).Length(rule); detail != nil {
			key := "col_range"
			if rule.Exact != nil {
				key = "col_count"
			}
			issues.Add(f.issue(KindStructural, key, Fields{"Detail": detail}))
		}
	}
	return issues
}

func (f *File) detail(axis Axis, index int, detail *Issue) *Issue {
	if detail == nil {
		return nil
	}
	return f.issue(detail.Kind, string(axis)+"_detail", Fields{"Index": index, "Detail": detail})
}

func (f *File) lineContentIssues(axis Axis, rule LineContentRule, n int, opts ContentOptions) Issues {
	if !rule.Enabled {
		return nil
	}
	var issues Issues
	for _, index := range rule.Targets.Resolve(n) {
		items, issue := f.extract(axis, index)
		if issue != nil {
			issues.Add(issue)
			continue
		}
		list := NewList(f.ctx.Bare(), items)
		if rule.Length != nil {
			issues.Add(f.detail(axis, index, list.Length(*rule.Length)))
		}
		if rule.Duplicates {
			issues.Add(f.detail(axis, index, list.Duplicates()))
		}
		if rule.Banned && opts.BanList != nil {
			issues.Add(f.detail(axis, index, list.Banned(opts.BanList)))
		}
		if rule.Missing {
			issues.Add(f.detail(axis, index, list.Missing(opts.NAMarkers)))
		}
	}
	return issues
}

// typeIssues coerces every target and returns the numeric values of the
// targets that coerced to a numeric type, keyed by index.
func (f *File) typeIssues(axis Axis, rule TypeRule, n int, opts ContentOptions) (map[int][]float64, Issues) {
	if !rule.Enabled {
		return nil, nil
	}
	vt := opts.ValueType
	if vt == "" {
		vt = TypeFloat
	}
	numeric := make(map[int][]float64)
	var issues Issues
	for _, index := range rule.Targets.Resolve(n) {
		items, issue := f.extract(axis, index)
		if issue != nil {
			issues.Add(issue)
			continue
		}
		list := NewList(f.ctx.Bare(), items, WithoutFirst(opts.DropFirst))
		coerced, issue := list.Coerce(vt)
		if issue != nil {
			issues.Add(f.detail(axis, index, issue))
			continue
		}
		if !vt.Numeric() {
			continue
		}
		numeric[index] = coerced.Floats
		nums := list.Numbers(coerced.Floats)
		if rule.Range != nil {
			issues.Add(f.detail(axis, index, nums.Range(*rule.Range)))
		}
		if rule.BanNumbers && opts.BanNumbers != nil {
			issues.Add(f.detail(axis, index, nums.Banned(opts.BanNumbers)))
		}
	}
	return numeric, issues
}

func (f *File) standardizeIssues(axis Axis, numeric map[int][]float64, targets *Selection, n int) Issues {
	if len(numeric) == 0 {
		return nil
	}
	var indices []int
	if targets == nil {
		for index := range numeric {
			indices = append(indices, index)
		}
		slices.Sort(indices)
	} else {
		indices = targets.Resolve(n)
	}
	var issues Issues
	for _, index := range indices {
		values, ok := numeric[index]
		if !ok {
			continue
		}
		if NewNumbers(f.ctx.Bare(), values).Standardizable() != nil {
			issues.Add(f.issue(KindContent, string(axis)+"_not_standardizable", Fields{"Index": index}))
		}
	}
	return issues
}
