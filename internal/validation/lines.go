package validation

import (
	"errors"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/tabcheck/internal/tabular"
)

// Line returns the raw text of row n.
func (f *File) Line(n int) (string, bool, error) {
	f.ctx.Trace(compFile, "line")
	return f.table.Line(n)
}

// BlankLine flags a line holding only whitespace.
func (f *File) BlankLine(line string) *Issue {
	f.ctx.Trace(compFile, "blank_line")
	if strings.TrimSpace(line) == "" {
		return f.ctx.NewIssue(KindStructural, compFile, "blank_line", nil)
	}
	return nil
}

// SeparatorHygiene checks a line for a leading separator, doubled
// separators, whitespace next to a separator and trailing whitespace. The
// separator itself never counts as whitespace.
func (f *File) SeparatorHygiene(line string) *Issue {
	f.ctx.Trace(compFile, "separator_hygiene")
	problems := separatorProblems(line, f.table.Sep)
	if len(problems) == 0 {
		return nil
	}
	return f.ctx.NewIssue(KindStructural, compFile, "line_sep", Fields{"Problems": problems})
}

func separatorProblems(line, sep string) Issues {
	label := sepLabel(sep)
	note := func(key string) *Issue {
		return &Issue{Kind: KindStructural, Component: compFile, Key: key, Fields: Fields{"Sep": label}}
	}
	var out Issues
	if strings.HasPrefix(line, sep) {
		out.Add(note("sep_head"))
	}
	if strings.Contains(line, sep+sep) {
		out.Add(note("sep_double"))
	}
	cells := strings.Split(line, sep)
	before, after := false, false
	for i, cell := range cells {
		if i < len(cells)-1 && endsWithSpace(cell) {
			before = true
		}
		if i > 0 && startsWithSpace(cell) {
			after = true
		}
	}
	if before {
		out.Add(note("sep_blank_before"))
	}
	if after {
		out.Add(note("sep_blank_after"))
	}
	if endsWithSpace(line) {
		out.Add(note("sep_blank_tail"))
	}
	return out
}

func startsWithSpace(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return s != "" && unicode.IsSpace(r)
}

func endsWithSpace(s string) bool {
	r, _ := utf8.DecodeLastRuneInString(s)
	return s != "" && unicode.IsSpace(r)
}

// DuplicateLines reports the row numbers of lines identical to an earlier one.
func (f *File) DuplicateLines() *Issue {
	f.ctx.Trace(compFile, "duplicate_lines")
	seen := make(map[string]bool)
	var rows []int
	err := f.table.Lines(func(row int, line string) bool {
		if seen[line] {
			rows = append(rows, row)
		}
		seen[line] = true
		return true
	})
	if err != nil {
		return f.ctx.Fault(compFile, "line_dup", err)
	}
	if len(rows) == 0 {
		return nil
	}
	return f.issue(KindContent, "line_dup", Fields{"Rows": rows})
}

// CheckDimensions checks exact row and column counts. Nil skips a check.
func (f *File) CheckDimensions(rows, cols *int) Issues {
	f.ctx.Trace(compFile, "check_dimensions")
	d, err := f.table.Dimensions()
	if err != nil {
		return Issues{f.ctx.Fault(compFile, "check_dim", err)}
	}
	var issues Issues
	if rows != nil && d.Rows != *rows {
		issues.Add(f.issue(KindStructural, "row_count_exact", Fields{"Expected": *rows, "Actual": d.Rows}))
	}
	if cols != nil && d.Cols != *cols {
		issues.Add(f.issue(KindStructural, "col_count_exact", Fields{"Expected": *cols, "Actual": d.Cols}))
	}
	return issues
}

// Relation constrains the row count relative to the column count.
type Relation struct {
	RowGreater bool `json:"row_greater"`
	OrEqual    bool `json:"or_equal"`
}

// CompareDimensions checks the row count against the column count. With a
// nil relation it always returns an informational issue describing which
// dimension is larger.
func (f *File) CompareDimensions(rel *Relation) *Issue {
	f.ctx.Trace(compFile, "compare_dimensions")
	d, err := f.table.Dimensions()
	if err != nil {
		return f.ctx.Fault(compFile, "com_dim", err)
	}
	return f.relationIssue(d, rel)
}

func (f *File) relationIssue(d tabular.Dimensions, rel *Relation) *Issue {
	fields := Fields{"Rows": d.Rows, "Cols": d.Cols}
	if rel == nil {
		switch {
		case d.Rows > d.Cols:
			return f.issue(KindStructural, "more_rows", fields)
		case d.Rows < d.Cols:
			return f.issue(KindStructural, "more_cols", fields)
		}
		return f.issue(KindStructural, "same_dims", fields)
	}
	switch {
	case rel.RowGreater && rel.OrEqual && d.Rows < d.Cols:
		return f.issue(KindStructural, "rows_ge_cols", fields)
	case rel.RowGreater && !rel.OrEqual && d.Rows <= d.Cols:
		return f.issue(KindStructural, "rows_gt_cols", fields)
	case !rel.RowGreater && rel.OrEqual && d.Rows > d.Cols:
		return f.issue(KindStructural, "rows_le_cols", fields)
	case !rel.RowGreater && !rel.OrEqual && d.Rows >= d.Cols:
		return f.issue(KindStructural, "rows_lt_cols", fields)
	}
	return nil
}

// FixedContent is the expected content of one row or column.
type FixedContent struct {
	Index  int           `json:"index"`
	Values []string      `json:"values"`
	Span   *tabular.Span `json:"span,omitempty"`
}

// HeadingOptions names the fixed row and column to check. Nil skips one.
type HeadingOptions struct {
	Row *FixedContent
	Col *FixedContent
}

// CheckHeadings compares a row and/or a column against fixed content.
func (f *File) CheckHeadings(opts HeadingOptions) Issues {
	f.ctx.Trace(compFile, "check_headings")
	var issues Issues
	if opts.Row != nil {
		issues.Add(f.fixedIssue(AxisRow, opts.Row))
	}
	if opts.Col != nil {
		issues.Add(f.fixedIssue(AxisCol, opts.Col))
	}
	return issues
}

const maxShownTitle = 50

func (f *File) fixedIssue(axis Axis, want *FixedContent) *Issue {
	actual, issue := f.extract(axis, want.Index)
	if issue != nil {
		return issue
	}
	if tabular.Matches(actual, want.Values, want.Span) {
		return nil
	}
	fields := Fields{"Index": want.Index, "Expected": strings.Join(want.Values, ",")}
	if want.Span != nil {
		lo, hi := want.Span.Resolve(len(want.Values))
		fields["Start"], fields["End"] = lo+1, hi
		return f.issue(KindContent, string(axis)+"_fixed_span", fields)
	}
	shown := strings.Join(actual, ",")
	if utf8.RuneCountInString(shown) > maxShownTitle {
		shown = string([]rune(shown)[:45]) + " ... "
	}
	fields["Actual"] = shown
	return f.issue(KindContent, string(axis)+"_fixed", fields)
}

// extract reads row or column n, turning read failures into issues.
func (f *File) extract(axis Axis, n int) ([]string, *Issue) {
	if axis == AxisRow {
		row, ok, err := f.table.Row(n, f.read)
		if err != nil {
			return nil, f.ctx.Fault(compFile, "row", err)
		}
		if !ok {
			return nil, f.issue(KindStructural, "row_missing", Fields{"Index": n})
		}
		return row, nil
	}
	col, err := f.table.Col(n, f.read)
	if err != nil {
		var short *tabular.ShortRowError
		if errors.As(err, &short) {
			return nil, f.issue(KindStructural, "short_row", Fields{"Row": short.Row, "Index": n, "Fields": short.Fields})
		}
		return nil, f.ctx.Fault(compFile, "col", err)
	}
	return col, nil
}

// ContainsAll checks that every value appears in row and/or col. A zero
// index skips that axis.
func (f *File) ContainsAll(values []string, row, col int) Issues {
	f.ctx.Trace(compFile, "contains_all")
	var issues Issues
	for _, target := range []struct {
		axis  Axis
		index int
	}{{AxisRow, row}, {AxisCol, col}} {
		if target.index == 0 {
			continue
		}
		items, issue := f.extract(target.axis, target.index)
		if issue != nil {
			issues.Add(issue)
			continue
		}
		have := make(map[string]bool, len(items))
		for _, item := range items {
			have[item] = true
		}
		var absent []string
		for _, v := range distinct(values) {
			if !have[v] {
				absent = append(absent, v)
			}
		}
		if len(absent) > 0 {
			issues.Add(f.issue(KindContent, string(target.axis)+"_not_contains", Fields{
				"Index": target.index, "Values": absent,
			}))
		}
	}
	return issues
}

// CompareLinesOptions selects what CompareLines compares.
type CompareLinesOptions struct {
	Axis       Axis
	Index      int
	OtherAxis  Axis
	OtherIndex int
	DropFirst  bool
	Noun       string
	Compare    CompareOptions
}

// CompareLines compares one row or column of this file with one row or
// column of other, which shares this file's separator. DropFirst drops the
// leading header cell of both sides.
func (f *File) CompareLines(other string, opts CompareLinesOptions) *Issue {
	f.ctx.Trace(compFile, "compare_lines")
	if info, err := os.Stat(other); err != nil || !info.Mode().IsRegular() {
		return f.ctx.NewIssue(KindStructural, compFile, "compare_not_file", Fields{"Other": other})
	}
	opts.Axis, opts.OtherAxis = opts.Axis.orRow(), opts.OtherAxis.orRow()
	if opts.Index == 0 {
		opts.Index = 1
	}
	if opts.OtherIndex == 0 {
		opts.OtherIndex = 1
	}

	left, issue := f.extract(opts.Axis, opts.Index)
	if issue != nil {
		return issue
	}
	peer := &File{ctx: f.ctx, table: tabular.Open(other, f.table.Sep), read: f.read}
	right, issue := peer.extract(opts.OtherAxis, opts.OtherIndex)
	if issue != nil {
		return issue
	}

	if opts.DropFirst && len(right) > 0 {
		right = right[1:]
	}
	listOpts := []ListOption{WithoutFirst(opts.DropFirst)}
	if opts.Noun != "" {
		listOpts = append(listOpts, WithNoun(opts.Noun))
	} else {
		listOpts = append(listOpts, WithNounRef(sampleNoun))
	}
	detail := NewList(f.ctx.Bare(), left, listOpts...).Compare(right, opts.Compare)
	if detail == nil {
		return nil
	}
	return f.issue(KindContent, "compare_lines", Fields{
		"Axis":       opts.Axis.label(),
		"Index":      opts.Index,
		"Other":      peer.Name(),
		"OtherAxis":  opts.OtherAxis.label(),
		"OtherIndex": opts.OtherIndex,
		"Detail":     detail,
	})
}
