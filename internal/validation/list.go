package validation

import (
	"regexp"
	"strings"

	"github.com/jonathan/tabcheck/internal/catalog"
)

const compList = "list"

// DefaultNAMarkers are the values treated as missing data.
var DefaultNAMarkers = []string{"", "NA", "N/A", "NULL"}

// Default character policy for list elements: start with a letter or digit,
// then letters, digits, dots, underscores and hyphens.
var (
	DefaultListAllow   = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)
	DefaultListBodyBan = regexp.MustCompile(`[^A-Za-z0-9._-]`)
	DefaultListHeadBan = regexp.MustCompile(`^[^A-Za-z0-9]`)
)

// DefaultFactor requires at least one distinct value.
var DefaultFactor = AtLeast(1)

// List checks an ordered sequence of values.
type List struct {
	ctx   Context
	items []string
	noun  any
}

// ListOption configures a List.
type ListOption func(*List)

// WithNoun names the elements in messages, e.g. "sample".
func WithNoun(noun string) ListOption {
	return func(l *List) { l.noun = noun }
}

// WithNounRef names the elements with a catalog entry.
func WithNounRef(ref catalog.Ref) ListOption {
	return func(l *List) { l.noun = ref }
}

// WithoutFirst drops the first element, typically a header cell.
func WithoutFirst(drop bool) ListOption {
	return func(l *List) {
		if drop && len(l.items) > 0 {
			l.items = l.items[1:]
		}
	}
}

// NewList builds a list checker. The items are copied.
func NewList(ctx Context, items []string, opts ...ListOption) *List {
	l := &List{
		ctx:   ctx,
		items: append([]string(nil), items...),
		noun:  catalog.R(compCommon, "element"),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Len returns the number of elements checked.
func (l *List) Len() int {
	return len(l.items)
}

// Items returns a copy of the elements checked.
func (l *List) Items() []string {
	return append([]string(nil), l.items...)
}

// Length checks the number of elements.
func (l *List) Length(rule LengthRule) *Issue {
	l.ctx.Trace(compList, "length")
	return l.countIssue(len(l.items), rule)
}

// Range checks that the number of elements lies in [lo, hi].
func (l *List) Range(lo, hi int) *Issue {
	return l.Length(Between(lo, hi))
}

func (l *List) countIssue(n int, rule LengthRule) *Issue {
	switch rule.violation(n) {
	case "":
		return nil
	case "exact":
		return l.ctx.NewIssue(KindStructural, compList, "count_exact", Fields{
			"Actual": n, "Expected": *rule.Exact, "Noun": l.noun,
		})
	}
	return l.ctx.NewIssue(KindStructural, compList, "count_range", Fields{
		"Actual": n, "Min": rule.Min, "Max": countBound(rule.UpperBound()), "Noun": l.noun,
	})
}

// Duplicates reports the values, compared after trimming, that occur more
// than once. Values are listed once each in order of first appearance.
func (l *List) Duplicates() *Issue {
	l.ctx.Trace(compList, "duplicates")
	counts := make(map[string]int, len(l.items))
	var order []string
	for _, item := range l.items {
		v := strings.TrimSpace(item)
		if counts[v] == 0 {
			order = append(order, v)
		}
		counts[v]++
	}
	var dup []string
	for _, v := range order {
		if counts[v] > 1 {
			dup = append(dup, v)
		}
	}
	if len(dup) == 0 {
		return nil
	}
	return l.ctx.NewIssue(KindContent, compList, "duplicates", Fields{"Noun": l.noun, "Values": dup})
}

// Banned reports the elements that appear in ban.
func (l *List) Banned(ban []string) *Issue {
	l.ctx.Trace(compList, "banned")
	if hit := l.intersect(ban); len(hit) > 0 {
		return l.ctx.NewIssue(KindContent, compList, "banned", Fields{"Noun": l.noun, "Values": hit})
	}
	return nil
}

// Missing reports elements equal to a missing-data marker. A nil markers
// slice uses DefaultNAMarkers.
func (l *List) Missing(markers []string) *Issue {
	l.ctx.Trace(compList, "missing")
	if markers == nil {
		markers = DefaultNAMarkers
	}
	if hit := l.intersect(markers); len(hit) > 0 {
		return l.ctx.NewIssue(KindContent, compList, "missing", Fields{"Noun": l.noun, "Values": hit})
	}
	return nil
}

func (l *List) intersect(set []string) []string {
	want := make(map[string]bool, len(set))
	for _, s := range set {
		want[s] = true
	}
	seen := make(map[string]bool)
	var hit []string
	for _, item := range l.items {
		if want[item] && !seen[item] {
			seen[item] = true
			hit = append(hit, item)
		}
	}
	return hit
}

// FormatAll applies the string format check to every element and reports the
// elements that fail.
func (l *List) FormatAll(rule FormatRule) *Issue {
	l.ctx.Trace(compList, "format")
	rule = rule.withDefaults(DefaultListAllow, DefaultListBodyBan, DefaultListHeadBan)
	var bad []string
	for _, item := range l.items {
		if len(formatIssues(l.ctx, item, item, rule)) > 0 {
			bad = append(bad, item)
		}
	}
	if len(bad) == 0 {
		return nil
	}
	return l.ctx.NewIssue(KindValue, compList, "format", Fields{"Noun": l.noun, "Values": bad})
}

// Distinct returns the distinct elements in order of first appearance.
func (l *List) Distinct() []string {
	return distinct(l.items)
}

func distinct(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if !seen[item] {
			seen[item] = true
			out = append(out, item)
		}
	}
	return out
}

// Factor checks the number of distinct values against rule.
func (l *List) Factor(rule LengthRule) *Issue {
	l.ctx.Trace(compList, "factor")
	return l.countIssue(len(distinct(l.items)), rule)
}

// Standardizable reports a constant sequence, which cannot be standardized.
func (l *List) Standardizable() *Issue {
	l.ctx.Trace(compList, "standardizable")
	if l.Factor(Exactly(1)) != nil {
		return nil
	}
	return l.ctx.NewIssue(KindContent, compList, "not_standardizable", Fields{"Noun": l.noun})
}

// Numbers returns a numeric checker over values that shares the list's
// context and noun, typically built from a successful Coerce.
func (l *List) Numbers(values []float64) *Numbers {
	return &Numbers{ctx: l.ctx, values: values, noun: l.noun}
}
