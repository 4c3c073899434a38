package validation

import "github.com/jonathan/tabcheck/internal/catalog"

// Numbers checks an already coerced numeric sequence. Failures report the
// 1-based positions of offending elements rather than their values.
type Numbers struct {
	ctx    Context
	values []float64
	noun   any
}

// NewNumbers builds a numeric sequence checker.
func NewNumbers(ctx Context, values []float64) *Numbers {
	return &Numbers{ctx: ctx, values: values, noun: catalog.R(compCommon, "number")}
}

// Range reports the positions of values outside r.
func (n *Numbers) Range(r Range) *Issue {
	n.ctx.Trace(compList, "num_range")
	var idx []int
	for i, v := range n.values {
		if !r.Contains(v) {
			idx = append(idx, i+1)
		}
	}
	if len(idx) == 0 {
		return nil
	}
	return n.ctx.NewIssue(KindValue, compList, "num_out_of_range", Fields{
		"Min": r.Min, "Max": r.Max, "Indices": idx, "Noun": n.noun,
	})
}

// Banned reports the positions of values equal to a banned number.
func (n *Numbers) Banned(ban []float64) *Issue {
	n.ctx.Trace(compList, "num_banned")
	if len(ban) == 0 {
		return nil
	}
	banned := make(map[float64]bool, len(ban))
	for _, b := range ban {
		banned[b] = true
	}
	var idx []int
	for i, v := range n.values {
		if banned[v] {
			idx = append(idx, i+1)
		}
	}
	if len(idx) == 0 {
		return nil
	}
	return n.ctx.NewIssue(KindValue, compList, "num_banned", Fields{
		"Banned": ban, "Indices": idx, "Noun": n.noun,
	})
}

// Standardizable reports a sequence whose values are all equal.
func (n *Numbers) Standardizable() *Issue {
	n.ctx.Trace(compList, "standardizable")
	seen := make(map[float64]bool)
	for _, v := range n.values {
		seen[v] = true
	}
	if len(seen) != 1 {
		return nil
	}
	return n.ctx.NewIssue(KindContent, compList, "not_standardizable", Fields{"Noun": n.noun})
}
