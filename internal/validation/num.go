package validation

import "math"

const compNum = "num"

// Range is an inclusive numeric interval. Use math.Inf for open ends.
type Range struct {
	Min float64
	Max float64
}

// AnyNumber is the unbounded range.
var AnyNumber = Range{Min: math.Inf(-1), Max: math.Inf(1)}

// Contains reports whether v lies within the bounds, inclusive.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Num checks a single number.
type Num struct {
	ctx   Context
	value float64
}

// NewNum builds a number checker.
func NewNum(ctx Context, value float64) *Num {
	return &Num{ctx: ctx, value: value}
}

// Range checks that the value lies within r, inclusive.
func (n *Num) Range(r Range) *Issue {
	n.ctx.Trace(compNum, "range")
	if r.Contains(n.value) {
		return nil
	}
	return n.ctx.NewIssue(KindValue, compNum, "out_of_range", Fields{
		"Min":   r.Min,
		"Max":   r.Max,
		"Value": n.value,
	})
}

// Banned flags the value if it equals any banned number.
func (n *Num) Banned(ban []float64) *Issue {
	n.ctx.Trace(compNum, "banned")
	var hit []float64
	for _, b := range ban {
		if b == n.value {
			hit = append(hit, b)
		}
	}
	if len(hit) == 0 {
		return nil
	}
	return n.ctx.NewIssue(KindValue, compNum, "banned", Fields{"Value": n.value, "Banned": hit})
}

// Check runs the range check and, when ban is non-nil, the banned check.
func (n *Num) Check(r Range, ban []float64) Issues {
	n.ctx.Trace(compNum, "check")
	var issues Issues
	issues.Add(n.Range(r))
	if ban != nil {
		issues.Add(n.Banned(ban))
	}
	return issues
}
