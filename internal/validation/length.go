package validation

import "math"

// NoLimit is an unbounded upper limit.
const NoLimit = math.MaxInt

// LengthRule constrains a length or count. When Exact is set it takes
// precedence over the range. A Max of zero or less means no upper limit.
type LengthRule struct {
	Exact *int `json:"exact,omitempty"`
	Min   int  `json:"min,omitempty"`
	Max   int  `json:"max,omitempty"`
}

// Exactly builds a rule requiring exactly n.
func Exactly(n int) LengthRule {
	return LengthRule{Exact: &n}
}

// Between builds an inclusive range rule.
func Between(lo, hi int) LengthRule {
	return LengthRule{Min: lo, Max: hi}
}

// AtLeast builds a rule with only a lower bound.
func AtLeast(lo int) LengthRule {
	return LengthRule{Min: lo, Max: NoLimit}
}

// DefaultStrLength is the default bound for a single string.
var DefaultStrLength = Between(1, 20)

// UpperBound returns Max, normalizing unbounded values to NoLimit.
func (r LengthRule) UpperBound() int {
	if r.Max <= 0 {
		return NoLimit
	}
	return r.Max
}

// violation reports which bound n breaks: "exact", "over", "under" or "".
func (r LengthRule) violation(n int) string {
	if r.Exact != nil {
		if n != *r.Exact {
			return "exact"
		}
		return ""
	}
	if n < r.Min {
		return "under"
	}
	if n > r.UpperBound() {
		return "over"
	}
	return ""
}
