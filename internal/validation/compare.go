package validation

// CompareOptions selects the comparison mode of List.Compare.
type CompareOptions struct {
	// OrderStrict compares position by position instead of as sets.
	OrderStrict bool
	// SubsetOnly only asks whether the list is contained in the other one.
	SubsetOnly bool
}

// Compare compares the list with other.
//
// Unordered, it reports values missing from either side, or with SubsetOnly
// only the values missing from other. Ordered, it reports the list's values
// at mismatching positions, up to the shorter length. A length difference
// fails on its own, even when the shorter list is a matching prefix of the
// longer one; with SubsetOnly only an excess on this side does.
func (l *List) Compare(other []string, opts CompareOptions) *Issue {
	l.ctx.Trace(compList, "compare")
	if opts.OrderStrict {
		return l.compareOrdered(other, opts.SubsetOnly)
	}

	left, right := distinct(l.items), distinct(other)
	inLeft := make(map[string]bool, len(left))
	for _, v := range left {
		inLeft[v] = true
	}
	inRight := make(map[string]bool, len(right))
	for _, v := range right {
		inRight[v] = true
	}
	var onlyLeft, onlyRight []string
	for _, v := range left {
		if !inRight[v] {
			onlyLeft = append(onlyLeft, v)
		}
	}
	for _, v := range right {
		if !inLeft[v] {
			onlyRight = append(onlyRight, v)
		}
	}

	if opts.SubsetOnly {
		if len(onlyLeft) == 0 {
			return nil
		}
		return l.ctx.NewIssue(KindContent, compList, "compare_extra", Fields{"Noun": l.noun, "Values": onlyLeft})
	}
	if len(onlyLeft) == 0 && len(onlyRight) == 0 {
		return nil
	}
	return l.ctx.NewIssue(KindContent, compList, "compare_diff", Fields{
		"Noun": l.noun, "Left": onlyLeft, "Right": onlyRight,
	})
}

func (l *List) compareOrdered(other []string, subset bool) *Issue {
	var noteKey string
	switch {
	case subset && len(l.items) > len(other):
		noteKey = "compare_excess"
	case !subset && len(l.items) != len(other):
		noteKey = "compare_length"
	}

	n := min(len(l.items), len(other))
	var mismatched []string
	for i := 0; i < n; i++ {
		if l.items[i] != other[i] {
			mismatched = append(mismatched, l.items[i])
		}
	}

	fields := Fields{"Noun": l.noun, "Left": len(l.items), "Right": len(other)}
	if len(mismatched) == 0 {
		if noteKey == "" {
			return nil
		}
		return l.ctx.NewIssue(KindContent, compList, noteKey, fields)
	}
	fields["Values"] = mismatched
	fields["Note"] = ""
	if noteKey != "" {
		fields["Note"] = &Issue{Kind: KindContent, Component: compList, Key: noteKey + "_note", Fields: Fields{"Noun": l.noun}}
	}
	return l.ctx.NewIssue(KindContent, compList, "compare_order", fields)
}
