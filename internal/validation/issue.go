// Package validation checks strings, numbers, lists and delimited files against
// configurable constraints and renders the failures as localized messages.
package validation

import (
	"math"
	"strconv"
	"strings"

	"github.com/jonathan/tabcheck/internal/catalog"
)

// Kind classifies an Issue.
type Kind string

const (
	// KindValue is a malformed or out-of-range scalar.
	KindValue Kind = "value"
	// KindStructural is a wrong dimension, missing file or bad separator layout.
	KindStructural Kind = "structural"
	// KindContent is a duplicate, banned or missing element.
	KindContent Kind = "content"
	// KindConfig is a missing catalog entry or unrecognized option value.
	KindConfig Kind = "configuration"
	// KindInternal is an unexpected fault inside a check.
	KindInternal Kind = "internal"
)

// Fields carries the structured data a message template is rendered from.
// Values may be string, int, int64, float64, bool, []string, []int, []float64,
// catalog.Ref, []catalog.Ref, *Issue or Issues.
type Fields map[string]any

// Issue is one failed check. It keeps enough structure to be rendered in any
// catalog language; nil means the check passed.
type Issue struct {
	Kind      Kind
	Component string
	Key       string
	Fields    Fields
	Prefix    string
}

// Issues is an ordered batch of failures. An empty batch means success.
type Issues []*Issue

// OK reports whether the batch holds no failures.
func (is Issues) OK() bool {
	return len(is) == 0
}

// Add appends the non-nil issues.
func (is *Issues) Add(issues ...*Issue) {
	for _, i := range issues {
		if i != nil {
			*is = append(*is, i)
		}
	}
}

// Extend appends another batch.
func (is *Issues) Extend(other Issues) {
	is.Add(other...)
}

// HasKind reports whether any issue in the batch has the given kind.
func (is Issues) HasKind(kind Kind) bool {
	for _, i := range is {
		if i.Kind == kind {
			return true
		}
	}
	return false
}

// renderer turns issues into text for one language.
type renderer struct {
	cat  *catalog.Catalog
	lang catalog.Language
}

func (r renderer) issue(i *Issue) string {
	if i == nil {
		return ""
	}
	template, err := r.cat.Get(r.lang, i.Component, i.Key)
	if err != nil {
		template = i.Component + "." + i.Key
	}
	data := make(map[string]string, len(i.Fields))
	for name, value := range i.Fields {
		data[name] = r.value(value)
	}
	return i.Prefix + catalog.Format(template, data)
}

func (r renderer) ref(ref catalog.Ref) string {
	msg, err := r.cat.Get(r.lang, ref.Component, ref.Key)
	if err != nil {
		return ref.Component + "." + ref.Key
	}
	return msg
}

func (r renderer) value(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return r.number(x)
	case bool:
		return strconv.FormatBool(x)
	case []string:
		return joinQuoted(x)
	case []int:
		items := make([]string, len(x))
		for n, item := range x {
			items[n] = strconv.Itoa(item)
		}
		return joinQuoted(items)
	case []float64:
		items := make([]string, len(x))
		for n, item := range x {
			items[n] = r.number(item)
		}
		return joinQuoted(items)
	case catalog.Ref:
		return r.ref(x)
	case []catalog.Ref:
		parts := make([]string, len(x))
		for n, ref := range x {
			parts[n] = r.ref(ref)
		}
		return strings.Join(parts, "; ")
	case *Issue:
		return r.issue(x)
	case Issues:
		parts := make([]string, 0, len(x))
		for _, i := range x {
			parts = append(parts, r.issue(i))
		}
		return strings.Join(parts, "; ")
	}
	return ""
}

func (r renderer) number(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return r.ref(catalog.R(compCommon, "pos_infinity"))
	case math.IsInf(f, -1):
		return r.ref(catalog.R(compCommon, "neg_infinity"))
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// joinQuoted renders items as ` "a", "b"`.
func joinQuoted(items []string) string {
	quoted := make([]string, len(items))
	for n, item := range items {
		quoted[n] = ` "` + item + `"`
	}
	return strings.Join(quoted, ",")
}

// countBound renders NoLimit as infinity.
func countBound(n int) any {
	if n == NoLimit {
		return catalog.R(compCommon, "infinity")
	}
	return n
}
