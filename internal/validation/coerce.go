package validation

import (
	"strconv"
	"strings"

	"github.com/jonathan/tabcheck/internal/catalog"
)

// ValueType is a target type for list coercion.
type ValueType string

const (
	TypeFloat  ValueType = "float"
	TypeInt    ValueType = "int"
	TypeString ValueType = "str"
	TypeBool   ValueType = "bool"
)

// ParseValueType maps a configured type name to a ValueType.
func ParseValueType(s string) (ValueType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "float", "number":
		return TypeFloat, nil
	case "int", "integer":
		return TypeInt, nil
	case "str", "string":
		return TypeString, nil
	case "bool", "boolean":
		return TypeBool, nil
	}
	return "", &ConfigError{Option: "value type", Value: s, Message: "want float, int, str or bool"}
}

// Numeric reports whether coerced values can be range checked.
func (t ValueType) Numeric() bool {
	return t == TypeFloat || t == TypeInt
}

func (t ValueType) label() catalog.Ref {
	switch t {
	case TypeFloat:
		return catalog.R(compCommon, "number")
	case TypeInt:
		return catalog.R(compCommon, "integer")
	case TypeBool:
		return catalog.R(compCommon, "boolean")
	}
	return catalog.R(compCommon, "text")
}

// Coerced holds the result of a successful coercion. Exactly the slice for
// Type is populated; Floats is also populated for TypeInt.
type Coerced struct {
	Type    ValueType
	Strings []string
	Floats  []float64
	Ints    []int64
	Bools   []bool
}

// Len returns the number of coerced values.
func (c *Coerced) Len() int {
	switch c.Type {
	case TypeFloat:
		return len(c.Floats)
	case TypeInt:
		return len(c.Ints)
	case TypeBool:
		return len(c.Bools)
	}
	return len(c.Strings)
}

type converter func(c *Coerced, s string) bool

var converters = map[ValueType]converter{
	TypeFloat: func(c *Coerced, s string) bool {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return false
		}
		c.Floats = append(c.Floats, f)
		return true
	},
	TypeInt: func(c *Coerced, s string) bool {
		n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return false
		}
		c.Ints = append(c.Ints, n)
		c.Floats = append(c.Floats, float64(n))
		return true
	},
	TypeString: func(c *Coerced, s string) bool {
		c.Strings = append(c.Strings, s)
		return true
	},
	TypeBool: func(c *Coerced, s string) bool {
		b, err := strconv.ParseBool(strings.TrimSpace(s))
		if err != nil {
			return false
		}
		c.Bools = append(c.Bools, b)
		return true
	},
}

// Coerce converts every element to t. It returns either the converted values
// or an issue naming the first element that does not convert, never both.
func (l *List) Coerce(t ValueType) (*Coerced, *Issue) {
	l.ctx.Trace(compList, "coerce")
	convert, ok := converters[t]
	if !ok {
		return nil, l.ctx.NewIssue(KindConfig, compList, "coerce_failed", nil)
	}
	out := &Coerced{Type: t}
	for _, item := range l.items {
		if !convert(out, item) {
			return nil, l.ctx.NewIssue(KindValue, compList, "not_type", Fields{
				"Noun": l.noun, "Type": t.label(), "Value": item,
			})
		}
	}
	return out, nil
}
