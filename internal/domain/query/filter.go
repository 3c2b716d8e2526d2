package query

import "fmt"

// Condition is a single filter clause: either a scalar phrase match or
// a multi-value in-list match. List-valued clauses translate to exact
// matches on the non-analyzed variant of the field; scalar clauses to
// phrase matches on the analyzed field.
type Condition struct {
	field  string
	value  any
	values []any
}

// NewMatch creates a scalar phrase-match condition. A nil value is
// rejected here so the mistake surfaces at build time instead of as an
// engine error on a null phrase match.
func NewMatch(field string, value any) (Condition, error) {
	if field == "" {
		return Condition{}, fmt.Errorf("filter field is required")
	}
	if value == nil {
		return Condition{}, fmt.Errorf("filter value is required for field %q", field)
	}
	return Condition{field: field, value: value}, nil
}

// NewIn creates a multi-value in-list condition.
func NewIn(field string, values []any) (Condition, error) {
	if field == "" {
		return Condition{}, fmt.Errorf("filter field is required")
	}
	if len(values) == 0 {
		return Condition{}, fmt.Errorf("in-list values are required for field %q", field)
	}
	return Condition{field: field, values: values}, nil
}

// Field returns the field name.
func (c Condition) Field() string { return c.field }

// Value returns the scalar match value.
func (c Condition) Value() any { return c.value }

// Values returns the in-list values.
func (c Condition) Values() []any { return c.values }

// IsList reports whether this is an in-list condition.
func (c Condition) IsList() bool { return c.values != nil }
