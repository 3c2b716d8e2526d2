package query

import "fmt"

// Direction is a sort order.
type Direction string

// Sort directions.
const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// IsValid reports whether the direction is a known sort order.
func (d Direction) IsValid() bool { return d == Asc || d == Desc }

// Sort is a single-field sort clause.
type Sort struct {
	field string
	dir   Direction
}

// NewSort validates and creates a sort clause.
func NewSort(field string, dir Direction) (Sort, error) {
	if field == "" {
		return Sort{}, fmt.Errorf("sort field is required")
	}
	if !dir.IsValid() {
		return Sort{}, fmt.Errorf("invalid sort direction %q for field %q", dir, field)
	}
	return Sort{field: field, dir: dir}, nil
}

// Field returns the field name.
func (s Sort) Field() string { return s.field }

// Direction returns the sort order.
func (s Sort) Direction() Direction { return s.dir }
