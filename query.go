package scoutelastic

import (
	"context"
	"reflect"

	"github.com/NMXDiffusion/scoutelastic/internal/domain/query"
)

// Direction is a sort order.
type Direction string

// Sort directions.
const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// SearchFunc replaces the engine's own search call. It receives the
// client handle, the raw free-text term and the assembled request body;
// its return value is passed through verbatim.
type SearchFunc func(ctx context.Context, client *Client, term string, body map[string]any) (*Result, error)

// Loader fetches the records matching the given keys. The order of the
// returned slice is not trusted; records are re-sorted to the engine's
// relevance order by the caller.
type Loader func(ctx context.Context, keys []string) ([]Searchable, error)

// Builder is a fluent, declarative search query. Construction errors
// are collected and surfaced when the query executes.
type Builder struct {
	model    Searchable
	term     string
	filters  []query.Condition
	sorts    []query.Sort
	limit    int
	offset   int
	callback SearchFunc
	err      error
}

// NewQuery starts building a search query.
func NewQuery() *Builder {
	return &Builder{}
}

// For binds the query to a record type prototype. Its declared
// searchable field list, if any, restricts the free-text match.
func (b *Builder) For(model Searchable) *Builder {
	b.model = model
	return b
}

// Term sets the free-text term. An empty term means match-all.
func (b *Builder) Term(s string) *Builder {
	b.term = s
	return b
}

// Where adds an equality filter clause. A slice value is promoted to a
// multi-value in-list clause.
func (b *Builder) Where(field string, value any) *Builder {
	if value != nil {
		rv := reflect.ValueOf(value)
		if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
			vals := make([]any, rv.Len())
			for i := range vals {
				vals[i] = rv.Index(i).Interface()
			}
			return b.WhereIn(field, vals...)
		}
	}

	c, err := query.NewMatch(field, value)
	if err != nil {
		return b.fail(err)
	}
	b.filters = append(b.filters, c)
	return b
}

// WhereIn adds a membership filter clause.
func (b *Builder) WhereIn(field string, values ...any) *Builder {
	c, err := query.NewIn(field, values)
	if err != nil {
		return b.fail(err)
	}
	b.filters = append(b.filters, c)
	return b
}

// OrderBy adds a sort clause.
func (b *Builder) OrderBy(field string, dir Direction) *Builder {
	s, err := query.NewSort(field, query.Direction(dir))
	if err != nil {
		return b.fail(err)
	}
	b.sorts = append(b.sorts, s)
	return b
}

// Take caps the number of results.
func (b *Builder) Take(n int) *Builder {
	b.limit = n
	return b
}

// From sets the pagination offset.
func (b *Builder) From(n int) *Builder {
	b.offset = n
	return b
}

// Callback installs an override that bypasses the connector's own
// engine call entirely.
func (b *Builder) Callback(fn SearchFunc) *Builder {
	b.callback = fn
	return b
}

// build resolves the builder into an immutable domain query.
func (b *Builder) build() (query.Query, error) {
	if b.err != nil {
		return query.Query{}, b.err
	}
	return query.New(b.term, b.filters, b.sorts, b.limit, b.offset)
}

// fields returns the explicit searchable field list of the bound record
// type, or nil.
func (b *Builder) fields() []string {
	if b.model == nil {
		return nil
	}
	return declaredFields(b.model)
}

// fail records the first construction error.
func (b *Builder) fail(err error) *Builder {
	if b.err == nil {
		b.err = err
	}
	return b
}
