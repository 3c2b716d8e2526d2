// Package query holds the immutable declarative search query: free-text
// term, ordered filter clauses, ordered sort clauses and pagination
// bounds. Execution mode (standard vs override callback) is resolved by
// the caller of the engine client, never here.
package query

import "fmt"

// Query is a validated, immutable search description.
type Query struct {
	term    string
	filters []Condition
	sorts   []Sort
	limit   int
	offset  int
}

// New validates and creates a Query. An empty term means match-all.
// Zero limit means no result-size cap.
func New(term string, filters []Condition, sorts []Sort, limit, offset int) (Query, error) {
	if limit < 0 {
		return Query{}, fmt.Errorf("limit must not be negative, got %d", limit)
	}
	if offset < 0 {
		return Query{}, fmt.Errorf("offset must not be negative, got %d", offset)
	}
	return Query{
		term:    term,
		filters: filters,
		sorts:   sorts,
		limit:   limit,
		offset:  offset,
	}, nil
}

// Term returns the free-text term ("" for match-all).
func (q *Query) Term() string { return q.term }

// Filters returns the ordered filter clauses.
func (q *Query) Filters() []Condition { return q.filters }

// Sorts returns the ordered sort clauses.
func (q *Query) Sorts() []Sort { return q.sorts }

// Limit returns the result-size cap (0 = unset).
func (q *Query) Limit() int { return q.limit }

// Offset returns the pagination offset (0 = unset).
func (q *Query) Offset() int { return q.offset }

// WithPage returns a copy with pagination bounds replacing limit and
// offset: size perPage, zero-based offset (page × perPage) − perPage.
func (q *Query) WithPage(perPage, page int) Query {
	paged := *q
	paged.limit = perPage
	paged.offset = page*perPage - perPage
	return paged
}
