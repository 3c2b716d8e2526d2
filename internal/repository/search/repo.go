// Package search builds the structured query body and executes it
// against the engine store.
package search

import (
	"context"
	"fmt"

	"github.com/NMXDiffusion/scoutelastic/internal/db"
	"github.com/NMXDiffusion/scoutelastic/internal/domain/query"
)

// store is the consumer interface for search operations (ISP).
type store interface {
	Search(ctx context.Context, index string, body map[string]any) (*db.SearchResult, error)
}

// Repo translates declarative queries into engine request bodies.
type Repo struct {
	store store
}

// New creates a search repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Search executes q against the given index. fields, when non-empty,
// restricts the free-text match to exactly those field names.
func (r *Repo) Search(ctx context.Context, index string, q *query.Query, fields []string) (*db.SearchResult, error) {
	sr, err := r.store.Search(ctx, index, BuildBody(q, fields))
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", index, err)
	}
	return sr, nil
}

// BuildBody assembles the boolean query body. Exported so the
// override-callback path can hand the assembled body to the caller
// without issuing the engine call.
//
// Shape: query.bool.filter is always present (empty slice when the
// query has no filter clauses); query.bool.must carries a fuzzy,
// all-terms-required multi-field match only when a term is set, so an
// absent must yields match-all semantics. sort, size and from are
// emitted only when the query sets them.
func BuildBody(q *query.Query, fields []string) map[string]any {
	boolQuery := map[string]any{
		"filter": buildFilters(q.Filters()),
	}

	if term := q.Term(); term != "" {
		match := map[string]any{
			"query":     term,
			"fuzziness": "auto",
			"operator":  "and",
		}
		if len(fields) > 0 {
			match["fields"] = fields
		}
		boolQuery["must"] = map[string]any{"multi_match": match}
	}

	body := map[string]any{
		"query": map[string]any{"bool": boolQuery},
	}
	if sorts := q.Sorts(); len(sorts) > 0 {
		body["sort"] = buildSorts(sorts)
	}
	if q.Limit() > 0 {
		body["size"] = q.Limit()
	}
	if q.Offset() > 0 {
		body["from"] = q.Offset()
	}
	return body
}

// buildFilters translates filter clauses preserving input order:
// in-list values become terms matches on the non-analyzed keyword
// variant of the field, scalars become phrase matches.
func buildFilters(conds []query.Condition) []any {
	filters := make([]any, 0, len(conds))
	for _, c := range conds {
		if c.IsList() {
			filters = append(filters, map[string]any{
				"terms": map[string]any{c.Field() + ".keyword": c.Values()},
			})
			continue
		}
		filters = append(filters, map[string]any{
			"match_phrase": map[string]any{c.Field(): c.Value()},
		})
	}
	return filters
}

func buildSorts(sorts []query.Sort) []any {
	out := make([]any, len(sorts))
	for i, s := range sorts {
		out[i] = map[string]any{s.Field(): string(s.Direction())}
	}
	return out
}
