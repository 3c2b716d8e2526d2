package scoutelastic

import (
	"context"
	"fmt"
	"sort"

	"github.com/NMXDiffusion/scoutelastic/internal/domain/document"
	bulkrepo "github.com/NMXDiffusion/scoutelastic/internal/repository/bulk"
	searchrepo "github.com/NMXDiffusion/scoutelastic/internal/repository/search"
)

// EngineOption configures an Engine at construction.
type EngineOption func(*Engine)

// WithSoftDeletes makes the engine stamp soft-delete metadata onto
// SoftDeletable records before indexing.
func WithSoftDeletes() EngineOption {
	return func(e *Engine) { e.softDelete = true }
}

// Engine is the connector bound to one target index. It is immutable
// after construction; concurrent use is safe as long as the underlying
// client is.
type Engine struct {
	client     *Client
	index      string
	softDelete bool
	bulk       *bulkrepo.Repo
	search     *searchrepo.Repo
}

// Engine derives a connector for the given index.
func (c *Client) Engine(index string, opts ...EngineOption) *Engine {
	e := &Engine{
		client: c,
		index:  index,
		bulk:   bulkrepo.New(c.store),
		search: searchrepo.New(c.store),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Index upserts the record batch in one bulk call, preserving input
// order. Records implementing SoftDeletable get their soft-delete
// metadata pushed first when the engine has soft-deletes enabled. An
// empty batch is a no-op. Per-item failures reported by the engine are
// not retried here.
func (e *Engine) Index(ctx context.Context, records []Searchable) error {
	if len(records) == 0 {
		return nil
	}

	if e.softDelete {
		for _, r := range records {
			if sd, ok := r.(SoftDeletable); ok {
				sd.PushSoftDeleteMetadata()
			}
		}
	}

	docs := make([]bulkrepo.Doc, len(records))
	for i, r := range records {
		docs[i] = bulkrepo.Doc{
			Identity: e.identity(r),
			Payload:  document.NewPayload(r.SearchableFields(), r.SearchMetadata()),
		}
	}

	if err := e.bulk.Upsert(ctx, docs); err != nil {
		return fmt.Errorf("index: %w", err)
	}
	return nil
}

// Remove deletes the record batch in one bulk call, preserving input
// order. An empty batch is a no-op.
func (e *Engine) Remove(ctx context.Context, records []Searchable) error {
	if len(records) == 0 {
		return nil
	}

	ids := make([]document.Identity, len(records))
	for i, r := range records {
		ids[i] = e.identity(r)
	}

	if err := e.bulk.Delete(ctx, ids); err != nil {
		return fmt.Errorf("remove: %w", err)
	}
	return nil
}

// Search executes the query, or hands control to its override callback.
func (e *Engine) Search(ctx context.Context, b *Builder) (*Result, error) {
	q, err := b.build()
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	if b.callback != nil {
		body := searchrepo.BuildBody(&q, b.fields())
		res, err := b.callback(ctx, e.client, q.Term(), body)
		if err != nil {
			return nil, fmt.Errorf("search callback: %w", err)
		}
		return res, nil
	}

	sr, err := e.search.Search(ctx, e.index, &q, b.fields())
	if err != nil {
		return nil, err
	}
	return fromSearchResult(sr), nil
}

// Paginate executes the query with page bounds (1-based page number)
// and attaches the approximate page count: total hits divided by
// perPage as real division, fractional value preserved.
func (e *Engine) Paginate(ctx context.Context, b *Builder, perPage, page int) (*Result, error) {
	if perPage < 1 {
		return nil, fmt.Errorf("paginate: perPage must be at least 1, got %d", perPage)
	}
	if page < 1 {
		return nil, fmt.Errorf("paginate: page must be at least 1, got %d", page)
	}

	q, err := b.build()
	if err != nil {
		return nil, fmt.Errorf("paginate: %w", err)
	}
	paged := q.WithPage(perPage, page)

	var res *Result
	if b.callback != nil {
		body := searchrepo.BuildBody(&paged, b.fields())
		res, err = b.callback(ctx, e.client, paged.Term(), body)
		if err != nil {
			return nil, fmt.Errorf("paginate callback: %w", err)
		}
	} else {
		sr, err := e.search.Search(ctx, e.index, &paged, b.fields())
		if err != nil {
			return nil, fmt.Errorf("paginate: %w", err)
		}
		res = fromSearchResult(sr)
	}

	res.TotalPages = float64(res.Total) / float64(perPage)
	return res, nil
}

// ExtractIDs projects the hit identifiers in engine-returned order.
// Duplicates are kept if they occur.
func (e *Engine) ExtractIDs(res *Result) []string {
	ids := make([]string, len(res.Hits))
	for i, h := range res.Hits {
		ids[i] = h.ID
	}
	return ids
}

// TotalCount returns the engine-reported total-hit count.
func (e *Engine) TotalCount(res *Result) int {
	return res.Total
}

// MapToModels loads the records behind the result's hits and returns
// them in the engine's relevance order. A zero-hit result short-circuits
// without invoking the loader. Loader results with keys outside the hit
// set are discarded; the survivors are stably re-sorted by the position
// of their key in the extracted hit order.
func (e *Engine) MapToModels(ctx context.Context, res *Result, load Loader) ([]Searchable, error) {
	if res.Total == 0 {
		return nil, nil
	}

	ids := e.ExtractIDs(res)
	pos := make(map[string]int, len(ids))
	for i, id := range ids {
		if _, seen := pos[id]; !seen {
			pos[id] = i
		}
	}

	records, err := load(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("map to models: %w", err)
	}

	out := make([]Searchable, 0, len(records))
	for _, r := range records {
		if _, ok := pos[r.SearchKey()]; ok {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return pos[out[i].SearchKey()] < pos[out[j].SearchKey()]
	})
	return out, nil
}

func (e *Engine) identity(r Searchable) document.Identity {
	return document.Identity{
		Index: e.index,
		Type:  r.SearchType(),
		ID:    r.SearchKey(),
	}
}
