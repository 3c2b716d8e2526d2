package search

import (
	"context"
	"testing"

	"github.com/NMXDiffusion/scoutelastic/internal/db"
	"github.com/NMXDiffusion/scoutelastic/internal/domain/query"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	searchFn func(ctx context.Context, index string, body map[string]any) (*db.SearchResult, error)
}

func (m *mockStore) Search(ctx context.Context, index string, body map[string]any) (*db.SearchResult, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, index, body)
	}
	return &db.SearchResult{}, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms), ms
}

func mustQuery(t *testing.T, term string, filters []query.Condition, sorts []query.Sort, limit, offset int) query.Query {
	t.Helper()
	q, err := query.New(term, filters, sorts, limit, offset)
	if err != nil {
		t.Fatalf("build query: %v", err)
	}
	return q
}

func boolQuery(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	q, ok := body["query"].(map[string]any)
	if !ok {
		t.Fatalf("missing query object: %v", body)
	}
	b, ok := q["bool"].(map[string]any)
	if !ok {
		t.Fatalf("missing bool query: %v", q)
	}
	return b
}
