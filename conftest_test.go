package scoutelastic

import (
	"context"
	"testing"
	"time"

	"github.com/NMXDiffusion/scoutelastic/internal/db"
)

// mockStore implements db.Store for tests.
type mockStore struct {
	pingFn   func(ctx context.Context) error
	bulkFn   func(ctx context.Context, body []db.BulkEntry) error
	searchFn func(ctx context.Context, index string, body map[string]any) (*db.SearchResult, error)
	closed   bool
}

func (m *mockStore) Ping(ctx context.Context) error {
	if m.pingFn != nil {
		return m.pingFn(ctx)
	}
	return nil
}

func (m *mockStore) Bulk(ctx context.Context, body []db.BulkEntry) error {
	if m.bulkFn != nil {
		return m.bulkFn(ctx, body)
	}
	return nil
}

func (m *mockStore) Search(ctx context.Context, index string, body map[string]any) (*db.SearchResult, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, index, body)
	}
	return &db.SearchResult{}, nil
}

func (m *mockStore) Close() { m.closed = true }

func (m *mockStore) WaitForReady(_ context.Context, _ time.Duration) error { return nil }

// newTestEngine wires an Engine for "products" around a fresh mock store.
func newTestEngine(t *testing.T, opts ...EngineOption) (*Engine, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	client := newClient(ms, nil)
	return client.Engine("products", opts...), ms
}

// testRecord is a plain searchable record.
type testRecord struct {
	id     string
	fields map[string]any
	meta   map[string]any
}

func (r *testRecord) SearchKey() string { return r.id }

func (r *testRecord) SearchType() string { return "product" }

func (r *testRecord) SearchableFields() map[string]any { return r.fields }

func (r *testRecord) SearchMetadata() map[string]any { return r.meta }

// softRecord carries soft-delete state.
type softRecord struct {
	testRecord
	deleted bool
	pushed  bool
}

func (r *softRecord) PushSoftDeleteMetadata() {
	r.pushed = true
	marker := 0
	if r.deleted {
		marker = 1
	}
	if r.meta == nil {
		r.meta = map[string]any{}
	}
	r.meta[SoftDeleteField] = marker
}

// fieldRecord declares an explicit searchable field list.
type fieldRecord struct {
	testRecord
	declared []string
}

func (r *fieldRecord) DeclaredSearchableFields() []string { return r.declared }
