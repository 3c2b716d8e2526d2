package bulk

import (
	"context"
	"testing"

	"github.com/NMXDiffusion/scoutelastic/internal/db"
	"github.com/NMXDiffusion/scoutelastic/internal/domain/document"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	bulkFn func(ctx context.Context, body []db.BulkEntry) error
}

func (m *mockStore) Bulk(ctx context.Context, body []db.BulkEntry) error {
	if m.bulkFn != nil {
		return m.bulkFn(ctx, body)
	}
	return nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms), ms
}

func testDoc(id string) Doc {
	return Doc{
		Identity: document.Identity{Index: "products", Type: "product", ID: id},
		Payload:  document.Payload{"title": "widget " + id},
	}
}
