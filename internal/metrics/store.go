package metrics

import (
	"context"
	"time"

	"github.com/NMXDiffusion/scoutelastic/internal/db"
)

// Compile-time check: InstrumentedStore implements db.Store.
var _ db.Store = (*InstrumentedStore)(nil)

// InstrumentedStore decorates a db.Store with round-trip metrics.
type InstrumentedStore struct {
	inner db.Store
}

// NewInstrumentedStore wraps a store with engine metrics.
func NewInstrumentedStore(inner db.Store) *InstrumentedStore {
	return &InstrumentedStore{inner: inner}
}

// Bulk records duration and outcome around the inner bulk call.
func (s *InstrumentedStore) Bulk(ctx context.Context, body []db.BulkEntry) error {
	start := time.Now()
	err := s.inner.Bulk(ctx, body)
	observe("bulk", start, err)
	return err
}

// Search records duration and outcome around the inner search call.
func (s *InstrumentedStore) Search(ctx context.Context, index string, body map[string]any) (*db.SearchResult, error) {
	start := time.Now()
	sr, err := s.inner.Search(ctx, index, body)
	observe("search", start, err)
	return sr, err
}

// Ping delegates without instrumentation.
func (s *InstrumentedStore) Ping(ctx context.Context) error {
	return s.inner.Ping(ctx)
}

// Close delegates to the inner store.
func (s *InstrumentedStore) Close() { s.inner.Close() }

// WaitForReady delegates to the inner store.
func (s *InstrumentedStore) WaitForReady(ctx context.Context, timeout time.Duration) error {
	return s.inner.WaitForReady(ctx, timeout)
}

func observe(op string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	EngineRequestsTotal.WithLabelValues(op, status).Inc()
	EngineRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
