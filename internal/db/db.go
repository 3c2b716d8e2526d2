package db

import (
	"context"
	"time"
)

// Store is the engine client facade combining all sub-interfaces.
// Consumers depend on the narrow sub-interfaces (ISP).
type Store interface {
	Pinger
	Bulker
	Searcher
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks engine connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Bulker sends an assembled bulk body in a single round trip.
// Per-item failures reported by the engine are not retried or
// reassembled here; only transport-level errors surface.
type Bulker interface {
	Bulk(ctx context.Context, body []BulkEntry) error
}

// Searcher executes a structured query against one index.
type Searcher interface {
	Search(ctx context.Context, index string, body map[string]any) (*SearchResult, error)
}
