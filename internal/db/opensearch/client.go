package opensearch

import (
	"context"
	"fmt"
	"net/http"
	"time"

	opensearchgo "github.com/opensearch-project/opensearch-go/v2"

	"github.com/NMXDiffusion/scoutelastic/internal/db"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

// Config holds connection parameters for an OpenSearch store.
type Config struct {
	Addrs    []string
	Username string
	Password string

	// Transport overrides the HTTP transport (tests).
	Transport http.RoundTripper
}

// Store implements db.Store via the official OpenSearch client.
// OpenSearch keeps the same bulk and search wire format as
// Elasticsearch, so only the client wiring differs.
type Store struct {
	client *opensearchgo.Client
}

// NewStore creates an OpenSearch store.
func NewStore(cfg Config) (*Store, error) {
	if len(cfg.Addrs) == 0 {
		return nil, fmt.Errorf("addrs is required")
	}

	client, err := opensearchgo.NewClient(opensearchgo.Config{
		Addresses: cfg.Addrs,
		Username:  cfg.Username,
		Password:  cfg.Password,
		Transport: cfg.Transport,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return &Store{client: client}, nil
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	res, err := s.client.Ping(s.client.Ping.WithContext(ctx))
	if err != nil {
		return &db.Error{Op: db.OpPing, Err: err}
	}
	defer res.Body.Close()

	if res.IsError() {
		return &db.Error{Op: db.OpPing, Err: fmt.Errorf("status %s", res.Status())}
	}
	return nil
}

// Close releases resources. No-op, the client holds only an HTTP transport.
func (s *Store) Close() {}

// WaitForReady polls Ping until the engine responds or timeout expires.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for engine: %w", ctx.Err())
		case <-ticker.C:
			if err := s.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}
