// Package scoutelastic bridges a host application's searchable records
// into a full-text search engine (Elasticsearch or OpenSearch). It
// translates abstract index/remove/search/paginate operations into the
// engine's wire format and maps raw responses back into ordered
// identifiers and record collections. All ranking, fuzzy matching and
// durability live engine-side; this layer is stateless translation.
package scoutelastic

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/NMXDiffusion/scoutelastic/internal/db"
	dbElastic "github.com/NMXDiffusion/scoutelastic/internal/db/elastic"
	dbOpenSearch "github.com/NMXDiffusion/scoutelastic/internal/db/opensearch"
	"github.com/NMXDiffusion/scoutelastic/internal/metrics"
)

const defaultReadinessTimeout = 10 * time.Second

// Client is the scoutelastic SDK entry point: an engine connection from
// which per-index Engines are derived. Immutable after construction and
// safe for concurrent use.
type Client struct {
	store  db.Store
	logger *zap.Logger
}

// New creates a Client and verifies engine connectivity.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		driver:           "elasticsearch",
		readinessTimeout: defaultReadinessTimeout,
	}
	for _, o := range opts {
		o(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("scoutelastic: engine address required (use WithElasticsearch or WithOpenSearch)")
	}

	store, err := createStore(cfg)
	if err != nil {
		return nil, err
	}
	if cfg.instrument {
		store = metrics.NewInstrumentedStore(store)
	}

	ctx := context.Background()
	if err := store.WaitForReady(ctx, cfg.readinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("scoutelastic: engine not ready: %w", err)
	}

	logger := cfg.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{store: store, logger: logger}, nil
}

func createStore(cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case "elasticsearch":
		s, err := dbElastic.NewStore(dbElastic.Config{
			Addrs:     cfg.addrs,
			Username:  cfg.username,
			Password:  cfg.password,
			Transport: cfg.transport,
		})
		if err != nil {
			return nil, fmt.Errorf("scoutelastic: create elasticsearch store: %w", err)
		}
		return s, nil
	case "opensearch":
		s, err := dbOpenSearch.NewStore(dbOpenSearch.Config{
			Addrs:     cfg.addrs,
			Username:  cfg.username,
			Password:  cfg.password,
			Transport: cfg.transport,
		})
		if err != nil {
			return nil, fmt.Errorf("scoutelastic: create opensearch store: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("scoutelastic: unknown driver %q", cfg.driver)
	}
}

// newClient wires a Client around an existing store (tests).
func newClient(store db.Store, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{store: store, logger: logger}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks engine connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// RawSearch issues an arbitrary request body against an index. Intended
// for override callbacks that modify the assembled body before
// executing it.
func (c *Client) RawSearch(ctx context.Context, index string, body map[string]any) (*Result, error) {
	sr, err := c.store.Search(ctx, index, body)
	if err != nil {
		return nil, fmt.Errorf("raw search: %w", err)
	}
	return fromSearchResult(sr), nil
}
