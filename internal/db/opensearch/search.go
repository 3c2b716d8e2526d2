package opensearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/NMXDiffusion/scoutelastic/internal/db"
)

// Search executes a structured query against one index.
func (s *Store) Search(ctx context.Context, index string, body map[string]any) (*db.SearchResult, error) {
	if index == "" {
		return nil, fmt.Errorf("index is required")
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: fmt.Errorf("encode body: %w", err)}
	}

	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(index),
		s.client.Search.WithBody(&buf),
		s.client.Search.WithTrackTotalHits(true),
	)
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: err}
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: err}
	}
	if res.IsError() {
		return nil, &db.Error{Op: db.OpSearch, Err: fmt.Errorf("status %s: %s", res.Status(), raw)}
	}

	sr, err := db.ParseSearchResponse(raw)
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: err}
	}
	return sr, nil
}
