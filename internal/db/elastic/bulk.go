package elastic

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/NMXDiffusion/scoutelastic/internal/db"
)

// Bulk sends the assembled directive/payload sequence as one _bulk
// call. Entries are serialized one NDJSON line each, preserving order.
func (s *Store) Bulk(ctx context.Context, body []db.BulkEntry) error {
	if len(body) == 0 {
		return nil
	}

	buf, err := db.EncodeNDJSON(body)
	if err != nil {
		return &db.Error{Op: db.OpBulk, Err: err}
	}

	res, err := s.client.Bulk(bytes.NewReader(buf), s.client.Bulk.WithContext(ctx))
	if err != nil {
		return &db.Error{Op: db.OpBulk, Err: err}
	}
	defer res.Body.Close()

	if res.IsError() {
		msg, _ := io.ReadAll(res.Body)
		return &db.Error{Op: db.OpBulk, Err: fmt.Errorf("status %s: %s", res.Status(), msg)}
	}
	return nil
}
