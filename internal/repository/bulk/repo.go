// Package bulk builds the ordered directive/payload bulk body and
// issues it through the engine store in a single round trip.
package bulk

import (
	"context"
	"fmt"

	"github.com/NMXDiffusion/scoutelastic/internal/db"
	"github.com/NMXDiffusion/scoutelastic/internal/domain/document"
)

// store is the consumer interface for bulk operations (ISP).
type store interface {
	Bulk(ctx context.Context, body []db.BulkEntry) error
}

// Repo translates document batches into bulk request bodies.
type Repo struct {
	store store
}

// New creates a bulk repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Doc couples a document identity with its merged payload.
type Doc struct {
	Identity document.Identity
	Payload  document.Payload
}

// Upsert sends one bulk call upserting all docs in input order.
func (r *Repo) Upsert(ctx context.Context, docs []Doc) error {
	if len(docs) == 0 {
		return nil
	}
	if err := r.store.Bulk(ctx, BuildUpsertBody(docs)); err != nil {
		return fmt.Errorf("bulk upsert: %w", err)
	}
	return nil
}

// Delete sends one bulk call deleting all identities in input order.
func (r *Repo) Delete(ctx context.Context, ids []document.Identity) error {
	if len(ids) == 0 {
		return nil
	}
	if err := r.store.Bulk(ctx, BuildDeleteBody(ids)); err != nil {
		return fmt.Errorf("bulk delete: %w", err)
	}
	return nil
}

// BuildUpsertBody emits two consecutive entries per document: an update
// directive addressing the document, then the payload flagged
// doc_as_upsert so the engine creates it if absent and updates it
// otherwise.
func BuildUpsertBody(docs []Doc) []db.BulkEntry {
	body := make([]db.BulkEntry, 0, 2*len(docs))
	for _, d := range docs {
		body = append(body,
			db.BulkEntry{db.ActionUpdate: directive(d.Identity)},
			db.BulkEntry{"doc": map[string]any(d.Payload), "doc_as_upsert": true},
		)
	}
	return body
}

// BuildDeleteBody emits one delete directive per identity.
func BuildDeleteBody(ids []document.Identity) []db.BulkEntry {
	body := make([]db.BulkEntry, 0, len(ids))
	for _, id := range ids {
		body = append(body, db.BulkEntry{db.ActionDelete: directive(id)})
	}
	return body
}

func directive(id document.Identity) map[string]any {
	return map[string]any{
		db.MetaIndex: id.Index,
		db.MetaType:  id.Type,
		db.MetaID:    id.ID,
	}
}
