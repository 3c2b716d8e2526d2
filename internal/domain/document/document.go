// Package document holds the indexed document payload built from a
// searchable record.
package document

// Identity addresses one document in the engine.
type Identity struct {
	Index string
	Type  string
	ID    string
}

// Payload is the stored document body: the shallow merge of a record's
// searchable-field mapping and its metadata mapping. Metadata keys win
// on collision (right-biased union).
type Payload map[string]any

// NewPayload merges searchable fields and metadata into one payload.
// Neither input map is mutated.
func NewPayload(fields, metadata map[string]any) Payload {
	p := make(Payload, len(fields)+len(metadata))
	for k, v := range fields {
		p[k] = v
	}
	for k, v := range metadata {
		p[k] = v
	}
	return p
}
