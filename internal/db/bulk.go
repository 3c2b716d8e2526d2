package db

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// BulkEntry is one NDJSON line of a bulk request: either an action
// directive ({"update": {...}}, {"delete": {...}}) or the document
// payload that follows an update directive. Entry order is the wire
// order and must be preserved by drivers.
type BulkEntry map[string]any

// Bulk action directive keys.
const (
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// Directive metadata keys.
const (
	MetaIndex = "_index"
	MetaType  = "_type"
	MetaID    = "_id"
)

// EncodeNDJSON serializes bulk entries as newline-delimited JSON,
// terminated by a trailing newline as the bulk API requires. Shared by
// all drivers.
func EncodeNDJSON(entries []BulkEntry) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for i, e := range entries {
		if err := enc.Encode(e); err != nil {
			return nil, fmt.Errorf("encode bulk entry %d: %w", i, err)
		}
	}
	return buf.Bytes(), nil
}
