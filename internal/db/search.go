package db

import (
	"encoding/json"
	"fmt"
)

// SearchResult is the output of a search operation. Hits keep the
// engine-returned relevance order, which downstream mapping relies on.
type SearchResult struct {
	Total int
	Hits  []SearchHit
}

// SearchHit is a single matched document.
type SearchHit struct {
	ID     string
	Score  float64
	Source map[string]any
}

// searchEnvelope mirrors the engine response shape
// { "hits": { "total": ..., "hits": [ { "_id": ..., ... } ] } }.
type searchEnvelope struct {
	Hits struct {
		Total totalHits `json:"total"`
		Hits  []struct {
			ID     string         `json:"_id"`
			Score  float64        `json:"_score"`
			Source map[string]any `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// totalHits accepts both the bare-integer form (ES6, OpenSearch
// compatibility mode) and the ES8 {"value": n, "relation": ...} object.
type totalHits struct {
	Value int
}

func (t *totalHits) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		t.Value = n
		return nil
	}
	var obj struct {
		Value int `json:"value"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("total hits: %w", err)
	}
	t.Value = obj.Value
	return nil
}

// ParseSearchResponse decodes a raw search response body into a
// SearchResult. Shared by all drivers.
func ParseSearchResponse(body []byte) (*SearchResult, error) {
	var env searchEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	sr := &SearchResult{
		Total: env.Hits.Total.Value,
		Hits:  make([]SearchHit, len(env.Hits.Hits)),
	}
	for i, h := range env.Hits.Hits {
		sr.Hits[i] = SearchHit{ID: h.ID, Score: h.Score, Source: h.Source}
	}
	return sr, nil
}
