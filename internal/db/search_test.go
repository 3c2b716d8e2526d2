package db

import (
	"errors"
	"testing"
)

func TestParseSearchResponse_BareIntegerTotal(t *testing.T) {
	body := []byte(`{
		"hits": {
			"total": 2,
			"hits": [
				{"_id": "a", "_score": 2.5, "_source": {"title": "first"}},
				{"_id": "b", "_score": 1.0, "_source": {"title": "second"}}
			]
		}
	}`)

	sr, err := ParseSearchResponse(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sr.Total != 2 {
		t.Errorf("expected total=2, got %d", sr.Total)
	}
	if len(sr.Hits) != 2 {
		t.Fatalf("expected 2 hits, got %d", len(sr.Hits))
	}
	if sr.Hits[0].ID != "a" || sr.Hits[0].Score != 2.5 {
		t.Errorf("unexpected first hit: %+v", sr.Hits[0])
	}
	if sr.Hits[0].Source["title"] != "first" {
		t.Errorf("unexpected source: %v", sr.Hits[0].Source)
	}
}

func TestParseSearchResponse_ObjectTotal(t *testing.T) {
	body := []byte(`{
		"hits": {
			"total": {"value": 120, "relation": "gte"},
			"hits": [{"_id": "a", "_score": 1.0, "_source": {}}]
		}
	}`)

	sr, err := ParseSearchResponse(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sr.Total != 120 {
		t.Errorf("expected total=120, got %d", sr.Total)
	}
}

func TestParseSearchResponse_NoHits(t *testing.T) {
	body := []byte(`{"hits": {"total": 0, "hits": []}}`)

	sr, err := ParseSearchResponse(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sr.Total != 0 {
		t.Errorf("expected total=0, got %d", sr.Total)
	}
	if len(sr.Hits) != 0 {
		t.Errorf("expected no hits, got %v", sr.Hits)
	}
}

func TestParseSearchResponse_KeepsHitOrder(t *testing.T) {
	body := []byte(`{
		"hits": {
			"total": 3,
			"hits": [
				{"_id": "c", "_score": 3.0},
				{"_id": "a", "_score": 2.0},
				{"_id": "b", "_score": 1.0}
			]
		}
	}`)

	sr, err := ParseSearchResponse(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, id := range []string{"c", "a", "b"} {
		if sr.Hits[i].ID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, sr.Hits[i].ID)
		}
	}
}

func TestParseSearchResponse_MalformedJSON(t *testing.T) {
	if _, err := ParseSearchResponse([]byte(`{"hits": `)); err == nil {
		t.Fatal("expected error for malformed body")
	}
}

func TestError_Unwrap(t *testing.T) {
	inner := errors.New("connection refused")
	err := &Error{Op: OpSearch, Err: inner}

	if !errors.Is(err, inner) {
		t.Fatal("expected Unwrap to expose the inner error")
	}
	want := "POST /_search: connection refused"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}
