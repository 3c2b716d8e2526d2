package elastic

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/NMXDiffusion/scoutelastic/internal/db"
)

// fakeTransport scripts engine responses without a network.
type fakeTransport struct {
	fn func(req *http.Request) (*http.Response, error)
}

func (f *fakeTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return f.fn(req)
}

// respond builds a canned engine response. The product header is
// required by the client's compatibility check.
func respond(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header: http.Header{
			"X-Elastic-Product": []string{"Elasticsearch"},
			"Content-Type":      []string{"application/json"},
		},
		Body: io.NopCloser(strings.NewReader(body)),
	}
}

func newTestStore(t *testing.T, fn func(req *http.Request) (*http.Response, error)) *Store {
	t.Helper()
	s, err := NewStore(Config{
		Addrs:     []string{"http://localhost:9200"},
		Transport: &fakeTransport{fn: fn},
	})
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	return s
}

func TestNewStore_AddrsRequired(t *testing.T) {
	if _, err := NewStore(Config{}); err == nil {
		t.Fatal("expected error without addresses")
	}
}

func TestPing(t *testing.T) {
	s := newTestStore(t, func(req *http.Request) (*http.Response, error) {
		if req.Method != http.MethodHead {
			t.Errorf("expected HEAD, got %s", req.Method)
		}
		return respond(http.StatusOK, ""), nil
	})

	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPing_ErrorStatus(t *testing.T) {
	s := newTestStore(t, func(_ *http.Request) (*http.Response, error) {
		return respond(http.StatusServiceUnavailable, ""), nil
	})

	err := s.Ping(context.Background())
	if err == nil {
		t.Fatal("expected error for 503")
	}
	var dberr *db.Error
	if !errors.As(err, &dberr) || dberr.Op != db.OpPing {
		t.Errorf("expected db.Error with ping op, got %v", err)
	}
}

func TestBulk_SendsNDJSON(t *testing.T) {
	var sent []byte
	s := newTestStore(t, func(req *http.Request) (*http.Response, error) {
		if !strings.HasSuffix(req.URL.Path, "/_bulk") {
			t.Errorf("unexpected path: %s", req.URL.Path)
		}
		sent, _ = io.ReadAll(req.Body)
		return respond(http.StatusOK, `{"errors": false, "items": []}`), nil
	})

	body := []db.BulkEntry{
		{db.ActionUpdate: map[string]any{db.MetaIndex: "products", db.MetaID: "1"}},
		{"doc": map[string]any{"title": "widget"}, "doc_as_upsert": true},
	}
	if err := s.Bulk(context.Background(), body); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !bytes.HasSuffix(sent, []byte("\n")) {
		t.Error("bulk body must end with a newline")
	}
	lines := bytes.Split(bytes.TrimRight(sent, "\n"), []byte("\n"))
	if len(lines) != 2 {
		t.Fatalf("expected one NDJSON line per entry, got %d: %s", len(lines), sent)
	}
	if !bytes.Contains(lines[0], []byte(`"update"`)) {
		t.Errorf("expected update directive on line 0: %s", lines[0])
	}
	if !bytes.Contains(lines[1], []byte(`"doc_as_upsert":true`)) {
		t.Errorf("expected upsert payload on line 1: %s", lines[1])
	}
}

func TestBulk_EmptyBodyNoCall(t *testing.T) {
	s := newTestStore(t, func(_ *http.Request) (*http.Response, error) {
		t.Fatal("no request expected for an empty bulk body")
		return nil, nil
	})

	if err := s.Bulk(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestBulk_ErrorStatus(t *testing.T) {
	s := newTestStore(t, func(_ *http.Request) (*http.Response, error) {
		return respond(http.StatusBadRequest, `{"error": "malformed"}`), nil
	})

	err := s.Bulk(context.Background(), []db.BulkEntry{{"delete": map[string]any{}}})
	if err == nil {
		t.Fatal("expected error for 400")
	}
	var dberr *db.Error
	if !errors.As(err, &dberr) || dberr.Op != db.OpBulk {
		t.Errorf("expected db.Error with bulk op, got %v", err)
	}
}

func TestSearch_ParsesResponse(t *testing.T) {
	s := newTestStore(t, func(req *http.Request) (*http.Response, error) {
		if !strings.Contains(req.URL.Path, "/products/_search") {
			t.Errorf("unexpected path: %s", req.URL.Path)
		}
		return respond(http.StatusOK, `{
			"hits": {
				"total": {"value": 2, "relation": "eq"},
				"hits": [
					{"_id": "a", "_score": 2.0, "_source": {"title": "first"}},
					{"_id": "b", "_score": 1.0, "_source": {"title": "second"}}
				]
			}
		}`), nil
	})

	sr, err := s.Search(context.Background(), "products", map[string]any{
		"query": map[string]any{"match_all": map[string]any{}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sr.Total != 2 {
		t.Errorf("expected total=2, got %d", sr.Total)
	}
	if sr.Hits[0].ID != "a" || sr.Hits[1].ID != "b" {
		t.Errorf("unexpected hits: %+v", sr.Hits)
	}
}

func TestSearch_ErrorStatus(t *testing.T) {
	s := newTestStore(t, func(_ *http.Request) (*http.Response, error) {
		return respond(http.StatusNotFound, `{"error": "index_not_found_exception"}`), nil
	})

	_, err := s.Search(context.Background(), "missing", map[string]any{})
	if err == nil {
		t.Fatal("expected error for 404")
	}
	var dberr *db.Error
	if !errors.As(err, &dberr) || dberr.Op != db.OpSearch {
		t.Errorf("expected db.Error with search op, got %v", err)
	}
}
