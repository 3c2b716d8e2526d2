package scoutelastic

import "github.com/NMXDiffusion/scoutelastic/internal/db"

// Result is the engine's raw search response, reshaped. Hit order is
// the authoritative relevance order and is preserved through all
// downstream mapping.
type Result struct {
	// Total is the total-hit count reported by the engine.
	Total int

	// Hits are the matched documents in relevance order.
	Hits []Hit

	// TotalPages is set by Paginate only: Total divided by the page
	// size as real division. The fractional value is preserved;
	// callers round or floor as they see fit.
	TotalPages float64
}

// Hit is one matched document.
type Hit struct {
	ID     string
	Score  float64
	Source map[string]any
}

func fromSearchResult(sr *db.SearchResult) *Result {
	res := &Result{
		Total: sr.Total,
		Hits:  make([]Hit, len(sr.Hits)),
	}
	for i, h := range sr.Hits {
		res.Hits[i] = Hit{ID: h.ID, Score: h.Score, Source: h.Source}
	}
	return res
}
