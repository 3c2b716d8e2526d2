// Package chi exposes the connector over a small HTTP facade: health,
// prometheus metrics, search and paginate endpoints.
package chi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	scoutelastic "github.com/NMXDiffusion/scoutelastic"
	logpkg "github.com/NMXDiffusion/scoutelastic/internal/logger"
	"github.com/NMXDiffusion/scoutelastic/internal/metrics"
)

// Error codes returned by the HTTP facade.
const (
	codeBadRequest    = "bad_request"
	codeEngineFailure = "engine_failure"
)

// Config holds facade settings.
type Config struct {
	APIKeys         []string
	DefaultPageSize int
	MaxPageSize     int
}

// Server serves search requests over one connector engine.
type Server struct {
	client *scoutelastic.Client
	engine *scoutelastic.Engine
	cfg    Config
	logger *zap.Logger
}

// NewServer creates the HTTP facade.
func NewServer(client *scoutelastic.Client, engine *scoutelastic.Engine, cfg Config, logger *zap.Logger) *Server {
	return &Server{client: client, engine: engine, cfg: cfg, logger: logger}
}

// Router assembles the chi router with metrics and auth middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Recoverer)
	r.Use(s.requestLogger())
	r.Use(metrics.Middleware())
	r.Use(BearerAuthMiddleware(s.cfg.APIKeys))

	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Post("/v1/search", s.handleSearch)
	r.Post("/v1/search/page", s.handlePaginate)
	return r
}

// requestLogger emits one canonical log line per request, propagates
// X-Request-ID and stores a request-scoped logger in the context.
func (s *Server) requestLogger() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			reqLogger := s.logger.With(zap.String("request_id", requestID))
			ctx := logpkg.WithContext(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
			)
		})
	}
}

// searchRequest is the wire shape of a declarative query. Filters and
// sorts are arrays, not maps, so clause order survives JSON decoding.
type searchRequest struct {
	Term    string         `json:"term"`
	Filters []filterClause `json:"filters"`
	Sort    []sortClause   `json:"sort"`
	Size    int            `json:"size"`
	PerPage int            `json:"per_page"`
	Page    int            `json:"page"`
}

type filterClause struct {
	Field  string `json:"field"`
	Value  any    `json:"value,omitempty"`
	Values []any  `json:"values,omitempty"`
}

type sortClause struct {
	Field     string `json:"field"`
	Direction string `json:"direction"`
}

type searchResponse struct {
	Total      int       `json:"total"`
	IDs        []string  `json:"ids"`
	Hits       []hitView `json:"hits"`
	TotalPages *float64  `json:"total_pages,omitempty"`
}

type hitView struct {
	ID     string         `json:"id"`
	Score  float64        `json:"score"`
	Source map[string]any `json:"source,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.client.Ping(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, codeEngineFailure, "engine unreachable: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeSearch(w, r)
	if !ok {
		return
	}

	q := buildQuery(req)
	if req.Size > 0 {
		q.Take(req.Size)
	}

	res, err := s.engine.Search(r.Context(), q)
	if err != nil {
		logpkg.FromContext(r.Context()).Error("search failed", zap.Error(err))
		writeError(w, http.StatusBadGateway, codeEngineFailure, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, s.toResponse(res, false))
}

func (s *Server) handlePaginate(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeSearch(w, r)
	if !ok {
		return
	}

	perPage := req.PerPage
	if perPage <= 0 {
		perPage = s.cfg.DefaultPageSize
	}
	if perPage > s.cfg.MaxPageSize {
		perPage = s.cfg.MaxPageSize
	}
	page := req.Page
	if page <= 0 {
		page = 1
	}

	res, err := s.engine.Paginate(r.Context(), buildQuery(req), perPage, page)
	if err != nil {
		logpkg.FromContext(r.Context()).Error("paginate failed", zap.Error(err))
		writeError(w, http.StatusBadGateway, codeEngineFailure, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, s.toResponse(res, true))
}

func (s *Server) decodeSearch(w http.ResponseWriter, r *http.Request) (searchRequest, bool) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return searchRequest{}, false
	}
	for _, f := range req.Filters {
		if f.Field == "" {
			writeError(w, http.StatusBadRequest, codeBadRequest, "filter field is required")
			return searchRequest{}, false
		}
		if f.Value == nil && len(f.Values) == 0 {
			writeError(w, http.StatusBadRequest, codeBadRequest, "filter needs value or values")
			return searchRequest{}, false
		}
	}
	return req, true
}

func buildQuery(req searchRequest) *scoutelastic.Builder {
	q := scoutelastic.NewQuery().Term(req.Term)
	for _, f := range req.Filters {
		if len(f.Values) > 0 {
			q.WhereIn(f.Field, f.Values...)
			continue
		}
		q.Where(f.Field, f.Value)
	}
	for _, sc := range req.Sort {
		q.OrderBy(sc.Field, scoutelastic.Direction(sc.Direction))
	}
	return q
}

func (s *Server) toResponse(res *scoutelastic.Result, paged bool) searchResponse {
	out := searchResponse{
		Total: res.Total,
		IDs:   s.engine.ExtractIDs(res),
		Hits:  make([]hitView, len(res.Hits)),
	}
	for i, h := range res.Hits {
		out.Hits[i] = hitView{ID: h.ID, Score: h.Score, Source: h.Source}
	}
	if paged {
		tp := res.TotalPages
		out.TotalPages = &tp
	}
	return out
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// status is already committed, nothing to recover from here
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: errorBody{Code: code, Message: message}})
}
