package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ppiankov/campaignkit/internal/budget"
	"github.com/ppiankov/campaignkit/internal/cache"
	"github.com/ppiankov/campaignkit/internal/classify"
	"github.com/ppiankov/campaignkit/internal/model"
	"github.com/ppiankov/campaignkit/internal/pipeline"
)

// Server exposes the engine over HTTP
type Server struct {
	pipeline *pipeline.Pipeline
	cache    *cache.ResultCache // nil disables caching
	maxBody  int64
	logger   *slog.Logger
	metrics  *Metrics
	router   http.Handler
}

// New creates a server. A disabled cache config leaves responses uncached.
func New(p *pipeline.Pipeline, cfg *model.Config, logger *slog.Logger) *Server {
	s := &Server{
		pipeline: p,
		maxBody:  cfg.Server.MaxBodyBytes,
		logger:   logger,
		metrics:  NewMetrics(),
	}
	if s.maxBody <= 0 {
		s.maxBody = model.DefaultConfig().Server.MaxBodyBytes
	}
	if cfg.Cache.Enabled {
		s.cache = cache.NewResultCache(cfg.Cache.TTL, cfg.Cache.MaxEntries)
		s.metrics.watchCache(s.cache)
	}
	s.router = s.routes()
	return s
}

// Handler returns the root handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Metrics returns the server's collectors
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

func (s *Server) routes() http.Handler {
	mux := chi.NewRouter()
	mux.Use(RequestID)
	mux.Use(Logger(s.logger, s.metrics))
	mux.Use(middleware.Recoverer)

	mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{}))

	mux.Route("/v1", func(r chi.Router) {
		r.Post("/drafts", s.handleDrafts)
		r.Post("/parse", s.handleParse)
		r.Post("/allocate", s.handleAllocate)
	})

	return mux
}

// draftRequest is the JSON body accepted by every /v1 endpoint
type draftRequest struct {
	Body      string          `json:"body"`
	Selection model.Selection `json:"selection"`
}

type parseResponse struct {
	Submission model.Submission        `json:"submission"`
	Detection  model.PlatformDetection `json:"detection"`
}

type allocateResponse struct {
	Plan        model.AllocationPlan    `json:"plan"`
	Allocations []model.AllocatedBudget `json:"allocations"`
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) handleDrafts(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decode(w, r)
	if !ok {
		return
	}

	key := cache.Key("drafts", req.Body, req.Selection)
	if s.serveCached(w, key) {
		return
	}

	report, err := s.pipeline.Process(r.Context(), "request:"+RID(r.Context()), req.Body, req.Selection)
	if err != nil {
		s.writeError(w, r, http.StatusServiceUnavailable, fmt.Errorf("process: %w", err))
		return
	}

	for _, d := range report.Drafts {
		s.metrics.drafts.WithLabelValues(string(d.Platform)).Inc()
	}
	s.metrics.readiness.Observe(float64(report.Score.Index))

	s.writeCached(w, r, key, report)
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decode(w, r)
	if !ok {
		return
	}

	sub := s.pipeline.Parse(req.Body)
	writeJSON(w, http.StatusOK, parseResponse{
		Submission: sub,
		Detection:  classify.DetectPlatforms(sub.FormData),
	})
}

func (s *Server) handleAllocate(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decode(w, r)
	if !ok {
		return
	}

	sub := s.pipeline.Parse(req.Body)
	detection := classify.DetectPlatforms(sub.FormData)
	spec := s.pipeline.Assembler().Allocator().Spec(sub.FormData)

	platforms := req.Selection.Platforms
	if len(platforms) == 0 {
		platforms = detection.Requested
	}

	resp := allocateResponse{
		Plan:        budget.BuildPlan(spec, detection),
		Allocations: make([]model.AllocatedBudget, 0, len(platforms)),
	}
	for _, p := range model.AllPlatforms {
		if containsPlatform(platforms, p) {
			resp.Allocations = append(resp.Allocations, budget.Split(spec, detection, p))
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// decode reads a JSON draftRequest, or a raw text body with the platform
// selection in ?platforms=meta,google
func (s *Server) decode(w http.ResponseWriter, r *http.Request) (draftRequest, bool) {
	var req draftRequest

	r.Body = http.MaxBytesReader(w, r.Body, s.maxBody)
	data, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			s.writeError(w, r, http.StatusRequestEntityTooLarge, fmt.Errorf("body exceeds %d bytes", s.maxBody))
			return req, false
		}
		s.writeError(w, r, http.StatusBadRequest, fmt.Errorf("read body: %w", err))
		return req, false
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		if err := json.Unmarshal(data, &req); err != nil {
			s.writeError(w, r, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
			return req, false
		}
	} else {
		req.Body = string(data)
		platforms, err := model.ParsePlatformList(r.URL.Query().Get("platforms"))
		if err != nil {
			s.writeError(w, r, http.StatusBadRequest, err)
			return req, false
		}
		req.Selection.Platforms = platforms
	}

	if strings.TrimSpace(req.Body) == "" {
		s.writeError(w, r, http.StatusBadRequest, errors.New("empty submission body"))
		return req, false
	}
	return req, true
}

func (s *Server) serveCached(w http.ResponseWriter, key string) bool {
	if s.cache == nil {
		return false
	}
	data, ok := s.cache.Lookup(key)
	if !ok {
		s.metrics.cache.WithLabelValues("miss").Inc()
		return false
	}
	s.metrics.cache.WithLabelValues("hit").Inc()
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Cache", "HIT")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
	return true
}

func (s *Server) writeCached(w http.ResponseWriter, r *http.Request, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, fmt.Errorf("encode response: %w", err))
		return
	}
	if s.cache != nil {
		if !s.cache.Store(key, data) {
			s.metrics.cache.WithLabelValues("refused").Inc()
			s.logger.Debug("cache full, response not stored", "rid", RID(r.Context()))
		}
		w.Header().Set("X-Cache", "MISS")
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	s.logger.Warn("request failed", "rid", RID(r.Context()), "status", status, "error", err)
	writeJSON(w, status, errorResponse{Error: err.Error(), RequestID: RID(r.Context())})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", " ")
	_ = enc.Encode(v)
}

func containsPlatform(list []model.Platform, p model.Platform) bool {
	for _, x := range list {
		if x == p {
			return true
		}
	}
	return false
}
