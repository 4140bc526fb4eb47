// Package api exposes floor-plan generation over HTTP.
//
// # Endpoints
//
//	GET    /healthz                       liveness probe
//	POST   /v1/floorplans                 generate (and archive) a plan
//	GET    /v1/floorplans                 list archived plan summaries
//	GET    /v1/floorplans/{id}            fetch one archived record
//	DELETE /v1/floorplans/{id}            remove an archived record
//	GET    /v1/floorplans/{id}/render     render an archived plan
//
// The render endpoint takes ?format=ascii|dot|svg|png|json and serves
// artifacts through the pipeline's artifact cache, keyed by the plan's
// content hash.
//
// Errors are returned as JSON envelopes carrying the machine-readable
// codes from [pkg/errors].
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	dgerrors "github.com/dungenlab/dungen/pkg/errors"
	"github.com/dungenlab/dungen/pkg/pipeline"
	"github.com/dungenlab/dungen/pkg/render"
	"github.com/dungenlab/dungen/pkg/store"
)

// requestTimeout bounds one request end to end, including rendering.
const requestTimeout = 60 * time.Second

// Server handles floor-plan HTTP requests.
type Server struct {
	runner *pipeline.Runner
	store  store.Store
	logger *log.Logger
}

// NewServer creates a server. The store may be nil, in which case the
// archive endpoints respond with UNSUPPORTED and generated plans are
// not persisted.
func NewServer(runner *pipeline.Runner, st store.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, store: st, logger: logger}
}

// Router assembles the HTTP routes with standard middleware.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1/floorplans", func(r chi.Router) {
		r.Post("/", s.handleGenerate)
		r.Get("/", s.handleList)
		r.Get("/{id}", s.handleGet)
		r.Delete("/{id}", s.handleDelete)
		r.Get("/{id}/render", s.handleRender)
	})
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// generateRequest is the POST /v1/floorplans body.
type generateRequest struct {
	pipeline.Options
	// Name labels the archived record.
	Name string `json:"name,omitempty"`
}

// generateResponse is the POST /v1/floorplans reply.
type generateResponse struct {
	ID          string          `json:"id,omitempty"`
	PlanHash    string          `json:"plan_hash"`
	Rooms       int             `json:"rooms"`
	Connections int             `json:"connections"`
	Unconnected int             `json:"unconnected"`
	Connected   bool            `json:"connected"`
	FloorTiles  int             `json:"floor_tiles"`
	CacheHit    bool            `json:"cache_hit"`
	Plan        json.RawMessage `json:"plan"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest,
			dgerrors.Wrap(dgerrors.ErrCodeInvalidInput, err, "malformed request body"))
		return
	}

	result, err := s.runner.Generate(r.Context(), req.Options)
	if err != nil {
		s.writeError(w, http.StatusBadRequest,
			dgerrors.Wrap(dgerrors.ErrCodeInvalidConfig, err, "generation failed"))
		return
	}

	planJSON, err := json.Marshal(result.Plan)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError,
			dgerrors.Wrap(dgerrors.ErrCodeInternal, err, "encode plan"))
		return
	}

	resp := generateResponse{
		PlanHash:    result.PlanHash,
		Rooms:       result.Stats.Rooms,
		Connections: result.Stats.Connections,
		Unconnected: result.Stats.Unconnected,
		Connected:   result.Plan.Graph.Connected(),
		FloorTiles:  result.Stats.FloorTiles,
		CacheHit:    result.CacheInfo.PlanHit,
		Plan:        planJSON,
	}

	if s.store != nil {
		rec, err := store.NewRecord(req.Name, result.Plan, result.PlanHash)
		if err != nil {
			s.writeError(w, http.StatusInternalServerError,
				dgerrors.Wrap(dgerrors.ErrCodeInternal, err, "encode record"))
			return
		}
		if err := s.store.Save(r.Context(), rec); err != nil {
			s.writeError(w, http.StatusInternalServerError,
				dgerrors.Wrap(dgerrors.ErrCodeStore, err, "archive plan"))
			return
		}
		resp.ID = rec.ID
	}

	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, http.StatusNotImplemented,
			dgerrors.New(dgerrors.ErrCodeUnsupported, "no archive configured"))
		return
	}
	summaries, err := s.store.List(r.Context(), 0)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError,
			dgerrors.Wrap(dgerrors.ErrCodeStore, err, "list plans"))
		return
	}
	if summaries == nil {
		summaries = []store.Summary{}
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, http.StatusNotImplemented,
			dgerrors.New(dgerrors.ErrCodeUnsupported, "no archive configured"))
		return
	}
	id := chi.URLParam(r, "id")
	err := s.store.Delete(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(w, http.StatusNotFound,
			dgerrors.New(dgerrors.ErrCodePlanNotFound, "no plan with id %s", id))
		return
	}
	if err != nil {
		s.writeError(w, http.StatusInternalServerError,
			dgerrors.Wrap(dgerrors.ErrCodeStore, err, "delete plan %s", id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.lookup(w, r)
	if !ok {
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, http.StatusBadRequest,
			dgerrors.Wrap(dgerrors.ErrCodeInvalidFormat, err, "unsupported format %q", format))
		return
	}

	plan, err := rec.DecodePlan()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError,
			dgerrors.Wrap(dgerrors.ErrCodeInternal, err, "decode archived plan"))
		return
	}

	data, _, err := s.runner.CachedArtifact(r.Context(), rec.PlanHash, format, 0,
		func() ([]byte, error) { return render.Artifact(plan, format) })
	if err != nil {
		s.writeError(w, http.StatusInternalServerError,
			dgerrors.Wrap(dgerrors.ErrCodeInternal, err, "render %s", format))
		return
	}

	w.Header().Set("Content-Type", contentType(format))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// lookup resolves the {id} route parameter to an archived record,
// writing the error response itself on failure.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*store.Record, bool) {
	if s.store == nil {
		s.writeError(w, http.StatusNotImplemented,
			dgerrors.New(dgerrors.ErrCodeUnsupported, "no archive configured"))
		return nil, false
	}
	id := chi.URLParam(r, "id")
	rec, err := s.store.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(w, http.StatusNotFound,
			dgerrors.New(dgerrors.ErrCodePlanNotFound, "no plan with id %s", id))
		return nil, false
	}
	if err != nil {
		s.writeError(w, http.StatusInternalServerError,
			dgerrors.Wrap(dgerrors.ErrCodeStore, err, "load plan %s", id))
		return nil, false
	}
	return rec, true
}

func contentType(format string) string {
	switch format {
	case pipeline.FormatSVG:
		return "image/svg+xml"
	case pipeline.FormatPNG:
		return "image/png"
	case pipeline.FormatJSON:
		return "application/json"
	default:
		return "text/plain; charset=utf-8"
	}
}

// errorEnvelope is the JSON error body.
type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	if status >= 500 {
		s.logger.Error("request failed", "err", err)
	}
	var env errorEnvelope
	env.Error.Code = string(dgerrors.GetCode(err))
	env.Error.Message = dgerrors.UserMessage(err)
	writeJSON(w, status, env)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Serve runs the HTTP server until ctx is canceled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
