// Package api serves the turtle and squirrel engines over HTTP.
//
// Every reply is wrapped as {"Status": <code>, "Body": ...}. Input errors
// answer 400, anything else 500. GET /api/squirrel/stream upgrades to a
// WebSocket that replays a simulation step by step.
package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/katalvlaran/critters/config"
	"github.com/katalvlaran/critters/grid"
	"github.com/katalvlaran/critters/squirrel"
)

// Handler holds the dependencies shared by all routes.
type Handler struct {
	cfg config.Config
	log *zap.SugaredLogger
}

// NewHandler returns a Handler; a nil logger is replaced by a no-op one.
func NewHandler(cfg config.Config, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}

	return &Handler{cfg: cfg, log: log.Sugar()}
}

// Router mounts every route on a fresh chi mux.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	if h.cfg.Server.LocalCORS {
		r.Use(CORS)
	}
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/api/health", h.Health)
	r.Route("/api/turtle", func(r chi.Router) {
		r.Post("/zigzag", h.ZigZag)
		r.Post("/spiral", h.Spiral)
		r.Post("/routes", h.Routes)
	})
	r.Route("/api/squirrel", func(r chi.Router) {
		r.Post("/parse", h.Parse)
		r.Post("/simulate", h.Simulate)
		r.Get("/stream", h.Stream)
	})

	return r
}

// CORS allows any origin; enabled by server.local_cors for local frontends.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin := r.Header.Get("Origin"); origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	WriteResponseWithStatus(w, http.StatusOK, map[string]string{"status": "ok"})
}

// errBadRequest marks handler-level validation failures.
var errBadRequest = errors.New("bad request")

var inputErrors = []error{
	errBadRequest,
	grid.ErrEmptyGrid,
	grid.ErrNonRectangular,
	grid.ErrOutOfBounds,
	squirrel.ErrFormat,
	squirrel.ErrStructure,
	squirrel.ErrInputFormat,
	squirrel.ErrInvalidWalnuts,
	squirrel.ErrInvalidCapacity,
	squirrel.ErrInvalidCeiling,
	squirrel.ErrDepthLimit,
	squirrel.ErrCapacityRange,
	squirrel.ErrInvalidID,
	squirrel.ErrTooManyUnits,
	squirrel.ErrNegativeUnits,
}

func statusOf(err error) int {
	for _, target := range inputErrors {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}

	return http.StatusInternalServerError
}

// fail logs err and writes it with the matching status.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	reqID := middleware.GetReqID(r.Context())
	if status >= http.StatusInternalServerError {
		h.log.Errorw("request failed", "request_id", reqID, "path", r.URL.Path, "error", err)
	} else {
		h.log.Infow("request rejected", "request_id", reqID, "path", r.URL.Path, "error", err)
	}
	WriteError(w, status, err)
}
