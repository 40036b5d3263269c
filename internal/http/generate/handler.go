package generate

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	gensvc "github.com/blastlab/testgen/internal/service/generate"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
)

// GenerateRequest is the body accepted by POST /api/generate.
type GenerateRequest struct {
	Requirement string `json:"requirement"`
}

// ErrorResponse is the failure envelope of /api/generate.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

const (
	msgRequirementRequired = "Requirement is required"
	msgGenerateFailed      = "Failed to generate test cases"
	msgInvalidBody         = "Invalid JSON body"
)

// Handler bundles dependencies for the generate endpoint.
type Handler struct {
	gen gensvc.Generator
	log zerolog.Logger
}

// New constructs a new Handler.
func New(gen gensvc.Generator, log zerolog.Logger) *Handler {
	return &Handler{gen: gen, log: log}
}

// Router wires the handler into a chi router at /api/generate, with /healthz,
// CORS for browser clients and a recoverer so a failing request never takes
// the process down.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(h.log))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "Connect-Protocol-Version"},
		MaxAge:         300,
	}))
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Post("/api/generate", h.postGenerate)
	return r
}

// postGenerate handles POST /api/generate with a single, non-streaming response.
func (h *Handler) postGenerate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: msgInvalidBody, Details: err.Error()})
		return
	}

	out, err := h.gen.Generate(r.Context(), req.Requirement)
	if err != nil {
		status, body := errorFor(err)
		writeJSON(w, status, body)
		return
	}
	writeRawJSON(w, http.StatusOK, out)
}

// errorFor maps service errors onto the HTTP contract.
func errorFor(err error) (int, ErrorResponse) {
	if errors.Is(err, gensvc.ErrRequirementRequired) {
		return http.StatusBadRequest, ErrorResponse{Error: msgRequirementRequired}
	}
	return http.StatusInternalServerError, ErrorResponse{Error: msgGenerateFailed, Details: err.Error()}
}

// writeJSON writes a value as JSON with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeRawJSON writes an already encoded document.
func writeRawJSON(w http.ResponseWriter, status int, doc json.RawMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(doc)
}

// requestLogger logs one line per request.
func requestLogger(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				ev := log.Info()
				if ww.Status() >= http.StatusInternalServerError {
					ev = log.Warn()
				}
				ev.Str("request_id", middleware.GetReqID(r.Context())).
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Int("status", ww.Status()).
					Int("bytes", ww.BytesWritten()).
					Dur("elapsed", time.Since(start)).
					Msg("http request")
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
