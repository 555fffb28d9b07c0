package handlers

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pigi/proxy/internal/adapters/auth"
	"github.com/pigi/proxy/internal/adapters/github"
	"github.com/pigi/proxy/internal/adapters/registry"
	"github.com/pigi/proxy/internal/api/templates"
	"github.com/pigi/proxy/internal/core/services"
	"github.com/pigi/proxy/internal/util/logging"
)

// Fixed response bodies. Upstream failure detail and registry contents never
// reach the client.
const (
	msgNotFound    = "page not found"
	msgServerError = "internal server error"
)

// Handler holds the read-only per-process state shared by all requests: the
// registry, the fallback credential, and the upstream location. It is built
// once at startup and never mutated.
type Handler struct {
	registry      *registry.Registry
	fallbackToken string
	logger        zerolog.Logger

	// newClient builds the per-request upstream client. Kept as a field so
	// tests can observe handler behavior against a fake upstream.
	newClient func(token string) services.ReleaseClient
}

// New creates a Handler proxying to the GitHub API at upstreamURL.
func New(reg *registry.Registry, upstreamURL, fallbackToken string, logger zerolog.Logger) *Handler {
	return &Handler{
		registry:      reg,
		fallbackToken: fallbackToken,
		logger:        logger,
		newClient: func(token string) services.ReleaseClient {
			return github.New(upstreamURL, token)
		},
	}
}

// Router returns the chi router with all routes.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(h.requestIDMiddleware)
	r.Use(h.loggingMiddleware)

	r.Get("/simple", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/simple/", http.StatusPermanentRedirect)
	})
	r.Get("/simple/", h.Index)
	r.Get("/simple/{package}", h.RedirectPackage)
	r.Get("/simple/{package}/", h.Package)
	r.Get("/simple/{package}/{assetID}/{assetName}", h.Asset)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, msgNotFound)
	})

	return r
}

// requestIDMiddleware adds a unique request ID to each request.
func (h *Handler) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		ctx := logging.WithRequestID(r.Context(), id)
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// loggingMiddleware logs each request.
func (h *Handler) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)
		logging.LogRequest(h.logger, r.Context(), r.Method, r.URL.Path, rw.status, rw.written, time.Since(start))
	})
}

// Index handles GET /simple/ — the full package listing. No upstream call,
// no auth.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.RenderIndex(w, h.registry.All()); err != nil {
		h.logger.Error().Err(err).Str("request_id", logging.RequestID(r.Context())).Msg("rendering index")
	}
}

// RedirectPackage handles GET /simple/{package} — permanent redirect to the
// canonical trailing-slash form, before any registry lookup.
func (h *Handler) RedirectPackage(w http.ResponseWriter, r *http.Request) {
	pkg := chi.URLParam(r, "package")
	http.Redirect(w, r, fmt.Sprintf("/simple/%s/", url.PathEscape(pkg)), http.StatusPermanentRedirect)
}

// Package handles GET /simple/{package}/ — the artifact listing for one
// package.
func (h *Handler) Package(w http.ResponseWriter, r *http.Request) {
	pkg := chi.URLParam(r, "package")

	repo, ok := h.registry.Get(pkg)
	if !ok {
		writeError(w, http.StatusNotFound, msgNotFound)
		return
	}

	client := h.newClient(auth.Resolve(r, h.fallbackToken))
	assets, err := client.ListAssets(r.Context(), repo.Owner, repo.Name)
	if err != nil {
		h.logger.Error().Err(err).
			Str("request_id", logging.RequestID(r.Context())).
			Str("package", pkg).
			Msg("listing upstream assets")
		writeError(w, http.StatusInternalServerError, msgServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.RenderPackage(w, pkg, assets); err != nil {
		h.logger.Error().Err(err).Str("request_id", logging.RequestID(r.Context())).Msg("rendering package listing")
	}
}

// Asset handles GET /simple/{package}/{assetID}/{assetName} — streams one
// asset's bytes from upstream to the client. Resolution is strictly by the
// numeric id; the trailing name segment only keeps URLs readable.
func (h *Handler) Asset(w http.ResponseWriter, r *http.Request) {
	pkg := chi.URLParam(r, "package")

	repo, ok := h.registry.Get(pkg)
	if !ok {
		writeError(w, http.StatusNotFound, msgNotFound)
		return
	}

	assetID, err := strconv.ParseInt(chi.URLParam(r, "assetID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, msgNotFound)
		return
	}

	client := h.newClient(auth.Resolve(r, h.fallbackToken))
	stream, err := client.OpenAsset(r.Context(), repo.Owner, repo.Name, assetID)
	if err != nil {
		h.logger.Error().Err(err).
			Str("request_id", logging.RequestID(r.Context())).
			Str("package", pkg).
			Int64("asset_id", assetID).
			Msg("opening upstream asset")
		writeError(w, http.StatusInternalServerError, msgServerError)
		return
	}
	defer stream.Body.Close()

	contentType := stream.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	if stream.ContentLength >= 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(stream.ContentLength, 10))
	}
	w.WriteHeader(http.StatusOK)

	// io.Copy keeps backpressure intact: bytes move chunk by chunk and the
	// asset is never held in memory. Once the header is out a mid-stream
	// failure can only be logged.
	if _, err := io.Copy(w, stream.Body); err != nil {
		h.logger.Error().Err(err).
			Str("request_id", logging.RequestID(r.Context())).
			Str("package", pkg).
			Int64("asset_id", assetID).
			Msg("streaming asset response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	io.WriteString(w, msg)
}

// responseWriter wraps http.ResponseWriter to capture status and bytes written.
type responseWriter struct {
	http.ResponseWriter
	status  int
	written int64
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.written += int64(n)
	return n, err
}

// Flush passes through so streamed asset bytes are not held back by the
// logging wrapper.
func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
