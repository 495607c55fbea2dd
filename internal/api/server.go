// Package api implements the posterkit HTTP rendering service.
//
// The service exposes two endpoints:
//
//   - POST /generate: render a poster configuration to PNG, returning either
//     a base64 data URL or the path of a file written to the output directory
//   - GET /healthz: liveness probe
//
// Responses use a uniform envelope:
//
//	{"success": true, "data": "data:image/png;base64,...", "error": null}
//	{"success": false, "data": null, "error": "invalid color"}
//
// Encoded output for base64 requests is cached in a [cache.Cache] keyed by a
// hash of the configuration, so identical requests skip rendering entirely.
package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"path/filepath"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/posterkit/posterkit/pkg/cache"
	pkerrors "github.com/posterkit/posterkit/pkg/errors"
	"github.com/posterkit/posterkit/pkg/observability"
	"github.com/posterkit/posterkit/pkg/poster"
)

// maxRequestBytes caps the request body size. Poster configurations are
// small JSON documents; inline data-URL images push the practical limit up.
const maxRequestBytes = 8 << 20

// Server is the HTTP rendering service.
type Server struct {
	cfg    Config
	cache  cache.Cache
	logger *charmlog.Logger
}

// NewServer creates a Server with the given configuration and render output
// cache. A nil cache disables caching; a nil logger falls back to the
// default charmbracelet logger.
//
// The cache is wrapped in an app-scoped namespace so a shared backend (a
// redis instance serving several services) never collides on keys.
func NewServer(cfg Config, c cache.Cache, logger *charmlog.Logger) *Server {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = charmlog.Default()
	}
	return &Server{cfg: cfg, cache: cache.NewScoped(c, "posterkit:"), logger: logger}
}

// Handler returns the chi router with all routes and middleware mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealthz)
	r.Post("/generate", s.handleGenerate)
	return r
}

// ListenAndServe runs the server until ctx is cancelled, then shuts it down
// gracefully with a 10 second drain window.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Infof("Listening on %s", s.cfg.Addr)
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

// logRequests logs one line per request with method, path, status, size,
// duration, and the chi request ID.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).Round(time.Microsecond),
			"id", middleware.GetReqID(r.Context()),
		)
	})
}

// generateRequest is the POST /generate request body. Config is kept raw so
// it can be hashed for the cache key before decoding.
type generateRequest struct {
	Config json.RawMessage `json:"config"`
	Format string          `json:"format"`
}

// generateResponse is the uniform response envelope.
type generateResponse struct {
	Success bool    `json:"success"`
	Data    *string `json:"data"`
	Error   *string `json:"error"`
}

// Output formats accepted by POST /generate.
const (
	formatBase64 = "base64"
	formatFile   = "file"
)

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleGenerate renders the posted configuration. Malformed requests get a
// 400, render failures a 500, both with the error in the envelope.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var req generateRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Format == "" {
		req.Format = formatBase64
	}
	if req.Format != formatBase64 && req.Format != formatFile {
		writeError(w, http.StatusBadRequest, pkerrors.New(pkerrors.ErrCodeInvalidFormat,
			"unknown format: %s", req.Format))
		return
	}

	data, err := s.generate(r.Context(), &req)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, generateResponse{Success: true, Data: &data})
}

// generate renders the request, consulting the output cache for base64
// requests. File requests always render since they must produce a new file.
func (s *Server) generate(ctx context.Context, req *generateRequest) (string, error) {
	key := cache.RenderKey(req.Config, req.Format)
	if req.Format == formatBase64 {
		if data, ok, err := s.cache.Get(ctx, key); ok && err == nil {
			observability.Cache().OnCacheHit(ctx, "render")
			return string(data), nil
		}
		observability.Cache().OnCacheMiss(ctx, "render")
	}

	p, err := poster.Decode(req.Config)
	if err != nil {
		return "", err
	}
	gen, err := poster.FromPoster(p)
	if err != nil {
		return "", err
	}

	switch req.Format {
	case formatFile:
		path := filepath.Join(s.cfg.OutputDir, uuid.NewString()+".png")
		if err := gen.GenerateFile(ctx, path); err != nil {
			return "", err
		}
		return path, nil
	default:
		data, err := gen.GenerateBase64(ctx)
		if err != nil {
			return "", err
		}
		if err := s.cache.Set(ctx, key, []byte(data), s.cfg.Cache.TTL.Duration); err == nil {
			observability.Cache().OnCacheSet(ctx, "render", len(data))
		}
		return data, nil
	}
}

// statusFor maps render errors to HTTP status codes. Configuration problems
// are the client's fault; everything else is a server-side failure.
func statusFor(err error) int {
	switch pkerrors.GetCode(err) {
	case pkerrors.ErrCodeInvalidConfig, pkerrors.ErrCodeInvalidInput, pkerrors.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	msg := pkerrors.UserMessage(err)
	writeJSON(w, status, generateResponse{Success: false, Error: &msg})
}
