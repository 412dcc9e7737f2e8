package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/aretw0/lineator/internal/metrics"
	"github.com/aretw0/lineator/pkg/domain"
	"github.com/aretw0/lineator/pkg/ports"
	"github.com/go-chi/chi/v5"
)

// Response headers set by POST /lineate.
const (
	HeaderCache = "X-Lineator-Cache"
	HeaderKey   = "X-Lineator-Key"
	HeaderTapes = "X-Lineator-Tapes"
)

// DefaultMaxBody bounds request bodies.
const DefaultMaxBody = 1 << 20

// Engine is the part of the lineator facade the server needs.
type Engine interface {
	Lineate(ctx context.Context, r io.Reader) (*domain.Lineation, error)
	Check(ctx context.Context, r io.Reader) (*domain.Machine, []domain.Warning, error)
}

// Server exposes an Engine over HTTP.
type Server struct {
	Engine  Engine
	Store   ports.ResultStore
	Locker  ports.DistributedLocker
	Metrics *metrics.Metrics
	Logger  *slog.Logger
	MaxBody int64
	LockTTL time.Duration
}

// Option configures a Server.
type Option func(*Server)

// WithStore enables the result cache.
func WithStore(store ports.ResultStore) Option {
	return func(s *Server) { s.Store = store }
}

// WithLocker serializes cache misses on the same input.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(s *Server) { s.Locker = locker }
}

// WithMetrics records cache and lineation metrics and serves GET /metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) { s.Metrics = m }
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.Logger = logger
		}
	}
}

// WithMaxBody bounds request bodies; non-positive values keep the default.
func WithMaxBody(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.MaxBody = n
		}
	}
}

// NewServer creates a Server.
func NewServer(engine Engine, opts ...Option) *Server {
	s := &Server{
		Engine:  engine,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		MaxBody: DefaultMaxBody,
		LockTTL: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewHandler creates the HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	return NewServer(engine, opts...).Routes()
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.Health)
	r.Post("/lineate", s.Lineate)
	r.Post("/validate", s.Validate)
	r.Get("/results/{key}", s.Result)
	if s.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.Metrics.Handler())
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Health handles GET /healthz.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Lineate handles POST /lineate. The body is a K-tape description; the
// response is the flattened machine as text.
func (s *Server) Lineate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	body, ok := s.readBody(w, r)
	if !ok {
		return
	}
	key := domain.Fingerprint(body)
	logger := s.Logger.With("key", key[:12])

	if rec, ok := s.cached(ctx, logger, key); ok {
		writeRecord(w, rec, "hit")
		return
	}

	if s.Locker != nil {
		unlock, err := s.Locker.Lock(ctx, key, s.LockTTL)
		if err != nil {
			logger.WarnContext(ctx, "Lock failed", "err", err)
			writeError(w, http.StatusServiceUnavailable, domain.KindInternal, "could not acquire lock")
			return
		}
		defer func() {
			if err := unlock(context.WithoutCancel(ctx)); err != nil {
				logger.WarnContext(ctx, "Unlock failed", "err", err)
			}
		}()
		// Another replica may have finished while we waited.
		if rec, ok := s.cached(ctx, logger, key); ok {
			writeRecord(w, rec, "hit")
			return
		}
	}

	start := time.Now()
	out, err := s.Engine.Lineate(ctx, bytes.NewReader(body))
	if s.Metrics != nil {
		s.Metrics.ObserveLineation(start, err)
	}
	if err != nil {
		logger.InfoContext(ctx, "Lineation rejected", "kind", domain.Kind(err), "err", err)
		writeDomainError(w, err)
		return
	}

	text, err := out.Flat.MarshalText()
	if err != nil {
		writeError(w, http.StatusInternalServerError, domain.KindInternal, err.Error())
		return
	}
	rec := domain.NewRecord(key, out, text)

	if s.Store != nil {
		if err := s.Store.Put(ctx, key, rec); err != nil {
			logger.WarnContext(ctx, "Failed to cache result", "err", err)
		}
	}

	writeRecord(w, rec, "miss")
}

func (s *Server) cached(ctx context.Context, logger *slog.Logger, key string) (*domain.Record, bool) {
	if s.Store == nil {
		return nil, false
	}
	rec, err := s.Store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrRecordNotFound) {
			logger.WarnContext(ctx, "Cache lookup failed", "err", err)
		}
		s.observeCache(false)
		return nil, false
	}
	s.observeCache(true)
	return rec, true
}

func (s *Server) observeCache(hit bool) {
	if s.Metrics != nil {
		s.Metrics.ObserveCache(hit)
	}
}

// ValidateResponse is the body of POST /validate.
type ValidateResponse struct {
	Valid       bool            `json:"valid"`
	Name        string          `json:"name,omitempty"`
	Tapes       int             `json:"tapes"`
	Transitions int             `json:"transitions"`
	TapeLibrary []domain.Symbol `json:"tape_library,omitempty"`
	Warnings    []WarningDTO    `json:"warnings,omitempty"`
	Error       *ErrorResponse  `json:"error,omitempty"`
}

// WarningDTO is a parse warning on the wire.
type WarningDTO struct {
	Origin  domain.Origin `json:"origin"`
	Message string        `json:"message"`
}

// Validate handles POST /validate. Invalid machines are reported in the body
// with status 200; only unreadable requests fail.
func (s *Server) Validate(w http.ResponseWriter, r *http.Request) {
	body, ok := s.readBody(w, r)
	if !ok {
		return
	}

	m, warnings, err := s.Engine.Check(r.Context(), bytes.NewReader(body))

	resp := ValidateResponse{Valid: err == nil}
	for _, wn := range warnings {
		resp.Warnings = append(resp.Warnings, WarningDTO{Origin: wn.Origin, Message: wn.Message})
	}
	if m != nil {
		resp.Name = m.Name()
		resp.Tapes = m.Tapes()
		resp.Transitions = m.Len()
		resp.TapeLibrary = m.TapeLibrary()
	}
	if err != nil {
		resp.Error = &ErrorResponse{Error: err.Error(), Kind: domain.Kind(err)}
	}
	writeJSON(w, http.StatusOK, resp)
}

// Result handles GET /results/{key}.
func (s *Server) Result(w http.ResponseWriter, r *http.Request) {
	if s.Store == nil {
		writeError(w, http.StatusNotFound, "not_found", "result cache is disabled")
		return
	}
	key := chi.URLParam(r, "key")
	rec, err := s.Store.Get(r.Context(), key)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			writeError(w, http.StatusNotFound, "not_found", fmt.Sprintf("no result for %q", key))
			return
		}
		writeError(w, http.StatusInternalServerError, domain.KindInternal, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.MaxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request_too_large",
				fmt.Sprintf("body exceeds %d bytes", tooLarge.Limit))
			return nil, false
		}
		writeError(w, http.StatusBadRequest, "bad_request", "unreadable body")
		return nil, false
	}
	return body, true
}

// ErrorResponse is the JSON body of failed requests.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

func writeDomainError(w http.ResponseWriter, err error) {
	kind := domain.Kind(err)
	status := http.StatusUnprocessableEntity
	switch {
	case kind == domain.KindInternal:
		status = http.StatusInternalServerError
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			status = http.StatusServiceUnavailable
		}
	case kind == domain.KindResourceLimit:
		status = http.StatusRequestEntityTooLarge
	}
	writeError(w, status, kind, err.Error())
}

func writeError(w http.ResponseWriter, status int, kind, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg, Kind: kind})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeRecord(w http.ResponseWriter, rec *domain.Record, cache string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set(HeaderCache, cache)
	w.Header().Set(HeaderKey, rec.Key)
	w.Header().Set(HeaderTapes, strconv.Itoa(rec.Tapes))
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, rec.Output)
}
