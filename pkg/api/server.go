package api

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MarquinhoCF/alwabp-solver/pkg/cache"
	"github.com/MarquinhoCF/alwabp-solver/pkg/store"
)

// DefaultSolveTimeout caps the wall-clock budget of one solve request.
const DefaultSolveTimeout = 60 * time.Second

// Server holds the dependencies of the HTTP API.
type Server struct {
	logger       *log.Logger
	cache        cache.Cache
	keyer        cache.Keyer
	store        store.Store
	solveTimeout time.Duration
}

// Option configures a [Server].
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *log.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithCache sets the solution cache backend.
func WithCache(c cache.Cache) Option {
	return func(s *Server) { s.cache = c }
}

// WithStore sets the run archive backend.
func WithStore(st store.Store) Option {
	return func(s *Server) { s.store = st }
}

// WithSolveTimeout caps the per-request solve budget. Client-supplied
// time limits above the cap are clamped.
func WithSolveTimeout(d time.Duration) Option {
	return func(s *Server) { s.solveTimeout = d }
}

// New creates a server with the given options. Without options the
// server uses a null cache, an in-memory store, and the default logger.
func New(opts ...Option) *Server {
	s := &Server{
		logger:       log.Default(),
		cache:        cache.NewNullCache(),
		keyer:        cache.NewDefaultKeyer(),
		store:        store.NewMemoryStore(),
		solveTimeout: DefaultSolveTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router builds the HTTP handler.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/health", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/solve", s.handleSolve)
		r.Get("/runs", s.handleListRuns)
		r.Get("/runs/{id}", s.handleGetRun)
		r.Delete("/runs/{id}", s.handleDeleteRun)
	})
	return r
}

// logRequests logs method, path, status, and latency per request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
