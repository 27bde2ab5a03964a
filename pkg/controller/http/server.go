package http

import (
	"net/http"
	"time"

	"github.com/classroom-tools/attendctl/pkg/domain/interfaces"
	"github.com/classroom-tools/attendctl/pkg/utils/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is a development stand-in for the attendance backend REST API
type Server struct {
	router    *chi.Mux
	backend   interfaces.Backend
	traceback bool
}

type Options func(*Server)

// WithTraceback controls whether 500 responses carry a "traceback" field
func WithTraceback(enabled bool) Options {
	return func(s *Server) {
		s.traceback = enabled
	}
}

// New builds the router serving the eight console endpoints and /health
func New(backend interfaces.Backend, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router:    r,
		backend:   backend,
		traceback: true,
	}
	for _, opt := range opts {
		opt(s)
	}

	r.Use(middleware.RequestID)
	r.Use(requestLogger)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Get("/workspaces", s.listWorkspaces)
		r.Post("/workspaces/add", s.addWorkspace)
		r.Post("/workspaces/delete", s.deleteWorkspace)
		r.Post("/find-thread", s.findThread)
		r.Post("/run-attendance", s.runAttendance)
		r.Get("/schedule/{workspace}", s.getSchedule)
		r.Post("/schedule", s.saveSchedule)
		r.Get("/schedules/all", s.listSchedules)
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.From(r.Context()).Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

// requestLogger binds a logger carrying the request id to the context
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		logger := logging.Default().With("request_id", middleware.GetReqID(ctx))
		next.ServeHTTP(w, r.WithContext(logging.With(ctx, logger)))
	})
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]any{"success": true, "status": "ok"})
}
