package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/reneeyyx/Safety1st/pkg/usecase"
	"github.com/reneeyyx/Safety1st/pkg/utils/logging"
)

type Server struct {
	router *chi.Mux
	uc     *usecase.UseCases

	analysisEnabled bool
}

type Options func(*Server)

// WithAnalysis exposes the analyze endpoint. It is disabled when the server
// runs without LLM credentials.
func WithAnalysis(enabled bool) Options {
	return func(s *Server) {
		s.analysisEnabled = enabled
	}
}

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler)

		r.Route("/crash-risk", func(r chi.Router) {
			r.Post("/calculate", s.calculateHandler)
			if s.analysisEnabled {
				r.Post("/analyze", s.analyzeHandler)
			}
		})

		r.Route("/simulations", func(r chi.Router) {
			r.Get("/", s.listSimulationsHandler)
			r.Get("/{id}", s.getSimulationHandler)
			r.Delete("/{id}", s.deleteSimulationHandler)
		})

		r.Get("/test/example-crash", s.exampleCrashHandler)
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
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}
