package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/biaslens-dev/biaslens/pkg/usecase"
	"github.com/biaslens-dev/biaslens/pkg/utils/logging"
)

type Server struct {
	router *chi.Mux
	authUC AuthUseCase
}

type Options func(*Server)

func WithAuth(authUC AuthUseCase) Options {
	return func(s *Server) {
		s.authUC = authUC
	}
}

func New(uc *usecase.UseCases, opts ...Options) (*Server, error) {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		authUC: uc.Auth,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", healthHandler)

	// Auth endpoints
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/logout", authLogoutHandler(s.authUC))
		r.Get("/me", authMeHandler(s.authUC))
	})

	// Analysis and report endpoints (authenticated)
	r.Route("/api", func(r chi.Router) {
		r.Use(authMiddleware(s.authUC))

		r.Post("/analyses", analyzeHandler(uc.Analyze))

		r.Route("/reports", func(r chi.Router) {
			r.Get("/", listReportsHandler(uc.Report))
			r.Get("/{reportID}", getReportHandler(uc.Report))
			r.Delete("/{reportID}", deleteReportHandler(uc.Report))
		})
	})

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
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
