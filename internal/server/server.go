// Package server exposes the assessment over HTTP as a JSON API plus report
// downloads.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Veraticus/gxpassess/internal/assessment"
	"github.com/Veraticus/gxpassess/internal/report"
	"github.com/Veraticus/gxpassess/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// Server routes HTTP requests to the assessment service.
type Server struct {
	router  *chi.Mux
	svc     *assessment.Service
	reports *report.Generator
	logger  logger.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger for access and error logs.
func WithLogger(log logger.Logger) Option {
	return func(s *Server) { s.logger = log }
}

// Route describes an endpoint on the index page.
type Route struct {
	Method      string `json:"method"`
	Path        string `json:"path"`
	Description string `json:"description"`
}

// Routes lists the navigation surface.
func Routes() []Route {
	return []Route{
		{Method: "GET", Path: "/", Description: "route index"},
		{Method: "GET", Path: "/api/company", Description: "registered company"},
		{Method: "PUT", Path: "/api/company", Description: "register company"},
		{Method: "GET", Path: "/api/dashboard", Description: "company, latest result and draft progress"},
		{Method: "GET", Path: "/api/catalog", Description: "question catalog"},
		{Method: "GET", Path: "/api/draft", Description: "autosaved draft"},
		{Method: "PUT", Path: "/api/draft", Description: "autosave draft"},
		{Method: "DELETE", Path: "/api/draft", Description: "discard draft"},
		{Method: "POST", Path: "/api/assessments?edit={id}", Description: "complete assessment"},
		{Method: "GET", Path: "/api/assessments", Description: "assessments, newest first"},
		{Method: "GET", Path: "/api/assessments/{id}", Description: "assessment record"},
		{Method: "GET", Path: "/api/assessments/{id}/systems", Description: "systems inventory"},
		{Method: "PUT", Path: "/api/assessments/{id}/systems", Description: "replace systems inventory"},
		{Method: "GET", Path: "/reports?assessment={id}&format={format}", Description: "report download"},
	}
}

// New creates the server.
func New(svc *assessment.Service, reports *report.Generator, opts ...Option) *Server {
	r := chi.NewRouter()
	s := &Server{
		router:  r,
		svc:     svc,
		reports: reports,
		logger:  logger.GetGlobalLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r.Use(middleware.RequestID)
	r.Use(s.accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Route("/api", func(r chi.Router) {
		r.Get("/company", s.handleGetCompany)
		r.Put("/company", s.handlePutCompany)
		r.Get("/dashboard", s.handleDashboard)
		r.Get("/catalog", s.handleCatalog)

		r.Get("/draft", s.handleGetDraft)
		r.Put("/draft", s.handlePutDraft)
		r.Delete("/draft", s.handleDeleteDraft)

		r.Route("/assessments", func(r chi.Router) {
			r.Get("/", s.handleListAssessments)
			r.Post("/", s.handleCompleteAssessment)
			r.Get("/{id}", s.handleGetAssessment)
			r.Get("/{id}/systems", s.handleGetSystems)
			r.Put("/{id}/systems", s.handlePutSystems)
		})
	})
	r.Get("/reports", s.handleReport)

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is canceled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Serving HTTP", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		<-errCh
		return nil
	}
}

// accessLogger logs every request once it completes.
func (s *Server) accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		r = r.WithContext(logger.ContextWithRequestID(r.Context(), middleware.GetReqID(r.Context())))

		defer func() {
			logger.WithContext(r.Context(), s.logger).Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
