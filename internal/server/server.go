// Package server exposes the generation, layout, export and project
// operations over HTTP.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"go.uber.org/zap"

	"github.com/skylarmartinex/pagesmith/internal/config"
	"github.com/skylarmartinex/pagesmith/internal/export"
	"github.com/skylarmartinex/pagesmith/internal/generate"
	"github.com/skylarmartinex/pagesmith/internal/images"
	"github.com/skylarmartinex/pagesmith/internal/store"
)

// Server routes API requests to the document pipeline.
type Server struct {
	router    chi.Router
	logger    *zap.Logger
	formats   *export.Registry
	providers *generate.Registry
	projects  *store.Projects
	searcher  images.Searcher
	cfg       config.ServerConfig

	defaultProvider string
	defaultOptions  export.Options

	httpServer *http.Server
}

// Deps carries the collaborators the server needs.
type Deps struct {
	Logger    *zap.Logger
	Formats   *export.Registry
	Providers *generate.Registry
	Projects  *store.Projects

	// Searcher is optional; when nil the image endpoints report the
	// feature as unconfigured and generation skips image enrichment.
	Searcher images.Searcher

	DefaultProvider string
	DefaultOptions  export.Options
}

// New creates the server and mounts its routes.
func New(cfg config.ServerConfig, deps Deps) *Server {
	s := &Server{
		router:          chi.NewRouter(),
		logger:          deps.Logger,
		formats:         deps.Formats,
		providers:       deps.Providers,
		projects:        deps.Projects,
		searcher:        deps.Searcher,
		cfg:             cfg,
		defaultProvider: deps.DefaultProvider,
		defaultOptions:  deps.DefaultOptions,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.logRequests)
	s.router.Use(middleware.Recoverer)

	rate := s.cfg.RateLimit
	if rate <= 0 {
		rate = 60
	}
	s.router.Use(httprate.LimitByIP(rate, time.Minute))

	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/generate", s.handleGenerate)
		r.Post("/layout", s.handleLayout)
		r.Post("/export/{format}", s.handleExport)
		r.Get("/images/search", s.handleImageSearch)

		r.Route("/projects", func(r chi.Router) {
			r.Post("/", s.handleProjectCreate)
			r.Get("/{id}", s.handleProjectGet)
			r.Put("/{id}", s.handleProjectUpdate)
			r.Delete("/{id}", s.handleProjectDelete)
		})
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("took", time.Since(start)))
	})
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Start listens on the configured address until the context is cancelled,
// then drains in-flight requests within the shutdown timeout.
func (s *Server) Start(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", s.cfg.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errc <- err
		}
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	timeout := s.cfg.ShutdownTimeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.logger.Info("shutting down")
	return s.httpServer.Shutdown(shutdownCtx)
}
