// Package server exposes pypin's resolution over HTTP.
//
//	GET  /healthz
//	GET  /v1/packages/{name}?date=2017-01-01
//	POST /v1/manifests?date=2017-01-01   (body: requirements text)
//
// Each request gets its own resolver and result cache. Upstream fetches are
// shared through the fetcher passed to [New], which should collapse
// concurrent requests for the same package (see resolve.SharedFetcher).
package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/pypin/pkg/resolve"
)

const (
	defaultMaxBody  = 1 << 20
	shutdownTimeout = 5 * time.Second
)

// Options configures a Server.
type Options struct {
	Logger       *log.Logger // request and error logging (default: log.Default())
	MaxBodyBytes int64       // manifest size limit (default 1 MiB)
}

// Server is the pypin HTTP API.
type Server struct {
	fetcher resolve.Fetcher
	logger  *log.Logger
	maxBody int64
	router  chi.Router
}

// New creates a Server resolving through fetcher, which must be safe for
// concurrent use.
func New(fetcher resolve.Fetcher, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = defaultMaxBody
	}
	s := &Server{
		fetcher: fetcher,
		logger:  opts.Logger,
		maxBody: opts.MaxBodyBytes,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/packages/{name}", s.handlePackage)
		r.Post("/manifests", s.handleManifest)
	})
	return r
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Info("server stopped")
	return nil
}
