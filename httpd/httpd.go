// Package httpd exposes a media types table over HTTP.
package httpd

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/indigo-web/mediatype"
	"github.com/indigo-web/mediatype/config"
	"github.com/indigo-web/mediatype/internal/logger"
	"github.com/indigo-web/mediatype/internal/metric"
)

const (
	logSender       = "httpd"
	shutdownTimeout = 10 * time.Second
)

// ErrNoSource is returned when a reload is requested, but the table isn't backed by a file.
var ErrNoSource = errors.New("the table has no mime.types file to reload from")

// Reloader repopulates the table from its source.
type Reloader interface {
	Reload() error
}

// Server serves lookups against the table. Reloads are served only if a reloader is set.
type Server struct {
	table    *mediatype.Table
	reloader Reloader
	config   config.HTTPD
	router   chi.Router
}

func NewServer(table *mediatype.Table, reloader Reloader, cfg config.HTTPD) *Server {
	s := &Server{
		table:    table,
		reloader: reloader,
		config:   cfg,
	}
	s.initializeRouter()
	metric.TableSize(table.Len())

	return s
}

// Handler returns the HTTP handler serving every route.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) initializeRouter() {
	s.router = chi.NewRouter()
	s.router.Use(middleware.RequestID)
	s.router.Use(newStructuredLogger(logger.GetLogger()))
	s.router.Use(middleware.Recoverer)

	if len(s.config.MetricsPath) > 0 {
		metric.AddMetricsEndpoint(s.config.MetricsPath, s.router)
	}

	s.router.Get("/types", s.listTypes)
	s.router.Get("/types/{suffix}", s.getType)
	s.router.Put("/types/{suffix}", s.putType)
	s.router.Get("/default", s.getDefault)
	s.router.Put("/default", s.putDefault)
	s.router.Get("/lookup", s.lookup)
	s.router.Post("/reload", s.reload)
}

// Serve listens on the configured address until the context is done, then shuts down
// gracefully. If autocert domains are configured, HTTPS is served instead.
func (s *Server) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.BindAddress)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if len(s.config.Autocert.Domains) > 0 {
			srv.TLSConfig = autocertTLS(s.config.Autocert)
			logger.Info(logSender, "serving HTTPS on %s for %v", ln.Addr(), s.config.Autocert.Domains)
			errCh <- srv.ServeTLS(ln, "", "")
			return
		}

		logger.Info(logSender, "serving HTTP on %s", ln.Addr())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err = <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logger.Info(logSender, "shutting down")
	if err = srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if err = <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
