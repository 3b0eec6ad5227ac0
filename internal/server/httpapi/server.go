// Package httpapi exposes the storefront account API as JSON over HTTP.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/storefront/internal/logging"
	"github.com/dmitrijs2005/storefront/internal/server/services"
	"github.com/dmitrijs2005/storefront/internal/server/session"
	"github.com/prometheus/client_golang/prometheus"
)

const shutdownTimeout = 10 * time.Second

// Options carries the HTTP-facing settings of the server.
type Options struct {
	Address     string
	SecretKey   string
	FrontendURL string
	Cookie      session.CookieOptions
}

type HTTPServer struct {
	address     string
	users       *services.UserService
	finder      session.UserFinder
	logger      logging.Logger
	metrics     *Metrics
	registry    *prometheus.Registry
	jwtSecret   []byte
	frontendURL string
	cookie      session.CookieOptions
}

// NewHTTPServer wires the API around the user service. finder resolves the
// session user on every request; reg receives the server's metrics and is
// served on /metrics.
func NewHTTPServer(opts Options, l logging.Logger, us *services.UserService, finder session.UserFinder, reg *prometheus.Registry) *HTTPServer {
	return &HTTPServer{
		address:     opts.Address,
		users:       us,
		finder:      finder,
		logger:      l.With("module", "http_server"),
		metrics:     NewMetrics(reg),
		registry:    reg,
		jwtSecret:   []byte(opts.SecretKey),
		frontendURL: opts.FrontendURL,
		cookie:      opts.Cookie,
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.serve(ctx, listen)
}

func (s *HTTPServer) serve(ctx context.Context, listen net.Listener) error {
	srv := &http.Server{
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP server shutdown failed", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	<-done
	return nil
}
