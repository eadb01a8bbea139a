package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloud-cli/gw"
	"github.com/cloud-cli/gw/gateway"
	"github.com/cloud-cli/gw/http/middleware"
	"github.com/cloud-cli/gw/http/router"
	"github.com/cloud-cli/gw/logger"
	"github.com/cloud-cli/gw/metric"
	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/multierr"
)

const shutdownTimeout = 5 * time.Second

// A Server manages and exposes all components of a gateway process to one another.
//
// Resources added to a Server are served by its *gateway.Gateway.
type Server struct {
	*gateway.Gateway

	cancel      context.CancelFunc
	ctx         context.Context
	env         gw.Environment
	idem        middleware.IdempotencyCacher
	l           logger.Logger
	metrics     *metric.Metrics
	metricsPath string
	mws         []middleware.Adapter
	prefix      string
	r           *router.Router
	srv         *http.Server
}

// New constructs a *Server from the provided options.
// Default options are applied first followed by the options passed into New.
// Options supplied to New overwrite default configurations.
func New(opts ...ServerOption) (*Server, error) {
	s := new(Server)
	followups := make([]OptFollowup, 0)

	// NOTE: some options require data from others,
	// so configure the *Server in the OptFollowups they return
	// once every ServerOption has run.
	for _, opt := range append(defaultOpts(), opts...) {
		fn, err := opt(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", gw.ErrBadConfig, err)
		}

		if fn != nil {
			followups = append(followups, fn)
		}
	}

	for _, fn := range followups {
		if err := fn(); err != nil {
			return nil, fmt.Errorf("%w: %s", gw.ErrBadConfig, err)
		}
	}

	return s, nil
}

func (s *Server) EmitEnv() gw.Environment                            { return s.env }
func (s *Server) EmitIdempotencyCache() middleware.IdempotencyCacher { return s.idem }
func (s *Server) EmitLogger() logger.Logger                          { return s.l }
func (s *Server) EmitMetrics() *metric.Metrics                       { return s.metrics }
func (s *Server) EmitRouter() *router.Router                         { return s.r }
func (s *Server) EmitServer() *http.Server                           { return s.srv }

// ServeHTTP responds to an HTTP request the way the running *Server would.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.r.ServeHTTP(w, r)
}

// Guide begins the web server.
//
// These, and (*Server).Shutdown, stop Guide:
//
//   - cancelling the context.Context set with WithContext
//   - os.Interrupt
//   - syscall.SIGHUP
//   - syscall.SIGINT
//   - syscall.SIGQUIT
//   - syscall.SIGTERM
func (s *Server) Guide() error {
	ctx, cancel := context.WithCancel(s.ctx)
	defer cancel()
	s.cancel = cancel

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGHUP, syscall.SIGINT, syscall.SIGQUIT, syscall.SIGTERM)
	defer signal.Stop(ch)

	go func() {
		select {
		case sig := <-ch:
			s.l.Info(fmt.Sprint("received shutdown signal: ", sig), nil)
			cancel()
		case <-ctx.Done():
		}
	}()

	errc := make(chan error, 1)
	go func() {
		s.l.Info(fmt.Sprintf("running web server at %s", s.srv.Addr), nil)
		if err := s.srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			err = fmt.Errorf("could not listen: %w", err)
			s.l.Error(err.Error(), &logger.LogContext{Type: gw.ErrorLogType, Time: time.Now(), Error: err})
			errc <- err
		}
	}()

	select {
	case <-ctx.Done():
		return s.Shutdown()
	case err := <-errc:
		return multierr.Append(err, s.closeIdempotencyCache())
	}
}

// Shutdown shuts down the web server, waiting on in-flight requests,
// then closes the idempotency cache.
// Errors from both steps are combined.
func (s *Server) Shutdown() error {
	if s.cancel != nil {
		s.cancel()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.l.Info("shutting down web server", nil)

	var err error
	if srvErr := s.srv.Shutdown(shutdownCtx); srvErr != nil && !errors.Is(srvErr, http.ErrServerClosed) {
		err = fmt.Errorf("could not shutdown: %w", srvErr)
	}

	if err = multierr.Append(err, s.closeIdempotencyCache()); err != nil {
		s.l.Error(err.Error(), &logger.LogContext{Type: gw.ErrorLogType, Time: time.Now(), Error: err})
		return err
	}

	s.l.Info("web server shutdown successfully", nil)
	return nil
}

func (s *Server) closeIdempotencyCache() error {
	c, ok := s.idem.(io.Closer)
	if !ok {
		return nil
	}

	if err := c.Close(); err != nil {
		return fmt.Errorf("could not close idempotency cache: %w", err)
	}

	return nil
}
