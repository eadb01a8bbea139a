package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/cloud-cli/gw"
	"github.com/cloud-cli/gw/gateway"
	"github.com/cloud-cli/gw/http/middleware"
	"github.com/cloud-cli/gw/http/router"
	"github.com/cloud-cli/gw/logger"
)

// A ServerOption configures a *Server either (1) directly, immediately upon being called
// or (2) in the OptFollowup it returns.
// Some ServerOptions require data in others and thus an OptFollowup can be returned
// in order to be called at a later time when that data is available.
//
// Every exported ServerOption is of the first kind;
// the defaults New applies fill in whatever they left unset in an OptFollowup.
type ServerOption func(s *Server) (OptFollowup, error)
type OptFollowup func() error

// WithContext sets the context.Context whose cancellation stops the *Server,
// which is also the base context of every request.
func WithContext(ctx context.Context) ServerOption {
	return func(s *Server) (OptFollowup, error) {
		if ctx == nil {
			return nil, fmt.Errorf("%w: nil context", gw.ErrNotValid)
		}

		s.ctx = ctx
		return nil, nil
	}
}

// WithEnv casts the provided string into a valid gw.Environment,
// or, reads from the environment variable named by envVar a valid gw.Environment.
//
// If both fail, the default gw.Environment is set to gw.Development.
func WithEnv(envVar string) ServerOption {
	return func(s *Server) (OptFollowup, error) {
		e := gw.Environment(envVar)
		if err := e.Valid(); err != nil {
			e = gw.EnvVarOrEnv(envVar, gw.Development)
		}

		s.env = e
		return nil, nil
	}
}

// WithGateway serves the provided *gateway.Gateway instead of one configured from the environment.
func WithGateway(g *gateway.Gateway) ServerOption {
	return func(s *Server) (OptFollowup, error) {
		s.Gateway = g
		return nil, nil
	}
}

// WithIdempotencyCache stores responses to idempotent POST requests in c.
func WithIdempotencyCache(c middleware.IdempotencyCacher) ServerOption {
	return func(s *Server) (OptFollowup, error) {
		s.idem = c
		return nil, nil
	}
}

// WithLogger exposes the provided logger.Logger to the *Server and its *gateway.Gateway.
func WithLogger(l logger.Logger) ServerOption {
	return func(s *Server) (OptFollowup, error) {
		s.l = l
		return nil, nil
	}
}

// WithMetricsPath serves Prometheus metrics at path,
// recording every dispatch of the *gateway.Gateway configured by default.
func WithMetricsPath(path string) ServerOption {
	return func(s *Server) (OptFollowup, error) {
		if path != "" && path[0] != '/' {
			return nil, fmt.Errorf("%w: metrics path %q must begin with /", gw.ErrNotValid, path)
		}

		s.metricsPath = path
		return nil, nil
	}
}

// WithMiddlewares replaces the default stack of middlewares applied to every request.
func WithMiddlewares(mws ...middleware.Adapter) ServerOption {
	return func(s *Server) (OptFollowup, error) {
		s.mws = append([]middleware.Adapter{}, mws...)
		return nil, nil
	}
}

// WithPrefix mounts the *gateway.Gateway under prefix instead of the root path.
func WithPrefix(prefix string) ServerOption {
	return func(s *Server) (OptFollowup, error) {
		s.prefix = prefix
		return nil, nil
	}
}

// WithRouter serves requests through r.
// The *gateway.Gateway is not mounted on r; callers mount it themselves.
func WithRouter(r *router.Router) ServerOption {
	return func(s *Server) (OptFollowup, error) {
		s.r = r
		return nil, nil
	}
}

// WithServer runs the *Server's router on srv.
// srv's Handler is replaced.
func WithServer(srv *http.Server) ServerOption {
	return func(s *Server) (OptFollowup, error) {
		s.srv = srv
		return nil, nil
	}
}
