package server

import (
	"context"
	"crypto/sha256"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/cloud-cli/gw"
	"github.com/cloud-cli/gw/gateway"
	"github.com/cloud-cli/gw/http/middleware"
	"github.com/cloud-cli/gw/http/router"
	"github.com/cloud-cli/gw/logger"
	"github.com/cloud-cli/gw/metric"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	// Environment defaults
	environmentEnvVar = "ENVIRONMENT"

	// Log defaults
	logLevelEnvVar = "LOG_LEVEL"
	defaultLogLvl  = logger.LogLevelInfo

	// Metrics defaults
	metricsPathEnvVar = "METRICS_PATH"

	// Middleware defaults
	forceHTTPSEnvVar    = "FORCE_HTTPS"
	idemBodyLimitEnvVar = "IDEMPOTENCY_BODY_LIMIT"
	rateLimitEnvVar     = "RATE_LIMIT"
	redisURLEnvVar      = "REDIS_URL"

	// Web server defaults
	DefaultHost               = "127.0.0.1"
	hostEnvVar                = "HOST"
	DefaultPort               = ":3000"
	portEnvVar                = "PORT"
	serverReadTimeoutEnvVar   = "SERVER_READ_TIMEOUT"
	DefaultServerReadTimeout  = 5 * time.Second
	serverIdleTimeoutEnvVar   = "SERVER_IDLE_TIMEOUT"
	DefaultServerIdleTimeout  = 120 * time.Second
	serverWriteTimeoutEnvVar  = "SERVER_WRITE_TIMEOUT"
	DefaultServerWriteTimeout = 60 * time.Second
)

func defaultOpts() []ServerOption {
	return []ServerOption{
		WithContext(context.Background()),
		WithEnv(environmentEnvVar),
		withDefaults,
	}
}

// withDefaults fills in every component other ServerOptions left unset.
func withDefaults(s *Server) (OptFollowup, error) {
	return func() error {
		if s.l == nil {
			s.l = defaultLogger(s.env)
		}

		if s.idem == nil {
			idem, err := defaultIdempotencyCache()
			if err != nil {
				return err
			}

			s.idem = idem
		}

		if s.metricsPath == "" {
			s.metricsPath = os.Getenv(metricsPathEnvVar)
		}

		var metrics http.Handler
		if s.metricsPath != "" {
			reg, m, err := defaultMetrics()
			if err != nil {
				return err
			}

			s.metrics = m
			metrics = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
		}

		if s.Gateway == nil {
			s.Gateway = gateway.New(gateway.WithLogger(s.l), gateway.WithMetrics(s.metrics))
		}

		if s.mws == nil {
			s.mws = defaultMiddlewares(s.env, s.l, s.idem)
		}

		if s.r == nil {
			s.r = defaultRouter(s.env, s.l, s.mws, s.metricsPath, metrics, s.prefix, s.Gateway)
		} else if metrics != nil {
			s.r.Handle(router.Route{Path: s.metricsPath, Method: http.MethodGet, Handler: metrics})
		}

		if s.srv == nil {
			s.srv = defaultServer(s.ctx)
		}

		s.srv.Handler = s.r
		return nil
	}, nil
}

// defaultLogger constructs a logger.Logger configured for use in the gateway.
// Setting SENTRY_DSN ships errors to Sentry.
func defaultLogger(env gw.Environment) logger.Logger {
	l := logger.New(
		logger.WithEnv(env.String()),
		logger.WithLevel(envVarOrLogLevel(logLevelEnvVar, defaultLogLvl)),
	)
	l.Debug("setting up gateway logger", nil)

	return l
}

// defaultIdempotencyCache stores idempotent responses in Redis when REDIS_URL is set,
// in memory otherwise.
func defaultIdempotencyCache() (middleware.IdempotencyCacher, error) {
	rawURL := os.Getenv(redisURLEnvVar)
	if rawURL == "" {
		return middleware.NewReplayMap(), nil
	}

	c, err := middleware.NewRedisCacheFromURL(rawURL)
	if err != nil {
		return nil, err
	}

	return c, nil
}

// defaultMiddlewares constructs the stack of middlewares applied to every request.
//
// FORCE_HTTPS redirects plain HTTP requests; RATE_LIMIT limits requests per IP address.
// IDEMPOTENCY_BODY_LIMIT caps the bytes of a keyed request body.
func defaultMiddlewares(env gw.Environment, l logger.Logger, idem middleware.IdempotencyCacher) []middleware.Adapter {
	var vs *middleware.Visitors
	if gw.EnvVarOrBool(rateLimitEnvVar, false) {
		vs = middleware.NewVisitors()
	}

	mws := []middleware.Adapter{}
	if gw.EnvVarOrBool(forceHTTPSEnvVar, false) {
		mws = append(mws, middleware.ForceHTTPS(env))
	}

	return append(mws,
		middleware.RequestID(),
		middleware.InjectIPAddress(),
		middleware.RateLimit(vs),
		middleware.LogRequest(l),
		middleware.Idempotent(idem, sha256.New, gw.EnvVarOrInt64(idemBodyLimitEnvVar, middleware.DefaultIdempotentBodyLimit)),
	)
}

// defaultRouter constructs a *router.Router funneling requests to g.
// A non-nil metrics handler is served at metricsPath, ahead of g.
func defaultRouter(
	env gw.Environment,
	l logger.Logger,
	mws []middleware.Adapter,
	metricsPath string,
	metrics http.Handler,
	prefix string,
	g *gateway.Gateway,
) *router.Router {
	r := router.New(env, middleware.LogRequest(l))
	r.OnEveryRequest(mws...)
	if metrics != nil {
		r.Handle(router.Route{Path: metricsPath, Method: http.MethodGet, Handler: metrics})
	}

	r.Mount(prefix, g)

	return r
}

// defaultMetrics registers gateway, Go runtime and process metrics with a new registry.
func defaultMetrics() (*prometheus.Registry, *metric.Metrics, error) {
	reg := prometheus.NewRegistry()
	if err := reg.Register(collectors.NewGoCollector()); err != nil {
		return nil, nil, err
	}

	if err := reg.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		return nil, nil, err
	}

	m, err := metric.NewMetrics(reg)
	if err != nil {
		return nil, nil, err
	}

	return reg, m, nil
}

// defaultServer constructs a default [*http.Server] listening on HOST and PORT.
func defaultServer(ctx context.Context) *http.Server {
	port := gw.EnvVarOrString(portEnvVar, DefaultPort)
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	srv := &http.Server{
		Addr:         gw.EnvVarOrString(hostEnvVar, DefaultHost) + port,
		IdleTimeout:  gw.EnvVarOrDuration(serverIdleTimeoutEnvVar, DefaultServerIdleTimeout),
		ReadTimeout:  gw.EnvVarOrDuration(serverReadTimeoutEnvVar, DefaultServerReadTimeout),
		WriteTimeout: gw.EnvVarOrDuration(serverWriteTimeoutEnvVar, DefaultServerWriteTimeout),
	}
	if ctx != nil {
		srv.BaseContext = func(_ net.Listener) context.Context { return ctx }
	}

	return srv
}
