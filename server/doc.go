/*
Package server initializes and manages a gateway process with sane defaults.

# Server

The main entrypoint to package server is the [Server] type, constructed with [New].
Resources are added to a [*Server] the way they are added to a [*gateway.Gateway]:

	s, err := server.New()
	if err != nil {
		log.Fatal(err)
	}

	s.Add("health", gw.Resource{Get: healthz})
	if err := s.Guide(); err != nil {
		log.Fatal(err)
	}

[*Server.Guide] begins the web server.
By default, [*Server.Guide] listens on [DefaultHost][DefaultPort] (127.0.0.1:3000),
assuming a reverse proxy proxies requests to it.
Stop that web server with [*Server.Shutdown],
cancel the context passed in with [WithContext],
or send a signal [*Server.Guide] listens for.

# Configuration

A developer configures a gateway process through environment variables and [ServerOption]s.
Environment variables ought to be set in a file called ".env"
found at the same directory the process is executed from.

Here are the available environment variables.
  - AUTH_TIMEOUT: how long - as understood by [time.ParseDuration] - an AuthFunc may take to decide; default: 30s
  - ENVIRONMENT: the environment the process is running in; cf. [gw.Environment]
  - FORCE_HTTPS: whether to redirect plain HTTP requests to HTTPS outside of development; default: false
  - HOST: the host the process listens on; default: 127.0.0.1
  - IDEMPOTENCY_BODY_LIMIT: the largest keyed request body in bytes; default: 1048576
  - LOG_LEVEL: the level at which to begin logging; default: INFO; cf. [logger.LogLevel]
  - METRICS_PATH: the path Prometheus metrics are served at; default: unset, serving no metrics
  - PORT: the port the process listens on; default: :3000
  - RATE_LIMIT: whether to limit the rate of requests per IP address; default: false
  - REDIS_URL: the Redis instance idempotent responses are stored in; default: in memory
  - SENTRY_DSN: the Sentry project errors are reported to
  - SERVER_IDLE_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for idling between requests when using keep-alives; default: 120s
  - SERVER_READ_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for reading HTTP requests; default: 5s
  - SERVER_WRITE_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for writing HTTP responses; default: 60s
*/
package server
