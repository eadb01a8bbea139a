package gateway

import (
	"time"

	"github.com/cloud-cli/gw"
	"github.com/cloud-cli/gw/logger"
	"github.com/cloud-cli/gw/metric"
)

// A GatewayOptFn is a functional option configuring a Gateway when constructing a new one.
type GatewayOptFn func(*Gateway)

// WithAuthTimeout sets how long an AuthFunc may take before the request times out.
// A non-positive d selects DefaultAuthTimeout.
func WithAuthTimeout(d time.Duration) func(*Gateway) {
	return func(g *Gateway) {
		g.authTimeout = d
	}
}

// WithBodyDecoder sets the BodyDecoder used for Resources configuring a gw.BodyConfig.
func WithBodyDecoder(d BodyDecoder) func(*Gateway) {
	return func(g *Gateway) {
		if d != nil {
			g.body = d
		}
	}
}

// WithCORSPreprocessor sets the CORSPreprocessor used for Resources configuring a gw.CORSPolicy.
func WithCORSPreprocessor(p CORSPreprocessor) func(*Gateway) {
	return func(g *Gateway) {
		if p != nil {
			g.cors = p
		}
	}
}

// WithLogger sets the provided implementation of Logger in order to log all statements through it.
//
// If no Logger is provided through this option, logger.New configures one.
func WithLogger(l logger.Logger) func(*Gateway) {
	return func(g *Gateway) {
		g.l = l
	}
}

// WithMetrics records every dispatch in m.
func WithMetrics(m *metric.Metrics) func(*Gateway) {
	return func(g *Gateway) {
		g.metrics = m
	}
}

// WithPoweredBy sets the X-Powered-By header value; an empty value sets no header.
func WithPoweredBy(val string) func(*Gateway) {
	return func(g *Gateway) {
		g.poweredBy = val
	}
}

// WithRegistry dispatches from reg instead of an empty gw.Registry.
func WithRegistry(reg *gw.Registry) func(*Gateway) {
	return func(g *Gateway) {
		g.reg = reg
	}
}
